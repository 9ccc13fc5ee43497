package services

import (
	"net/url"
	"testing"

	"github.com/ersonp/restmodel/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter_IgnoresUnknownParams(t *testing.T) {
	f := ParseFilter(todoType(), url.Values{"priority": {"high"}, "sortBy": {"title"}})
	assert.True(t, f.Empty())
}

func TestFilter_Matches(t *testing.T) {
	done := &entities.Instance{
		Type: "todo", ID: "1",
		Fields: map[string]string{"title": "Buy milk", "doneStatus": "true", "description": ""},
	}
	open := &entities.Instance{
		Type: "todo", ID: "2",
		Fields: map[string]string{"title": "Walk dog", "doneStatus": "false", "description": ""},
	}

	tests := []struct {
		name     string
		params   url.Values
		wantDone bool
		wantOpen bool
	}{
		{"single field", url.Values{"doneStatus": {"true"}}, true, false},
		{"by id", url.Values{"id": {"2"}}, false, true},
		{"clauses are ANDed", url.Values{"doneStatus": {"true"}, "title": {"Walk dog"}}, false, false},
		{"first value wins", url.Values{"doneStatus": {"false", "true"}}, false, true},
		{"no match", url.Values{"title": {"Feed cat"}}, false, false},
		{"empty filter matches all", url.Values{}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseFilter(todoType(), tt.params)
			require.NotNil(t, f)
			assert.Equal(t, tt.wantDone, f.Matches(done))
			assert.Equal(t, tt.wantOpen, f.Matches(open))
		})
	}
}
