package integration

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/restmodel/internal/application/rest"
	"github.com/ersonp/restmodel/internal/domain/services"
	"github.com/ersonp/restmodel/internal/infrastructure/modelstore/memory"
)

// newTestServer wires the full stack the way the serve command does and
// exposes it on a real listener.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	schema := services.NewSchemaService()
	require.NoError(t, schema.LoadDefaults())

	store := memory.NewStore()
	validator := services.NewValidator()
	entityService := services.NewEntityService(validator, store)
	relationshipService := services.NewRelationshipService(schema, entityService, store)
	metrics := rest.NewMetrics(prometheus.NewRegistry())
	dispatcher := rest.NewDispatcher(schema, entityService, relationshipService, validator, metrics, zap.NewNop().Sugar())

	srv := httptest.NewServer(dispatcher.Handler())
	t.Cleanup(srv.Close)
	return srv
}

// request performs one HTTP call against the test server and returns the
// response with its body drained.
func request(t *testing.T, srv *httptest.Server, method, path, body, contentType, accept string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func requestJSON(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, string) {
	t.Helper()
	return request(t, srv, method, path, body, "application/json", "application/json")
}
