package services

import (
	"context"
	"testing"

	"github.com/ersonp/restmodel/internal/domain/entities"
	"github.com/ersonp/restmodel/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRelationshipTest builds a service stack over the default model with
// one todo, one project and one category, each with id "1".
func setupRelationshipTest(t *testing.T) (*RelationshipService, *EntityService, *SchemaService, *mocks.ModelStore) {
	t.Helper()
	schema := NewSchemaService()
	require.NoError(t, schema.LoadDefaults())

	store := mocks.NewModelStore()
	entitySvc := NewEntityService(NewValidator(), store)
	svc := NewRelationshipService(schema, entitySvc, store)

	ctx := context.Background()
	_, err := entitySvc.Create(ctx, schema.EntityType("todo"), map[string]any{"title": "Buy milk"})
	require.NoError(t, err)
	_, err = entitySvc.Create(ctx, schema.EntityType("project"), map[string]any{"title": "Groceries"})
	require.NoError(t, err)
	_, err = entitySvc.Create(ctx, schema.EntityType("category"), map[string]any{"title": "Errands"})
	require.NoError(t, err)

	return svc, entitySvc, schema, store
}

func TestRelationshipService_Link(t *testing.T) {
	t.Run("forward link stores forward orientation", func(t *testing.T) {
		svc, _, schema, store := setupRelationshipTest(t)

		target, err := svc.Link(context.Background(), schema.EntityType("todo"), "1", "task-of", "1")
		require.NoError(t, err)

		assert.Equal(t, "project", target.Type)
		require.Len(t, store.Links, 1)
		link := store.Links[0]
		assert.Equal(t, "task-of", link.Relationship)
		assert.Equal(t, "todo", link.OriginType)
		assert.Equal(t, "1", link.OriginID)
		assert.Equal(t, "project", link.TargetType)
		assert.NotEmpty(t, link.ID)
	})

	t.Run("inverse link stores forward orientation", func(t *testing.T) {
		svc, _, schema, store := setupRelationshipTest(t)

		target, err := svc.Link(context.Background(), schema.EntityType("project"), "1", "tasks", "1")
		require.NoError(t, err)

		assert.Equal(t, "todo", target.Type)
		require.Len(t, store.Links, 1)
		// Stored from the todo side even though linked from the project side
		assert.Equal(t, "todo", store.Links[0].OriginType)
		assert.Equal(t, "project", store.Links[0].TargetType)
	})

	t.Run("duplicate link is a no-op", func(t *testing.T) {
		svc, _, schema, store := setupRelationshipTest(t)
		ctx := context.Background()

		_, err := svc.Link(ctx, schema.EntityType("todo"), "1", "task-of", "1")
		require.NoError(t, err)
		target, err := svc.Link(ctx, schema.EntityType("todo"), "1", "task-of", "1")
		require.NoError(t, err)

		assert.Equal(t, "project", target.Type)
		assert.Len(t, store.Links, 1) // still one record
	})

	t.Run("duplicate from the other side is a no-op", func(t *testing.T) {
		svc, _, schema, store := setupRelationshipTest(t)
		ctx := context.Background()

		_, err := svc.Link(ctx, schema.EntityType("todo"), "1", "task-of", "1")
		require.NoError(t, err)
		_, err = svc.Link(ctx, schema.EntityType("project"), "1", "tasks", "1")
		require.NoError(t, err)

		assert.Len(t, store.Links, 1)
	})

	t.Run("missing origin", func(t *testing.T) {
		svc, _, schema, _ := setupRelationshipTest(t)

		_, err := svc.Link(context.Background(), schema.EntityType("todo"), "99", "task-of", "1")
		var nfErr *entities.NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "Could not find an instance with todos/99", err.Error())
	})

	t.Run("missing target", func(t *testing.T) {
		svc, _, schema, store := setupRelationshipTest(t)

		_, err := svc.Link(context.Background(), schema.EntityType("todo"), "1", "task-of", "999")
		var nfErr *entities.NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "Could not find an instance with projects/999", err.Error())
		assert.Empty(t, store.Links) // no link created
	})

	t.Run("unknown relationship name", func(t *testing.T) {
		svc, _, schema, _ := setupRelationshipTest(t)

		_, err := svc.Link(context.Background(), schema.EntityType("todo"), "1", "owner", "1")
		var nfErr *entities.NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "Could not find any instances with todos/1/owner", err.Error())
	})
}

func TestRelationshipService_Related(t *testing.T) {
	t.Run("both sides see the same record", func(t *testing.T) {
		svc, _, schema, _ := setupRelationshipTest(t)
		ctx := context.Background()

		_, err := svc.Link(ctx, schema.EntityType("todo"), "1", "task-of", "1")
		require.NoError(t, err)

		targetDef, fromTodo, err := svc.Related(ctx, schema.EntityType("todo"), "1", "task-of")
		require.NoError(t, err)
		assert.Equal(t, "project", targetDef.Name)
		require.Len(t, fromTodo, 1)
		assert.Equal(t, "1", fromTodo[0].ID)

		targetDef, fromProject, err := svc.Related(ctx, schema.EntityType("project"), "1", "tasks")
		require.NoError(t, err)
		assert.Equal(t, "todo", targetDef.Name)
		require.Len(t, fromProject, 1)
		assert.Equal(t, "1", fromProject[0].ID)
	})

	t.Run("empty relationship", func(t *testing.T) {
		svc, _, schema, _ := setupRelationshipTest(t)

		targetDef, related, err := svc.Related(context.Background(), schema.EntityType("todo"), "1", "task-of")
		require.NoError(t, err)
		assert.Equal(t, "project", targetDef.Name)
		assert.Empty(t, related)
	})

	t.Run("shared name resolves by origin type", func(t *testing.T) {
		svc, entitySvc, schema, _ := setupRelationshipTest(t)
		ctx := context.Background()

		// todo 1 and project 1 both link to category 1 under "categories"
		_, err := svc.Link(ctx, schema.EntityType("todo"), "1", "categories", "1")
		require.NoError(t, err)
		_, err = svc.Link(ctx, schema.EntityType("project"), "1", "categories", "1")
		require.NoError(t, err)

		// second todo linked to the same category
		second, err := entitySvc.Create(ctx, schema.EntityType("todo"), map[string]any{"title": "Walk dog"})
		require.NoError(t, err)
		_, err = svc.Link(ctx, schema.EntityType("todo"), second.ID, "categories", "1")
		require.NoError(t, err)

		_, todos, err := svc.Related(ctx, schema.EntityType("category"), "1", "todos")
		require.NoError(t, err)
		assert.Len(t, todos, 2)

		_, projects, err := svc.Related(ctx, schema.EntityType("category"), "1", "projects")
		require.NoError(t, err)
		assert.Len(t, projects, 1)
	})

	t.Run("unknown relationship name", func(t *testing.T) {
		svc, _, schema, _ := setupRelationshipTest(t)

		_, _, err := svc.Related(context.Background(), schema.EntityType("todo"), "1", "owner")
		require.Error(t, err)
		assert.Equal(t, "Could not find any instances with todos/1/owner", err.Error())
	})
}

func TestRelationshipService_Unlink(t *testing.T) {
	t.Run("removes the link", func(t *testing.T) {
		svc, _, schema, store := setupRelationshipTest(t)
		ctx := context.Background()

		_, err := svc.Link(ctx, schema.EntityType("todo"), "1", "task-of", "1")
		require.NoError(t, err)

		err = svc.Unlink(ctx, schema.EntityType("todo"), "1", "task-of", "1")
		require.NoError(t, err)
		assert.Empty(t, store.Links)
	})

	t.Run("removes from the inverse side", func(t *testing.T) {
		svc, _, schema, store := setupRelationshipTest(t)
		ctx := context.Background()

		_, err := svc.Link(ctx, schema.EntityType("todo"), "1", "task-of", "1")
		require.NoError(t, err)

		err = svc.Unlink(ctx, schema.EntityType("project"), "1", "tasks", "1")
		require.NoError(t, err)
		assert.Empty(t, store.Links)
	})

	t.Run("missing link", func(t *testing.T) {
		svc, _, schema, _ := setupRelationshipTest(t)

		err := svc.Unlink(context.Background(), schema.EntityType("todo"), "1", "task-of", "1")
		var nfErr *entities.NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "Could not find any instances with todos/1/task-of/1", err.Error())
	})

	t.Run("missing origin", func(t *testing.T) {
		svc, _, schema, _ := setupRelationshipTest(t)

		err := svc.Unlink(context.Background(), schema.EntityType("todo"), "99", "task-of", "1")
		require.Error(t, err)
		assert.Equal(t, "Could not find an instance with todos/99", err.Error())
	})
}

func TestRelationshipService_CreateAndLink(t *testing.T) {
	t.Run("creates and links in one operation", func(t *testing.T) {
		svc, _, schema, store := setupRelationshipTest(t)

		created, err := svc.CreateAndLink(context.Background(), schema.EntityType("project"), "1", "tasks", map[string]any{"title": "New task"})
		require.NoError(t, err)

		assert.Equal(t, "todo", created.Type)
		assert.Equal(t, "2", created.ID)
		assert.Equal(t, "New task", created.Fields["title"])
		require.Len(t, store.Links, 1)
		// Link stored in forward orientation with the new todo as origin
		assert.Equal(t, "todo", store.Links[0].OriginType)
		assert.Equal(t, "2", store.Links[0].OriginID)
		assert.Equal(t, "1", store.Links[0].TargetID)
	})

	t.Run("validation failure creates nothing", func(t *testing.T) {
		svc, _, schema, store := setupRelationshipTest(t)

		_, err := svc.CreateAndLink(context.Background(), schema.EntityType("project"), "1", "tasks", map[string]any{"doneStatus": true})
		var vErr *entities.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Len(t, store.Instances["todo"], 1) // only the seeded todo
		assert.Empty(t, store.Links)
	})

	t.Run("missing origin", func(t *testing.T) {
		svc, _, schema, _ := setupRelationshipTest(t)

		_, err := svc.CreateAndLink(context.Background(), schema.EntityType("project"), "42", "tasks", map[string]any{"title": "x"})
		require.Error(t, err)
		assert.Equal(t, "Could not find an instance with projects/42", err.Error())
	})
}
