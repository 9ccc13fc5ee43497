package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ersonp/restmodel/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_InsertInstance(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	t.Run("sequential ids per type", func(t *testing.T) {
		first, err := store.InsertInstance(ctx, "todo", map[string]string{"title": "one"})
		require.NoError(t, err)
		second, err := store.InsertInstance(ctx, "todo", map[string]string{"title": "two"})
		require.NoError(t, err)

		assert.Equal(t, "1", first.ID)
		assert.Equal(t, "2", second.ID)
	})

	t.Run("independent counters across types", func(t *testing.T) {
		project, err := store.InsertInstance(ctx, "project", map[string]string{"title": "p"})
		require.NoError(t, err)
		assert.Equal(t, "1", project.ID)
	})

	t.Run("caller cannot mutate stored fields", func(t *testing.T) {
		fields := map[string]string{"title": "original"}
		inst, err := store.InsertInstance(ctx, "category", fields)
		require.NoError(t, err)

		fields["title"] = "changed"
		inst.Fields["title"] = "also changed"

		found, err := store.FindInstance(ctx, "category", inst.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", found.Fields["title"])
	})
}

func TestStore_FindInstance(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	inst, err := store.InsertInstance(ctx, "todo", map[string]string{"title": "x"})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		found, err := store.FindInstance(ctx, "todo", inst.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "x", found.Fields["title"])
	})

	t.Run("absent id", func(t *testing.T) {
		found, err := store.FindInstance(ctx, "todo", "99")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("absent type", func(t *testing.T) {
		found, err := store.FindInstance(ctx, "sprint", "1")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("returned copy is isolated", func(t *testing.T) {
		found, err := store.FindInstance(ctx, "todo", inst.ID)
		require.NoError(t, err)
		found.Fields["title"] = "mutated"

		again, err := store.FindInstance(ctx, "todo", inst.ID)
		require.NoError(t, err)
		assert.Equal(t, "x", again.Fields["title"])
	})
}

func TestStore_ListInstances(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := store.InsertInstance(ctx, "todo", map[string]string{"title": fmt.Sprintf("t%d", i)})
		require.NoError(t, err)
	}

	instances, err := store.ListInstances(ctx, "todo")
	require.NoError(t, err)
	require.Len(t, instances, 3)
	assert.Equal(t, "t1", instances[0].Fields["title"])
	assert.Equal(t, "t3", instances[2].Fields["title"])

	// Order survives a delete in the middle
	require.NoError(t, store.DeleteInstance(ctx, "todo", "2"))
	instances, err = store.ListInstances(ctx, "todo")
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "1", instances[0].ID)
	assert.Equal(t, "3", instances[1].ID)
}

func TestStore_UpdateInstance(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	inst, err := store.InsertInstance(ctx, "todo", map[string]string{"title": "before"})
	require.NoError(t, err)

	t.Run("replaces fields", func(t *testing.T) {
		err := store.UpdateInstance(ctx, &entities.Instance{
			Type: "todo", ID: inst.ID, Fields: map[string]string{"title": "after"},
		})
		require.NoError(t, err)

		found, err := store.FindInstance(ctx, "todo", inst.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", found.Fields["title"])
	})

	t.Run("missing instance", func(t *testing.T) {
		err := store.UpdateInstance(ctx, &entities.Instance{
			Type: "todo", ID: "99", Fields: map[string]string{"title": "x"},
		})
		require.Error(t, err)
	})
}

func TestStore_DeleteInstance(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	t.Run("id is never reused", func(t *testing.T) {
		first, err := store.InsertInstance(ctx, "todo", map[string]string{"title": "x"})
		require.NoError(t, err)
		require.NoError(t, store.DeleteInstance(ctx, "todo", first.ID))

		next, err := store.InsertInstance(ctx, "todo", map[string]string{"title": "y"})
		require.NoError(t, err)
		assert.Equal(t, "2", next.ID)
	})

	t.Run("missing instance", func(t *testing.T) {
		err := store.DeleteInstance(ctx, "todo", "99")
		require.Error(t, err)
	})

	t.Run("cascades to links on either side", func(t *testing.T) {
		todo, err := store.InsertInstance(ctx, "todo", map[string]string{"title": "linked"})
		require.NoError(t, err)
		require.NoError(t, store.SaveLink(ctx, &entities.Link{
			ID: "l1", Relationship: "task-of", OriginType: "todo", OriginID: todo.ID, TargetType: "project", TargetID: "1",
		}))
		require.NoError(t, store.SaveLink(ctx, &entities.Link{
			ID: "l2", Relationship: "todos", OriginType: "category", OriginID: "1", TargetType: "todo", TargetID: todo.ID,
		}))
		require.NoError(t, store.SaveLink(ctx, &entities.Link{
			ID: "l3", Relationship: "task-of", OriginType: "todo", OriginID: "other", TargetType: "project", TargetID: "1",
		}))

		require.NoError(t, store.DeleteInstance(ctx, "todo", todo.ID))

		links, err := store.FindLinksByOrigin(ctx, "task-of", "todo", todo.ID)
		require.NoError(t, err)
		assert.Empty(t, links)
		survivors, err := store.FindLinksByOrigin(ctx, "task-of", "todo", "other")
		require.NoError(t, err)
		assert.Len(t, survivors, 1)
	})
}

func TestStore_CountInstances(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	count, err := store.CountInstances(ctx, "todo")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = store.InsertInstance(ctx, "todo", map[string]string{"title": "x"})
	require.NoError(t, err)

	count, err = store.CountInstances(ctx, "todo")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_Links(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	// Two relationships share the name "categories" but differ in origin type
	require.NoError(t, store.SaveLink(ctx, &entities.Link{
		ID: "l1", Relationship: "categories", OriginType: "todo", OriginID: "1", TargetType: "category", TargetID: "1",
	}))
	require.NoError(t, store.SaveLink(ctx, &entities.Link{
		ID: "l2", Relationship: "categories", OriginType: "project", OriginID: "1", TargetType: "category", TargetID: "1",
	}))
	require.NoError(t, store.SaveLink(ctx, &entities.Link{
		ID: "l3", Relationship: "categories", OriginType: "todo", OriginID: "2", TargetType: "category", TargetID: "1",
	}))

	t.Run("find between", func(t *testing.T) {
		link, err := store.FindLinkBetween(ctx, "categories", "todo", "1", "1")
		require.NoError(t, err)
		require.NotNil(t, link)
		assert.Equal(t, "l1", link.ID)

		link, err = store.FindLinkBetween(ctx, "categories", "todo", "2", "2")
		require.NoError(t, err)
		assert.Nil(t, link)
	})

	t.Run("by origin", func(t *testing.T) {
		links, err := store.FindLinksByOrigin(ctx, "categories", "todo", "1")
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "l1", links[0].ID)
	})

	t.Run("by target keyed by origin type", func(t *testing.T) {
		links, err := store.FindLinksByTarget(ctx, "categories", "todo", "1")
		require.NoError(t, err)
		assert.Len(t, links, 2) // l1 and l3, not the project link

		links, err = store.FindLinksByTarget(ctx, "categories", "project", "1")
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "l2", links[0].ID)
	})

	t.Run("delete link", func(t *testing.T) {
		require.NoError(t, store.DeleteLink(ctx, "l3"))
		links, err := store.FindLinksByTarget(ctx, "categories", "todo", "1")
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("delete missing link", func(t *testing.T) {
		err := store.DeleteLink(ctx, "nonexistent")
		require.Error(t, err)
	})
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_, err := store.InsertInstance(ctx, "todo", map[string]string{"title": "t"})
				assert.NoError(t, err)
				_, err = store.ListInstances(ctx, "todo")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	count, err := store.CountInstances(ctx, "todo")
	require.NoError(t, err)
	assert.Equal(t, 200, count)
}
