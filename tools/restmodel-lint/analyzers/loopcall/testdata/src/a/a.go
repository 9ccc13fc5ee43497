package a

import "context"

type ModelStore interface {
	InsertInstance(ctx context.Context, id string) error
	SaveLink(ctx context.Context, id string) error
}

func bad(ctx context.Context, ids []string, store ModelStore) {
	for _, id := range ids {
		store.InsertInstance(ctx, id) // want "potential N\\+1: InsertInstance called inside loop"
		store.SaveLink(ctx, id)       // want "potential N\\+1: SaveLink called inside loop"
	}
}

func good(ctx context.Context, ids []string) {
	// No store writes - should not flag
	for _, id := range ids {
		_ = len(id)
	}
}
