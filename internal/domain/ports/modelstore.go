package ports

import (
	"context"

	"github.com/ersonp/restmodel/internal/domain/entities"
)

// ModelStore defines the interface for entity instance and link storage.
// One implementation backs both sides so that cross-table operations, such
// as deleting an instance together with the links naming it, are atomic.
type ModelStore interface {
	// Instance operations

	// InsertInstance stores a new instance of the named type and assigns it
	// the next identifier for that type. Identifiers are monotonically
	// increasing decimal strings starting at "1" and are never reused, even
	// after deletion.
	InsertInstance(ctx context.Context, typeName string, fields map[string]string) (*entities.Instance, error)

	// FindInstance finds an instance by type and id. Returns nil if not found.
	FindInstance(ctx context.Context, typeName, id string) (*entities.Instance, error)

	// ListInstances lists all instances of a type in creation order.
	ListInstances(ctx context.Context, typeName string) ([]*entities.Instance, error)

	// UpdateInstance replaces the stored field values of an existing instance.
	UpdateInstance(ctx context.Context, inst *entities.Instance) error

	// DeleteInstance deletes an instance and every link that names it on
	// either side.
	DeleteInstance(ctx context.Context, typeName, id string) error

	// CountInstances returns the number of stored instances of a type.
	CountInstances(ctx context.Context, typeName string) (int, error)

	// Link operations

	// SaveLink stores a new link between two instances.
	SaveLink(ctx context.Context, link *entities.Link) error

	// FindLinkBetween finds the link of the relationship identified by name
	// and origin type that connects the given origin and target instances.
	// Returns nil if no such link exists.
	FindLinkBetween(ctx context.Context, relationship, originType, originID, targetID string) (*entities.Link, error)

	// FindLinksByOrigin finds all links of the relationship identified by
	// name and origin type that start at the given instance, in creation
	// order.
	FindLinksByOrigin(ctx context.Context, relationship, originType, originID string) ([]*entities.Link, error)

	// FindLinksByTarget finds all links of the relationship identified by
	// name and origin type that end at the given instance, in creation order.
	FindLinksByTarget(ctx context.Context, relationship, originType, targetID string) ([]*entities.Link, error)

	// DeleteLink deletes a link by ID.
	DeleteLink(ctx context.Context, id string) error
}
