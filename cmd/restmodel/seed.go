package main

import (
	"context"
	"fmt"

	"github.com/ersonp/restmodel/internal/domain/services"
)

// seedSampleData creates the instances the server boots with: two todos, one
// project, two categories, and a link between the first todo and the project.
// Everything goes through the public service API so the seeded data obeys the
// same rules as client writes.
func seedSampleData(ctx context.Context, schema *services.SchemaService, entityService *services.EntityService, relationshipService *services.RelationshipService) error {
	todoDef := schema.EntityTypeByPlural("todos")
	projectDef := schema.EntityTypeByPlural("projects")
	categoryDef := schema.EntityTypeByPlural("categories")

	firstTodo, err := entityService.Create(ctx, todoDef, map[string]any{"title": "scan paperwork"})
	if err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}
	if _, err := entityService.Create(ctx, todoDef, map[string]any{"title": "file paperwork"}); err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}

	project, err := entityService.Create(ctx, projectDef, map[string]any{"title": "Office Work"})
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	for _, title := range []string{"Office", "Home"} {
		if _, err := entityService.Create(ctx, categoryDef, map[string]any{"title": title}); err != nil {
			return fmt.Errorf("creating category %s: %w", title, err)
		}
	}

	if _, err := relationshipService.Link(ctx, todoDef, firstTodo.ID, "task-of", project.ID); err != nil {
		return fmt.Errorf("linking todo to project: %w", err)
	}
	return nil
}
