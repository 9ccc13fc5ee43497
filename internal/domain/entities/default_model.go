package entities

// DefaultEntityTypes are the entity types of the sample todo list model the
// shipped binary registers at boot. The engine itself is model-agnostic;
// these definitions are plain configuration.
var DefaultEntityTypes = []EntityType{
	{
		Name:   "todo",
		Plural: "todos",
		Fields: []FieldDefinition{
			{Name: "id", Kind: FieldID},
			{Name: "title", Kind: FieldString, Mandatory: true},
			{Name: "doneStatus", Kind: FieldBoolean},
			{Name: "description", Kind: FieldString},
		},
	},
	{
		Name:   "project",
		Plural: "projects",
		Fields: []FieldDefinition{
			{Name: "id", Kind: FieldID},
			{Name: "title", Kind: FieldString},
			{Name: "completed", Kind: FieldBoolean},
			{Name: "active", Kind: FieldBoolean},
			{Name: "description", Kind: FieldString},
		},
	},
	{
		Name:   "category",
		Plural: "categories",
		Fields: []FieldDefinition{
			{Name: "id", Kind: FieldID},
			{Name: "title", Kind: FieldString, Mandatory: true},
			{Name: "description", Kind: FieldString},
		},
	},
}

// DefaultRelationshipTypes are the relationships of the sample model. The
// "categories" name is shared by two definitions with different origins.
var DefaultRelationshipTypes = []RelationshipType{
	{Name: "task-of", Inverse: "tasks", Origin: "todo", Target: "project"},
	{Name: "categories", Inverse: "todos", Origin: "todo", Target: "category"},
	{Name: "categories", Inverse: "projects", Origin: "project", Target: "category"},
}
