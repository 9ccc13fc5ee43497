package entities

import "time"

// RelationshipType defines a named, directed, many-to-many association
// between two entity types. The inverse name exposes the same links from the
// target side, so one definition serves traversal in both directions. Two
// definitions may share a forward name as long as their origin types differ;
// resolution is always by name plus origin type.
type RelationshipType struct {
	Name    string `json:"name"`
	Inverse string `json:"inverse"`
	Origin  string `json:"origin"`
	Target  string `json:"target"`
}

// Link is one stored association between two entity instances. Links are
// recorded once, oriented from the defining relationship's origin to its
// target; inverse traversal reads the same records from the other end.
type Link struct {
	ID           string    `json:"id"`
	Relationship string    `json:"relationship"`
	OriginType   string    `json:"origin_type"`
	OriginID     string    `json:"origin_id"`
	TargetType   string    `json:"target_type"`
	TargetID     string    `json:"target_id"`
	CreatedAt    time.Time `json:"created_at"`
}
