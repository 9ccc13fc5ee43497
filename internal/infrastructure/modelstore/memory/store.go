// Package memory provides an in-memory implementation of the ModelStore
// interface.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/ersonp/restmodel/internal/domain/entities"
)

// table holds the instances of one entity type. Ids are assigned from a
// per-type counter that never decreases, so an id is never reused after a
// delete.
type table struct {
	lastID int
	order  []string
	byID   map[string]map[string]string
}

// Store implements ports.ModelStore with maps guarded by a single lock.
// Instance and link deletion happen under the same critical section, so a
// reader never observes an instance without its links half-removed.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table
	links  []*entities.Link
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		tables: make(map[string]*table),
	}
}

func (s *Store) tableFor(typeName string) *table {
	tbl, ok := s.tables[typeName]
	if !ok {
		tbl = &table{byID: make(map[string]map[string]string)}
		s.tables[typeName] = tbl
	}
	return tbl
}

func copyFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for name, value := range fields {
		out[name] = value
	}
	return out
}

// Instance methods.

// InsertInstance creates a new instance with the next sequential id for the
// type.
func (s *Store) InsertInstance(_ context.Context, typeName string, fields map[string]string) (*entities.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl := s.tableFor(typeName)
	tbl.lastID++
	id := strconv.Itoa(tbl.lastID)
	tbl.byID[id] = copyFields(fields)
	tbl.order = append(tbl.order, id)

	return &entities.Instance{Type: typeName, ID: id, Fields: copyFields(fields)}, nil
}

// FindInstance returns a copy of the instance with the given id, or nil if
// absent.
func (s *Store) FindInstance(_ context.Context, typeName, id string) (*entities.Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[typeName]
	if !ok {
		return nil, nil
	}
	fields, ok := tbl.byID[id]
	if !ok {
		return nil, nil
	}
	return &entities.Instance{Type: typeName, ID: id, Fields: copyFields(fields)}, nil
}

// ListInstances returns copies of all instances of the type in creation
// order.
func (s *Store) ListInstances(_ context.Context, typeName string) ([]*entities.Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[typeName]
	if !ok {
		return nil, nil
	}
	result := make([]*entities.Instance, 0, len(tbl.order))
	for _, id := range tbl.order {
		result = append(result, &entities.Instance{Type: typeName, ID: id, Fields: copyFields(tbl.byID[id])})
	}
	return result, nil
}

// UpdateInstance replaces the fields of an existing instance.
func (s *Store) UpdateInstance(_ context.Context, inst *entities.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, ok := s.tables[inst.Type]
	if !ok {
		return fmt.Errorf("no instance %s/%s", inst.Type, inst.ID)
	}
	if _, ok := tbl.byID[inst.ID]; !ok {
		return fmt.Errorf("no instance %s/%s", inst.Type, inst.ID)
	}
	tbl.byID[inst.ID] = copyFields(inst.Fields)
	return nil
}

// DeleteInstance removes an instance together with every link naming it on
// either side, in one critical section.
func (s *Store) DeleteInstance(_ context.Context, typeName, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, ok := s.tables[typeName]
	if !ok {
		return fmt.Errorf("no instance %s/%s", typeName, id)
	}
	if _, ok := tbl.byID[id]; !ok {
		return fmt.Errorf("no instance %s/%s", typeName, id)
	}
	delete(tbl.byID, id)
	for i, existing := range tbl.order {
		if existing == id {
			tbl.order = append(tbl.order[:i:i], tbl.order[i+1:]...)
			break
		}
	}

	kept := make([]*entities.Link, 0, len(s.links))
	for _, link := range s.links {
		origin := link.OriginType == typeName && link.OriginID == id
		target := link.TargetType == typeName && link.TargetID == id
		if !origin && !target {
			kept = append(kept, link)
		}
	}
	s.links = kept
	return nil
}

// CountInstances returns the number of instances of the type.
func (s *Store) CountInstances(_ context.Context, typeName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[typeName]
	if !ok {
		return 0, nil
	}
	return len(tbl.order), nil
}

// Link methods.

// SaveLink stores a copy of the link.
func (s *Store) SaveLink(_ context.Context, link *entities.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *link
	s.links = append(s.links, &stored)
	return nil
}

// FindLinkBetween returns a copy of the link connecting two instances under
// a relationship, or nil if absent.
func (s *Store) FindLinkBetween(_ context.Context, relationship, originType, originID, targetID string) (*entities.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, link := range s.links {
		if link.Relationship == relationship && link.OriginType == originType &&
			link.OriginID == originID && link.TargetID == targetID {
			found := *link
			return &found, nil
		}
	}
	return nil, nil
}

// FindLinksByOrigin returns copies of all links of a relationship starting
// at an origin instance, in creation order.
func (s *Store) FindLinksByOrigin(_ context.Context, relationship, originType, originID string) ([]*entities.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*entities.Link
	for _, link := range s.links {
		if link.Relationship == relationship && link.OriginType == originType && link.OriginID == originID {
			found := *link
			result = append(result, &found)
		}
	}
	return result, nil
}

// FindLinksByTarget returns copies of all links of a relationship arriving
// at a target instance, in creation order.
func (s *Store) FindLinksByTarget(_ context.Context, relationship, originType, targetID string) ([]*entities.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*entities.Link
	for _, link := range s.links {
		if link.Relationship == relationship && link.OriginType == originType && link.TargetID == targetID {
			found := *link
			result = append(result, &found)
		}
	}
	return result, nil
}

// DeleteLink removes the link with the given id.
func (s *Store) DeleteLink(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, link := range s.links {
		if link.ID == id {
			s.links = append(s.links[:i:i], s.links[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no link %s", id)
}
