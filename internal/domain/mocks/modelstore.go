package mocks

import (
	"context"
	"strconv"

	"github.com/ersonp/restmodel/internal/domain/entities"
)

// ModelStore is a mock implementation of ports.ModelStore.
type ModelStore struct {
	Instances map[string][]*entities.Instance
	Links     []*entities.Link
	Err       error

	lastID map[string]int
}

// NewModelStore creates a new mock ModelStore.
func NewModelStore() *ModelStore {
	return &ModelStore{
		Instances: make(map[string][]*entities.Instance),
		lastID:    make(map[string]int),
	}
}

// Instance methods.

// InsertInstance creates a new instance with the next sequential id.
func (m *ModelStore) InsertInstance(_ context.Context, typeName string, fields map[string]string) (*entities.Instance, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.lastID[typeName]++
	inst := &entities.Instance{
		Type:   typeName,
		ID:     strconv.Itoa(m.lastID[typeName]),
		Fields: fields,
	}
	m.Instances[typeName] = append(m.Instances[typeName], inst)
	return inst, nil
}

// FindInstance finds an instance by id, nil if absent.
func (m *ModelStore) FindInstance(_ context.Context, typeName, id string) (*entities.Instance, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, inst := range m.Instances[typeName] {
		if inst.ID == id {
			return inst, nil
		}
	}
	return nil, nil
}

// ListInstances lists all instances of a type in creation order.
func (m *ModelStore) ListInstances(_ context.Context, typeName string) ([]*entities.Instance, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.Instance, len(m.Instances[typeName]))
	copy(result, m.Instances[typeName])
	return result, nil
}

// UpdateInstance replaces the fields of an existing instance.
func (m *ModelStore) UpdateInstance(_ context.Context, inst *entities.Instance) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Instances[inst.Type] {
		if existing.ID == inst.ID {
			m.Instances[inst.Type][i] = inst
			return nil
		}
	}
	return nil
}

// DeleteInstance removes an instance and every link naming it on either side.
func (m *ModelStore) DeleteInstance(_ context.Context, typeName, id string) error {
	if m.Err != nil {
		return m.Err
	}
	instances := m.Instances[typeName]
	for i, inst := range instances {
		if inst.ID == id {
			m.Instances[typeName] = append(instances[:i:i], instances[i+1:]...)
			break
		}
	}
	kept := m.Links[:0]
	for _, link := range m.Links {
		origin := link.OriginType == typeName && link.OriginID == id
		target := link.TargetType == typeName && link.TargetID == id
		if !origin && !target {
			kept = append(kept, link)
		}
	}
	m.Links = kept
	return nil
}

// CountInstances returns the number of instances of a type.
func (m *ModelStore) CountInstances(_ context.Context, typeName string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Instances[typeName]), nil
}

// Link methods.

// SaveLink stores a link.
func (m *ModelStore) SaveLink(_ context.Context, link *entities.Link) error {
	if m.Err != nil {
		return m.Err
	}
	m.Links = append(m.Links, link)
	return nil
}

// FindLinkBetween finds the link connecting two instances under a
// relationship, nil if absent.
func (m *ModelStore) FindLinkBetween(_ context.Context, relationship, originType, originID, targetID string) (*entities.Link, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, link := range m.Links {
		if link.Relationship == relationship && link.OriginType == originType &&
			link.OriginID == originID && link.TargetID == targetID {
			return link, nil
		}
	}
	return nil, nil
}

// FindLinksByOrigin finds all links of a relationship starting at an origin
// instance, in creation order.
func (m *ModelStore) FindLinksByOrigin(_ context.Context, relationship, originType, originID string) ([]*entities.Link, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []*entities.Link
	for _, link := range m.Links {
		if link.Relationship == relationship && link.OriginType == originType && link.OriginID == originID {
			result = append(result, link)
		}
	}
	return result, nil
}

// FindLinksByTarget finds all links of a relationship arriving at a target
// instance, in creation order.
func (m *ModelStore) FindLinksByTarget(_ context.Context, relationship, originType, targetID string) ([]*entities.Link, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []*entities.Link
	for _, link := range m.Links {
		if link.Relationship == relationship && link.OriginType == originType && link.TargetID == targetID {
			result = append(result, link)
		}
	}
	return result, nil
}

// DeleteLink deletes a link by id.
func (m *ModelStore) DeleteLink(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, link := range m.Links {
		if link.ID == id {
			m.Links = append(m.Links[:i:i], m.Links[i+1:]...)
			return nil
		}
	}
	return nil
}
