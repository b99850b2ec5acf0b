package definition

import "bytes"

// GroupMap represents the commands or events of a protocol keyed by group id, in insertion order
type GroupMap struct {
	Kind       Kind
	Groups     []*Group
	groupIndex map[string]int
	members
}

// Group represents a named cluster of entities keyed by entity id, in insertion order
type Group struct {
	ID          string
	Name        string
	Entities    []*Entity
	entityIndex map[string]int
	named       bool
	members
}

// Lookup returns the group with the given id or nil
func (m *GroupMap) Lookup(id string) *Group {
	m.ensureIndex()
	if idx, ok := m.groupIndex[id]; ok && idx < len(m.Groups) {
		return m.Groups[idx]
	}
	return nil
}

// LookupOrInsert returns the group with the given id, appending an empty one when absent
func (m *GroupMap) LookupOrInsert(id string) (*Group, bool) {
	if group := m.Lookup(id); group != nil {
		return group, false
	}
	group := &Group{ID: id}
	m.add(group)
	return group, true
}

// Len returns number of groups
func (m *GroupMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Groups)
}

func (m *GroupMap) add(group *Group) {
	m.ensureIndex()
	m.groupIndex[group.ID] = len(m.Groups)
	m.Groups = append(m.Groups, group)
}

func (m *GroupMap) ensureIndex() {
	if m.groupIndex != nil && len(m.groupIndex) == len(m.Groups) {
		return
	}
	m.groupIndex = make(map[string]int, len(m.Groups))
	for i, group := range m.Groups {
		m.groupIndex[group.ID] = i
	}
}

// Lookup returns the entity with the given id or nil
func (g *Group) Lookup(id string) *Entity {
	g.ensureIndex()
	if idx, ok := g.entityIndex[id]; ok && idx < len(g.Entities) {
		return g.Entities[idx]
	}
	return nil
}

// LookupOrInsert returns the entity with the given id, appending an empty one when absent
func (g *Group) LookupOrInsert(id string) (*Entity, bool) {
	if entity := g.Lookup(id); entity != nil {
		return entity, false
	}
	entity := &Entity{ID: id}
	g.add(entity)
	return entity, true
}

func (g *Group) add(entity *Entity) {
	g.ensureIndex()
	g.entityIndex[entity.ID] = len(g.Entities)
	g.Entities = append(g.Entities, entity)
}

func (g *Group) ensureIndex() {
	if g.entityIndex != nil && len(g.entityIndex) == len(g.Entities) {
		return
	}
	g.entityIndex = make(map[string]int, len(g.Entities))
	for i, entity := range g.Entities {
		g.entityIndex[entity.ID] = i
	}
}

func (m *GroupMap) encode(buf *bytes.Buffer) error {
	known := make([]string, 0, len(m.Groups))
	for _, group := range m.Groups {
		known = append(known, group.ID)
	}
	return m.members.encode(buf, known, func(key string) ([]byte, bool, error) {
		group := m.Lookup(key)
		if group == nil {
			return nil, false, nil
		}
		value := bytes.Buffer{}
		if err := group.encode(&value); err != nil {
			return nil, false, err
		}
		return value.Bytes(), true, nil
	})
}

func (g *Group) encode(buf *bytes.Buffer) error {
	known := make([]string, 0, len(g.Entities)+1)
	known = append(known, nameKey)
	for _, entity := range g.Entities {
		known = append(known, entity.ID)
	}
	return g.members.encode(buf, known, func(key string) ([]byte, bool, error) {
		if key == nameKey {
			return optional(g.Name, g.named)
		}
		entity := g.Lookup(key)
		if entity == nil {
			return nil, false, nil
		}
		value := bytes.Buffer{}
		if err := entity.encode(&value); err != nil {
			return nil, false, err
		}
		return value.Bytes(), true, nil
	})
}
