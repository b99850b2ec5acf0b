package merge

import (
	"github.com/viant/protodef/definition"
	"github.com/viant/protodef/source"
)

// UpsertGroup returns the group addressed by protocol, kind and group id, creating it when absent.
// The vendor name always wins.
func UpsertGroup(doc *definition.Document, protocolID string, kind definition.Kind, groupID, groupName string) *definition.Group {
	protocol, _ := doc.LookupOrInsert(protocolID)
	group, _ := upsertGroup(protocol, kind, groupID, groupName)
	return group
}

// UpsertEntity returns the entity with the given id, creating it when absent.
// Only the name is written; every other member of an existing entity is retained.
func UpsertEntity(group *definition.Group, entityID, entityName string) *definition.Entity {
	entity, _ := upsertEntity(group, entityID, entityName)
	return entity
}

func upsertGroup(protocol *definition.Protocol, kind definition.Kind, groupID, groupName string) (*definition.Group, bool) {
	group, created := protocol.Groups(kind).LookupOrInsert(groupID)
	group.Name = groupName
	return group, created
}

func upsertEntity(group *definition.Group, entityID, entityName string) (*definition.Entity, bool) {
	entity, created := group.LookupOrInsert(entityID)
	entity.Name = entityName
	return entity, created
}

// MergeParamList merges vendor parameters positionally into an existing list.
// Existing elements keep their curated members; the second result lists parameters the policies removed.
func (e *Engine) MergeParamList(existing []*definition.Param, incoming []*source.Param) ([]*definition.Param, []*definition.Param) {
	if len(incoming) == 0 {
		if e.nullParams == NullParamsPreserve && existing != nil {
			return existing, nil
		}
		return []*definition.Param{}, existing
	}
	result := existing
	if result == nil {
		result = make([]*definition.Param, 0, len(incoming))
	}
	for i, param := range incoming {
		if i >= len(result) {
			result = append(result, &definition.Param{})
		} else if result[i] == nil {
			result[i] = &definition.Param{}
		}
		project(result[i], param)
	}
	if e.staleParams == StaleParamsPrune && len(result) > len(incoming) {
		removed := append([]*definition.Param(nil), result[len(incoming):]...)
		return result[:len(incoming):len(incoming)], removed
	}
	return result, nil
}

// project writes the members the vendor carries; absent curated members stay as they are
func project(target *definition.Param, param *source.Param) {
	target.Name = param.Name
	target.Type = param.Type
	if param.Format != nil {
		format := *param.Format
		target.Format = &format
	}
	if param.ShortDesc != nil {
		shortDesc := *param.ShortDesc
		target.ShortDesc = &shortDesc
	}
}
