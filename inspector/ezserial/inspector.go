package ezserial

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/viant/protodef/source"
)

const defaultName = "EZ-Serial Protocol"

// Inspector normalizes EZ-Serial JSON descriptions
type Inspector struct{}

// NewInspector creates an EZ-Serial inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// InspectSource parses EZ-Serial JSON from a byte slice
func (i *Inspector) InspectSource(src []byte) (*source.API, error) {
	if !gjson.ValidBytes(src) {
		return nil, errors.New("failed to parse EZ-Serial description: invalid JSON")
	}
	root := gjson.ParseBytes(src)
	if !root.IsObject() {
		return nil, errors.New("failed to parse EZ-Serial description: expected object")
	}
	ret := &source.API{Name: defaultName}
	if name := root.Get("name"); name.Type == gjson.String {
		ret.Name = name.Str
	}
	groups := root.Get("groups")
	if !groups.IsArray() {
		return nil, errors.New("failed to parse EZ-Serial description: expected groups array")
	}
	var err error
	groups.ForEach(func(_, value gjson.Result) bool {
		var group *source.Group
		if group, err = i.group(value); err != nil {
			return false
		}
		ret.Groups = append(ret.Groups, group)
		return true
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (i *Inspector) group(value gjson.Result) (*source.Group, error) {
	id, err := identifier(value.Get("id"))
	if err != nil {
		return nil, err
	}
	ret := &source.Group{ID: id, Name: value.Get("name").String()}
	if commands := value.Get("commands"); commands.Exists() {
		if ret.Commands, err = i.entities(commands, ret.ID, "commands"); err != nil {
			return nil, err
		}
	}
	if events := value.Get("events"); events.Exists() {
		if ret.Events, err = i.entities(events, ret.ID, "events"); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// entities returns a non nil list for any declared member, a null list counts as declared and empty
func (i *Inspector) entities(value gjson.Result, groupID, kind string) ([]*source.Entity, error) {
	ret := []*source.Entity{}
	if value.Type == gjson.Null {
		return ret, nil
	}
	if !value.IsArray() {
		return nil, fmt.Errorf("group %s: %s: expected array", groupID, kind)
	}
	var err error
	value.ForEach(func(_, item gjson.Result) bool {
		entity := &source.Entity{Name: item.Get("name").String()}
		if entity.ID, err = identifier(item.Get("id")); err != nil {
			err = fmt.Errorf("group %s: %s: %w", groupID, kind, err)
			return false
		}
		if entity.Params, err = parameters(item.Get("parameters")); err != nil {
			err = fmt.Errorf("group %s: %s %s: parameters: %w", groupID, kind, entity.ID, err)
			return false
		}
		if returns := item.Get("returns"); returns.Exists() {
			entity.HasReturns = true
			if entity.Returns, err = parameters(returns); err != nil {
				err = fmt.Errorf("group %s: %s %s: returns: %w", groupID, kind, entity.ID, err)
				return false
			}
		}
		ret = append(ret, entity)
		return true
	})
	return ret, err
}

// parameters returns nil for an absent, null or empty list
func parameters(value gjson.Result) ([]*source.Param, error) {
	if !value.Exists() || value.Type == gjson.Null {
		return nil, nil
	}
	if !value.IsArray() {
		return nil, errors.New("expected array")
	}
	var ret []*source.Param
	value.ForEach(func(_, item gjson.Result) bool {
		param := &source.Param{
			Name: item.Get("name").String(),
			Type: item.Get("type").String(),
		}
		if format := item.Get("format"); format.Type == gjson.String {
			param.Format = &format.Str
		}
		if shortDesc := item.Get("shortdesc"); shortDesc.Type == gjson.String {
			param.ShortDesc = &shortDesc.Str
		}
		ret = append(ret, param)
		return true
	})
	return ret, nil
}

// identifier accepts JSON numbers and strings, numbers must be integral
func identifier(value gjson.Result) (string, error) {
	switch value.Type {
	case gjson.Null:
		return "", nil
	case gjson.Number:
		return source.ID(json.Number(value.Raw))
	case gjson.String:
		return source.ID(value.Str)
	}
	return "", fmt.Errorf("unsupported identifier: %s", value.Raw)
}
