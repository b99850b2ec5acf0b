package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Decode parses a persisted document keeping member order and members the model does not interpret.
// Empty input yields an empty document.
func Decode(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected top level object", ErrInvalidDocument)
	}
	doc := New()
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		doc.record(name)
		if name == protocolsKey && value.IsObject() {
			err = doc.decodeProtocols(value)
			return err == nil
		}
		doc.setExtra(name, rawOf(value))
		return true
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) decodeProtocols(value gjson.Result) error {
	var err error
	value.ForEach(func(key, value gjson.Result) bool {
		id := key.String()
		if !value.IsObject() {
			err = fmt.Errorf("%w: %s.%s: expected object", ErrInvalidDocument, protocolsKey, id)
			return false
		}
		protocol := &Protocol{ID: id}
		if err = protocol.decode(value); err != nil {
			return false
		}
		d.add(protocol)
		return true
	})
	return err
}

func (p *Protocol) decode(value gjson.Result) error {
	var err error
	value.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		p.record(name)
		if name == packetsKey && value.IsObject() {
			p.withPackets = true
			err = p.decodePackets(value)
			return err == nil
		}
		p.setExtra(name, rawOf(value))
		return true
	})
	return err
}

func (p *Protocol) decodePackets(value gjson.Result) error {
	var err error
	value.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		p.packets.record(name)
		kind := Kind(name)
		if kind.Validate() == nil && value.IsObject() {
			groups := p.Groups(kind)
			err = groups.decode(p.ID, value)
			return err == nil
		}
		p.packets.setExtra(name, rawOf(value))
		return true
	})
	return err
}

func (m *GroupMap) decode(protocolID string, value gjson.Result) error {
	var err error
	value.ForEach(func(key, value gjson.Result) bool {
		id := key.String()
		m.record(id)
		if !value.IsObject() {
			m.setExtra(id, rawOf(value))
			return true
		}
		group := &Group{ID: id}
		path := protocolsKey + "." + protocolID + "." + packetsKey + "." + string(m.Kind) + "." + id
		if err = group.decode(path, value); err != nil {
			return false
		}
		m.add(group)
		return true
	})
	return err
}

func (g *Group) decode(path string, value gjson.Result) error {
	var err error
	value.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		g.record(name)
		switch {
		case name == nameKey && value.Type == gjson.String:
			g.Name, g.named = value.String(), true
		case name != nameKey && isEntity(name, value):
			entity := &Entity{ID: name}
			if err = entity.decode(path+"."+name, value); err != nil {
				return false
			}
			g.add(entity)
		default:
			g.setExtra(name, rawOf(value))
		}
		return true
	})
	return err
}

func (e *Entity) decode(path string, value gjson.Result) error {
	var err error
	value.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		e.record(name)
		list := ArgList(name)
		switch {
		case name == nameKey && value.Type == gjson.String:
			e.Name, e.named = value.String(), true
		case (list == CommandArgs || list == ResponseArgs || list == EventArgs) && value.IsArray():
			var params []*Param
			if params, err = decodeParams(path+"."+name, value); err != nil {
				return false
			}
			e.SetArgs(list, params)
		default:
			e.setExtra(name, rawOf(value))
		}
		return true
	})
	return err
}

func decodeParams(path string, value gjson.Result) ([]*Param, error) {
	elements := value.Array()
	params := make([]*Param, 0, len(elements))
	for i, element := range elements {
		if !element.IsObject() {
			return nil, fmt.Errorf("%w: %s[%s]: expected object", ErrInvalidDocument, path, strconv.Itoa(i))
		}
		param := &Param{}
		element.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			param.record(name)
			if value.Type != gjson.String {
				param.setExtra(name, rawOf(value))
				return true
			}
			text := value.String()
			switch name {
			case nameKey:
				param.Name, param.named = text, true
			case typeKey:
				param.Type, param.typed = text, true
			case formatKey:
				param.Format = &text
			case shortDescKey:
				param.ShortDesc = &text
			default:
				param.setExtra(name, rawOf(value))
			}
			return true
		})
		params = append(params, param)
	}
	return params, nil
}

// isEntity reports whether a group member holds an entity: decimal keys always do, other keys when the object carries a name or an argument list
func isEntity(key string, value gjson.Result) bool {
	if !value.IsObject() {
		return false
	}
	if isDecimal(key) {
		return true
	}
	for _, member := range []string{nameKey, string(CommandArgs), string(ResponseArgs), string(EventArgs)} {
		if value.Get(member).Exists() {
			return true
		}
	}
	return false
}

func isDecimal(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func rawOf(value gjson.Result) json.RawMessage {
	return json.RawMessage(value.Raw)
}
