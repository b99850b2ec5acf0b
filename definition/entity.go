package definition

import "bytes"

// Entity represents a command or an event definition.
// A nil parameter list means the member is absent; a non-nil empty list is persisted as [].
type Entity struct {
	ID           string
	Name         string
	CommandArgs  []*Param
	ResponseArgs []*Param
	EventArgs    []*Param
	named        bool
	members
}

// Param represents a parameter definition; Format and ShortDesc are curated annotations
type Param struct {
	Name      string
	Type      string
	Format    *string
	ShortDesc *string
	named     bool
	typed     bool
	members
}

// Args returns the parameter list for the given member
func (e *Entity) Args(list ArgList) []*Param {
	switch list {
	case CommandArgs:
		return e.CommandArgs
	case ResponseArgs:
		return e.ResponseArgs
	case EventArgs:
		return e.EventArgs
	}
	return nil
}

// SetArgs replaces the parameter list for the given member
func (e *Entity) SetArgs(list ArgList, params []*Param) {
	switch list {
	case CommandArgs:
		e.CommandArgs = params
	case ResponseArgs:
		e.ResponseArgs = params
	case EventArgs:
		e.EventArgs = params
	}
}

func (e *Entity) encode(buf *bytes.Buffer) error {
	known := []string{nameKey, string(CommandArgs), string(ResponseArgs), string(EventArgs)}
	return e.members.encode(buf, known, func(key string) ([]byte, bool, error) {
		if key == nameKey {
			return optional(e.Name, e.named)
		}
		params := e.Args(ArgList(key))
		if params == nil {
			return nil, false, nil
		}
		value := bytes.Buffer{}
		value.WriteByte('[')
		for i, param := range params {
			if i > 0 {
				value.WriteByte(',')
			}
			if err := param.encode(&value); err != nil {
				return nil, false, err
			}
		}
		value.WriteByte(']')
		return value.Bytes(), true, nil
	})
}

func (p *Param) encode(buf *bytes.Buffer) error {
	known := []string{nameKey, typeKey, formatKey, shortDescKey}
	return p.members.encode(buf, known, func(key string) ([]byte, bool, error) {
		switch key {
		case nameKey:
			return optional(p.Name, p.named)
		case typeKey:
			return optional(p.Type, p.typed)
		case formatKey:
			if p.Format != nil {
				return quote(*p.Format), true, nil
			}
		case shortDescKey:
			if p.ShortDesc != nil {
				return quote(*p.ShortDesc), true, nil
			}
		}
		return nil, false, nil
	})
}

// optional encodes a string member that was decoded or has since been set
func optional(value string, decoded bool) ([]byte, bool, error) {
	if !decoded && value == "" {
		return nil, false, nil
	}
	return quote(value), true, nil
}
