package bgapi

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/viant/protodef/source"
)

// Inspector normalizes BGAPI XML descriptions
type Inspector struct{}

// NewInspector creates a BGAPI inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// InspectSource parses BGAPI XML from a byte slice
func (i *Inspector) InspectSource(src []byte) (*source.API, error) {
	document := &api{}
	decoder := xml.NewDecoder(bytes.NewReader(src))
	if err := decoder.Decode(document); err != nil {
		return nil, fmt.Errorf("failed to parse BGAPI description: %w", err)
	}
	ret := &source.API{
		Device: document.DeviceID,
		Name:   document.DeviceName,
		Groups: make([]*source.Group, 0, len(document.Classes)),
	}
	for _, class := range document.Classes {
		group := &source.Group{
			ID:   source.CanonicalID(class.Index),
			Name: class.Name,
		}
		if len(class.Commands) > 0 {
			group.Commands = make([]*source.Entity, 0, len(class.Commands))
			for _, command := range class.Commands {
				group.Commands = append(group.Commands, command.entity())
			}
		}
		if len(class.Events) > 0 {
			group.Events = make([]*source.Entity, 0, len(class.Events))
			for _, event := range class.Events {
				group.Events = append(group.Events, event.entity())
			}
		}
		ret.Groups = append(ret.Groups, group)
	}
	return ret, nil
}
