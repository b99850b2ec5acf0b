package definition

import "fmt"

// Kind selects the commands or the events map of a protocol
type Kind string

const (
	Commands Kind = "commands"
	Events   Kind = "events"
)

// ArgList names a parameter list member of an entity
type ArgList string

const (
	CommandArgs  ArgList = "command_args"
	ResponseArgs ArgList = "response_args"
	EventArgs    ArgList = "event_args"
)

// Validate returns an error for kinds other than commands and events
func (k Kind) Validate() error {
	switch k {
	case Commands, Events:
		return nil
	}
	return fmt.Errorf("unsupported kind: %q", string(k))
}

// Accepts reports whether the arg list belongs to entities of this kind
func (k Kind) Accepts(list ArgList) bool {
	switch k {
	case Commands:
		return list == CommandArgs || list == ResponseArgs
	case Events:
		return list == EventArgs
	}
	return false
}

const (
	protocolsKey = "protocols"
	packetsKey   = "packets"
	nameKey      = "name"
	typeKey      = "type"
	formatKey    = "format"
	shortDescKey = "shortdesc"
)
