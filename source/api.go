package source

import "strings"

// API represents a vendor API description normalized into groups of commands and events
type API struct {
	Device string   // Vendor device identifier, informational only
	Name   string   // Vendor API name, informational only
	Groups []*Group // Groups in vendor order
}

// Group represents a vendor class: a named cluster of commands and events
type Group struct {
	ID       string
	Name     string
	Commands []*Entity // nil when the vendor group declares no command list
	Events   []*Entity // nil when the vendor group declares no event list
}

// Entity represents a command or an event
type Entity struct {
	ID   string
	Name string
	// Params holds the ordered parameters; nil means the vendor declares no parameters
	Params []*Param
	// Returns holds the ordered response parameters; only meaningful when HasReturns is set
	Returns []*Param
	// HasReturns reports whether the vendor description carries a returns section at all
	HasReturns bool
}

// Param represents a vendor parameter
type Param struct {
	Name string
	Type string
	// Format and ShortDesc are only set when the vendor description carries them
	Format    *string
	ShortDesc *string
}

// Signature returns the parameters rendered as "type name, type name"
func Signature(params []*Param) string {
	if len(params) == 0 {
		return ""
	}
	builder := strings.Builder{}
	for i, param := range params {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(param.Type)
		builder.WriteString(" ")
		builder.WriteString(param.Name)
	}
	return builder.String()
}

// Ref returns group/entity reference used in diagnostics
func Ref(groupID, entityID string) string {
	return groupID + "/" + entityID
}
