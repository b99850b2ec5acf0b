package source

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformed is returned when a vendor description lacks a required identifier or name
var ErrMalformed = errors.New("malformed source")

// MalformedError locates the offending element of a vendor description
type MalformedError struct {
	Path  string // e.g. groups[2].commands[0].params[1]
	Field string // missing field
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed source: %s: missing %s", e.Path, e.Field)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// Validate checks every group, entity and parameter carries the fields the merge relies on
func (a *API) Validate() error {
	if a == nil {
		return &MalformedError{Path: "api", Field: "groups"}
	}
	for i, group := range a.Groups {
		path := "groups[" + strconv.Itoa(i) + "]"
		if group == nil {
			return &MalformedError{Path: path, Field: "group"}
		}
		if group.ID == "" {
			return &MalformedError{Path: path, Field: "id"}
		}
		if group.Name == "" {
			return &MalformedError{Path: path, Field: "name"}
		}
		if err := validateEntities(path+".commands", group.Commands); err != nil {
			return err
		}
		if err := validateEntities(path+".events", group.Events); err != nil {
			return err
		}
	}
	return nil
}

func validateEntities(path string, entities []*Entity) error {
	for i, entity := range entities {
		entityPath := path + "[" + strconv.Itoa(i) + "]"
		if entity == nil {
			return &MalformedError{Path: entityPath, Field: "entity"}
		}
		if entity.ID == "" {
			return &MalformedError{Path: entityPath, Field: "id"}
		}
		if entity.Name == "" {
			return &MalformedError{Path: entityPath, Field: "name"}
		}
		if err := validateParams(entityPath+".params", entity.Params); err != nil {
			return err
		}
		if err := validateParams(entityPath+".returns", entity.Returns); err != nil {
			return err
		}
	}
	return nil
}

func validateParams(path string, params []*Param) error {
	for i, param := range params {
		paramPath := path + "[" + strconv.Itoa(i) + "]"
		if param == nil {
			return &MalformedError{Path: paramPath, Field: "param"}
		}
		if param.Name == "" {
			return &MalformedError{Path: paramPath, Field: "name"}
		}
		if param.Type == "" {
			return &MalformedError{Path: paramPath, Field: "type"}
		}
	}
	return nil
}
