package definition

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed document.cue
var schema string

const schemaRoot = "#Document"

// ErrSchema is returned when a persisted document violates the canonical schema
var ErrSchema = errors.New("schema violation")

// Violation is a single schema violation
type Violation struct {
	Path    string
	Message string
}

// SchemaError lists schema violations of one document
type SchemaError struct {
	Filename   string
	Violations []Violation
}

func (e *SchemaError) Error() string {
	if len(e.Violations) == 1 {
		return e.Filename + ": " + e.Violations[0].String()
	}
	lines := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		lines = append(lines, violation.String())
	}
	return fmt.Sprintf("%s: %d schema violations:\n  %s", e.Filename, len(e.Violations), strings.Join(lines, "\n  "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Check validates a persisted document against the embedded CUE schema
func Check(data []byte, filename string) error {
	if filename == "" {
		filename = "<document>"
	}
	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(schemaRoot))
	if root.Err() != nil {
		return fmt.Errorf("internal error: schema definition %s not found: %w", schemaRoot, root.Err())
	}
	value := ctx.CompileBytes(data, cue.Filename(filename))
	if value.Err() != nil {
		return schemaError(value.Err(), filename)
	}
	unified := root.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return schemaError(err, filename)
	}
	return nil
}

func schemaError(err error, filename string) error {
	result := &SchemaError{Filename: filename}
	for _, e := range cueerrors.Errors(err) {
		path := strings.Join(cueerrors.Path(e), ".")
		message := e.Error()
		if path != "" && strings.HasPrefix(message, path) {
			message = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(message, path), ":"))
		}
		result.Violations = append(result.Violations, Violation{Path: path, Message: message})
	}
	if len(result.Violations) == 0 {
		result.Violations = append(result.Violations, Violation{Message: err.Error()})
	}
	return result
}
