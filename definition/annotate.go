package definition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrNotFound is returned when an annotation targets a parameter missing from the document
var ErrNotFound = errors.New("parameter not found")

// ParamRef addresses one parameter of a persisted document
type ParamRef struct {
	Protocol string
	Kind     Kind
	Group    string
	Entity   string
	List     ArgList
	Index    int
}

func (r ParamRef) String() string {
	return r.Protocol + ":" + string(r.Kind) + "/" + r.Group + "/" + r.Entity + "/" + string(r.List) + "[" + strconv.Itoa(r.Index) + "]"
}

// Validate checks the reference is well formed
func (r ParamRef) Validate() error {
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if !r.Kind.Accepts(r.List) {
		return fmt.Errorf("%s entities have no %s", r.Kind, r.List)
	}
	if r.Protocol == "" || r.Group == "" || r.Entity == "" {
		return fmt.Errorf("incomplete parameter reference: %s", r)
	}
	if r.Index < 0 {
		return fmt.Errorf("negative parameter index: %d", r.Index)
	}
	return nil
}

func (r ParamRef) path() string {
	return strings.Join([]string{
		protocolsKey, escapePath(r.Protocol), packetsKey, string(r.Kind),
		escapePath(r.Group), escapePath(r.Entity), string(r.List), strconv.Itoa(r.Index),
	}, ".")
}

// Annotate sets a curated field (format or shortdesc) on one persisted parameter.
// The rest of the document is left as written apart from re-indentation.
func Annotate(data []byte, ref ParamRef, field, value string) ([]byte, error) {
	if field != formatKey && field != shortDescKey {
		return nil, fmt.Errorf("unsupported annotation field: %q", field)
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	path := ref.path()
	if !gjson.GetBytes(data, path).IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	updated, err := sjson.SetBytes(data, path+"."+field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate %s: %w", ref, err)
	}
	return Indent(updated), nil
}

// escapePath escapes the characters gjson and sjson interpret inside a path component
func escapePath(component string) string {
	builder := strings.Builder{}
	for _, r := range component {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@', '!', ':':
			builder.WriteByte('\\')
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
