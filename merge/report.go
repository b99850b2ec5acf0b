package merge

import (
	"errors"
	"fmt"

	"github.com/viant/protodef/definition"
)

// ErrStructuralMismatch marks vendor or document shape drift the model cannot represent
var ErrStructuralMismatch = errors.New("structural mismatch")

// StructuralMismatch is a warning: the offending detail is ignored, the document is not coerced
type StructuralMismatch struct {
	Protocol string
	Kind     definition.Kind
	Ref      string // group/entity
	Reason   string
}

func (s *StructuralMismatch) Error() string {
	return fmt.Sprintf("structural mismatch: %s %s %s: %s", s.Protocol, s.Kind, s.Ref, s.Reason)
}

func (s *StructuralMismatch) Unwrap() error {
	return ErrStructuralMismatch
}

// RemovedParam is a curated parameter dropped by the merge
type RemovedParam struct {
	Ref   string
	List  definition.ArgList
	Index int
	Param *definition.Param
}

// Report summarises one merge pass
type Report struct {
	Protocol        string
	Groups          int // group upserts, per kind
	CreatedGroups   int
	Commands        int
	Events          int
	CreatedEntities int
	NoResponse      []string // commands without returns section, group/entity
	Warnings        []*StructuralMismatch
	Removed         []RemovedParam
}

// Warning joins all structural mismatches, nil when there are none
func (r *Report) Warning() error {
	if len(r.Warnings) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Warnings))
	for _, warning := range r.Warnings {
		errs = append(errs, warning)
	}
	return errors.Join(errs...)
}

func (r *Report) warn(kind definition.Kind, ref, reason string) *StructuralMismatch {
	warning := &StructuralMismatch{Protocol: r.Protocol, Kind: kind, Ref: ref, Reason: reason}
	r.Warnings = append(r.Warnings, warning)
	return warning
}
