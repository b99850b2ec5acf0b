package merge

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

type Option func(*Engine)

// NullParams decides what a vendor declaration of "no parameters" does to an existing list
type NullParams int

const (
	// NullParamsClear replaces the existing list with an empty one, dropping curated entries
	NullParamsClear NullParams = iota
	// NullParamsPreserve leaves an existing list untouched
	NullParamsPreserve
)

// StaleParams decides what happens to existing parameters past the end of a shorter vendor list
type StaleParams int

const (
	// StaleParamsKeep leaves the stale tail in place
	StaleParamsKeep StaleParams = iota
	// StaleParamsPrune removes the stale tail and reports every removed parameter
	StaleParamsPrune
)

// WithNullParams sets the null parameter list policy
func WithNullParams(policy NullParams) Option {
	return func(e *Engine) {
		e.nullParams = policy
	}
}

// WithStaleParams sets the stale parameter tail policy
func WithStaleParams(policy StaleParams) Option {
	return func(e *Engine) {
		e.staleParams = policy
	}
}

// WithLogger sets diagnostics logger
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func (p NullParams) String() string {
	switch p {
	case NullParamsClear:
		return "clear"
	case NullParamsPreserve:
		return "preserve"
	}
	return fmt.Sprintf("NullParams(%d)", int(p))
}

// ParseNullParams parses clear or preserve
func ParseNullParams(text string) (NullParams, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "clear":
		return NullParamsClear, nil
	case "preserve":
		return NullParamsPreserve, nil
	}
	return NullParamsClear, fmt.Errorf("invalid null params policy: %q (expected clear or preserve)", text)
}

func (p NullParams) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *NullParams) UnmarshalText(text []byte) error {
	policy, err := ParseNullParams(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

func (p StaleParams) String() string {
	switch p {
	case StaleParamsKeep:
		return "keep"
	case StaleParamsPrune:
		return "prune"
	}
	return fmt.Sprintf("StaleParams(%d)", int(p))
}

// ParseStaleParams parses keep or prune
func ParseStaleParams(text string) (StaleParams, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "keep":
		return StaleParamsKeep, nil
	case "prune":
		return StaleParamsPrune, nil
	}
	return StaleParamsKeep, fmt.Errorf("invalid stale params policy: %q (expected keep or prune)", text)
}

func (p StaleParams) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *StaleParams) UnmarshalText(text []byte) error {
	policy, err := ParseStaleParams(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}
