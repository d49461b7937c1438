package econ

import (
	"errors"
	"fmt"
)

// ConfigError reports a definition referencing a name that does not
// exist in the baseline parameter vector or the initial-state
// configuration. Fatal at load/validation time: a game must never
// start with one outstanding, and nothing may silently create the
// missing entry at runtime.
type ConfigError struct {
	// Source names the definition at fault ("card", "event",
	// "character", "dilemma", "rules").
	Source string

	// Name is the offending definition's name.
	Name string

	// Ref is the parameter or variable name that does not exist.
	Ref string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %q references unknown name %q", e.Source, e.Name, e.Ref)
}

// IsConfigError reports whether err is a ConfigError.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
