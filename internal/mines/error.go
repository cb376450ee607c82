package mines

import (
	"errors"
	"fmt"
)

var ErrConfiguration = errors.New("invalid board configuration")

// ConfigurationError is returned when a board cannot be built from the
// given parameters. It matches [ErrConfiguration] with [errors.Is].
type ConfigurationError struct {
	Field  string
	Value  int
	Reason string
}

// [*ConfigurationError] implements [error]
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s = %d %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
