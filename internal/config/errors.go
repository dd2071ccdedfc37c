package config

import (
	"fmt"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

type InvalidYAMLError struct {
	Path    string
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("%s is not a valid config file: %s", e.Path, e.Wrapped)
}

type NoFixturesError struct {
	Kind string // "data" or "schema"
}

func (e *NoFixturesError) Error() string {
	return fmt.Sprintf("no %s fixtures configured - set %sDir/%sFiles in the config or pass --%s",
		e.Kind, e.Kind, e.Kind, flagFor(e.Kind))
}

func flagFor(kind string) string {
	if kind == "data" {
		return "data"
	}
	return "schemas"
}
