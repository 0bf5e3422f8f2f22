package diagnostics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Behavior is what happens when a warning is raised.
type Behavior uint8

// Warning behaviors. The zero value logs.
const (
	Log Behavior = iota
	Ignore
	Throw
)

func (b Behavior) String() string {
	switch b {
	case Ignore:
		return "ignore"
	case Throw:
		return "throw"
	}
	return "log"
}

// MarshalText implements encoding.TextMarshaler.
func (b Behavior) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Behavior) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "log", "":
		*b = Log
	case "ignore":
		*b = Ignore
	case "throw", "error":
		*b = Throw
	default:
		return fmt.Errorf("diagnostics: unknown warning behavior %q", text)
	}
	return nil
}

// WarningsConfig decides the behavior of each warning.
//
//	default: log
//	events:
//	  BoolWithDefaultWarning: ignore
//	  TpcStoreGeneratedIdentityWarning: throw
type WarningsConfig struct {
	Default Behavior             `yaml:"default" json:"default"`
	Events  map[EventID]Behavior `yaml:"events" json:"events"`
}

// Behavior returns the behavior configured for id.
func (c WarningsConfig) Behavior(id EventID) Behavior {
	if b, ok := c.Events[id]; ok {
		return b
	}
	return c.Default
}

// Validate reports events the configuration names that do not exist.
func (c WarningsConfig) Validate() error {
	var errs []error
	for id := range c.Events {
		if !id.Valid() {
			errs = append(errs, fmt.Errorf("diagnostics: unknown warning event %q", id))
		}
	}
	return errors.Join(errs...)
}

// ParseWarningsConfig decodes a YAML warnings configuration. Unknown fields
// and unknown events are errors.
func ParseWarningsConfig(r io.Reader) (WarningsConfig, error) {
	var c WarningsConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return WarningsConfig{}, fmt.Errorf("diagnostics: parse warnings config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return WarningsConfig{}, err
	}
	return c, nil
}

// ReadWarningsConfig reads a YAML warnings configuration file.
func ReadWarningsConfig(path string) (WarningsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WarningsConfig{}, fmt.Errorf("diagnostics: read warnings config: %w", err)
	}
	return ParseWarningsConfig(bytes.NewReader(data))
}
