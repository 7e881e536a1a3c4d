package configuration

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Configuration is a versioned configuration for the pendset command.
type Configuration struct {
	// Version is the version which defines the format of the rest of the
	// configuration
	Version Version `yaml:"version"`

	// Log supports setting various parameters related to the logging
	// subsystem.
	Log Log `yaml:"log"`

	// Output controls how results are printed.
	Output Output `yaml:"output"`
}

// Log holds the logging parameters.
type Log struct {
	// Level is the granularity at which operations are logged.
	Level Loglevel `yaml:"level,omitempty"`

	// Formatter overrides the default formatter with another. Options
	// include "text" and "json".
	Formatter string `yaml:"formatter,omitempty"`

	// Fields allows users to specify static string fields to include in
	// the logger context.
	Fields map[string]interface{} `yaml:"fields,omitempty"`
}

// Output holds the result printing parameters.
type Output struct {
	// Format is one of "text", "yaml" or "json".
	Format string `yaml:"format,omitempty"`
}

// CurrentVersion is the most recent Version that can be parsed
var CurrentVersion = MajorMinorVersion(0, 1)

// Loglevel is the level at which operations are logged
// This can be error, warn, info, or debug
type Loglevel string

// UnmarshalYAML implements the yaml.Umarshaler interface
// Unmarshals a string into a Loglevel, lowercasing the string and validating that it represents a
// valid loglevel
func (loglevel *Loglevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var loglevelString string
	err := unmarshal(&loglevelString)
	if err != nil {
		return err
	}

	level, err := ParseLoglevel(loglevelString)
	if err != nil {
		return err
	}
	*loglevel = level
	return nil
}

// ParseLoglevel lowercases `s` and checks that it names a known level.
func ParseLoglevel(s string) (Loglevel, error) {
	s = strings.ToLower(s)
	switch s {
	case "error", "warn", "info", "debug":
	default:
		return "", fmt.Errorf("Invalid loglevel %s Must be one of [error, warn, info, debug]", s)
	}
	return Loglevel(s), nil
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	return &Configuration{
		Version: CurrentVersion,
		Log: Log{
			Level:     "info",
			Formatter: "text",
		},
		Output: Output{Format: "text"},
	}
}

// Validate checks the values that the YAML decoder cannot check by itself.
func (config *Configuration) Validate() error {
	switch config.Log.Formatter {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported logging formatter: %q", config.Log.Formatter)
	}
	switch config.Output.Format {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unsupported output format: %q", config.Output.Format)
	}
	return nil
}

// Parse parses an input configuration yaml document into a Configuration
// struct. Fields left out of the document keep their default values.
//
// Environment variables may be used to override configuration parameters
// other than version, following the scheme below:
// Configuration.Abc may be replaced by the value of PENDSET_ABC,
// Configuration.Abc.Xyz may be replaced by the value of PENDSET_ABC_XYZ, and so forth
func Parse(rd io.Reader) (*Configuration, error) {
	return NewParser("pendset", os.Environ()).Parse(rd)
}
