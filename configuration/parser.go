package configuration

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Version is a major/minor version pair of the form Major.Minor
// Major version upgrades indicate structure or type changes
// Minor version upgrades should be strictly additive
type Version string

// MajorMinorVersion constructs a Version from its Major and Minor components
func MajorMinorVersion(major, minor uint) Version {
	return Version(fmt.Sprintf("%d.%d", major, minor))
}

// Major returns the major version portion of a Version
func (version Version) Major() uint {
	majorPart := strings.Split(string(version), ".")[0]
	major, _ := strconv.ParseUint(majorPart, 10, 0)
	return uint(major)
}

// Parser parses a configuration document and applies environment overrides
// on top of it.
type Parser struct {
	prefix string
	env    map[string]string
}

// NewParser returns a *Parser with the given environment prefix. `environ`
// holds KEY=value pairs, as returned by os.Environ.
func NewParser(prefix string, environ []string) *Parser {
	p := Parser{prefix: prefix, env: make(map[string]string)}
	for _, env := range environ {
		envParts := strings.SplitN(env, "=", 2)
		if len(envParts) == 2 {
			p.env[envParts[0]] = envParts[1]
		}
	}
	return &p
}

// Parse reads a YAML document from `rd`, overrides it from the environment
// and validates the result.
func (p *Parser) Parse(rd io.Reader) (*Configuration, error) {
	in, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	var versionedStruct struct {
		Version Version `yaml:"version"`
	}
	if err := yaml.Unmarshal(in, &versionedStruct); err != nil {
		return nil, err
	}
	if versionedStruct.Version.Major() != CurrentVersion.Major() ||
		versionedStruct.Version == "" {
		return nil, fmt.Errorf("Unsupported version: %q", versionedStruct.Version)
	}

	config := Default()
	if err := yaml.Unmarshal(in, config); err != nil {
		return nil, err
	}
	if err := p.Override(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Override replaces fields of `config` that have a matching environment
// variable. The version is never overridden.
func (p *Parser) Override(config *Configuration) error {
	version := config.Version
	if err := p.overwriteFields(reflect.ValueOf(config), p.prefix); err != nil {
		return err
	}
	config.Version = version
	return nil
}

func (p *Parser) overwriteFields(v reflect.Value, prefix string) error {
	for v.Kind() == reflect.Ptr {
		v = reflect.Indirect(v)
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < v.NumField(); i++ {
		sf := v.Type().Field(i)
		fieldPrefix := strings.ToUpper(prefix + "_" + sf.Name)
		if e, ok := p.env[fieldPrefix]; ok {
			fieldVal := reflect.New(sf.Type)
			err := yaml.Unmarshal([]byte(e), fieldVal.Interface())
			if err != nil {
				return fmt.Errorf("%s: %v", fieldPrefix, err)
			}
			v.Field(i).Set(reflect.Indirect(fieldVal))
		}
		if err := p.overwriteFields(v.Field(i), fieldPrefix); err != nil {
			return err
		}
	}
	return nil
}
