// Package plan loads and executes call plans: declarative straight-line
// call sequences over named slots, with the outcome they must produce.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"sikort/internal/abi"
)

// Plan is one call sequence.
type Plan struct {
	Name        string     `toml:"name" yaml:"name"`
	Description string     `toml:"description" yaml:"description"`
	Slots       []SlotDecl `toml:"slot" yaml:"slots"`
	Calls       []CallDecl `toml:"call" yaml:"calls"`
	Expect      *Expect    `toml:"expect" yaml:"expect"`

	// Path is the file the plan was loaded from, if any.
	Path string `toml:"-" yaml:"-"`
}

// SlotDecl declares a caller-owned slot. Init is an int, a bool (or 0/1 for
// bool slots) or a string, matching Type. A missing Init zero-fills.
type SlotDecl struct {
	Name string `toml:"name" yaml:"name"`
	Type string `toml:"type" yaml:"type"`
	Init any    `toml:"init" yaml:"init"`
	// Normalize applies a Unicode normalization form ("nfc" or "nfd") to a
	// string Init before it is stored. Comparison stays byte-wise.
	Normalize string `toml:"normalize" yaml:"normalize"`
}

// CallDecl is one runtime call. Out names the output slot and may be empty
// for operations producing Unit.
type CallDecl struct {
	Op   string   `toml:"op" yaml:"op"`
	Args []string `toml:"args" yaml:"args"`
	Out  string   `toml:"out" yaml:"out"`
}

// Expect describes the outcome a plan must produce.
type Expect struct {
	Stdout   *string        `toml:"stdout" yaml:"stdout"`
	Aborted  bool           `toml:"aborted" yaml:"aborted"`
	ExitCode *int           `toml:"exit_code" yaml:"exit_code"`
	Slots    map[string]any `toml:"slots" yaml:"slots"`
	// Violation names the contract violation code (such as "RT1004") a
	// checked execution must stop with.
	Violation string `toml:"violation" yaml:"violation"`
}

// Source formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatForPath picks the source format from a file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: unsupported plan format (expected .toml, .yaml or .yml)", path)
	}
}

// Load reads and validates the plan at path.
func Load(path string) (*Plan, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Path = path
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Parse decodes and validates a plan in the given format.
func Parse(data []byte, format string) (*Plan, error) {
	var p Plan
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &p); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown plan format %q", format)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks names, types and references without executing anything.
func (p *Plan) Validate() error {
	var errs []error
	kinds := make(map[string]abi.Kind, len(p.Slots))
	for i, s := range p.Slots {
		k, err := abi.ParseKind(s.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("slot %d (%s): %w", i, s.Name, err))
			continue
		}
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("slot %d: missing name", i))
			continue
		}
		if _, dup := kinds[s.Name]; dup {
			errs = append(errs, fmt.Errorf("slot %q declared twice", s.Name))
			continue
		}
		if s.Normalize != "" && k != abi.KindString {
			errs = append(errs, fmt.Errorf("slot %q: normalize applies to string slots only", s.Name))
		}
		if s.Init != nil {
			if _, err := initSlot(k, s.Init, s.Normalize); err != nil {
				errs = append(errs, fmt.Errorf("slot %q: %w", s.Name, err))
			}
		}
		kinds[s.Name] = k
	}

	for i, c := range p.Calls {
		if _, ok := abi.Lookup(c.Op); !ok {
			errs = append(errs, fmt.Errorf("call %d: unknown operation %q", i, c.Op))
		}
		for _, a := range c.Args {
			if _, ok := kinds[a]; !ok {
				errs = append(errs, fmt.Errorf("call %d (%s): undeclared slot %q", i, c.Op, a))
			}
		}
		if c.Out != "" {
			if _, ok := kinds[c.Out]; !ok {
				errs = append(errs, fmt.Errorf("call %d (%s): undeclared output slot %q", i, c.Op, c.Out))
			}
		}
	}

	if p.Expect != nil {
		for name := range p.Expect.Slots {
			if _, ok := kinds[name]; !ok {
				errs = append(errs, fmt.Errorf("expect: undeclared slot %q", name))
			}
		}
	}
	return errors.Join(errs...)
}
