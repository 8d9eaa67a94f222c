// Package config loads sikort.toml, the optional per-project settings file.
// Command-line flags override every value read here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"sikort/internal/abi"
	"sikort/internal/trace"
)

// FileName is the settings file looked up from the working directory upward.
const FileName = "sikort.toml"

type Config struct {
	// Path of the loaded file, empty for defaults.
	Path   string       `toml:"-"`
	ABI    ABIConfig    `toml:"abi"`
	Run    RunConfig    `toml:"run"`
	Verify VerifyConfig `toml:"verify"`
}

type ABIConfig struct {
	Target string `toml:"target"`
}

type RunConfig struct {
	Checked    bool   `toml:"checked"`
	Trace      string `toml:"trace"`
	TraceLevel string `toml:"trace_level"`
	Record     string `toml:"record"`
}

type VerifyConfig struct {
	Dir     string `toml:"dir"`
	Jobs    int    `toml:"jobs"`
	UI      string `toml:"ui"`
	Timings bool   `toml:"timings"`
	Checked bool   `toml:"checked"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{
		Run:    RunConfig{TraceLevel: "off"},
		Verify: VerifyConfig{UI: "auto"},
	}
}

// Find walks up from startDir to locate sikort.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest sikort.toml, or returns Default if there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults. Unknown keys are errors.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if cfg.Verify.Dir != "" && !filepath.IsAbs(cfg.Verify.Dir) {
		cfg.Verify.Dir = filepath.Join(filepath.Dir(path), cfg.Verify.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := abi.LookupTarget(c.ABI.Target); err != nil {
		errs = append(errs, fmt.Errorf("[abi].target: %w", err))
	}
	if _, err := trace.ParseLevel(c.Run.TraceLevel); err != nil {
		errs = append(errs, fmt.Errorf("[run].trace_level: %w", err))
	}
	switch strings.ToLower(c.Verify.UI) {
	case "", "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("[verify].ui: invalid value %q (expected auto|on|off)", c.Verify.UI))
	}
	if c.Verify.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[verify].jobs: must not be negative, got %d", c.Verify.Jobs))
	}
	return errors.Join(errs...)
}
