package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sikort/internal/config"
	"sikort/internal/prof"
)

// session holds what every command sets up from persistent flags.
type session struct {
	cfg      *config.Config
	quiet    bool
	cleanups []func()
}

// openSession loads the config file, applies --color and starts the
// profilers and the tracer. Close must be called on every path.
func openSession(cmd *cobra.Command) (*session, error) {
	s := &session{}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	s.cfg = cfg

	if s.quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if err := setupColor(cmd); err != nil {
		return nil, err
	}

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	s.cleanups = append(s.cleanups, stopProf)

	stopTrace, err := setupTracing(cmd, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.cleanups = append(s.cleanups, stopTrace)
	return s, nil
}

// Close runs cleanups in reverse order.
func (s *session) Close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// setupProfiling starts the profilers named by the persistent flags.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	var cfg prof.Config
	var err error
	if cfg.CPU, err = cmd.Flags().GetString("cpuprofile"); err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if cfg.Mem, err = cmd.Flags().GetString("memprofile"); err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if cfg.Trace, err = cmd.Flags().GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	s, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := s.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}

// stringSetting returns the flag value when it was set explicitly and the
// config value otherwise.
func stringSetting(cmd *cobra.Command, flag, fromConfig string) (string, error) {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", flag, err)
	}
	if cmd.Flags().Changed(flag) {
		return v, nil
	}
	if fromConfig != "" {
		return fromConfig, nil
	}
	return v, nil
}

func boolSetting(cmd *cobra.Command, flag string, fromConfig bool) (bool, error) {
	v, err := cmd.Flags().GetBool(flag)
	if err != nil {
		return false, fmt.Errorf("failed to get %s flag: %w", flag, err)
	}
	if cmd.Flags().Changed(flag) {
		return v, nil
	}
	return v || fromConfig, nil
}

func intSetting(cmd *cobra.Command, flag string, fromConfig int) (int, error) {
	v, err := cmd.Flags().GetInt(flag)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s flag: %w", flag, err)
	}
	if cmd.Flags().Changed(flag) || fromConfig == 0 {
		return v, nil
	}
	return fromConfig, nil
}
