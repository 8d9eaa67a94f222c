package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sikort/internal/plan"
	"sikort/internal/record"
	"sikort/internal/version"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <plan>",
	Short: "Execute one call plan against the runtime",
	Long: `Execute a call plan (.toml or .yaml) and print what it prints. A plan that
aborts ends the process with the runtime's abort status.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	runCmd.Flags().Bool("checked", false, "check operand contracts before every call")
	runCmd.Flags().String("record", "", "record calls to a log (.ndjson or .msgpack)")
	runCmd.Flags().Bool("expect", false, "also check the plan's [expect] section")
}

func runPlan(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	defer func() {
		if err != nil {
			var exit *exitError
			if !errors.As(err, &exit) {
				dumpRing(cmd)
			}
		}
	}()

	checked, err := boolSetting(cmd, "checked", s.cfg.Run.Checked)
	if err != nil {
		return err
	}
	recordPath, err := stringSetting(cmd, "record", s.cfg.Run.Record)
	if err != nil {
		return err
	}
	expect, err := cmd.Flags().GetBool("expect")
	if err != nil {
		return fmt.Errorf("failed to get expect flag: %w", err)
	}

	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}

	opts := plan.Options{Checked: checked, Sink: cmd.OutOrStdout()}
	var rec *record.Recorder
	if recordPath != "" {
		f, closeLog, logErr := createLog(recordPath)
		if logErr != nil {
			return logErr
		}
		defer closeLog(&err)
		format, _ := record.FormatForPath(recordPath)
		rec, err = record.NewRecorder(f, format, record.NewHeader(version.Tool(), p.Name, checked))
		if err != nil {
			return err
		}
		opts.Observer = rec
	}

	out, err := plan.Execute(cmd.Context(), p, opts)
	if rec != nil {
		if recErr := rec.Err(); recErr != nil && err == nil {
			err = fmt.Errorf("failed to record calls: %w", recErr)
		}
	}
	if err != nil {
		return err
	}
	if expect {
		if err := out.Check(p.Expect); err != nil {
			return err
		}
	}
	if out.Aborted {
		return &exitError{code: out.ExitCode}
	}
	return nil
}

// createLog opens path for a new log after checking its extension. The
// returned closer keeps the first error.
func createLog(path string) (io.Writer, func(*error), error) {
	if _, err := record.FormatForPath(path); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log: %w", err)
	}
	return f, func(errp *error) {
		if cerr := f.Close(); cerr != nil && *errp == nil {
			*errp = fmt.Errorf("failed to close log: %w", cerr)
		}
	}, nil
}
