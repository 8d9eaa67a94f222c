package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sikort/internal/plan"
	"sikort/internal/record"
)

var replayCmd = &cobra.Command{
	Use:   "replay [flags] <plan> <log>",
	Short: "Re-execute a plan and compare its calls against a recorded log",
	Args:  cobra.ExactArgs(2),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().Bool("show-output", false, "print the plan's output while replaying")
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	showOutput, err := cmd.Flags().GetBool("show-output")
	if err != nil {
		return fmt.Errorf("failed to get show-output flag: %w", err)
	}

	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	log, err := readLog(args[1])
	if err != nil {
		return err
	}

	replayer := record.NewReplayer(log)
	opts := plan.Options{Checked: log.Header.Checked, Observer: replayer}
	if showOutput {
		opts.Sink = cmd.OutOrStdout()
	}
	if _, err := plan.Execute(cmd.Context(), p, opts); err != nil {
		dumpRing(cmd)
		return err
	}
	if err := replayer.Err(); err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}
	if !s.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "replay ok: %d events match run %s\n", len(log.Events), log.Header.RunID)
	}
	return nil
}

func readLog(path string) (*record.Log, error) {
	format, err := record.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer f.Close()
	log, err := record.Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return log, nil
}
