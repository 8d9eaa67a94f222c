package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sikort/internal/abi"
	"sikort/internal/version"
)

var abiCmd = &cobra.Command{
	Use:   "abi [flags]",
	Short: "Print the value representation and calling convention",
	Long: `Print the layout of the four primitive types and the signature of every
runtime operation for a target. The header format is the C declaration
generated code includes.`,
	Args: cobra.NoArgs,
	RunE: runABI,
}

func init() {
	abiCmd.Flags().String("target", "", "target triple (default x86_64-linux-gnu)")
	abiCmd.Flags().String("format", "table", "output format (table|header|json)")
}

func runABI(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	triple, err := stringSetting(cmd, "target", s.cfg.ABI.Target)
	if err != nil {
		return err
	}
	target, err := abi.LookupTarget(triple)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "table":
		return renderABITable(out, target)
	case "header":
		return abi.WriteHeader(out, target)
	case "json":
		return renderABIJSON(out, target)
	default:
		return fmt.Errorf("unsupported format %q (must be table, header or json)", format)
	}
}

type abiPayload struct {
	ABIVersion int `json:"abi_version"`
	abi.Contract
}

func renderABIJSON(out io.Writer, target abi.Target) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(abiPayload{ABIVersion: version.ABIVersion, Contract: abi.Describe(target)})
}

func renderABITable(out io.Writer, target abi.Target) error {
	c := abi.Describe(target)
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintf(out, "types (%s, abi v%d)\n", c.Target, version.ABIVersion)
	types := table.New().Border(lipgloss.NormalBorder()).Headers("type", "c type", "size", "align", "offsets")
	for _, t := range c.Types {
		types.Row(t.Name, t.CType, strconv.Itoa(t.Size), strconv.Itoa(t.Align), joinInts(t.FieldOffsets))
	}
	if _, err := fmt.Fprintln(out, types.Render()); err != nil {
		return err
	}

	heading.Fprintln(out, "operations")
	ops := table.New().Border(lipgloss.NormalBorder()).Headers("symbol", "alias", "signature", "notes")
	for _, op := range c.Ops {
		ops.Row(op.Symbol, op.Alias, signature(op), opNotes(op))
	}
	_, err := fmt.Fprintln(out, ops.Render())
	return err
}

func signature(op abi.OpInfo) string {
	if len(op.Params) == 0 {
		return "()"
	}
	parts := make([]string, len(op.Params))
	for i, p := range op.Params {
		parts[i] = fmt.Sprintf("%s %s:%s", p.Mode, p.Name, p.Type)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func opNotes(op abi.OpInfo) string {
	if op.NoReturn {
		return "no return; " + op.Doc
	}
	return op.Doc
}

func joinInts(vs []int) string {
	if len(vs) == 0 {
		return "-"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
