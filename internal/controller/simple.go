package controller

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "seedclean.dev/pkg/seedclean/internal/model"
)

const diffContextLines = 3

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
	mode  StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := StartConfig{mode: ModeClean}
	for _, opt := range options {
		opt(&cfg)
	}

	s.mode = cfg.mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayCleanResult prints the confirmation line for one file.
func (s *SimpleUI) DisplayCleanResult(ctx context.Context, report m.CleanReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	name := filepath.Base(string(report.Path))

	switch {
	case s.mode == ModeView && report.DryRun:
		s.printf("%s: %d line(s) would be removed (dry run)\n", report.Path, len(report.Dropped))
	case s.mode == ModeView:
		s.printf("%s: %d line(s) removed\n", report.Path, len(report.Dropped))
	case report.DryRun && report.Changed():
		s.printf("Would clean %s (%d line(s))\n", name, len(report.Dropped))
	case report.DryRun:
		s.printf("%s is clean\n", name)
	default:
		s.printf("Cleaned %s\n", name)
	}
}

// DisplayDiff prints a unified diff between before and after.
func (s *SimpleUI) DisplayDiff(ctx context.Context, path m.Path, before, after []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text, err := renderDiff(path, before, after)
	if err != nil {
		return fmt.Errorf("render diff: %w", err)
	}

	if text == "" {
		return nil
	}

	if s.color {
		text = colorizeDiff(text)
	}

	s.printf("%s", text)

	return nil
}

func renderDiff(path m.Path, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + string(path),
		ToFile:   "b/" + string(path),
		Context:  diffContextLines,
	})
}

func colorizeDiff(text string) string {
	lines := strings.SplitAfter(text, "\n")

	var b strings.Builder

	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]

		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			body = headerStyle.Render(body)
		case strings.HasPrefix(body, "@@"):
			body = hunkStyle.Render(body)
		case strings.HasPrefix(body, "+"):
			body = addedStyle.Render(body)
		case strings.HasPrefix(body, "-"):
			body = removedStyle.Render(body)
		}

		b.WriteString(body)
		b.WriteString(nl)
	}

	return b.String()
}

// DisplaySummary prints a table of dropped line counts per file and rule.
func (s *SimpleUI) DisplaySummary(ctx context.Context, reports []m.CleanReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(reports) == 0 {
		return
	}

	s.printf("\n%s", renderSummaryTable(reports))
}

func renderSummaryTable(reports []m.CleanReport) string {
	rules := ruleNames(reports)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(append(append([]string{"Path"}, rules...), "Removed", "Lines"))
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)

	alignments := []int{tablewriter.ALIGN_LEFT}
	for range rules {
		alignments = append(alignments, tablewriter.ALIGN_CENTER)
	}

	table.SetColumnAlignment(append(alignments, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER))

	totals := make(map[string]int)
	totalRemoved := 0

	for _, report := range reports {
		counts := report.DroppedByRule()
		row := []string{string(report.Path)}

		for _, rule := range rules {
			row = append(row, fmt.Sprintf("%d", counts[rule]))
			totals[rule] += counts[rule]
		}

		row = append(row,
			fmt.Sprintf("%d", len(report.Dropped)),
			fmt.Sprintf("%d -> %d", report.LinesIn, report.LinesOut),
		)
		table.Append(row)

		totalRemoved += len(report.Dropped)
	}

	footer := []string{fmt.Sprintf("Total Files %d", len(reports))}
	for _, rule := range rules {
		footer = append(footer, fmt.Sprintf("%d", totals[rule]))
	}

	table.SetFooter(append(footer, fmt.Sprintf("%d", totalRemoved), ""))
	table.Render()

	return tableBuffer.String()
}

func ruleNames(reports []m.CleanReport) []string {
	seen := make(map[string]struct{})

	var names []string

	for _, report := range reports {
		for _, d := range report.Dropped {
			if _, ok := seen[d.Rule]; ok {
				continue
			}

			seen[d.Rule] = struct{}{}
			names = append(names, d.Rule)
		}
	}

	sort.Strings(names)

	return names
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
