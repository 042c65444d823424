package controller

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "seedclean.dev/pkg/seedclean/internal/model"
)

// Header box (3) + blank, blank + summary + help.
const reservedLines = 7

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 2)
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	numberStyle = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for browsing saved reports.
// Clean and check runs print through the embedded SimpleUI.
type TUI struct {
	*SimpleUI
	reports []m.CleanReport
}

// NewTUI creates a new TUI writing to cmd's output.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd, true)}
}

// Start initializes the UI and drops reports from a previous run.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	t.reports = nil
	return t.SimpleUI.Start(ctx, options...)
}

// DisplayCleanResult queues the report for the pager in view mode.
func (t *TUI) DisplayCleanResult(ctx context.Context, report m.CleanReport) {
	if t.mode != ModeView {
		t.SimpleUI.DisplayCleanResult(ctx, report)
		return
	}

	if ctx.Err() != nil {
		return
	}

	t.reports = append(t.reports, report)
}

// DisplaySummary prints the summary table outside view mode. The pager
// carries its own totals.
func (t *TUI) DisplaySummary(ctx context.Context, reports []m.CleanReport) {
	if t.mode != ModeView {
		t.SimpleUI.DisplaySummary(ctx, reports)
	}
}

// Close shows the queued reports in view mode.
func (t *TUI) Close(ctx context.Context) {
	if t.mode != ModeView || ctx.Err() != nil {
		t.SimpleUI.Close(ctx)
		return
	}

	if err := t.showReports(ctx); err != nil {
		slog.Error("failed to display reports", "error", err)
	}
}

func (t *TUI) showReports(ctx context.Context) error {
	output := t.cmd.OutOrStdout()
	model := newReportsModel(t.reports)

	if f, ok := output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	// If everything fits, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

type reportKeyMap struct {
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

func defaultReportKeyMap() reportKeyMap {
	return reportKeyMap{
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k reportKeyMap) help() string {
	parts := []string{"↑/k: up", "↓/j: down", "pgup/pgdown: page"}
	for _, b := range []key.Binding{k.Top, k.Bottom, k.Quit} {
		parts = append(parts, b.Help().Key+": "+b.Help().Desc)
	}

	return strings.Join(parts, " | ")
}

// reportsModel pages through saved reports and their dropped lines.
type reportsModel struct {
	reports  []m.CleanReport
	lines    []string
	viewport viewport.Model
	keys     reportKeyMap
	height   int
	width    int
	quitting bool
}

func newReportsModel(reports []m.CleanReport) reportsModel {
	rm := reportsModel{
		reports:  reports,
		lines:    buildReportLines(reports),
		viewport: viewport.New(0, 0),
		keys:     defaultReportKeyMap(),
	}

	rm.viewport.SetContent(strings.Join(rm.lines, "\n"))

	return rm
}

func buildReportLines(reports []m.CleanReport) []string {
	lines := []string{}

	for _, report := range reports {
		verb := "removed"
		if report.DryRun {
			verb = "would be removed"
		}

		lines = append(lines, fmt.Sprintf("  %s: %d line(s) %s (%d -> %d)",
			report.Path, len(report.Dropped), verb, report.LinesIn, report.LinesOut))

		for _, d := range report.Dropped {
			lines = append(lines, fmt.Sprintf("    %s %s %s",
				numberStyle.Render(fmt.Sprintf("%4d", d.Number)), ruleStyle.Render("["+d.Rule+"]"), d.Text))
		}
	}

	return lines
}

func (rm reportsModel) Init() tea.Cmd {
	return nil
}

func (rm reportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return rm.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, rm.keys.Quit):
			rm.quitting = true
			return rm, tea.Quit
		case key.Matches(msg, rm.keys.Top):
			rm.viewport.GotoTop()
			return rm, nil
		case key.Matches(msg, rm.keys.Bottom):
			rm.viewport.GotoBottom()
			return rm, nil
		}
	}

	var cmd tea.Cmd
	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

func (rm reportsModel) resize(width, height int) reportsModel {
	rm.width = width
	rm.height = height
	rm.viewport.Width = width
	rm.viewport.Height = max(height-reservedLines, 1)

	return rm
}

func (rm reportsModel) needsPagination() bool {
	if len(rm.reports) == 0 || rm.height == 0 {
		return false
	}

	return len(rm.lines) > rm.height-reservedLines
}

func (rm reportsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("seedclean reports"))
	b.WriteString("\n\n")

	if len(rm.reports) == 0 {
		b.WriteString("  No reports found\n")
		return b.String()
	}

	paginated := rm.needsPagination()
	if paginated {
		b.WriteString(rm.viewport.View())
	} else {
		b.WriteString(strings.Join(rm.lines, "\n"))
	}

	b.WriteString("\n\n")
	rm.writeSummary(&b)

	if paginated {
		fmt.Fprintf(&b, "  %3.f%% | %s\n", rm.viewport.ScrollPercent()*100, rm.keys.help())
	}

	return b.String()
}

func (rm reportsModel) writeSummary(b *strings.Builder) {
	removed := 0
	for _, report := range rm.reports {
		removed += len(report.Dropped)
	}

	fmt.Fprintf(b, "  Total: %d file(s) | %d line(s) dropped\n", len(rm.reports), removed)
}
