// Package domain holds the line filter and the workflow that applies it to files.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"seedclean.dev/pkg/seedclean/internal/adapter"
	"seedclean.dev/pkg/seedclean/internal/controller"
	m "seedclean.dev/pkg/seedclean/internal/model"
)

// ErrChangesPending is returned by Check when a file would be modified.
var ErrChangesPending = errors.New("seed files need cleaning")

// CleanArgs contains the arguments for cleaning seed files.
type CleanArgs struct {
	Paths    []m.Path
	Rules    m.RuleSet
	DryRun   bool
	ShowDiff bool
	Atomic   bool
	Threads  int
	Reports  m.Path // empty disables report persistence
}

// ViewArgs contains the arguments for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the seed cleaning workflow.
type Workflow interface {
	Clean(ctx context.Context, args CleanArgs) error
	Check(ctx context.Context, args CleanArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	ui controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		ui:              ui,
	}
}

func (w *workflow) Clean(ctx context.Context, args CleanArgs) error {
	mode := controller.WithCleanMode()
	if args.DryRun {
		mode = controller.WithCheckMode()
	}

	_, err := w.run(ctx, args, mode)

	return err
}

func (w *workflow) Check(ctx context.Context, args CleanArgs) error {
	args.DryRun = true

	reports, err := w.run(ctx, args, controller.WithCheckMode())
	if err != nil {
		return err
	}

	for _, report := range reports {
		if report.Changed() {
			return fmt.Errorf("%w: %s", ErrChangesPending, report.Path)
		}
	}

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.ui.Start(ctx, controller.WithViewMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close(ctx)

	for _, report := range reports {
		w.ui.DisplayCleanResult(ctx, report)
	}

	w.ui.DisplaySummary(ctx, reports)

	return nil
}

func (w *workflow) run(ctx context.Context, args CleanArgs, mode controller.StartOption) ([]m.CleanReport, error) {
	if len(args.Paths) == 0 {
		return nil, errors.New("no paths to clean")
	}

	if err := ValidateRuleSet(args.Rules); err != nil {
		return nil, err
	}

	if err := w.ui.Start(ctx, mode); err != nil {
		return nil, fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close(ctx)

	outcomes, err := w.cleanAll(ctx, args)
	if err != nil {
		return nil, err
	}

	reports := make([]m.CleanReport, 0, len(outcomes))

	for _, outcome := range outcomes {
		w.ui.DisplayCleanResult(ctx, outcome.report)

		if args.ShowDiff && outcome.report.Changed() {
			if err := w.ui.DisplayDiff(ctx, outcome.report.Path, outcome.before, outcome.after); err != nil {
				return nil, err
			}
		}

		reports = append(reports, outcome.report)
	}

	if len(reports) > 1 {
		w.ui.DisplaySummary(ctx, reports)
	}

	// Dry runs never replace the last real clean report.
	if args.Reports != "" && !args.DryRun {
		if err := w.SaveReports(args.Reports, reports); err != nil {
			return nil, fmt.Errorf("save reports: %w", err)
		}
	}

	return reports, nil
}

type cleanOutcome struct {
	report m.CleanReport
	before []byte
	after  []byte
}

// cleanAll cleans every path with at most args.Threads files in flight.
// Outcomes are returned in input order.
func (w *workflow) cleanAll(ctx context.Context, args CleanArgs) ([]cleanOutcome, error) {
	outcomes := make([]cleanOutcome, len(args.Paths))

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(args.Threads)
	}

	for i, path := range args.Paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			outcome, err := w.cleanFile(path, args)
			if err != nil {
				return err
			}

			outcomes[i] = outcome

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// loadSource reads path completely and splits it into lines.
func (w *workflow) loadSource(path m.Path) (m.SourceFile, []byte, error) {
	content, err := w.ReadFile(path)
	if err != nil {
		return m.SourceFile{}, nil, fmt.Errorf("read seed file: %w", err)
	}

	return m.SourceFile{Path: path, Hash: w.HashContent(content), Lines: SplitLines(content)}, content, nil
}

// cleanFile reads path fully, filters it and, unless nothing changed or this
// is a dry run, writes the result back.
func (w *workflow) cleanFile(path m.Path, args CleanArgs) (cleanOutcome, error) {
	info, err := w.FileInfo(path)
	if err != nil {
		return cleanOutcome{}, fmt.Errorf("stat seed file: %w", err)
	}

	source, before, err := w.loadSource(path)
	if err != nil {
		return cleanOutcome{}, err
	}

	result := FilterLines(args.Rules, source.Lines)
	after := JoinLines(result.Kept)

	report := m.CleanReport{
		Path:       path,
		HashBefore: source.Hash,
		HashAfter:  source.Hash,
		LinesIn:    len(source.Lines),
		LinesOut:   len(result.Kept),
		Dropped:    result.Dropped,
		DryRun:     args.DryRun,
	}

	slog.Debug("filtered seed file", "path", path, "lines", len(source.Lines), "dropped", len(result.Dropped))

	if args.DryRun || !report.Changed() {
		return cleanOutcome{report: report, before: before, after: after}, nil
	}

	write := w.WriteFile
	if args.Atomic {
		write = w.WriteFileAtomic
	}

	if err := write(path, after, info.Mode().Perm()); err != nil {
		slog.Error("failed to write seed file", "path", path, "error", err)
		return cleanOutcome{}, fmt.Errorf("write seed file: %w", err)
	}

	report.Written = true
	report.HashAfter = w.HashContent(after)

	slog.Info("cleaned seed file", "path", path, "dropped", len(result.Dropped), "atomic", args.Atomic)

	return cleanOutcome{report: report, before: before, after: after}, nil
}
