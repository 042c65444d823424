package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "seedclean.dev/pkg/seedclean/internal/model"
)

// ReportFileName is the file written inside the reports directory.
const ReportFileName = "seedclean-report.yaml"

// ErrNoReports is returned by LoadReports when nothing was saved yet.
var ErrNoReports = errors.New("no saved reports")

// ReportStore persists clean reports between runs.
type ReportStore interface {
	SaveReports(dir m.Path, reports []m.CleanReport) error
	LoadReports(dir m.Path) ([]m.CleanReport, error)
}

type reportFile struct {
	Version int             `yaml:"version"`
	Reports []m.CleanReport `yaml:"reports"`
}

const reportFileVersion = 1

// YAMLReportStore stores reports as a single YAML document.
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReports writes reports to dir, replacing any previous report.
func (s *YAMLReportStore) SaveReports(dir m.Path, reports []m.CleanReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(reportFile{Version: reportFileVersion, Reports: reports})
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	path := filepath.Join(string(dir), ReportFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	slog.Debug("saved reports", "path", path, "count", len(reports))

	return nil
}

// LoadReports reads the reports saved in dir.
func (s *YAMLReportStore) LoadReports(dir m.Path) ([]m.CleanReport, error) {
	path := filepath.Join(string(dir), ReportFileName)

	// #nosec G304 - path is inside the configured reports dir
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNoReports, dir)
		}

		return nil, fmt.Errorf("read reports: %w", err)
	}

	var file reportFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode reports %s: %w", path, err)
	}

	if file.Version != reportFileVersion {
		return nil, fmt.Errorf("unsupported report version %d in %s", file.Version, path)
	}

	return file.Reports, nil
}
