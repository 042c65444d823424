package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "seedclean.dev/pkg/seedclean/internal/model"
)

func TestYAMLReportStore_SaveAndLoad(t *testing.T) {
	store := NewReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), "nested", "reports"))

	reports := []m.CleanReport{
		{
			Path:       "server/seed.ts",
			HashBefore: "aa",
			HashAfter:  "bb",
			LinesIn:    10,
			LinesOut:   8,
			Written:    true,
			Dropped: []m.DroppedLine{
				{Number: 4, Rule: "categories", Text: `    description: "x",`},
				{Number: 9, Rule: "siteContent", Text: `    type: "text",`},
			},
		},
		{Path: "other/seed.ts", HashBefore: "cc", HashAfter: "cc", LinesIn: 3, LinesOut: 3},
	}

	require.NoError(t, store.SaveReports(dir, reports))

	got, err := store.LoadReports(dir)
	require.NoError(t, err)
	assert.Equal(t, reports, got)
}

func TestYAMLReportStore_LoadMissing(t *testing.T) {
	_, err := NewReportStore().LoadReports(m.Path(t.TempDir()))
	assert.ErrorIs(t, err, ErrNoReports)
}

func TestYAMLReportStore_LoadRejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReportFileName), []byte("version: 7\nreports: []\n"), 0o600))

	_, err := NewReportStore().LoadReports(m.Path(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report version 7")
}

func TestYAMLReportStore_LoadRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReportFileName), []byte("reports: [\n"), 0o600))

	_, err := NewReportStore().LoadReports(m.Path(dir))
	require.Error(t, err)
}
