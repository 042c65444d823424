package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seedclean.dev/pkg/seedclean/internal/domain"
	m "seedclean.dev/pkg/seedclean/internal/model"
)

func TestViewCmd_UsesRootOutputFlagByDefault(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t)

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path(defaultReportsDir)
	})).Return(nil)

	cmd.SetArgs([]string{"view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_RootOutputFlagIsPassedThrough(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t)

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path("./reports-dir")
	})).Return(nil)

	cmd.SetArgs([]string{"view", "--output", "./reports-dir"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_PositionalArgsAreRejected(t *testing.T) {
	cmd, _, _ := newTestRootCmd(t)

	cmd.SetArgs([]string{"view", "./custom-reports"})
	require.Error(t, cmd.Execute())
}
