package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"seedclean.dev/pkg/seedclean/internal/domain"
	m "seedclean.dev/pkg/seedclean/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the last saved clean report",
		Long:  "View the clean report saved by a previous run with --report.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
