package cmd

import (
	"github.com/spf13/cobra"
)

var checkDiffFlag bool

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "check [paths...]",
		Short:        "Fail if seed files still contain removable lines",
		Long:         "Report removable lines without writing and exit with status 1 when any file would change.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleanArgs, err := buildCleanArgs(args, true, checkDiffFlag)
			if err != nil {
				return err
			}

			return workflow.Check(cmd.Context(), cleanArgs)
		},
	}

	cmd.Flags().BoolVarP(&checkDiffFlag, diffFlagName, "d", false, "print a unified diff of pending changes")

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
