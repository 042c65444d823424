package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cleanLongDescription = `Clean the given seed files in place (default: the configured seed file).

Every file is read completely before it is rewritten. Files without removable
lines are left untouched.`

var (
	cleanDryRunFlag   bool
	cleanDiffFlag     bool
	cleanAtomicFlag   bool
	cleanParallelFlag int
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [paths...]",
		Short: "Remove stale fields from seed files",
		Long:  cleanLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleanArgs, err := buildCleanArgs(args, cleanDryRunFlag, cleanDiffFlag)
			if err != nil {
				return err
			}

			return workflow.Clean(cmd.Context(), cleanArgs)
		},
	}

	configureCleanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func configureCleanFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&cleanDryRunFlag, dryRunFlagName, "n", false, "report removable lines without writing")
	cmd.Flags().BoolVarP(&cleanDiffFlag, diffFlagName, "d", false, "print a unified diff of each change")

	cmd.Flags().BoolVar(&cleanAtomicFlag, atomicFlagName, viper.GetBool(cleanAtomicKey), "write through a temp file and rename it over the original")
	bindFlagToConfig(cmd.Flags().Lookup(atomicFlagName), cleanAtomicKey)

	cmd.Flags().IntVarP(&cleanParallelFlag, parallelFlagName, "p", viper.GetInt(cleanParallelKey), "number of files cleaned concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), cleanParallelKey)
}
