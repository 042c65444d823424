// Package cmd provides the root command and CLI setup for seedclean.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seedclean.dev/pkg/seedclean/internal/adapter"
	"seedclean.dev/pkg/seedclean/internal/controller"
	"seedclean.dev/pkg/seedclean/internal/domain"
	m "seedclean.dev/pkg/seedclean/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

var (
	reportsOutputDirFlag string
	reportFlag           bool
	verboseFlag          bool
	logFileFlag          string
)

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui)
}

const rootLongDescription = `Seedclean strips fields from the seed data arrays of a TypeScript seed file.

Inside "const categories" it removes description: lines, inside "const services"
longDescription: lines and inside "const siteContentItems" type: lines. Every
other line is written back unchanged.

Run without arguments to clean the configured seed file (default: ` + defaultSeedPath + `).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seedclean",
		Short: "Strip stale fields from seed data arrays",
		Long:  rootLongDescription,
		Args:  cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := buildCleanArgs(nil, false, false)
			if err != nil {
				return err
			}

			return workflow.Clean(cmd.Context(), args)
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"directory for clean reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&reportFlag, reportFlagName, viper.GetBool(reportFlagName), "save a report of removed lines to the output directory")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reportFlagName), reportFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (default from log.filename)")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// buildCleanArgs resolves paths, rules and write options from flags and config.
// With no paths the configured seed file is cleaned.
func buildCleanArgs(args []string, dryRun, showDiff bool) (domain.CleanArgs, error) {
	rules, err := loadRuleSet()
	if err != nil {
		return domain.CleanArgs{}, err
	}

	paths := parsePaths(args)
	if len(paths) == 0 {
		paths = []m.Path{m.Path(viper.GetString(pathKey))}
	}

	var reports m.Path
	if viper.GetBool(reportFlagName) {
		reports = m.Path(viper.GetString(outputFlagName))
	}

	return domain.CleanArgs{
		Paths:    paths,
		Rules:    rules,
		DryRun:   dryRun,
		ShowDiff: showDiff,
		Atomic:   viper.GetBool(cleanAtomicKey),
		Threads:  viper.GetInt(cleanParallelKey),
		Reports:  reports,
	}, nil
}
