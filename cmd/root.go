package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rulesFile string
	timeout   time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "tokmatch",
	Short:            "tokmatch - a token-level grammar matching and rewriting tool",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'tokmatch' is entered
			_ = cmd.Help()
			return
		}
		// Format: tokmatch [path1 path2 ...] => behaves like the match subcommand
		matchCmd.Run(matchCmd, args)
	},
}

func Execute() error {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rulesFile, "rules", "r", "rules.yaml", "Path to the rule configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Set a timeout for processing")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(initCmd)
}
