package cmd

import (
	"fmt"

	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tokmatch/tokmatch/process"
)

// initCmd: tokmatch init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new rule configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initRulesFile(rulesFile); err != nil {
			logger.Error("Error initializing rules file", zap.Error(err))
			return
		}
		fmt.Printf("Rule file created/updated: %s\n", rulesFile)
	},
}

func initRulesFile(path string) error {
	if path == "" {
		path = "rules.yaml"
	}

	config := process.Config{
		Rules: []process.RuleSpec{
			{
				Name:   "todo",
				Match:  &process.MatchSpec{Value: "TODO"},
				Action: "keep",
			},
		},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}

	return nil
}
