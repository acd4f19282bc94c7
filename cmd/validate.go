package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adidahl/techlingo-agent-framework/internal/workflow"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.json>",
	Short: "Check a workflow config file",
	Long: "Parses the config against the workflow schema and checks that the\n" +
		"blooms and question type distributions sum to exercises_per_lesson.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		cfg, err := workflow.Parse(data)
		if err != nil {
			return err
		}
		fmt.Printf("%s is valid: %d modules, %d exercises/lesson\n",
			args[0], cfg.ModulesCount, cfg.ExercisesPerLesson)
		return nil
	},
}
