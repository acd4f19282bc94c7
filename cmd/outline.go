package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adidahl/techlingo-agent-framework/internal/course"
	"github.com/adidahl/techlingo-agent-framework/internal/runs"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <run-id>",
	Short: "Print the markdown outline of a run's course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputs := resolveOutputs(cmd)
		rs, err := runs.List(outputs)
		if err != nil {
			return err
		}
		for _, r := range rs {
			if r.ID != args[0] {
				continue
			}
			c, err := runs.LoadCourse(r)
			if err != nil {
				return err
			}
			fmt.Print(course.MarkdownOutline(c))
			return nil
		}
		return fmt.Errorf("run %s not found in %s", args[0], outputs)
	},
}
