package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adidahl/techlingo-agent-framework/internal/runs"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List generation runs in the outputs directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputs := resolveOutputs(cmd)
		rs, err := runs.List(outputs)
		if err != nil {
			return err
		}
		if len(rs) == 0 {
			fmt.Println("No runs found in", outputs)
			return nil
		}
		for _, r := range rs {
			marker := " "
			if !r.HasCourse() {
				marker = "!"
			}
			fmt.Printf("%s %s  %s\n", marker, r.ID, r.ModTime.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}
