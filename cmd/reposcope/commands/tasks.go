package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/optqo/reposcope/pkg/analyzers"
	"github.com/optqo/reposcope/pkg/task"
)

// NewTasksCommand creates the tasks listing command.
func NewTasksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the available tasks and bundles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := analyzers.DefaultRegistry()

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"Task", "Phase", "Description"})

			for _, descriptor := range registry.All() {
				tw.AppendRow(table.Row{descriptor.ID, descriptor.Phase, descriptor.Description})
			}

			tw.Render()

			bw := table.NewWriter()
			bw.SetOutputMirror(cmd.OutOrStdout())
			bw.SetStyle(table.StyleLight)
			bw.AppendHeader(table.Row{"Bundle", "Tasks"})

			for _, name := range task.BundleNames() {
				descriptors, err := registry.Bundle(name)
				if err != nil {
					return err
				}

				ids := make([]string, 0, len(descriptors))
				for _, descriptor := range descriptors {
					ids = append(ids, descriptor.ID)
				}

				bw.AppendRow(table.Row{name, strings.Join(ids, ", ")})
			}

			bw.Render()

			return nil
		},
	}
}
