package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List the helper and test files of a suite directory",
		Long:  "Show which files the loader would source, in load order, without running anything.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := nameFilter()
			if err != nil {
				return err
			}

			helpers, tests, err := loader.Discover(suiteDir(args), filter)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Order", "Kind", "Path"})
			table.SetBorder(false)
			table.SetCenterSeparator("")

			order := 1

			for _, path := range helpers {
				table.Append([]string{fmt.Sprintf("%d", order), "helper", string(path)})
				order++
			}

			for _, path := range tests {
				table.Append([]string{fmt.Sprintf("%d", order), "test", string(path)})
				order++
			}

			table.SetFooter([]string{
				"",
				fmt.Sprintf("%d helper(s)", len(helpers)),
				fmt.Sprintf("%d test file(s)", len(tests)),
			})

			table.Render()

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
