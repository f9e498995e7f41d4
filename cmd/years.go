package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newYearsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "years [directory]",
		Short: "Print the model years used to expand a data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			svc, err := root.service()
			if err != nil {
				return err
			}
			ys, src, err := svc.Years.Resolve(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d years, source: %s)\n", ys, ys.Len(), src)
			return nil
		},
	}
}
