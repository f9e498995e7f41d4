package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/osemosys-il/core/summary"
)

func newSummaryCmd(root *rootOptions) *cobra.Command {
	var valueCol string
	cmd := &cobra.Command{
		Use:   "summary <file.csv|directory>",
		Short: "Show row counts and value statistics of parameter tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := root.service()
			if err != nil {
				return err
			}
			exp := svc.Config().Expand
			files, err := summaryTargets(args[0], exp.Pattern, exp.SetsFile)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tROWS\tWILDCARDS\tYEARS\tMIN\tMAX\tMEAN\tSTDDEV")
			for _, f := range files {
				t, err := svc.Store.Read(f)
				if err != nil {
					return err
				}
				st, err := summary.Summarize(t, valueCol, exp.YearColumn, exp.Wildcard)
				if err != nil {
					fmt.Fprintf(tw, "%s\t%d\t-\t-\t-\t-\t-\t-\n", filepath.Base(f), len(t.Rows))
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%.4g\t%.4g\t%.4g\t%.4g\n",
					filepath.Base(f), st.Rows, st.Wildcards, st.Years, st.Min, st.Max, st.Mean, st.StdDev)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&valueCol, "value-column", summary.DefaultValueColumn, "column holding parameter values")
	return cmd
}

// summaryTargets lists the tables to summarize. In a directory the reference
// sets file is left out, as in expand --all.
func summaryTargets(path, pattern, setsFile string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	matches, err := filepath.Glob(filepath.Join(path, pattern))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, f := range matches {
		if filepath.Base(f) == setsFile {
			continue
		}
		if fi, err := os.Stat(f); err == nil && fi.IsDir() {
			continue
		}
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}
