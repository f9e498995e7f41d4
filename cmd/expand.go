package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/osemosys-il/core/driver"
	"github.com/kilianp07/osemosys-il/pkg/export"
)

func newExpandCmd(root *rootOptions) *cobra.Command {
	var (
		all    bool
		outDir string
		report string
	)
	cmd := &cobra.Command{
		Use:   "expand <input.csv> [output.csv] | --all <directory>",
		Short: "Expand wildcard years (*) to explicit year rows",
		Long: `Expand replaces every row whose YEAR is "*" by one row per model year.

Years are read from SETS.csv next to the input (rows with SET=YEAR). When the
file is missing the 2015-2050 horizon is used.`,
		Example: `  osemosys expand CapacityFactor.csv
  osemosys expand CapacityFactor.csv CapacityFactor_expanded.csv
  osemosys expand --all osemosys_israel_data
  osemosys expand --all osemosys_israel_data --out-dir expanded`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				if len(args) != 1 {
					return fmt.Errorf("--all requires exactly one directory")
				}
				return nil
			}
			if outDir != "" || report != "" {
				return fmt.Errorf("--out-dir and --report are only valid with --all")
			}
			return cobra.RangeArgs(1, 2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := root.service()
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.Close(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "flush metrics: %v\n", err)
				}
			}()

			out := cmd.OutOrStdout()
			if all {
				sum, err := svc.ExpandDir(ctx, args[0], outDir)
				for _, f := range sum.Files {
					status := "unchanged"
					switch {
					case f.Err != nil:
						status = "failed"
					case f.Expansion.Changed():
						status = "expanded"
					}
					fmt.Fprintf(out, "%-10s %s (%d -> %d rows)\n", status, filepath.Base(f.Input), f.Expansion.Input, f.Expansion.Output)
				}
				if report != "" && sum.RunID != "" {
					if rerr := writeReport(report, sum); rerr != nil {
						return errors.Join(err, rerr)
					}
				}
				return err
			}

			var target string
			if len(args) == 2 {
				target = args[1]
			}
			res, err := svc.ExpandFile(ctx, args[0], target)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d wildcard rows, %d -> %d rows, saved to %s\n",
				filepath.Base(res.Input), res.Expansion.Wildcards, res.Expansion.Input, res.Expansion.Output, res.Output)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "expand every CSV file in the given directory")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "write expanded directory to this path instead of in place")
	cmd.Flags().StringVar(&report, "report", "", "write a run report (.json or .csv)")
	return cmd
}

func writeReport(path string, sum driver.RunSummary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return export.WriteCSV(f, sum)
	}
	return export.WriteJSON(f, sum)
}
