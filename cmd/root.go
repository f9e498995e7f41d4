package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/osemosys-il/app"
	"github.com/kilianp07/osemosys-il/config"
	"github.com/kilianp07/osemosys-il/infra/logger"
)

// defaultConfigPath is read when present; its absence is not an error.
const defaultConfigPath = "osemosys.yaml"

type rootOptions struct {
	cfgPath string
	years   string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "osemosys",
		Short:         "Prepare OSeMOSYS parameter tables for the Israel energy model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.cfgPath, cmd.Flags().Changed("config"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logger.SetLevel(cfg.Logging.Level); err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", defaultConfigPath, "configuration file")
	root.PersistentFlags().StringVar(&opts.years, "years", "", `model years overriding SETS.csv, e.g. "2015-2050" or "2015,2020"`)

	root.AddCommand(newExpandCmd(opts), newYearsCmd(opts), newSummaryCmd(opts))
	return root
}

func loadConfig(path string, explicit bool) (*config.Config, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Load("")
		}
	}
	return config.Load(path)
}

func (o *rootOptions) service() (*app.Service, error) {
	return app.New(o.cfg, app.Options{Years: o.years})
}

// Execute runs the CLI.
func Execute() error { return newRootCmd().Execute() }
