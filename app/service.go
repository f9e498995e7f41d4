package app

import (
	"context"
	"fmt"

	"github.com/kilianp07/osemosys-il/config"
	"github.com/kilianp07/osemosys-il/core/driver"
	coremetrics "github.com/kilianp07/osemosys-il/core/metrics"
	"github.com/kilianp07/osemosys-il/core/model"
	"github.com/kilianp07/osemosys-il/core/years"
	"github.com/kilianp07/osemosys-il/infra/logger"
	_ "github.com/kilianp07/osemosys-il/infra/metrics"
	"github.com/kilianp07/osemosys-il/infra/tabular"
)

// Options carries command line overrides of the configuration.
type Options struct {
	// Years replaces the reference table, e.g. "2015-2030" or "2015,2020".
	Years string
}

// Service wires the table store, year resolution, metrics and the driver.
type Service struct {
	Driver *driver.Driver
	Years  years.Resolver
	Store  model.TableStore
	cfg    *config.Config
	log    logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts Options) (*Service, error) {
	logg := logger.New("expand")
	store := tabular.FileStore{}

	resolver, err := newResolver(cfg.Expand, opts, store)
	if err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	d := driver.New(store, cfg.Expand.Expander(), resolver, sink, logg)
	d.Pattern = cfg.Expand.Pattern
	d.SetsFile = cfg.Expand.SetsFile
	return &Service{Driver: d, Years: resolver, Store: store, cfg: cfg, log: logg}, nil
}

func newResolver(cfg config.ExpandConfig, opts Options, store model.TableReader) (years.Resolver, error) {
	if opts.Years != "" {
		ys, err := model.ParseYearSet(opts.Years)
		if err != nil {
			return nil, err
		}
		return years.Fixed{Years: ys}, nil
	}
	if cfg.Years.IsSet() {
		return years.Fixed{Years: cfg.Years.Set()}, nil
	}
	l := years.NewLoader(store, logger.New("years"))
	l.SetsFile = cfg.SetsFile
	l.Default = cfg.Default.Set()
	return l, nil
}

// Config returns the configuration the service was built from.
func (s *Service) Config() *config.Config { return s.cfg }

// ExpandFile runs single-file mode.
func (s *Service) ExpandFile(ctx context.Context, in, out string) (driver.FileResult, error) {
	return s.Driver.ExpandFile(ctx, in, out)
}

// ExpandDir runs directory mode.
func (s *Service) ExpandDir(ctx context.Context, dir, outDir string) (driver.RunSummary, error) {
	sum, err := s.Driver.ExpandDir(ctx, dir, outDir)
	if err == nil {
		s.log.Infof("processed %d files, %d rows written", len(sum.Files), sum.RowsOut())
	}
	return sum, err
}

// Close flushes metrics sinks.
func (s *Service) Close() error {
	return s.Driver.Close()
}
