package main

import (
	"github.com/ajitpratap0/coltable/pkg/config"
	"github.com/ajitpratap0/coltable/pkg/logger"
	"github.com/ajitpratap0/coltable/pkg/metrics"
	"github.com/ajitpratap0/coltable/pkg/snapshot"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	configFile  string
	logLevel    string
	showMetrics bool

	cfg      *config.Config
	log      *zap.Logger
	registry *prometheus.Registry
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configFile != "" {
		a.cfg, err = config.Load(a.configFile)
	} else {
		a.cfg, err = config.FromEnv()
	}
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
	}

	logCfg := logger.FromConfig(a.cfg.Logging)
	if err := logger.Init(logCfg); err != nil {
		return err
	}
	a.log = logger.Get().With(zap.String("component", "coltable-cli"), zap.String("command", cmd.Name()))

	if a.showMetrics || a.cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
	}
	return nil
}

// tableOptions configures a table created by the CLI.
func (a *app) tableOptions(name string) []table.Option {
	opts := []table.Option{
		table.WithConfig(a.cfg.Table),
		table.WithLogger(logger.ForTable(name)),
	}
	if a.registry != nil {
		opts = append(opts, table.WithMetrics(metrics.NewCollector(name, metrics.Options{
			Namespace:  a.cfg.Metrics.Namespace,
			Registerer: a.registry,
		})))
	}
	return opts
}

func (a *app) snapshotOptions() (snapshot.Options, error) {
	return snapshot.FromConfig(a.cfg.Snapshot)
}

// finish writes the gathered metrics in the Prometheus text format when
// --metrics or metrics.enabled asked for them.
func (a *app) finish(cmd *cobra.Command) error {
	defer func() { _ = logger.Sync() }()
	if a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), mf); err != nil {
			return err
		}
	}
	return nil
}
