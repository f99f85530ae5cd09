package main

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/fontguard/affinity"
	"github.com/wippyai/fontguard/backend/opentype"
	"github.com/wippyai/fontguard/config"
	"github.com/wippyai/fontguard/font"
	"github.com/wippyai/fontguard/telemetry"
)

type app struct {
	stdout io.Writer
	stderr io.Writer
	loader font.Loader

	flagConfig   string
	flagAffinity string
	flagLogLevel string
	flagMetrics  bool

	cfg      *config.Config
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *telemetry.Metrics
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		loader: opentype.Loader{},
		log:    zap.NewNop(),
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fontguard",
		Short: "Inspect fonts through thread-affine font faces",
		Long: `fontguard loads fonts through a library whose faces may only be used from
the thread that loaded them, and answers coverage questions about them.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flagConfig, "config", "", "config file (default $HOME/"+config.GlobalConfigDir+"/"+config.GlobalConfigFile+")")
	pf.StringVar(&a.flagAffinity, "affinity", "", "thread identity: goroutine or os_thread")
	pf.StringVar(&a.flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.flagMetrics, "metrics", false, "write guard metrics to stderr on exit")

	root.AddCommand(
		a.infoCommand(),
		a.supportsCommand(),
		a.glyphsCommand(),
		a.probeCommand(),
		a.interactiveCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.LoadOptions{ExplicitPath: a.flagConfig})
	if err != nil {
		return err
	}
	if a.flagAffinity != "" {
		cfg.Affinity = a.flagAffinity
	}
	if a.flagLogLevel != "" {
		cfg.Log.Level = a.flagLogLevel
	}
	if a.flagMetrics {
		cfg.Metrics.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	font.SetLogger(logger.Named("font"))

	reg := prometheus.NewRegistry()
	metrics, err := telemetry.NewMetrics(reg)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.registry = reg
	a.metrics = metrics

	a.log.Debug("config loaded",
		zap.String("command", cmd.Name()),
		zap.String("affinity", cfg.Affinity),
		zap.Bool("filter_non_printable", cfg.FilterNonPrintable))
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	defer func() { _ = a.log.Sync() }()
	if a.cfg != nil && a.cfg.Metrics.Enabled {
		return telemetry.WriteMetrics(a.stderr, a.registry)
	}
	return nil
}

// newLibrary creates a library owned by the calling goroutine. With os_thread
// affinity the caller must have pinned its OS thread first.
func (a *app) newLibrary() *font.Library {
	return font.NewLibrary(a.loader,
		font.WithSource(a.cfg.Source()),
		font.WithObserver(telemetry.LogObserver{Logger: a.log.Named("guard")}, a.metrics),
	)
}

// filterFlag resolves --filter against the configured default.
func (a *app) filterFlag(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("filter") {
		v, _ := cmd.Flags().GetBool("filter")
		return v
	}
	return a.cfg.FilterNonPrintable
}

// withLibrary runs fn on a pinned OS thread with a library owned by it.
func (a *app) withLibrary(fn func(*font.Library) error) error {
	defer affinity.Pin()()
	lib := a.newLibrary()
	err := fn(lib)
	if cerr := lib.Close(); err == nil {
		err = cerr
	}
	return err
}
