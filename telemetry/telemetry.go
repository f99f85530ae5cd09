// Package telemetry turns guard events into logs and metrics.
package telemetry

import (
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/wippyai/fontguard/affinity"
	"github.com/wippyai/fontguard/errors"
)

// NewLogger builds a zap logger writing to stderr.
// format is "console" (development encoder) or "json" (production encoder).
func NewLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, errors.InvalidInput(errors.PhaseConfig, "unknown log format %q", format)
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// LogObserver logs guard events. Violations are logged at Warn with both
// thread identities, everything else at Debug.
type LogObserver struct {
	Logger *zap.Logger
}

var _ affinity.Observer = LogObserver{}

// OnGuardEvent implements affinity.Observer.
func (o LogObserver) OnGuardEvent(e affinity.Event) {
	if o.Logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("resource", e.Label),
		zap.String("source", e.Source),
		zap.Uint64("owner", uint64(e.Owner)),
	}
	if e.Type == affinity.EventViolation {
		o.Logger.Warn("thread affinity violation", append(fields, zap.Uint64("caller", uint64(e.Caller)))...)
		return
	}
	o.Logger.Debug("guard "+e.Type.String(), fields...)
}

// Metrics counts guard events per resource label.
type Metrics struct {
	created    *prometheus.CounterVec
	released   *prometheus.CounterVec
	violations *prometheus.CounterVec
}

var _ affinity.Observer = (*Metrics)(nil)

// NewMetrics creates the guard counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fontguard",
			Name:      "guards_created_total",
			Help:      "Thread-affine guards created.",
		}, []string{"resource"}),
		released: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fontguard",
			Name:      "guards_released_total",
			Help:      "Thread-affine guards released by their owner.",
		}, []string{"resource"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fontguard",
			Name:      "affinity_violations_total",
			Help:      "Calls rejected because they came from a non-owning thread.",
		}, []string{"resource"}),
	}
	for _, c := range []prometheus.Collector{m.created, m.released, m.violations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// OnGuardEvent implements affinity.Observer.
func (m *Metrics) OnGuardEvent(e affinity.Event) {
	switch e.Type {
	case affinity.EventCreated:
		m.created.WithLabelValues(e.Label).Inc()
	case affinity.EventReleased:
		m.released.WithLabelValues(e.Label).Inc()
	case affinity.EventViolation:
		m.violations.WithLabelValues(e.Label).Inc()
	}
}

// WriteMetrics writes everything g gathers in the Prometheus text format.
func WriteMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
