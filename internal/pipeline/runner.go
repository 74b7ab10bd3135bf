package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/danmuck/midcrack/internal/observability"
	"github.com/rs/zerolog"
)

var (
	ErrFileUnreadable = errors.New("pipeline: input file unreadable")
	ErrFileUnwritable = errors.New("pipeline: output file unwritable")
)

// Runner executes registered operations between files.
type Runner struct {
	cfg      Config
	registry *Registry
	metrics  *observability.Metrics
	logger   zerolog.Logger
}

func NewRunner(cfg Config, registry *Registry, metrics *observability.Metrics, logger zerolog.Logger) *Runner {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	return &Runner{cfg: cfg, registry: registry, metrics: metrics, logger: logger}
}

func (r *Runner) Metrics() *observability.Metrics {
	return r.metrics
}

// Run reads inPath, converts it with the operation registered for mode and
// writes outPath. Nothing is written when the conversion fails.
func (r *Runner) Run(mode Mode, inPath, outPath string) error {
	op, ok := r.registry.Resolve(mode)
	if !ok {
		return fmt.Errorf("%w: -%s", ErrUnknownMode, mode)
	}
	spec := op.Spec()

	start := time.Now()
	var inLen, outLen int
	err := func() error {
		input, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFileUnreadable, err)
		}
		inLen = len(input)
		output, err := op.Execute(r.cfg, input)
		if err != nil {
			return fmt.Errorf("%s %s: %w", spec.Name, inPath, err)
		}
		if err := os.WriteFile(outPath, output, 0o644); err != nil {
			return fmt.Errorf("%w: %v", ErrFileUnwritable, err)
		}
		outLen = len(output)
		return nil
	}()
	elapsed := time.Since(start)
	r.metrics.RecordOperation(string(mode), elapsed, inLen, outLen, err)

	event := r.logger.Info()
	if err != nil {
		event = r.logger.Error().Err(err)
	}
	event.
		Str("mode", string(mode)).
		Str("operation", spec.Name).
		Str("input", inPath).
		Str("output", outPath).
		Int("in_bytes", inLen).
		Int("out_bytes", outLen).
		Dur("elapsed", elapsed).
		Msg("operation finished")

	if r.cfg.MetricsTextfile != "" {
		if werr := r.metrics.WriteTextfile(r.cfg.MetricsTextfile); werr != nil {
			r.logger.Warn().Err(werr).Str("path", r.cfg.MetricsTextfile).Msg("metrics textfile not written")
		}
	}
	return err
}
