package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/meteorite-map/internal/adapter/fetch"
	"github.com/couchcryptid/meteorite-map/internal/config"
	"github.com/couchcryptid/meteorite-map/internal/domain"
	"github.com/couchcryptid/meteorite-map/internal/observability"
	"github.com/couchcryptid/meteorite-map/internal/render"
	"github.com/couchcryptid/meteorite-map/internal/tooltip"
	"github.com/jonboulle/clockwork"
)

// ErrNotRendered is returned by Document and SVG before the first map is drawn.
var ErrNotRendered = errors.New("map has not been rendered yet")

// ImpactSink receives the plotted markers once they are on the map.
type ImpactSink interface {
	PublishImpacts(ctx context.Context, markers []domain.Marker) error
}

// Sources names the datasets a run loads.
type Sources struct {
	TopologyURL    string
	TopologyObject string
	StrikesURL     string
}

// SourcesFromConfig picks the dataset locations out of the service config.
func SourcesFromConfig(cfg *config.Config) Sources {
	return Sources{
		TopologyURL:    cfg.TopologyURL,
		TopologyObject: cfg.TopologyObject,
		StrikesURL:     cfg.StrikesURL,
	}
}

// Result is the outcome of one run. A failed impacts stage leaves the drawn
// map in Surface.
type Result struct {
	Surface       *render.Surface
	Countries     int
	Markers       []domain.Marker
	Rejected      map[domain.Rejection]int
	Unprojectable int
	RenderedAt    time.Time

	MapErr     error
	ImpactErr  error
	PublishErr error
}

// Err joins the stage errors. Publishing failures are not included.
func (r *Result) Err() error {
	return errors.Join(r.MapErr, r.ImpactErr)
}

// Pipeline loads the world topology, draws the countries, then loads and plots
// the strikes on top.
type Pipeline struct {
	sources Sources
	client  *fetch.Client
	proj    domain.Projection
	plotter *render.Plotter
	sink    ImpactSink
	logger  *slog.Logger
	metrics *observability.Metrics

	ready atomic.Bool

	mu   sync.RWMutex
	last *Result
}

// New creates a Pipeline using the world projection. sink may be nil.
func New(sources Sources, client *fetch.Client, tooltips *tooltip.Renderer, sink ImpactSink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	proj := domain.DefaultProjection()
	return &Pipeline{
		sources: sources,
		client:  client,
		proj:    proj,
		plotter: render.NewPlotter(proj, tooltips),
		sink:    sink,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once a map has been drawn.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no map has been drawn yet")
	}
	return nil
}

// Run performs one render. The impacts stage only runs when the map stage
// succeeds. The result is kept for Document and SVG when a map was drawn.
func (p *Pipeline) Run(ctx context.Context) *Result {
	p.logger.Info("pipeline started",
		"topology_url", p.sources.TopologyURL,
		"strikes_url", p.sources.StrikesURL,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	res := &Result{Surface: render.NewSurface()}

	start := time.Now()
	res.Countries, res.MapErr = p.drawMap(ctx, res.Surface)
	p.metrics.StageDuration.WithLabelValues("map").Observe(time.Since(start).Seconds())
	if res.MapErr != nil {
		p.logger.Error("map stage failed", "error", res.MapErr)
		return res
	}
	p.metrics.CountriesDrawn.Set(float64(res.Countries))
	p.logger.Info("countries drawn", "count", res.Countries)

	start = time.Now()
	report, err := p.drawImpacts(ctx, res.Surface)
	p.metrics.StageDuration.WithLabelValues("impacts").Observe(time.Since(start).Seconds())
	res.Markers = report.Markers
	res.Rejected = report.Rejected
	res.Unprojectable = report.Unprojectable
	res.ImpactErr = err
	p.recordOutcomes(report)

	if err != nil {
		p.logger.Error("impacts stage failed", "error", err)
	} else {
		p.logger.Info("impacts plotted",
			"markers", len(report.Markers),
			"rejected", rejectedTotal(report.Rejected),
			"unprojectable", report.Unprojectable,
		)
		res.PublishErr = p.publish(ctx, report.Markers)
	}

	res.RenderedAt = domain.Now()
	p.mu.Lock()
	p.last = res
	p.mu.Unlock()
	p.ready.Store(true)
	return res
}

// Refresh re-runs the pipeline every interval until ctx is cancelled, passing
// each result to onResult when it is non-nil. A run that fails to draw the map
// leaves the previous render in place.
func (p *Pipeline) Refresh(ctx context.Context, clock clockwork.Clock, every time.Duration, onResult func(*Result)) {
	ticker := clock.NewTicker(every)
	defer ticker.Stop()

	p.logger.Info("refresh started", "interval", every)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("refresh stopping", "reason", ctx.Err())
			return
		case <-ticker.Chan():
			res := p.Run(ctx)
			if res.MapErr != nil && ctx.Err() == nil {
				p.logger.Warn("refresh failed, keeping previous map", "error", res.MapErr)
			}
			if onResult != nil {
				onResult(res)
			}
		}
	}
}

// Last returns the most recent result with a drawn map, or nil.
func (p *Pipeline) Last() *Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Document renders the last drawn map as the interactive HTML page.
func (p *Pipeline) Document() ([]byte, error) {
	res := p.Last()
	if res == nil {
		return nil, ErrNotRendered
	}
	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, render.NewDocument(res.Surface, res.RenderedAt)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SVG renders the last drawn map without the page around it.
func (p *Pipeline) SVG() ([]byte, error) {
	res := p.Last()
	if res == nil {
		return nil, ErrNotRendered
	}
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, res.Surface); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Pipeline) publish(ctx context.Context, markers []domain.Marker) error {
	if p.sink == nil || len(markers) == 0 {
		return nil
	}
	if err := p.sink.PublishImpacts(ctx, markers); err != nil {
		p.logger.Warn("publish impacts failed", "error", err, "markers", len(markers))
		return fmt.Errorf("publish impacts: %w", err)
	}
	return nil
}

func (p *Pipeline) recordOutcomes(report render.ImpactReport) {
	valid := len(report.Markers) + report.Unprojectable
	p.metrics.Records.WithLabelValues("valid").Add(float64(valid))
	for why, n := range report.Rejected {
		p.metrics.Records.WithLabelValues(string(why)).Add(float64(n))
	}
	p.metrics.MarkersDrawn.Set(float64(len(report.Markers)))
}

func rejectedTotal(rejected map[domain.Rejection]int) int {
	total := 0
	for _, n := range rejected {
		total += n
	}
	return total
}
