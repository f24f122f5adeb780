// Package pipeline runs one complete rendering job: resolve the variable
// profile, import the product file, build the observation grid, draw the
// map and write the PNG. A run is all-or-nothing; no output file exists
// after any failure.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/fmi-ika/plot-tropomi/internal/config"
	"github.com/fmi-ika/plot-tropomi/internal/domain"
	"github.com/fmi-ika/plot-tropomi/internal/observability"
)

// Renderer draws a composite map image from a render request. Exactly one
// of the two methods is used per run, selected by the profile's region.
type Renderer interface {
	Global(req domain.RenderRequest) (image.Image, error)
	Regional(req domain.RenderRequest) (image.Image, error)
}

// Request identifies one rendering job.
type Request struct {
	Var        string
	Date       string
	TimePeriod string
}

// Pipeline wires the configuration resolver, product provider and
// renderer into a single Run entry point.
type Pipeline struct {
	confDir  string
	provider domain.Provider
	renderer Renderer
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
}

func New(confDir string, provider domain.Provider, renderer Renderer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		confDir:  confDir,
		provider: provider,
		renderer: renderer,
		logger:   logger,
		metrics:  metrics,
		clock:    clockwork.NewRealClock(),
	}
}

// WithClock swaps the wall clock, for tests.
func (p *Pipeline) WithClock(clock clockwork.Clock) *Pipeline {
	p.clock = clock
	return p
}

// Run executes the job and returns the path of the written image.
func (p *Pipeline) Run(ctx context.Context, req Request) (string, error) {
	start := p.clock.Now()

	profile, err := config.Resolve(p.confDir, req.Var, req.TimePeriod)
	if err != nil {
		return "", err
	}
	p.logger.Info("profile resolved",
		"var", req.Var,
		"timeperiod", req.TimePeriod,
		"region", profile.Region,
	)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	inputFile := profile.InputFile(req.Date)
	product, err := p.provider.ImportProduct(inputFile, profile.HarpVarName)
	if err != nil {
		return "", err
	}
	p.metrics.GridsLoaded.Inc()

	grid, window, desc, unit, err := loadGrid(product, profile)
	if err != nil {
		return "", err
	}
	if lo, hi, ok := grid.ValidRange(); ok {
		p.logger.Debug("grid value range", "min", lo, "max", hi)
	} else {
		p.logger.Warn("grid holds no valid values", "file", inputFile)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	renderReq := domain.RenderRequest{
		Grid:        grid,
		Profile:     profile,
		Window:      window,
		Description: desc,
		Unit:        unit,
	}

	var img image.Image
	if profile.Region != "" {
		region, err := config.LoadRegion(p.confDir, profile.Region)
		if err != nil {
			return "", err
		}
		renderReq.Region = region
		p.metrics.RegionalMode.Set(1)
		img, err = p.renderer.Regional(renderReq)
		if err != nil {
			return "", err
		}
	} else {
		p.metrics.RegionalMode.Set(0)
		img, err = p.renderer.Global(renderReq)
		if err != nil {
			return "", err
		}
	}

	outputFile := profile.OutputFile(req.Date)
	if err := savePNG(outputFile, img); err != nil {
		return "", err
	}

	elapsed := p.clock.Since(start)
	p.metrics.RenderDuration.Observe(elapsed.Seconds())
	p.logger.Info("image written", "file", outputFile, "elapsed", fmt.Sprintf("%.2fs", elapsed.Seconds()))

	return outputFile, nil
}
