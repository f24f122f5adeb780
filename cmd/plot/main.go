// Command plot renders one composite trace-gas map from a merged TROPOMI
// L3 product file and writes it as PNG. One invocation renders one
// variable for one date; the scheduler invokes it per product.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/fmi-ika/plot-tropomi/internal/adapter/harp"
	"github.com/fmi-ika/plot-tropomi/internal/adapter/overlay"
	"github.com/fmi-ika/plot-tropomi/internal/observability"
	"github.com/fmi-ika/plot-tropomi/internal/pipeline"
	"github.com/fmi-ika/plot-tropomi/internal/render"
)

func main() {
	varID := flag.String("var", "so2-nrti", "variable to plot (names conf/<var>.json)")
	date := flag.String("date", "20230209", "date stamp substituted into file templates")
	timePeriod := flag.String("timeperiod", "day", "aggregation length of the product (day|month)")
	logLevel := flag.String("loglevel", "info", "log level (debug|info|warning|error)")
	confDir := flag.String("conf", "conf", "configuration directory")
	dataDir := flag.String("data", "data", "overlay data directory (coastlines, borders, logos)")
	metricsFile := flag.String("metrics-file", "", "write Prometheus metrics to this textfile after the run")
	flag.Parse()

	logger := observability.NewLogger(*logLevel, "text")
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := harp.NewProvider(logger)
	overlays := overlay.NewStore(*dataDir, logger)

	renderer, err := render.New(overlays, logger, metrics)
	if err != nil {
		logger.Error("renderer init failed", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(*confDir, provider, renderer, logger, metrics)

	out, err := p.Run(ctx, pipeline.Request{Var: *varID, Date: *date, TimePeriod: *timePeriod})
	if err != nil {
		logger.Error("rendering failed", "var", *varID, "date", *date, "error", err)
		os.Exit(1)
	}
	logger.Info("done", "output", out)

	if *metricsFile != "" {
		if err := observability.DumpTextfile(*metricsFile); err != nil {
			logger.Error("metrics dump failed", "error", err)
			os.Exit(1)
		}
	}
}
