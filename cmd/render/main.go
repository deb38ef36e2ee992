// Command render produces a static HTML snapshot of a fire probability grid,
// either from the model backend or from the local simulation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ankiibott/Forest-fire-prediction/internal/config"
	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
	"github.com/ankiibott/Forest-fire-prediction/internal/observability"
	"github.com/ankiibott/Forest-fire-prediction/internal/predict"
	"github.com/ankiibott/Forest-fire-prediction/internal/render"
)

var (
	outputFile string
	horizon    int
	boundsFlag string
	modelURL   string
	simulate   bool
	seed       int64
	title      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "render",
		Short: "Generate a static fire probability grid HTML page",
		Long: `Render calls the model backend (or the local simulation) for the
given bounds and writes the probability grid for one forecast horizon
as a standalone HTML file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context())
		},
	}

	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "firecast.html", "Output HTML file path")
	rootCmd.Flags().IntVar(&horizon, "horizon", 0, "Forecast horizon to render (0-based)")
	rootCmd.Flags().StringVar(&boundsFlag, "bounds", "30.2,30.3,77.8,77.9", "Bounds as latMin,latMax,lonMin,lonMax")
	rootCmd.Flags().StringVar(&modelURL, "model-url", "", "Model backend base URL (empty forces simulation)")
	rootCmd.Flags().BoolVar(&simulate, "simulate", false, "Skip the backend and simulate directly")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Simulation noise seed (0 seeds from the clock)")
	rootCmd.Flags().StringVar(&title, "title", "Forest Fire Prediction", "Page title")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRender(ctx context.Context) error {
	bounds, err := parseBounds(boundsFlag)
	if err != nil {
		return err
	}

	cfg := &config.Config{
		ModelURL:       modelURL,
		ModelTimeout:   15 * time.Second,
		FallbackDelay:  time.Second,
		SimulationSeed: seed,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := predict.NewClient(cfg, observability.NewMetrics(), logger)

	var outcome predict.Outcome
	if simulate || modelURL == "" {
		outcome = client.Simulate(bounds)
	} else {
		outcome, err = client.Predict(ctx, bounds, domain.BuildManifest(domain.Channels, domain.NewFormState()))
		if err != nil {
			return err
		}
	}

	view := render.NewGridView(outcome.Bounds, outcome.Prediction, horizon, outcome.TimeDetails)
	if view == nil {
		return fmt.Errorf("horizon %d out of range (prediction has %d)", horizon, len(outcome.Prediction))
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if err := render.RenderSnapshot(f, title, outcome.Warning, view); err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}
	logger.Info("snapshot written", "path", outputFile, "source", outcome.Source, "horizon", horizon)
	return nil
}

func parseBounds(s string) (domain.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domain.Bounds{}, fmt.Errorf("bounds must be latMin,latMax,lonMin,lonMax")
	}
	raw := domain.RawBounds{
		LatMin: strings.TrimSpace(parts[0]),
		LatMax: strings.TrimSpace(parts[1]),
		LonMin: strings.TrimSpace(parts[2]),
		LonMax: strings.TrimSpace(parts[3]),
	}
	bounds, ok := raw.Parse()
	if !ok {
		return domain.Bounds{}, fmt.Errorf("invalid bounds %q: need finite numbers with min < max per axis", s)
	}
	return bounds, nil
}
