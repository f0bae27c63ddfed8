package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randytsao24/swipemap/internal/config"
	"github.com/randytsao24/swipemap/internal/dataset"
)

var manifestPath string

var rootCmd = &cobra.Command{
	Use:   "swipemap",
	Short: "Explore MetroCard swipe shares across NYC subway stations",
	Long: `swipemap loads per-station MetroCard swipe counts for a series of fare
periods and shows how Full Fare, 7-Day and 30-Day Unlimited usage is spread
across the subway, either as an interactive web map or a text report.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "dataset manifest (default $MANIFEST_PATH or data/manifest.yaml)")
}

// getManifestPath prefers the flag over the environment
func getManifestPath(cfg *config.Config) string {
	if manifestPath != "" {
		return manifestPath
	}
	return cfg.ManifestPath
}

// loadDataset reads the manifest and every period it lists
func loadDataset(path string) (*dataset.Manifest, []dataset.Period, error) {
	m, err := dataset.LoadManifest(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading manifest: %w", err)
	}
	periods, err := dataset.Load(m)
	if err != nil {
		return nil, nil, fmt.Errorf("loading swipe data: %w", err)
	}
	return m, periods, nil
}
