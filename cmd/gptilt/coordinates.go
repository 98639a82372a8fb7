package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gptilt/datasets/pkg/config"
	"github.com/gptilt/datasets/pkg/coords"
)

var coordsOutputFlag string

var coordinatesCmd = &cobra.Command{
	Use:   "coordinates",
	Short: "Fetch and cache the map coordinate tables",
	Long: `Fetch building and jungle camp coordinates from CommunityDragon
map geometry and cache them as JSON files for the events command.

Examples:
  gptilt coordinates
  gptilt coordinates --output ./coords`,
	RunE: runCoordinates,
}

func init() {
	coordinatesCmd.Flags().StringVar(&coordsOutputFlag, "output", "", "output directory (default: <data root>/coordinates)")
}

func runCoordinates(cmd *cobra.Command, args []string) error {
	cfg := config.Global().Get()

	dir := coordsOutputFlag
	if dir == "" {
		dir = filepath.Join(cfg.Data.Root, "coordinates")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fetcher := &coords.Fetcher{}

	buildings, err := fetcher.FetchBuildings(ctx)
	if err != nil {
		return fmt.Errorf("fetch buildings: %w", err)
	}
	camps, err := fetcher.FetchCamps(ctx, buildings)
	if err != nil {
		return fmt.Errorf("fetch camps: %w", err)
	}

	buildingsPath := filepath.Join(dir, "buildings.json")
	campsPath := filepath.Join(dir, "camps.json")

	if err := buildings.WriteFile(buildingsPath); err != nil {
		return err
	}
	if err := camps.WriteFile(campsPath); err != nil {
		return err
	}

	fmt.Printf("wrote %d buildings to %s\n", len(buildings), buildingsPath)
	fmt.Printf("wrote %d camps to %s\n", len(camps), campsPath)
	return nil
}
