package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gptilt/datasets/pkg/config"
	"github.com/gptilt/datasets/pkg/coords"
	"github.com/gptilt/datasets/pkg/storage"
	"github.com/gptilt/datasets/pkg/telemetry"
	"github.com/gptilt/datasets/pkg/transform"
	"github.com/gptilt/datasets/pkg/tui"
	"github.com/gptilt/datasets/pkg/worker"
)

var (
	regionsFlag     []string
	rootFlag        string
	workersFlag     int
	compressionFlag string
	overwriteFlag   bool
	errorPolicyFlag string
	quarantineFlag  string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Transform raw matches into the processed tables",
	Long: `Transform every raw match in the configured regions into the
matches, participants, and events tables.

Matches already present in all three tables are skipped unless
--overwrite is given. Matches outside ranked solo queue are filtered.

Examples:
  gptilt events
  gptilt events --region europe --workers 8
  gptilt events --overwrite --compression zstd`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().StringSliceVar(&regionsFlag, "region", nil, "regions to process (default: configured regions)")
	eventsCmd.Flags().StringVar(&rootFlag, "root", "", "dataset root directory")
	eventsCmd.Flags().IntVar(&workersFlag, "workers", 0, "concurrent matches (0 = one per CPU)")
	eventsCmd.Flags().StringVar(&compressionFlag, "compression", "", "parquet compression: snappy, zstd, gzip, lz4, none")
	eventsCmd.Flags().BoolVar(&overwriteFlag, "overwrite", false, "reprocess already-stored matches")
	eventsCmd.Flags().StringVar(&errorPolicyFlag, "error-policy", "", "error policy: strict, skip, quarantine")
	eventsCmd.Flags().StringVar(&quarantineFlag, "quarantine-file", "", "JSONL file for quarantined matches")
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg := config.Global().Get()

	root := cfg.Data.Root
	if rootFlag != "" {
		root = rootFlag
	}
	regions := cfg.Data.Regions
	if len(regionsFlag) > 0 {
		regions = regionsFlag
	}
	workers := cfg.Batch.Workers
	if workersFlag > 0 {
		workers = workersFlag
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	compression := cfg.Batch.Compression
	if compressionFlag != "" {
		compression = compressionFlag
	}
	policy := cfg.Batch.ErrorPolicy
	if errorPolicyFlag != "" {
		policy = errorPolicyFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		tcfg := telemetry.DefaultConfig("gptilt")
		tcfg.ServiceVersion = version
		if cfg.Telemetry.Endpoint != "" {
			tcfg.Endpoint = cfg.Telemetry.Endpoint
		}
		shutdown, err := telemetry.NewExporter(tcfg).Init(ctx)
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer shutdown(context.Background())
	}

	opts, err := transformOptions(cfg)
	if err != nil {
		return err
	}

	tui.PrintHeader(version)

	if verboseFlag {
		for _, p := range config.Global().GetPaths() {
			fmt.Printf("  config: %s\n", p)
		}
		fmt.Printf("  root: %s\n  workers: %d\n  compression: %s\n  policy: %s\n\n",
			root, workers, compression, policy)
	}

	raw := storage.NewRawStore(root, "raw")
	out := storage.NewParquetStore(root, "basic", storage.ParseCompression(compression))
	prober, err := storage.NewProber(out)
	if err != nil {
		return err
	}
	defer prober.Close()

	handler := worker.NewHandler(worker.ParsePolicy(policy))
	if worker.ParsePolicy(policy) == worker.PolicyQuarantine {
		path := quarantineFlag
		if path == "" {
			path = filepath.Join(root, "quarantine.jsonl")
		}
		q, err := worker.NewFileQuarantine(path)
		if err != nil {
			return fmt.Errorf("open quarantine: %w", err)
		}
		defer q.Close()
		handler.SetQuarantine(q)
	}

	for _, region := range regions {
		ids, err := raw.ListMatches(worker.RawMatchesTable, region)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			continue
		}

		bar := tui.ShowProgress(int64(len(ids)), "region="+region)
		runner := &worker.Runner{
			Raw:           raw,
			Out:           out,
			Prober:        prober,
			Handler:       handler,
			Workers:       workers,
			BatchCount:    cfg.Batch.Count,
			Overwrite:     overwriteFlag || cfg.Batch.Overwrite,
			TransformOpts: opts,
			Progress:      func() { bar.Add(1) },
		}

		stats, err := runner.Run(ctx, region)
		bar.Finish()
		if err != nil {
			tui.PrintError(err.Error())
			return err
		}

		tui.PrintRunReport(&tui.RunReport{
			RunID:       stats.RunID,
			Region:      stats.Region,
			Matches:     stats.Matches,
			Skipped:     stats.Skipped + stats.Filtered,
			Quarantined: stats.Quarantined,
			Events:      stats.Events,
			Duration:    stats.Duration,
		})
	}
	return nil
}

// transformOptions loads cached coordinate tables when configured,
// falling back to the built-in defaults.
func transformOptions(cfg *config.Config) ([]transform.Option, error) {
	buildings := coords.DefaultBuildings()
	camps := coords.DefaultCamps()

	if cfg.Coordinates.BuildingsFile != "" {
		loaded, err := coords.LoadFile(cfg.Coordinates.BuildingsFile)
		if err != nil {
			return nil, fmt.Errorf("load buildings: %w", err)
		}
		buildings = loaded
	}
	if cfg.Coordinates.CampsFile != "" {
		loaded, err := coords.LoadFile(cfg.Coordinates.CampsFile)
		if err != nil {
			return nil, fmt.Errorf("load camps: %w", err)
		}
		camps = loaded
	}

	return []transform.Option{transform.WithCoordinates(buildings, camps)}, nil
}
