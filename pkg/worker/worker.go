// Package worker orchestrates transformation runs: it fans raw matches
// out to a bounded worker pool, applies the transformation engine, and
// aggregates the results into the Parquet store.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gptilt/datasets/internal/model"
	"github.com/gptilt/datasets/pkg/riot"
	"github.com/gptilt/datasets/pkg/storage"
	"github.com/gptilt/datasets/pkg/telemetry"
	"github.com/gptilt/datasets/pkg/transform"
)

// Raw and processed table names. The raw store keeps the unmodified
// API payloads; the Parquet store receives the transformed tables.
const (
	RawMatchesTable   = "matches"
	RawTimelinesTable = "timelines"

	MatchesTable      = "matches"
	ParticipantsTable = "participants"
	EventsTable       = "events"
)

var processedTables = []string{MatchesTable, ParticipantsTable, EventsTable}

// Runner executes one transformation run over a region partition.
type Runner struct {
	Raw     *storage.RawStore
	Out     *storage.ParquetStore
	Prober  *storage.Prober
	Handler *Handler

	// Workers bounds concurrent matches. Zero means one per CPU,
	// decided by errgroup's default of no limit, so callers should
	// set it explicitly.
	Workers int

	// BatchCount is how many matches to process between flushes.
	BatchCount int

	// Overwrite reprocesses matches already present in the output.
	Overwrite bool

	// TransformOpts are passed through to the event engine.
	TransformOpts []transform.Option

	// Progress, when set, is called once per finished match.
	Progress func()
}

// Stats summarizes a finished run.
type Stats struct {
	RunID       string
	Region      string
	Matches     int64
	Skipped     int64
	Filtered    int64
	Quarantined int64
	Events      int64
	Duration    time.Duration
}

// Run processes every raw match in the region partition and returns
// run statistics. Matches failing under a lenient error policy are
// recorded and skipped; under the strict policy the first failure
// cancels the remaining workers.
func (r *Runner) Run(ctx context.Context, region string) (*Stats, error) {
	started := time.Now()
	stats := &Stats{RunID: uuid.NewString(), Region: region}

	ctx, span := telemetry.StartSpan(ctx, "worker.run")
	defer span.End()

	ids, err := r.Raw.ListMatches(RawMatchesTable, region)
	if err != nil {
		return stats, err
	}

	var mu sync.Mutex
	sinceFlush := 0

	g, ctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}

	for _, matchID := range ids {
		matchID := matchID
		g.Go(func() error {
			outcome, events, err := r.processMatch(ctx, region, matchID)
			if err != nil {
				if handleErr := r.Handler.Handle(MatchError{
					MatchID:   matchID,
					Region:    region,
					Stage:     outcome,
					Error:     err.Error(),
					Timestamp: time.Now(),
				}); handleErr != nil {
					return handleErr
				}
				mu.Lock()
				stats.Quarantined++
				mu.Unlock()
				if r.Progress != nil {
					r.Progress()
				}
				return nil
			}

			mu.Lock()
			switch outcome {
			case outcomeDone:
				stats.Matches++
				stats.Events += events
				sinceFlush++
			case outcomeSkipped:
				stats.Skipped++
			case outcomeFiltered:
				stats.Filtered++
			}
			flushNow := r.BatchCount > 0 && sinceFlush >= r.BatchCount
			if flushNow {
				sinceFlush = 0
			}
			mu.Unlock()

			if r.Progress != nil {
				r.Progress()
			}
			if flushNow {
				return r.Out.Flush()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		telemetry.RecordError(ctx, err)
		return stats, err
	}
	if err := r.Out.Flush(); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(started)
	return stats, nil
}

// processMatch outcomes double as failure stage names for quarantine.
const (
	outcomeDone     = "done"
	outcomeSkipped  = "skipped"
	outcomeFiltered = "filtered"

	stageProbe     = "probe"
	stageDecode    = "decode"
	stageNormalize = "normalize"
	stageTimeline  = "timeline"
	stageEvents    = "events"
)

func (r *Runner) processMatch(ctx context.Context, region, matchID string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return stageProbe, 0, err
	}

	if !r.Overwrite && r.Prober != nil {
		done, err := r.Prober.HasRecordsInAllTables(ctx, matchID, region, processedTables)
		if err != nil {
			return stageProbe, 0, err
		}
		if done {
			return outcomeSkipped, 0, nil
		}
	}

	match, err := r.readMatch(region, matchID)
	if err != nil {
		return stageDecode, 0, err
	}
	if match.QueueID() != riot.QueueRankedSolo {
		return outcomeFiltered, 0, nil
	}

	matchRec, participantRecs, err := transform.NormalizeMatch(matchID, region, match)
	if err != nil {
		return stageNormalize, 0, err
	}

	timeline, err := r.readTimeline(region, matchID)
	if err != nil {
		return stageTimeline, 0, err
	}

	events, err := transform.BuildEventStream(timeline, participantRecs, r.TransformOpts...)
	if err != nil {
		return stageEvents, 0, err
	}

	r.Out.StoreBatch(MatchesTable, region, []model.Record{matchRec})
	r.Out.StoreBatch(ParticipantsTable, region, participantRecs)
	r.Out.StoreBatch(EventsTable, region, events)

	return outcomeDone, int64(len(events)), nil
}

func (r *Runner) readMatch(region, matchID string) (*riot.Match, error) {
	rc, err := r.Raw.Open(RawMatchesTable, region, matchID)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	match, err := riot.DecodeMatch(rc)
	if err != nil {
		return nil, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	return match, nil
}

func (r *Runner) readTimeline(region, matchID string) (*riot.Timeline, error) {
	rc, err := r.Raw.Open(RawTimelinesTable, region, matchID)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	timeline, err := riot.DecodeTimeline(rc)
	if err != nil {
		return nil, fmt.Errorf("decode timeline %s: %w", matchID, err)
	}
	return timeline, nil
}
