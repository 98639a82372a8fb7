package transform

import (
	"sort"
	"strconv"

	"github.com/gptilt/datasets/internal/model"
	"github.com/gptilt/datasets/pkg/riot"
)

// BuildEventStream converts a raw timeline into the flat, time-ordered,
// schema-standardized event stream for one match.
//
// The pipeline runs in distinct passes to keep ordering explicit:
//
//  1. Materialize one snapshot pseudo-event per (frame, participant)
//     and flatten every discrete raw event, applying the one-time
//     field renames.
//  2. Sort by (timestamp, tie-break) — see sortEvents.
//  3. Walk the sorted raw events once: resolve default positions, run
//     the inventory simulation, and collect synthesized events
//     (respawns, assist/killed splits, bounty starts).
//  4. Merge the synthesized events and sort once more.
//  5. Standardize every record onto the union of observed columns and
//     assign sequential event identifiers.
//
// The participants argument carries the normalized participant records
// of NormalizeMatch; the engine only reads seat and champion identity
// from them.
func BuildEventStream(tl *riot.Timeline, participants []model.Record, opts ...Option) ([]model.Record, error) {
	if tl == nil || tl.Metadata.MatchID == "" {
		return nil, riot.ErrMissingMetadata
	}
	o := newOptions(opts)

	matchID := tl.Metadata.MatchID
	champions := championNames(participants)

	frames := make([]riot.Frame, len(tl.Info.Frames))
	copy(frames, tl.Info.Frames)
	sort.SliceStable(frames, func(i, j int) bool {
		return frames[i].Timestamp < frames[j].Timestamp
	})

	events := make([]*model.Event, 0, estimateEvents(frames))
	for _, frame := range frames {
		// Participant frame keys are seat identifiers; iterate them in
		// order for deterministic output.
		for _, key := range sortedKeys(frame.ParticipantFrames) {
			participantID, err := strconv.Atoi(key)
			if err != nil {
				participantID = frame.ParticipantFrames[key].ParticipantID
			}
			events = append(events, snapshotEvent(matchID, participantID, frame.Timestamp, frame.ParticipantFrames[key]))
		}
	}
	for _, frame := range frames {
		for _, raw := range frame.Events {
			events = append(events, eventFromRaw(matchID, raw))
		}
	}

	sortEvents(events)

	inventories := newInventorySet()
	var synthesized []*model.Event

	for _, ev := range events {
		if needsDefaultPosition(ev.Type) && ev.PositionX == nil {
			o.resolveDefaultPosition(ev, champions, events)
		}

		if ev.Type == model.EventChampionKill {
			if respawn := respawnEvent(ev, events, o.deathTimer); respawn != nil {
				synthesized = append(synthesized, respawn)
			}
		}

		// All kill-family events report their assist count, computed
		// before the assister list is split off and removed.
		if ev.Type.IsKill() {
			ev.NumberOfAssists = intPtr(len(ev.AssistingParticipantIDs))
		}
		if len(ev.AssistingParticipantIDs) > 0 {
			synthesized = append(synthesized, assistEvents(ev)...)
			ev.AssistingParticipantIDs = nil
		}

		if ev.Type == model.EventChampionKill {
			if killed := killedEvent(ev); killed != nil {
				synthesized = append(synthesized, killed)
			}
		}

		if ev.Type.IsItem() {
			if ev.ParticipantID != nil && *ev.ParticipantID == 0 {
				ev.ParticipantID = intPtr(inventories.routeSystemItem(ev))
			}

			participantID := 0
			if ev.ParticipantID != nil {
				participantID = *ev.ParticipantID
			}

			inv := inventories.get(participantID)
			inv.Apply(ev.Type, ev.Timestamp, ev.ItemID)
			ev.InventoryIDs, ev.InventoryCounts = inv.ItemsAndCounts()
		}

		if ev.Type == model.EventObjBountyPrestart {
			if start := bountyStartEvent(ev); start != nil {
				synthesized = append(synthesized, start)
			}
		}
	}

	all := append(events, synthesized...)
	sortEvents(all)

	return standardize(all), nil
}

// championNames maps participant identifiers to champion names.
func championNames(participants []model.Record) map[int]string {
	names := make(map[int]string, len(participants))
	for _, rec := range participants {
		id, ok := rec.Int("participantId")
		if !ok {
			continue
		}
		if name, ok := rec.String("championName"); ok {
			names[id] = name
		}
	}
	return names
}

func estimateEvents(frames []riot.Frame) int {
	n := 0
	for _, frame := range frames {
		n += len(frame.ParticipantFrames) + len(frame.Events)
	}
	return n
}

func sortedKeys(m map[string]riot.ParticipantFrame) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		// Numeric seat order, not lexicographic ("10" after "9").
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
