package transform

import (
	"math"

	"github.com/gptilt/datasets/internal/model"
	"github.com/gptilt/datasets/pkg/coords"
)

// ornnChampion is the one champion whose passive allows buying items
// anywhere on the map, so shop-side defaults would be wrong for it.
const ornnChampion = "Ornn"

// needsDefaultPosition reports whether the event type participates in
// default-position resolution: item transactions and dragon souls are
// recorded without coordinates upstream.
func needsDefaultPosition(t model.EventType) bool {
	return t.IsItem() || t == model.EventDragonSoulGiven
}

// resolveDefaultPosition fills in a position for an event lacking one.
// Dragon souls resolve to the Dragon pit; Ornn item transactions to the
// participant's nearest-in-time snapshot; all other item transactions
// to the spawn gate of the participant's side. The position stays nil
// when no source is available.
func (o *Options) resolveDefaultPosition(ev *model.Event, champions map[int]string, events []*model.Event) {
	if ev.Type == model.EventDragonSoulGiven {
		setPoint(ev, o.camps, coords.DragonPit)
		return
	}

	participantID := 0
	if ev.ParticipantID != nil {
		participantID = *ev.ParticipantID
	}

	if champions[participantID] == ornnChampion {
		if snap := nearestSnapshot(events, participantID, ev.Timestamp); snap != nil {
			ev.PositionX = snap.PositionX
			ev.PositionY = snap.PositionY
		}
		return
	}

	gate := coords.OrderSpawnGate
	if participantID > 5 {
		gate = coords.ChaosSpawnGate
	}
	setPoint(ev, o.buildings, gate)
}

func setPoint(ev *model.Event, table coords.Table, name string) {
	p, ok := table.Lookup(name)
	if !ok {
		return
	}
	ev.PositionX = intPtr(int(math.Round(p.X)))
	ev.PositionY = intPtr(int(math.Round(p.Y)))
}

// nearestSnapshot finds the participant's snapshot event closest in
// time to the given timestamp, earliest first on ties.
func nearestSnapshot(events []*model.Event, participantID int, timestamp int64) *model.Event {
	var best *model.Event
	var bestDelta int64

	for _, ev := range events {
		if ev.Type != model.EventParticipantFrame {
			continue
		}
		if ev.ParticipantID == nil || *ev.ParticipantID != participantID {
			continue
		}

		delta := ev.Timestamp - timestamp
		if delta < 0 {
			delta = -delta
		}
		if best == nil || delta < bestDelta {
			best = ev
			bestDelta = delta
		}
	}
	return best
}
