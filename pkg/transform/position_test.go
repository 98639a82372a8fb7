package transform

import (
	"testing"

	"github.com/gptilt/datasets/internal/model"
	"github.com/gptilt/datasets/pkg/coords"
)

func TestResolveDefaultPositionSpawnGate(t *testing.T) {
	o := newOptions(nil)
	champions := map[int]string{1: "Ahri", 6: "Jinx"}

	tests := []struct {
		name          string
		participantID int
		wantX, wantY  int
	}{
		{"blue side uses order gate", 1, 405, 425},
		{"red side uses chaos gate", 6, 14445, 14425},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &model.Event{
				Type:          model.EventItemPurchased,
				Timestamp:     30000,
				ParticipantID: intPtr(tt.participantID),
				ItemID:        intPtr(1001),
			}
			o.resolveDefaultPosition(ev, champions, nil)

			if ev.PositionX == nil || *ev.PositionX != tt.wantX {
				t.Errorf("PositionX = %v, want %d", ev.PositionX, tt.wantX)
			}
			if ev.PositionY == nil || *ev.PositionY != tt.wantY {
				t.Errorf("PositionY = %v, want %d", ev.PositionY, tt.wantY)
			}
		})
	}
}

func TestResolveDefaultPositionDragonSoul(t *testing.T) {
	o := newOptions(nil)
	ev := &model.Event{Type: model.EventDragonSoulGiven, Timestamp: 1500000, TeamID: intPtr(200)}

	o.resolveDefaultPosition(ev, nil, nil)

	dragon, _ := coords.DefaultCamps().Lookup(coords.DragonPit)
	if ev.PositionX == nil || *ev.PositionX != int(dragon.X) {
		t.Errorf("PositionX = %v, want %d", ev.PositionX, int(dragon.X))
	}
	if ev.PositionY == nil || *ev.PositionY != int(dragon.Y) {
		t.Errorf("PositionY = %v, want %d", ev.PositionY, int(dragon.Y))
	}
}

func TestResolveDefaultPositionOrnn(t *testing.T) {
	// Ornn buys anywhere, so item events resolve to the nearest
	// snapshot instead of the shop.
	o := newOptions(nil)
	champions := map[int]string{3: ornnChampion}

	events := []*model.Event{
		{
			Type: model.EventParticipantFrame, Timestamp: 60000,
			ParticipantID: intPtr(3),
			PositionX:     intPtr(4000), PositionY: intPtr(9000),
		},
		{
			Type: model.EventParticipantFrame, Timestamp: 120000,
			ParticipantID: intPtr(3),
			PositionX:     intPtr(8000), PositionY: intPtr(2000),
		},
	}

	ev := &model.Event{
		Type:          model.EventItemPurchased,
		Timestamp:     70000,
		ParticipantID: intPtr(3),
		ItemID:        intPtr(3068),
	}
	o.resolveDefaultPosition(ev, champions, events)

	if ev.PositionX == nil || *ev.PositionX != 4000 {
		t.Errorf("PositionX = %v, want 4000 from nearest snapshot", ev.PositionX)
	}
	if ev.PositionY == nil || *ev.PositionY != 9000 {
		t.Errorf("PositionY = %v, want 9000 from nearest snapshot", ev.PositionY)
	}
}

func TestResolveDefaultPositionOrnnNoSnapshot(t *testing.T) {
	o := newOptions(nil)
	champions := map[int]string{3: ornnChampion}

	ev := &model.Event{
		Type:          model.EventItemPurchased,
		Timestamp:     70000,
		ParticipantID: intPtr(3),
		ItemID:        intPtr(3068),
	}
	o.resolveDefaultPosition(ev, champions, nil)

	if ev.PositionX != nil || ev.PositionY != nil {
		t.Errorf("position = (%v, %v), want nil without snapshots", ev.PositionX, ev.PositionY)
	}
}

func TestNeedsDefaultPosition(t *testing.T) {
	tests := []struct {
		eventType model.EventType
		want      bool
	}{
		{model.EventItemPurchased, true},
		{model.EventItemUndo, true},
		{model.EventDragonSoulGiven, true},
		{model.EventChampionKill, false},
		{model.EventLevelUp, false},
	}

	for _, tt := range tests {
		if got := needsDefaultPosition(tt.eventType); got != tt.want {
			t.Errorf("needsDefaultPosition(%s) = %v, want %v", tt.eventType, got, tt.want)
		}
	}
}
