package transform

import (
	"testing"

	"github.com/gptilt/datasets/internal/model"
)

func TestLevelAt(t *testing.T) {
	events := []*model.Event{
		{Type: model.EventLevelUp, Timestamp: 60000, ParticipantID: intPtr(2), Level: intPtr(2)},
		{Type: model.EventLevelUp, Timestamp: 120000, ParticipantID: intPtr(2), Level: intPtr(3)},
		{Type: model.EventLevelUp, Timestamp: 130000, ParticipantID: intPtr(4), Level: intPtr(2)},
	}

	tests := []struct {
		name          string
		participantID int
		timestamp     int64
		want          int
	}{
		{"before any level up", 2, 30000, 1},
		{"between level ups", 2, 100000, 2},
		{"exactly at level up", 2, 60000, 2},
		{"after all level ups", 2, 200000, 3},
		{"other participant", 3, 200000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := levelAt(events, tt.participantID, tt.timestamp); got != tt.want {
				t.Errorf("levelAt(%d, %d) = %d, want %d", tt.participantID, tt.timestamp, got, tt.want)
			}
		})
	}
}

func TestRespawnEvent(t *testing.T) {
	events := []*model.Event{
		{Type: model.EventLevelUp, Timestamp: 90000, ParticipantID: intPtr(2), Level: intPtr(6)},
	}
	kill := &model.Event{
		MatchID:       "TEST_1",
		Type:          model.EventChampionKill,
		Timestamp:     100000,
		ParticipantID: intPtr(1),
		VictimID:      intPtr(2),
	}

	var gotLevel int
	var gotMinutes float64
	timer := func(level int, gameMinutes float64) int64 {
		gotLevel = level
		gotMinutes = gameMinutes
		return 10000
	}

	respawn := respawnEvent(kill, events, timer)
	if respawn == nil {
		t.Fatal("respawnEvent returned nil")
	}
	if gotLevel != 6 {
		t.Errorf("timer level = %d, want 6", gotLevel)
	}
	if want := 100000.0 / 60000.0; gotMinutes != want {
		t.Errorf("timer minutes = %v, want %v", gotMinutes, want)
	}
	if respawn.Type != model.EventRespawn {
		t.Errorf("Type = %s, want RESPAWN", respawn.Type)
	}
	if respawn.Timestamp != 110000 {
		t.Errorf("Timestamp = %d, want 110000", respawn.Timestamp)
	}
	if respawn.ParticipantID == nil || *respawn.ParticipantID != 2 {
		t.Errorf("ParticipantID = %v, want 2", respawn.ParticipantID)
	}
	if respawn.TimeSpentDead == nil || *respawn.TimeSpentDead != 10000 {
		t.Errorf("TimeSpentDead = %v, want 10000", respawn.TimeSpentDead)
	}
}

func TestRespawnEventNoVictim(t *testing.T) {
	kill := &model.Event{Type: model.EventChampionKill, Timestamp: 100000}
	if got := respawnEvent(kill, nil, death0); got != nil {
		t.Fatalf("respawnEvent = %+v, want nil for kill without victim", got)
	}
}

func death0(int, float64) int64 { return 0 }

func TestAssistEvents(t *testing.T) {
	kill := &model.Event{
		MatchID:                 "TEST_1",
		Type:                    model.EventChampionKill,
		Timestamp:               100000,
		ParticipantID:           intPtr(1),
		VictimID:                intPtr(2),
		NumberOfAssists:         intPtr(2),
		AssistingParticipantIDs: []int{3, 4},
	}

	assists := assistEvents(kill)
	if len(assists) != 2 {
		t.Fatalf("got %d assists, want 2", len(assists))
	}

	for i, want := range []int{3, 4} {
		a := assists[i]
		if a.Type != model.EventType("CHAMPION_ASSIST") {
			t.Errorf("assists[%d].Type = %s, want CHAMPION_ASSIST", i, a.Type)
		}
		if a.ParticipantID == nil || *a.ParticipantID != want {
			t.Errorf("assists[%d].ParticipantID = %v, want %d", i, a.ParticipantID, want)
		}
		if a.AssistingParticipantIDs != nil {
			t.Errorf("assists[%d] retains assister list %v", i, a.AssistingParticipantIDs)
		}
		if a.NumberOfAssists == nil || *a.NumberOfAssists != 2 {
			t.Errorf("assists[%d].NumberOfAssists = %v, want 2", i, a.NumberOfAssists)
		}
		if a.VictimID == nil || *a.VictimID != 2 {
			t.Errorf("assists[%d].VictimID = %v, want 2", i, a.VictimID)
		}
	}
}

func TestAssistEventsMonsterKill(t *testing.T) {
	kill := &model.Event{
		Type:                    model.EventEliteMonsterKill,
		Timestamp:               900000,
		ParticipantID:           intPtr(5),
		AssistingParticipantIDs: []int{1},
	}

	assists := assistEvents(kill)
	if len(assists) != 1 {
		t.Fatalf("got %d assists, want 1", len(assists))
	}
	if assists[0].Type != model.EventType("ELITE_MONSTER_ASSIST") {
		t.Errorf("Type = %s, want ELITE_MONSTER_ASSIST", assists[0].Type)
	}
}

func TestKilledEvent(t *testing.T) {
	kill := &model.Event{
		MatchID:       "TEST_1",
		Type:          model.EventChampionKill,
		Timestamp:     100000,
		ParticipantID: intPtr(1),
		VictimID:      intPtr(2),
		Bounty:        intPtr(300),
	}

	killed := killedEvent(kill)
	if killed == nil {
		t.Fatal("killedEvent returned nil")
	}
	if killed.Type != model.EventChampionKilled {
		t.Errorf("Type = %s, want CHAMPION_KILLED", killed.Type)
	}
	if killed.ParticipantID == nil || *killed.ParticipantID != 2 {
		t.Errorf("ParticipantID = %v, want victim 2", killed.ParticipantID)
	}
	if killed.KillerID == nil || *killed.KillerID != 1 {
		t.Errorf("KillerID = %v, want 1", killed.KillerID)
	}
	if killed.Bounty == nil || *killed.Bounty != 300 {
		t.Errorf("Bounty = %v, want 300", killed.Bounty)
	}

	if got := killedEvent(&model.Event{Type: model.EventChampionKill}); got != nil {
		t.Error("killedEvent should return nil without a victim")
	}
}

func TestBountyStartEvent(t *testing.T) {
	prestart := &model.Event{
		MatchID:         "TEST_1",
		Type:            model.EventObjBountyPrestart,
		Timestamp:       900000,
		TeamID:          intPtr(100),
		ActualStartTime: int64Ptr(960000),
	}

	start := bountyStartEvent(prestart)
	if start == nil {
		t.Fatal("bountyStartEvent returned nil")
	}
	if start.Type != model.EventObjBountyStart {
		t.Errorf("Type = %s, want OBJECTIVE_BOUNTY_START", start.Type)
	}
	if start.Timestamp != 960000 {
		t.Errorf("Timestamp = %d, want 960000", start.Timestamp)
	}
	if start.TeamID == nil || *start.TeamID != 100 {
		t.Errorf("TeamID = %v, want 100", start.TeamID)
	}

	if got := bountyStartEvent(&model.Event{Type: model.EventObjBountyPrestart}); got != nil {
		t.Error("bountyStartEvent should return nil without an actual start time")
	}
}
