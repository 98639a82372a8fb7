package transform

import (
	"reflect"
	"testing"

	"github.com/gptilt/datasets/internal/model"
	"github.com/gptilt/datasets/pkg/riot"
)

func testTimeline() *riot.Timeline {
	pos := func(x, y int) *riot.Position { return &riot.Position{X: x, Y: y} }

	return &riot.Timeline{
		Metadata: riot.Metadata{MatchID: "EUW1_100"},
		Info: riot.TimelineInfo{
			FrameInterval: 60000,
			Frames: []riot.Frame{
				{
					Timestamp: 0,
					ParticipantFrames: map[string]riot.ParticipantFrame{
						"1": {ParticipantID: 1, Level: 1, Position: pos(560, 580), CurrentGold: 500},
						"2": {ParticipantID: 2, Level: 1, Position: pos(14300, 14400), CurrentGold: 500},
					},
					Events: []riot.TimelineEvent{
						{Type: "ITEM_DESTROYED", Timestamp: 0, ParticipantID: intPtr(1), ItemID: intPtr(2003)},
						{Type: "ITEM_PURCHASED", Timestamp: 0, ParticipantID: intPtr(1), ItemID: intPtr(2003)},
					},
				},
				{
					Timestamp: 60000,
					ParticipantFrames: map[string]riot.ParticipantFrame{
						"1": {ParticipantID: 1, Level: 2, Position: pos(7000, 7000), CurrentGold: 650},
						"2": {ParticipantID: 2, Level: 2, Position: pos(8000, 8000), CurrentGold: 620},
					},
					Events: []riot.TimelineEvent{
						{Type: "LEVEL_UP", Timestamp: 50000, ParticipantID: intPtr(2), Level: intPtr(6)},
						{
							Type: "CHAMPION_KILL", Timestamp: 100000,
							KillerID: intPtr(1), VictimID: intPtr(2),
							AssistingParticipantIDs: []int{3, 4},
							Position:                pos(9000, 9100),
							Bounty:                  intPtr(300),
						},
					},
				},
			},
		},
	}
}

func testParticipants() []model.Record {
	return []model.Record{
		{"participantId": 1, "championName": "Ahri"},
		{"participantId": 2, "championName": "Jinx"},
		{"participantId": 3, "championName": "Lulu"},
		{"participantId": 4, "championName": "Thresh"},
	}
}

func fixedTimer(int, float64) int64 { return 10000 }

func buildTestStream(t *testing.T) []model.Record {
	t.Helper()
	records, err := BuildEventStream(testTimeline(), testParticipants(), WithDeathTimer(fixedTimer))
	if err != nil {
		t.Fatalf("BuildEventStream: %v", err)
	}
	return records
}

func findByType(records []model.Record, eventType string) []model.Record {
	var out []model.Record
	for _, rec := range records {
		if got, _ := rec.String("type"); got == eventType {
			out = append(out, rec)
		}
	}
	return out
}

func TestBuildEventStreamOrdering(t *testing.T) {
	records := buildTestStream(t)
	if len(records) == 0 {
		t.Fatal("no records produced")
	}

	var prev int64
	for i, rec := range records {
		ts, ok := rec.Int("timestamp")
		if !ok {
			t.Fatalf("records[%d] has no timestamp", i)
		}
		if int64(ts) < prev {
			t.Fatalf("records[%d] timestamp %d precedes %d", i, ts, prev)
		}
		prev = int64(ts)

		if id, _ := rec.Int("eventId"); id != i {
			t.Fatalf("records[%d] eventId = %d, want %d", i, id, i)
		}
	}
}

func TestBuildEventStreamSchemaClosure(t *testing.T) {
	records := buildTestStream(t)

	want := make(map[string]struct{}, len(records[0]))
	for col := range records[0] {
		want[col] = struct{}{}
	}

	for i, rec := range records {
		if len(rec) != len(want) {
			t.Fatalf("records[%d] has %d columns, want %d", i, len(rec), len(want))
		}
		for col := range want {
			if _, ok := rec[col]; !ok {
				t.Fatalf("records[%d] missing column %q", i, col)
			}
		}
	}
}

func TestBuildEventStreamConsumablePurchase(t *testing.T) {
	records := buildTestStream(t)

	purchases := findByType(records, "ITEM_PURCHASED")
	if len(purchases) != 1 {
		t.Fatalf("got %d purchases, want 1", len(purchases))
	}
	purchase := purchases[0]

	// The purchase sorts before the same-timestamp destruction, so the
	// potion is in the inventory on the purchase record and gone on the
	// destruction record.
	ids, ok := purchase["inventoryIds"].([]int)
	if !ok || len(ids) != SlotCapacity || ids[0] != 2003 {
		t.Errorf("purchase inventoryIds = %v, want potion first", purchase["inventoryIds"])
	}

	destroys := findByType(records, "ITEM_DESTROYED")
	if len(destroys) != 1 {
		t.Fatalf("got %d destroys, want 1", len(destroys))
	}
	ids, ok = destroys[0]["inventoryIds"].([]int)
	if !ok || len(ids) != SlotCapacity || ids[0] != 0 {
		t.Errorf("destroy inventoryIds = %v, want all empty", destroys[0]["inventoryIds"])
	}

	// Item events on blue side default to the order spawn gate.
	if x, _ := purchase.Int("positionX"); x != 405 {
		t.Errorf("purchase positionX = %d, want 405", x)
	}
	if y, _ := purchase.Int("positionY"); y != 425 {
		t.Errorf("purchase positionY = %d, want 425", y)
	}
}

func TestBuildEventStreamKillSynthesis(t *testing.T) {
	records := buildTestStream(t)

	kills := findByType(records, "CHAMPION_KILL")
	if len(kills) != 1 {
		t.Fatalf("got %d kills, want 1", len(kills))
	}
	kill := kills[0]

	if got, _ := kill.Int("participantId"); got != 1 {
		t.Errorf("kill participantId = %d, want killer 1", got)
	}
	if got, _ := kill.Int("numberOfAssists"); got != 2 {
		t.Errorf("kill numberOfAssists = %d, want 2", got)
	}

	assists := findByType(records, "CHAMPION_ASSIST")
	if len(assists) != 2 {
		t.Fatalf("got %d assists, want 2", len(assists))
	}
	gotAssisters := map[int]bool{}
	for _, a := range assists {
		id, _ := a.Int("participantId")
		gotAssisters[id] = true
		if n, _ := a.Int("numberOfAssists"); n != 2 {
			t.Errorf("assist numberOfAssists = %d, want 2", n)
		}
	}
	if !gotAssisters[3] || !gotAssisters[4] {
		t.Errorf("assisters = %v, want 3 and 4", gotAssisters)
	}

	killed := findByType(records, "CHAMPION_KILLED")
	if len(killed) != 1 {
		t.Fatalf("got %d killed events, want 1", len(killed))
	}
	if got, _ := killed[0].Int("participantId"); got != 2 {
		t.Errorf("killed participantId = %d, want victim 2", got)
	}
	if got, _ := killed[0].Int("killerId"); got != 1 {
		t.Errorf("killed killerId = %d, want 1", got)
	}

	respawns := findByType(records, "RESPAWN")
	if len(respawns) != 1 {
		t.Fatalf("got %d respawns, want 1", len(respawns))
	}
	if got, _ := respawns[0].Int("timestamp"); got != 110000 {
		t.Errorf("respawn timestamp = %d, want 110000", got)
	}
	if got, _ := respawns[0].Int("participantId"); got != 2 {
		t.Errorf("respawn participantId = %d, want 2", got)
	}
}

func TestBuildEventStreamSnapshots(t *testing.T) {
	records := buildTestStream(t)

	snapshots := findByType(records, "PARTICIPANT_FRAME")
	if len(snapshots) != 4 {
		t.Fatalf("got %d snapshots, want 4", len(snapshots))
	}

	first := snapshots[0]
	if got, _ := first.Int("participantId"); got != 1 {
		t.Errorf("first snapshot participantId = %d, want 1", got)
	}
	if got, _ := first.Int("currentGold"); got != 500 {
		t.Errorf("first snapshot currentGold = %d, want 500", got)
	}
	if got, _ := first.Int("positionX"); got != 560 {
		t.Errorf("first snapshot positionX = %d, want 560", got)
	}
}

func TestBuildEventStreamDeterministic(t *testing.T) {
	a := buildTestStream(t)
	b := buildTestStream(t)

	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs over the same timeline differ")
	}
}

func TestBuildEventStreamMissingMetadata(t *testing.T) {
	if _, err := BuildEventStream(nil, nil); err == nil {
		t.Error("nil timeline should error")
	}
	if _, err := BuildEventStream(&riot.Timeline{}, nil); err == nil {
		t.Error("timeline without match id should error")
	}
}
