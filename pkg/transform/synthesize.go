package transform

import (
	"github.com/gptilt/datasets/internal/model"
)

// respawnEvent derives the victim's RESPAWN event from a champion kill:
// the victim's level at the time of death (most recent LEVEL_UP at or
// before the kill, level 1 when none exists) feeds the death-timer
// collaborator, and the respawn lands that many milliseconds after the
// kill.
func respawnEvent(kill *model.Event, events []*model.Event, timer TimerFunc) *model.Event {
	if kill.VictimID == nil {
		return nil
	}

	level := levelAt(events, *kill.VictimID, kill.Timestamp)
	timeSpentDead := timer(level, float64(kill.Timestamp)/60000)

	return &model.Event{
		MatchID:       kill.MatchID,
		Type:          model.EventRespawn,
		Timestamp:     kill.Timestamp + timeSpentDead,
		ParticipantID: intPtr(*kill.VictimID),
		TimeSpentDead: int64Ptr(timeSpentDead),
	}
}

// levelAt returns the participant's champion level at the given
// timestamp: the level of their most recent LEVEL_UP at or before it,
// or 1 when none exists (champions spawn at level 1).
func levelAt(events []*model.Event, participantID int, timestamp int64) int {
	level := 1
	for _, ev := range events {
		if ev.Timestamp > timestamp {
			break
		}
		if ev.Type != model.EventLevelUp || ev.Level == nil {
			continue
		}
		if ev.ParticipantID == nil || *ev.ParticipantID != participantID {
			continue
		}
		level = *ev.Level
	}
	return level
}

// assistEvents splits a kill-family event into one assist event per
// assisting participant: a copy with the KILL type renamed to ASSIST
// and the participant set to the assister. The caller removes the
// assister list from the originating event afterwards.
func assistEvents(ev *model.Event) []*model.Event {
	assists := make([]*model.Event, 0, len(ev.AssistingParticipantIDs))
	for _, assister := range ev.AssistingParticipantIDs {
		assist := ev.Clone()
		assist.Type = ev.Type.AssistType()
		assist.ParticipantID = intPtr(assister)
		assist.AssistingParticipantIDs = nil
		assists = append(assists, assist)
	}
	return assists
}

// killedEvent derives the victim's perspective of a champion kill as a
// first-class event: same record, type CHAMPION_KILLED, participant set
// to the victim and killerId restored to the original killer.
func killedEvent(kill *model.Event) *model.Event {
	if kill.VictimID == nil {
		return nil
	}

	killed := kill.Clone()
	killed.Type = model.EventChampionKilled
	killed.ParticipantID = intPtr(*kill.VictimID)
	killed.KillerID = kill.ParticipantID
	return killed
}

// bountyStartEvent synthesizes the OBJECTIVE_BOUNTY_START event a
// prestart announcement promises, at its announced actual start time.
func bountyStartEvent(prestart *model.Event) *model.Event {
	if prestart.ActualStartTime == nil {
		return nil
	}

	return &model.Event{
		MatchID:   prestart.MatchID,
		Type:      model.EventObjBountyStart,
		Timestamp: *prestart.ActualStartTime,
		TeamID:    prestart.TeamID,
	}
}
