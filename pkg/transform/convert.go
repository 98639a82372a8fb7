package transform

import (
	"github.com/gptilt/datasets/internal/model"
	"github.com/gptilt/datasets/pkg/riot"
)

// snapshotEvent materializes one periodic participant snapshot as a
// pseudo-event carrying the frame's timestamp.
func snapshotEvent(matchID string, participantID int, timestamp int64, pf riot.ParticipantFrame) *model.Event {
	stats := pf.ChampionStats
	damage := pf.DamageStats

	ev := &model.Event{
		MatchID:       matchID,
		Type:          model.EventParticipantFrame,
		Timestamp:     timestamp,
		ParticipantID: intPtr(participantID),

		ChampionStats:            &stats,
		DamageStats:              &damage,
		CurrentGold:              intPtr(pf.CurrentGold),
		GoldPerSecond:            intPtr(pf.GoldPerSecond),
		JungleMinionsKilled:      intPtr(pf.JungleMinionsKilled),
		Level:                    intPtr(pf.Level),
		MinionsKilled:            intPtr(pf.MinionsKilled),
		TimeEnemySpentControlled: int64Ptr(pf.TimeEnemySpentControlled),
		TotalGold:                intPtr(pf.TotalGold),
		XP:                       intPtr(pf.XP),
	}

	if pf.Position != nil {
		ev.PositionX = intPtr(pf.Position.X)
		ev.PositionY = intPtr(pf.Position.Y)
	}
	return ev
}

// eventFromRaw converts a discrete raw timeline event into the flat
// event model, applying the one-time field renames: the nested position
// becomes two scalar coordinates, creatorId/killerId fold into
// participantId, and the real-world timestamp is dropped in favor of
// the in-game one.
func eventFromRaw(matchID string, raw riot.TimelineEvent) *model.Event {
	ev := &model.Event{
		MatchID:   matchID,
		Type:      model.EventType(raw.Type),
		Timestamp: raw.Timestamp,

		TeamID:      raw.TeamID,
		WinningTeam: raw.WinningTeam,
		FeatType:    raw.FeatType,
		FeatValue:   raw.FeatValue,

		GoldGain:       raw.GoldGain,
		ShutdownBounty: raw.ShutdownBounty,
		Bounty:         raw.Bounty,

		ItemID:   raw.ItemID,
		AfterID:  raw.AfterID,
		BeforeID: raw.BeforeID,

		MonsterType:    raw.MonsterType,
		MonsterSubType: raw.MonsterSubType,
		Name:           raw.Name,

		KillerTeamID:            raw.KillerTeamID,
		KillStreakLength:        raw.KillStreakLength,
		KillType:                raw.KillType,
		MultiKillLength:         raw.MultiKillLength,
		VictimID:                raw.VictimID,
		AssistingParticipantIDs: append([]int(nil), raw.AssistingParticipantIDs...),
		VictimDamageDealt:       raw.VictimDamageDealt,
		VictimDamageReceived:    raw.VictimDamageReceived,

		BuildingType: raw.BuildingType,
		LaneType:     raw.LaneType,
		TowerType:    raw.TowerType,

		Level:       raw.Level,
		LevelUpType: raw.LevelUpType,
		SkillSlot:   raw.SkillSlot,

		WardType: raw.WardType,

		TransformType:   raw.TransformType,
		ActualStartTime: raw.ActualStartTime,
	}

	// Ward creators and killers are participants too; unify onto a
	// single participant column.
	switch {
	case raw.CreatorID != nil:
		ev.ParticipantID = raw.CreatorID
	case raw.KillerID != nil:
		ev.ParticipantID = raw.KillerID
	default:
		ev.ParticipantID = raw.ParticipantID
	}

	if raw.Position != nil {
		ev.PositionX = intPtr(raw.Position.X)
		ev.PositionY = intPtr(raw.Position.Y)
	}
	return ev
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }
