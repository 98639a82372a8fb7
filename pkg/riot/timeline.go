package riot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gptilt/datasets/internal/model"
)

// Timeline is the raw match timeline payload: ordered periodic frames,
// each carrying one snapshot per participant and the discrete gameplay
// events recorded during that interval.
type Timeline struct {
	Metadata Metadata     `json:"metadata"`
	Info     TimelineInfo `json:"info"`
}

// TimelineInfo is the info section of the timeline payload.
type TimelineInfo struct {
	EndOfGameResult string                `json:"endOfGameResult"`
	FrameInterval   int64                 `json:"frameInterval"`
	GameID          int64                 `json:"gameId"`
	Frames          []Frame               `json:"frames"`
	Participants    []TimelineParticipant `json:"participants"`
}

// TimelineParticipant maps a seat to its player identity.
type TimelineParticipant struct {
	ParticipantID int    `json:"participantId"`
	PUUID         string `json:"puuid"`
}

// Frame is one periodic snapshot interval.
type Frame struct {
	Timestamp         int64                       `json:"timestamp"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"`
	Events            []TimelineEvent             `json:"events"`
}

// ParticipantFrame is the per-participant state snapshot of a frame.
type ParticipantFrame struct {
	ChampionStats            model.ChampionStats `json:"championStats"`
	CurrentGold              int                 `json:"currentGold"`
	DamageStats              model.DamageStats   `json:"damageStats"`
	GoldPerSecond            int                 `json:"goldPerSecond"`
	JungleMinionsKilled      int                 `json:"jungleMinionsKilled"`
	Level                    int                 `json:"level"`
	MinionsKilled            int                 `json:"minionsKilled"`
	ParticipantID            int                 `json:"participantId"`
	Position                 *Position           `json:"position"`
	TimeEnemySpentControlled int64               `json:"timeEnemySpentControlled"`
	TotalGold                int                 `json:"totalGold"`
	XP                       int                 `json:"xp"`
}

// Position is the nested coordinate pair carried by raw events and
// frames; the engine flattens it to two scalar columns.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TimelineEvent is a discrete raw event. The field set is heterogeneous
// and type-dependent; absent fields stay nil.
type TimelineEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`

	// RealTimestamp is the wall-clock timestamp some lifecycle events
	// carry. Only the in-game timestamp is retained downstream.
	RealTimestamp *int64 `json:"realTimestamp,omitempty"`
	GameID        *int64 `json:"gameId,omitempty"`

	ParticipantID           *int      `json:"participantId,omitempty"`
	CreatorID               *int      `json:"creatorId,omitempty"`
	KillerID                *int      `json:"killerId,omitempty"`
	VictimID                *int      `json:"victimId,omitempty"`
	AssistingParticipantIDs []int     `json:"assistingParticipantIds,omitempty"`
	Position                *Position `json:"position,omitempty"`

	ItemID   *int `json:"itemId,omitempty"`
	AfterID  *int `json:"afterId,omitempty"`
	BeforeID *int `json:"beforeId,omitempty"`
	GoldGain *int `json:"goldGain,omitempty"`

	Level       *int    `json:"level,omitempty"`
	SkillSlot   *int    `json:"skillSlot,omitempty"`
	LevelUpType *string `json:"levelUpType,omitempty"`

	WardType *string `json:"wardType,omitempty"`

	KillStreakLength     *int                   `json:"killStreakLength,omitempty"`
	KillType             *string                `json:"killType,omitempty"`
	KillerTeamID         *int                   `json:"killerTeamId,omitempty"`
	MultiKillLength      *int                   `json:"multiKillLength,omitempty"`
	Bounty               *int                   `json:"bounty,omitempty"`
	ShutdownBounty       *int                   `json:"shutdownBounty,omitempty"`
	VictimDamageDealt    []model.DamageInstance `json:"victimDamageDealt,omitempty"`
	VictimDamageReceived []model.DamageInstance `json:"victimDamageReceived,omitempty"`

	MonsterType    *string `json:"monsterType,omitempty"`
	MonsterSubType *string `json:"monsterSubType,omitempty"`

	BuildingType *string `json:"buildingType,omitempty"`
	LaneType     *string `json:"laneType,omitempty"`
	TowerType    *string `json:"towerType,omitempty"`

	TeamID      *int `json:"teamId,omitempty"`
	WinningTeam *int `json:"winningTeam,omitempty"`
	FeatType    *int `json:"featType,omitempty"`
	FeatValue   *int `json:"featValue,omitempty"`

	ActualStartTime *int64  `json:"actualStartTime,omitempty"`
	Name            *string `json:"name,omitempty"`
	TransformType   *string `json:"transformType,omitempty"`
}

// DecodeTimeline reads a raw timeline payload.
func DecodeTimeline(r io.Reader) (*Timeline, error) {
	var tl Timeline
	if err := json.NewDecoder(r).Decode(&tl); err != nil {
		return nil, fmt.Errorf("riot: decoding timeline payload: %w", err)
	}
	if tl.Metadata.MatchID == "" {
		return nil, ErrMissingMetadata
	}
	if tl.Info.Frames == nil {
		return nil, ErrMissingInfo
	}
	return &tl, nil
}
