// Package model defines the flat record types produced by the
// match timeline transformation engine.
package model

import "strings"

// EventType tags an event in the output stream. Raw timeline events keep
// the upstream type string; synthesized events use the derived constants.
type EventType string

const (
	// Periodic per-participant snapshot, materialized from timeline frames.
	EventParticipantFrame EventType = "PARTICIPANT_FRAME"

	// Item transactions.
	EventItemPurchased EventType = "ITEM_PURCHASED"
	EventItemSold      EventType = "ITEM_SOLD"
	EventItemDestroyed EventType = "ITEM_DESTROYED"
	EventItemUndo      EventType = "ITEM_UNDO"

	// Leveling.
	EventLevelUp      EventType = "LEVEL_UP"
	EventSkillLevelUp EventType = "SKILL_LEVEL_UP"

	// Kills and kill derivatives.
	EventChampionKill        EventType = "CHAMPION_KILL"
	EventChampionKilled      EventType = "CHAMPION_KILLED"
	EventChampionSpecialKill EventType = "CHAMPION_SPECIAL_KILL"
	EventBuildingKill        EventType = "BUILDING_KILL"
	EventEliteMonsterKill    EventType = "ELITE_MONSTER_KILL"
	EventTurretPlateDestroy  EventType = "TURRET_PLATE_DESTROYED"

	// Vision.
	EventWardPlaced EventType = "WARD_PLACED"
	EventWardKill   EventType = "WARD_KILL"

	// Objectives and team state.
	EventDragonSoulGiven   EventType = "DRAGON_SOUL_GIVEN"
	EventObjBountyPrestart EventType = "OBJECTIVE_BOUNTY_PRESTART"
	EventObjBountyStart    EventType = "OBJECTIVE_BOUNTY_START"
	EventFeatUpdate        EventType = "FEAT_UPDATE"
	EventChampionTransform EventType = "CHAMPION_TRANSFORM"

	// Game lifecycle.
	EventPauseEnd EventType = "PAUSE_END"
	EventGameEnd  EventType = "GAME_END"

	// Synthesized.
	EventRespawn EventType = "RESPAWN"
)

// IsItem reports whether the event is an item transaction.
func (t EventType) IsItem() bool {
	return strings.HasPrefix(string(t), "ITEM_")
}

// IsKill reports whether the event belongs to the kill family
// (CHAMPION_KILL, BUILDING_KILL, ELITE_MONSTER_KILL, ...).
func (t EventType) IsKill() bool {
	return strings.HasSuffix(string(t), "_KILL")
}

// AssistType derives the assist variant of a kill-family type
// (CHAMPION_KILL -> CHAMPION_ASSIST).
func (t EventType) AssistType() EventType {
	return EventType(strings.Replace(string(t), "KILL", "ASSIST", 1))
}

// Event is one flat, typed record in the output stream. Fields that do
// not apply to a given type stay nil and surface as nulls after schema
// standardization. Synthesis copies events and never mutates an already
// emitted record.
type Event struct {
	MatchID   string
	Type      EventType
	Timestamp int64

	// ParticipantID is the acting participant. Zero denotes a
	// system-granted event. creatorId/killerId from the raw schema are
	// folded into this field during conversion.
	ParticipantID *int

	// Position.
	PositionX *int
	PositionY *int

	// Team state.
	TeamID      *int
	WinningTeam *int
	FeatType    *int
	FeatValue   *int

	// Gold.
	CurrentGold    *int
	GoldGain       *int
	GoldPerSecond  *int
	ShutdownBounty *int
	TotalGold      *int
	Bounty         *int

	// Items.
	ItemID          *int
	AfterID         *int
	BeforeID        *int
	InventoryIDs    []int
	InventoryCounts []int

	// Monsters and jungle.
	JungleMinionsKilled *int
	MonsterType         *string
	MonsterSubType      *string
	Name                *string

	// Kills.
	KillerID                *int
	KillerTeamID            *int
	KillStreakLength        *int
	KillType                *string
	MultiKillLength         *int
	NumberOfAssists         *int
	VictimID                *int
	AssistingParticipantIDs []int
	VictimDamageDealt       []DamageInstance
	VictimDamageReceived    []DamageInstance

	// Buildings and lanes.
	BuildingType *string
	LaneType     *string
	TowerType    *string

	// Leveling.
	Level       *int
	LevelUpType *string
	SkillSlot   *int
	XP          *int

	// Vision.
	WardType *string

	// Participant frame stats.
	ChampionStats            *ChampionStats
	DamageStats              *DamageStats
	MinionsKilled            *int
	TimeEnemySpentControlled *int64

	// Transforms (Kayn et al.).
	TransformType *string

	// Synthesized fields.
	TimeSpentDead   *int64
	ActualStartTime *int64
}

// Clone returns a deep copy of the event. Slices are copied so the
// derived record can drop or rewrite them independently.
func (e *Event) Clone() *Event {
	c := *e
	c.InventoryIDs = append([]int(nil), e.InventoryIDs...)
	c.InventoryCounts = append([]int(nil), e.InventoryCounts...)
	c.AssistingParticipantIDs = append([]int(nil), e.AssistingParticipantIDs...)
	c.VictimDamageDealt = append([]DamageInstance(nil), e.VictimDamageDealt...)
	c.VictimDamageReceived = append([]DamageInstance(nil), e.VictimDamageReceived...)
	return &c
}

// Record flattens the event into a key/value record containing only the
// fields present on this event. The schema standardizer widens every
// record of a stream onto the union of these keys.
func (e *Event) Record() Record {
	r := Record{
		"matchId":   e.MatchID,
		"type":      string(e.Type),
		"timestamp": e.Timestamp,
	}

	putInt(r, "participantId", e.ParticipantID)
	putInt(r, "positionX", e.PositionX)
	putInt(r, "positionY", e.PositionY)
	putInt(r, "teamId", e.TeamID)
	putInt(r, "winningTeam", e.WinningTeam)
	putInt(r, "featType", e.FeatType)
	putInt(r, "featValue", e.FeatValue)
	putInt(r, "currentGold", e.CurrentGold)
	putInt(r, "goldGain", e.GoldGain)
	putInt(r, "goldPerSecond", e.GoldPerSecond)
	putInt(r, "shutdownBounty", e.ShutdownBounty)
	putInt(r, "totalGold", e.TotalGold)
	putInt(r, "bounty", e.Bounty)
	putInt(r, "itemId", e.ItemID)
	putInt(r, "afterId", e.AfterID)
	putInt(r, "beforeId", e.BeforeID)
	putInt(r, "jungleMinionsKilled", e.JungleMinionsKilled)
	putInt(r, "killerId", e.KillerID)
	putInt(r, "killerTeamId", e.KillerTeamID)
	putInt(r, "killStreakLength", e.KillStreakLength)
	putInt(r, "multiKillLength", e.MultiKillLength)
	putInt(r, "numberOfAssists", e.NumberOfAssists)
	putInt(r, "victimId", e.VictimID)
	putInt(r, "level", e.Level)
	putInt(r, "skillSlot", e.SkillSlot)
	putInt(r, "xp", e.XP)
	putInt(r, "minionsKilled", e.MinionsKilled)
	putInt64(r, "timeEnemySpentControlled", e.TimeEnemySpentControlled)
	putInt64(r, "timeSpentDead", e.TimeSpentDead)
	putInt64(r, "actualStartTime", e.ActualStartTime)
	putString(r, "monsterType", e.MonsterType)
	putString(r, "monsterSubType", e.MonsterSubType)
	putString(r, "name", e.Name)
	putString(r, "killType", e.KillType)
	putString(r, "buildingType", e.BuildingType)
	putString(r, "laneType", e.LaneType)
	putString(r, "towerType", e.TowerType)
	putString(r, "levelUpType", e.LevelUpType)
	putString(r, "wardType", e.WardType)
	putString(r, "transformType", e.TransformType)

	if e.InventoryIDs != nil {
		r["inventoryIds"] = e.InventoryIDs
	}
	if e.InventoryCounts != nil {
		r["inventoryCounts"] = e.InventoryCounts
	}
	if e.AssistingParticipantIDs != nil {
		r["assistingParticipantIds"] = e.AssistingParticipantIDs
	}
	if e.VictimDamageDealt != nil {
		r["victimDamageDealt"] = e.VictimDamageDealt
	}
	if e.VictimDamageReceived != nil {
		r["victimDamageReceived"] = e.VictimDamageReceived
	}
	if e.ChampionStats != nil {
		r["championStats"] = *e.ChampionStats
	}
	if e.DamageStats != nil {
		r["damageStats"] = *e.DamageStats
	}

	return r
}

func putInt(r Record, key string, v *int) {
	if v != nil {
		r[key] = *v
	}
}

func putInt64(r Record, key string, v *int64) {
	if v != nil {
		r[key] = *v
	}
}

func putString(r Record, key string, v *string) {
	if v != nil {
		r[key] = *v
	}
}
