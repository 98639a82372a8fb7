// Package riot decodes the two raw JSON payloads produced per match:
// the match summary and the timeline. Structures the engine reasons
// about (teams, bans, perks, frames, events) are fully typed; the
// participant post-game blocks keep an open field bag so unmodeled
// upstream fields survive into the output records across game versions.
package riot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Match is the raw match summary payload.
type Match struct {
	Metadata Metadata  `json:"metadata"`
	Info     MatchInfo `json:"info"`
}

// Metadata is the section keyed under every payload carrying the
// canonical match identifier.
type Metadata struct {
	DataVersion  string   `json:"dataVersion"`
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

// MatchInfo holds the nested team and participant data plus every other
// match-level field as an open bag.
type MatchInfo struct {
	Teams        []Team
	Participants []Participant

	// Fields holds the remaining match-level attributes (duration,
	// timestamps, game version, ...). Numbers decode as json.Number.
	Fields map[string]any
}

// UnmarshalJSON decodes the typed sections and captures everything else
// into Fields.
func (i *MatchInfo) UnmarshalJSON(data []byte) error {
	var typed struct {
		Teams        []Team        `json:"teams"`
		Participants []Participant `json:"participants"`
	}
	if err := json.Unmarshal(data, &typed); err != nil {
		return fmt.Errorf("riot: decoding match info: %w", err)
	}

	fields, err := decodeFieldBag(data, "teams", "participants")
	if err != nil {
		return err
	}

	i.Teams = typed.Teams
	i.Participants = typed.Participants
	i.Fields = fields
	return nil
}

// Team is one of the two team sub-records of the match summary.
type Team struct {
	TeamID     int                  `json:"teamId"`
	Win        bool                 `json:"win"`
	Bans       []Ban                `json:"bans"`
	Feats      map[string]FeatState `json:"feats"`
	Objectives map[string]Objective `json:"objectives"`
}

// Ban is a champion ban at a given draft turn.
type Ban struct {
	ChampionID int `json:"championId"`
	PickTurn   int `json:"pickTurn"`
}

// FeatState is the end-of-game state of one feat of strength.
type FeatState struct {
	FeatState int `json:"featState"`
}

// Objective is a team's aggregate outcome for one objective type.
type Objective struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}

// Participant is one seat of the match summary. The draft-relevant
// fields are typed; the full post-game stat block lives in Fields.
type Participant struct {
	ParticipantID int
	TeamID        int
	ChampionName  string
	Perks         Perks

	// Fields holds the complete participant record as decoded,
	// including the typed fields above. Numbers decode as json.Number.
	Fields map[string]any
}

// UnmarshalJSON decodes the typed fields and keeps the open bag.
func (p *Participant) UnmarshalJSON(data []byte) error {
	var typed struct {
		ParticipantID int    `json:"participantId"`
		TeamID        int    `json:"teamId"`
		ChampionName  string `json:"championName"`
		Perks         Perks  `json:"perks"`
	}
	if err := json.Unmarshal(data, &typed); err != nil {
		return fmt.Errorf("riot: decoding participant: %w", err)
	}

	fields, err := decodeFieldBag(data)
	if err != nil {
		return err
	}

	p.ParticipantID = typed.ParticipantID
	p.TeamID = typed.TeamID
	p.ChampionName = typed.ChampionName
	p.Perks = typed.Perks
	p.Fields = fields
	return nil
}

// Perks is a participant's rune selection: two style pages plus the
// stat shard block.
type Perks struct {
	StatPerks map[string]int `json:"statPerks"`
	Styles    []PerkStyle    `json:"styles"`
}

// PerkStyle is one rune page (primary or secondary).
type PerkStyle struct {
	Description string          `json:"description"`
	Style       int             `json:"style"`
	Selections  []PerkSelection `json:"selections"`
}

// PerkSelection is one rune slot of a page.
type PerkSelection struct {
	Perk int `json:"perk"`
	Var1 int `json:"var1"`
	Var2 int `json:"var2"`
	Var3 int `json:"var3"`
}

// QueueID returns the match's queue identifier, or zero when absent.
func (m *Match) QueueID() int {
	n, ok := m.Info.Fields["queueId"].(json.Number)
	if !ok {
		return 0
	}
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return int(v)
}

// DecodeMatch reads a raw match summary payload.
func DecodeMatch(r io.Reader) (*Match, error) {
	var m Match
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("riot: decoding match payload: %w", err)
	}
	if m.Metadata.MatchID == "" {
		return nil, ErrMissingMetadata
	}
	if m.Info.Fields == nil {
		return nil, ErrMissingInfo
	}
	return &m, nil
}

// decodeFieldBag decodes an object into a map with json.Number values,
// dropping the listed keys.
func decodeFieldBag(data []byte, drop ...string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var bag map[string]any
	if err := dec.Decode(&bag); err != nil {
		return nil, fmt.Errorf("riot: decoding field bag: %w", err)
	}
	for _, key := range drop {
		delete(bag, key)
	}
	return bag, nil
}
