package transform

import (
	"fmt"

	"github.com/gptilt/datasets/internal/model"
	"github.com/gptilt/datasets/pkg/riot"
)

// matchDroppedFields are match-level attributes with no analytic value
// or redundant with better fields (gameStartTimestamp supersedes
// gameCreation).
var matchDroppedFields = []string{
	"gameCreation",
	"gameMode",
	"gameName",
	"gameType",
	"mapId",
	"queueId",
}

// participantDroppedFields are participant attributes with no analytic
// value: raw score placeholders, mode-specific augments, challenge and
// mission blobs, and free-text display names.
var participantDroppedFields = []string{
	"PlayerScore0", "PlayerScore1",
	"PlayerScore2", "PlayerScore3",
	"PlayerScore4", "PlayerScore5",
	"PlayerScore6", "PlayerScore7",
	"PlayerScore8", "PlayerScore9",
	"PlayerScore10", "PlayerScore11",
	"playerAugment1", "playerAugment2",
	"playerAugment3", "playerAugment4",
	"playerAugment5", "playerAugment6",
	"challenges", "missions",
	"riotIdGameName", "riotIdTagline",
}

// NormalizeMatch flattens a raw match summary into one match record and
// one record per participant.
//
// Team sub-records are lifted out of the nested structure: feat states,
// objective first/kill counters, and the win flag land on the match
// record under team_<id>_ prefixes, and the winning team's identifier
// is recorded as winner_team_id. Each participant gains the ban and
// pick turn of its draft slot (seats 1-5 map to one team's bans 0-4,
// seats 6-10 to the other's, indexed by seat mod 5) and its rune pages
// flattened to individually named fields.
//
// A participant referencing a team absent from the team list is a
// structural error: the match is malformed upstream and must not be
// silently defaulted.
func NormalizeMatch(matchID, region string, m *riot.Match) (model.Record, []model.Record, error) {
	if m == nil || m.Info.Fields == nil {
		return nil, nil, riot.ErrMissingInfo
	}

	match := model.Record(m.Info.Fields).Clone()
	for _, key := range matchDroppedFields {
		delete(match, key)
	}
	match["matchId"] = matchID
	match["region"] = region

	teams := make(map[int]riot.Team, len(m.Info.Teams))
	for _, team := range m.Info.Teams {
		teams[team.TeamID] = team

		prefix := fmt.Sprintf("team_%d_", team.TeamID)
		for featType, feat := range team.Feats {
			match[prefix+featType] = feat.FeatState
		}
		for name, objective := range team.Objectives {
			match[prefix+name+"_first"] = objective.First
			match[prefix+name+"_kills"] = objective.Kills
		}
		if team.Win {
			match["winner_team_id"] = team.TeamID
		}
	}

	participants := make([]model.Record, 0, len(m.Info.Participants))
	for i, p := range m.Info.Participants {
		team, ok := teams[p.TeamID]
		if !ok {
			return nil, nil, fmt.Errorf(
				"participant %d references team %d: %w",
				p.ParticipantID, p.TeamID, riot.ErrUnknownTeam,
			)
		}

		rec := model.Record(p.Fields).Clone()
		for _, key := range participantDroppedFields {
			delete(rec, key)
		}
		rec["matchId"] = matchID

		// Draft order is stable: this seat's ban is the team's ban at
		// the same slot.
		if slot := i % 5; slot < len(team.Bans) {
			rec["ban"] = team.Bans[slot].ChampionID
			rec["pickTurn"] = team.Bans[slot].PickTurn
		}

		flattenRunes(rec, p.Perks)
		participants = append(participants, rec)
	}

	return match, participants, nil
}

// flattenRunes replaces the nested perks structure with individually
// named rune columns: rune_primary_<slot>, rune_secondary_<slot>, and
// rune_shard_<category>.
func flattenRunes(rec model.Record, perks riot.Perks) {
	delete(rec, "perks")

	if len(perks.Styles) > 0 {
		for j, sel := range perks.Styles[0].Selections {
			rec[fmt.Sprintf("rune_primary_%d", j)] = sel.Perk
		}
	}
	if len(perks.Styles) > 1 {
		for j, sel := range perks.Styles[1].Selections {
			rec[fmt.Sprintf("rune_secondary_%d", j)] = sel.Perk
		}
	}
	for category, shard := range perks.StatPerks {
		rec["rune_shard_"+category] = shard
	}
}
