package transform

import (
	"sort"

	"github.com/gptilt/datasets/internal/model"
)

// consumableItems are items consumed on use. A consumable bought into a
// full inventory is destroyed instantly at the same timestamp, so its
// purchase must sort before its destruction or the inventory simulation
// corrupts.
var consumableItems = map[int]bool{
	2003: true, // Health Potion
	2010: true, // Total Biscuit of Everlasting Will
	2031: true, // Refillable Potion
	2055: true, // Control Ward
	2138: true, // Elixir of Iron
	2139: true, // Elixir of Sorcery
	2140: true, // Elixir of Wrath
	2150: true, // Elixir of Skill
	2151: true, // Elixir of Avarice
	2152: true, // Elixir of Force
	3400: true, // Your Cut
	3513: true, // Eye of the Herald
}

// sortEvents imposes the total event order: timestamp ascending, then
// the type-based tie-break key. The sort is stable, so events equal
// under both keys keep their input order, which is itself deterministic.
func sortEvents(events []*model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp != events[j].Timestamp {
			return events[i].Timestamp < events[j].Timestamp
		}
		return tieBreakKey(events[i]) < tieBreakKey(events[j])
	})
}

// tieBreakKey is the secondary sort key for events sharing a timestamp.
// Ordinarily the event type string; for consumable item transactions
// the type order is overridden so PURCHASED sorts first and DESTROYED
// last.
func tieBreakKey(e *model.Event) string {
	if e.ItemID != nil && consumableItems[*e.ItemID] {
		switch e.Type {
		case model.EventItemPurchased:
			return "A"
		case model.EventItemDestroyed:
			return "Z"
		}
	}
	return string(e.Type)
}
