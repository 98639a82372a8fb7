package transform

import (
	"sort"

	"github.com/gptilt/datasets/internal/model"
)

// SlotCapacity bounds a simulated inventory: six unique item slots, one
// trinket slot, and one transient slot for a consumable bought into a
// full inventory (consumed instantly).
const SlotCapacity = 8

// worldAtlasItem is granted to both supports at game start by the
// support quest, tagged to participant 0 in raw data.
const worldAtlasItem = 3865

// Support seats, in routing preference order, for system-granted items.
var supportSeats = [2]int{5, 10}

type txnKind uint8

const (
	txnPurchase txnKind = iota
	txnSell
	txnDestroy
)

// txn is one applied inventory transaction, logged to support undo.
type txn struct {
	kind      txnKind
	timestamp int64
	itemID    int
}

// Inventory simulates one participant's item holdings as a count
// multiset plus the transaction log needed to revert purchases and
// sales. Counts never go below zero: raw data contains destroy events
// with no matching purchase (starting items) and these must not abort
// processing.
type Inventory struct {
	counts map[int]int
	log    []txn
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{counts: make(map[int]int)}
}

// Has reports whether the item is currently held.
func (inv *Inventory) Has(itemID int) bool {
	return inv.counts[itemID] > 0
}

// Count returns the held count for an item.
func (inv *Inventory) Count(itemID int) int {
	return inv.counts[itemID]
}

func (inv *Inventory) increment(itemID int) {
	inv.counts[itemID]++
}

func (inv *Inventory) decrement(itemID int) {
	if inv.counts[itemID] <= 1 {
		delete(inv.counts, itemID)
		return
	}
	inv.counts[itemID]--
}

// Apply processes one item transaction event against the inventory.
// Purchases, sales, and destructions are logged; an undo pops the most
// recent logged transaction and reverts it, including any destructions
// forced by an undone purchase at the same timestamp (inventory-full
// auto-consumption).
func (inv *Inventory) Apply(eventType model.EventType, timestamp int64, itemID *int) {
	item := 0
	if itemID != nil {
		item = *itemID
	}

	switch eventType {
	case model.EventItemPurchased:
		inv.log = append(inv.log, txn{txnPurchase, timestamp, item})
		inv.increment(item)

	case model.EventItemSold:
		inv.log = append(inv.log, txn{txnSell, timestamp, item})
		inv.decrement(item)

	case model.EventItemDestroyed:
		inv.log = append(inv.log, txn{txnDestroy, timestamp, item})
		inv.decrement(item)

	case model.EventItemUndo:
		inv.undo()
	}
}

// undo reverts the most recent logged transaction.
func (inv *Inventory) undo() {
	if len(inv.log) == 0 {
		return
	}

	last := inv.log[len(inv.log)-1]
	inv.log = inv.log[:len(inv.log)-1]

	switch last.kind {
	case txnPurchase:
		inv.decrement(last.itemID)
		// Revert destructions the purchase forced: walk the log
		// backwards while the timestamp matches.
		for len(inv.log) > 0 {
			prev := inv.log[len(inv.log)-1]
			if prev.kind != txnDestroy || prev.timestamp != last.timestamp {
				break
			}
			inv.increment(prev.itemID)
			inv.log = inv.log[:len(inv.log)-1]
		}

	case txnSell:
		inv.increment(last.itemID)
	}
}

// ItemsAndCounts exposes the inventory as two parallel fixed-length
// arrays: held item identifiers sorted ascending and their counts, both
// zero-padded to the slot capacity.
func (inv *Inventory) ItemsAndCounts() ([]int, []int) {
	ids := make([]int, 0, SlotCapacity)
	for itemID := range inv.counts {
		ids = append(ids, itemID)
	}
	sort.Ints(ids)

	counts := make([]int, 0, SlotCapacity)
	for _, itemID := range ids {
		counts = append(counts, inv.counts[itemID])
	}

	for len(ids) < SlotCapacity {
		ids = append(ids, 0)
	}
	for len(counts) < SlotCapacity {
		counts = append(counts, 0)
	}
	return ids, counts
}

// inventorySet tracks one inventory per participant for the duration of
// a single timeline pass.
type inventorySet map[int]*Inventory

func newInventorySet() inventorySet {
	return make(inventorySet)
}

func (s inventorySet) get(participantID int) *Inventory {
	inv, ok := s[participantID]
	if !ok {
		inv = NewInventory()
		s[participantID] = inv
	}
	return inv
}

// routeSystemItem resolves an item event tagged to participant 0. At
// timestamp zero the support quest grants the shared item to both
// supports in sequence; the event routes to whichever candidate seat
// does not hold the item yet, defaulting to the first candidate.
// Everything else stays on participant 0.
func (s inventorySet) routeSystemItem(ev *model.Event) int {
	if ev.Timestamp != 0 || !ev.Type.IsItem() {
		return 0
	}
	if ev.ItemID == nil || *ev.ItemID != worldAtlasItem {
		return 0
	}

	for _, seat := range supportSeats {
		if !s.get(seat).Has(worldAtlasItem) {
			return seat
		}
	}
	return supportSeats[0]
}
