// Package death computes champion death timers. The engine treats the
// timer as a pluggable collaborator; this package provides the default
// implementation: the per-level base respawn wait scaled by the time
// increase factor of the current game minute.
package death

import "math"

// baseRespawnWait is the base respawn wait in seconds, indexed by
// champion level (1-18).
var baseRespawnWait = [19]float64{
	0,
	10, 10, 12, 12, 14,
	16, 20, 25, 28, 32.5,
	35, 38.5, 42.5, 46, 49.5,
	52, 53.5, 55,
}

// Timer returns the death timer in milliseconds for a champion of the
// given level dying at the given game minute.
func Timer(level int, gameMinutes float64) int64 {
	if level < 1 {
		level = 1
	}
	if level > 18 {
		level = 18
	}

	seconds := baseRespawnWait[level] * (1 + timeIncreaseFactor(gameMinutes))
	return int64(math.Round(seconds * 1000))
}

// timeIncreaseFactor returns the fractional increase applied to the
// base respawn wait. It steps every half minute, in three brackets,
// and caps at 50%.
func timeIncreaseFactor(gameMinutes float64) float64 {
	var percent float64
	switch {
	case gameMinutes < 15:
		return 0
	case gameMinutes < 30:
		percent = math.Ceil(2*(gameMinutes-15)) * 0.425
	case gameMinutes < 45:
		percent = 12.75 + math.Ceil(2*(gameMinutes-30))*0.3
	default:
		percent = 21.75 + math.Ceil(2*(gameMinutes-45))*1.45
	}

	if percent > 50 {
		percent = 50
	}
	return percent / 100
}
