// Package transform is the match timeline transformation engine. It
// converts raw per-match telemetry (a match summary plus a timeline of
// periodic snapshots and discrete events) into flat, analytics-ready
// records via two pure entry points: NormalizeMatch and
// BuildEventStream.
//
// The engine performs no I/O and holds no shared state: all inputs are
// in-memory values, all outputs are newly constructed records, and the
// only mutable state (per-participant inventories) is scoped to a
// single invocation. Callers may run invocations for distinct matches
// concurrently.
package transform

import (
	"github.com/gptilt/datasets/pkg/coords"
	"github.com/gptilt/datasets/pkg/death"
)

// TimerFunc computes a death timer in milliseconds from a champion
// level and the elapsed game minutes.
type TimerFunc func(level int, gameMinutes float64) int64

// Options configures one engine invocation.
type Options struct {
	deathTimer TimerFunc
	buildings  coords.Table
	camps      coords.Table
}

// Option customizes engine behavior.
type Option func(*Options)

// WithDeathTimer overrides the death-timer collaborator.
func WithDeathTimer(fn TimerFunc) Option {
	return func(o *Options) { o.deathTimer = fn }
}

// WithCoordinates supplies the static building and camp lookup tables
// used for fallback positioning. The engine treats them as read-only.
func WithCoordinates(buildings, camps coords.Table) Option {
	return func(o *Options) {
		o.buildings = buildings
		o.camps = camps
	}
}

func newOptions(opts []Option) *Options {
	o := &Options{
		deathTimer: death.Timer,
		buildings:  coords.DefaultBuildings(),
		camps:      coords.DefaultCamps(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
