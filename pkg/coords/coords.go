// Package coords provides the static map-coordinate lookup tables used
// for fallback event positioning: building locations (spawn gates,
// turrets, nexus) and jungle camp / objective pit locations, keyed by
// symbolic name.
package coords

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Point is a 2D map coordinate. Map-geometry sources use fractional
// units; event positions round to integers.
type Point struct {
	X float64
	Y float64
}

// Table maps a symbolic location name to its coordinates.
type Table map[string]Point

// Lookup returns the coordinates for a name.
func (t Table) Lookup(name string) (Point, bool) {
	p, ok := t[name]
	return p, ok
}

// Mirror reflects a point through a center point: 2*center - p.
// The Dragon pit is derived by mirroring the Baron pit through the
// map's center locator.
func Mirror(center, p Point) Point {
	return Point{
		X: 2*center.X - p.X,
		Y: 2*center.Y - p.Y,
	}
}

// Load reads a table serialized as {"name": [x, y], ...}.
func Load(r io.Reader) (Table, error) {
	var raw map[string][2]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("coords: decoding table: %w", err)
	}

	t := make(Table, len(raw))
	for name, xy := range raw {
		t[name] = Point{X: xy[0], Y: xy[1]}
	}
	return t, nil
}

// Write serializes a table as {"name": [x, y], ...}.
func (t Table) Write(w io.Writer) error {
	raw := make(map[string][2]float64, len(t))
	for name, p := range t {
		raw[name] = [2]float64{p.X, p.Y}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(raw)
}

// LoadFile reads a table from a JSON file on disk.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("coords: opening table: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// WriteFile serializes a table to a JSON file on disk.
func (t Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("coords: creating table file: %w", err)
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Well-known location names used by the engine.
const (
	MapCenter      = "Locator_Map_Center"
	OrderSpawnGate = "OrderSpawnGate"
	ChaosSpawnGate = "ChaosSpawnGate"
	BaronPit       = "Baron"
	DragonPit      = "Dragon"
)

// DefaultBuildings returns a built-in building table covering the
// locations the engine needs when the caller supplies none.
func DefaultBuildings() Table {
	return Table{
		MapCenter:      {X: 7425, Y: 7425},
		OrderSpawnGate: {X: 405, Y: 425},
		ChaosSpawnGate: {X: 14445, Y: 14425},
	}
}

// DefaultCamps returns a built-in camp/objective table. The Dragon pit
// is the Baron pit mirrored through the map center.
func DefaultCamps() Table {
	buildings := DefaultBuildings()
	camps := Table{
		BaronPit: {X: 5007, Y: 10471},
	}
	camps[DragonPit] = Mirror(buildings[MapCenter], camps[BaronPit])
	return camps
}
