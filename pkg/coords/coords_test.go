package coords

import (
	"strings"
	"testing"
)

func TestMirror(t *testing.T) {
	center := Point{X: 7425, Y: 7425}
	baron := Point{X: 5007, Y: 10471}

	got := Mirror(center, baron)
	want := Point{X: 9843, Y: 4379}
	if got != want {
		t.Fatalf("Mirror = %+v, want %+v", got, want)
	}

	// Mirroring twice returns the original point.
	if back := Mirror(center, got); back != baron {
		t.Fatalf("double mirror = %+v, want %+v", back, baron)
	}
}

func TestDefaultTables(t *testing.T) {
	buildings := DefaultBuildings()
	for _, name := range []string{MapCenter, OrderSpawnGate, ChaosSpawnGate} {
		if _, ok := buildings.Lookup(name); !ok {
			t.Errorf("buildings missing %q", name)
		}
	}

	camps := DefaultCamps()
	dragon, ok := camps.Lookup(DragonPit)
	if !ok {
		t.Fatal("camps missing dragon pit")
	}

	center, _ := buildings.Lookup(MapCenter)
	baron, _ := camps.Lookup(BaronPit)
	if want := Mirror(center, baron); dragon != want {
		t.Errorf("dragon pit = %+v, want mirrored baron %+v", dragon, want)
	}
}

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(`{"Baron": [5007, 10471], "Dragon": [9843.5, 4379.5]}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p, ok := table.Lookup("Baron"); !ok || p != (Point{X: 5007, Y: 10471}) {
		t.Errorf("Baron = %+v, %v", p, ok)
	}
	if p, ok := table.Lookup("Dragon"); !ok || p != (Point{X: 9843.5, Y: 4379.5}) {
		t.Errorf("Dragon = %+v, %v", p, ok)
	}
	if _, ok := table.Lookup("Herald"); ok {
		t.Error("Lookup of absent name should report false")
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"Baron": "not a point"}`)); err == nil {
		t.Fatal("Load should reject non-array values")
	}
}
