package coords

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CommunityDragon map-geometry sources for Summoner's Rift (map 11).
const (
	BuildingsURL = "https://raw.communitydragon.org/latest/game/data/maps/mapgeometry/map11/base.materials.bin.json"
	CampsURL     = "https://raw.communitydragon.org/latest/game/data/maps/mapgeometry/map11/a22.materials.bin.json"

	buildingsChunk = "Maps/MapGeometry/Map11/Chunks/SRX_MapObjects"
	campsChunk     = "{0395a48a}"
)

// buildingNames lists the map objects worth extracting: spawn gates,
// the center locator, nexus and inhibitor structures, and turrets.
var buildingNames = map[string]bool{
	MapCenter:                 true,
	"Turret_OrderTurretShrine": true,
	"Turret_ChaosTurretShrine": true,
	"Turret_OrderNexus":        true,
	"Turret_ChaosNexus":        true,
	"Turret_T1_C_01":           true,
	"Turret_T1_C_02":           true,
	"Turret_T2_C_01":           true,
	"Turret_T2_C_02":           true,
	"Barracks_T1_L1":           true,
	"Barracks_T1_C1":           true,
	"Barracks_T1_R1":           true,
	"Barracks_T2_L1":           true,
	"Barracks_T2_C1":           true,
	"Barracks_T2_R1":           true,
	"Turret_T1_C_03":           true,
	"Turret_T1_C_04":           true,
	"Turret_T1_C_05":           true,
	"Turret_T1_C_06":           true,
	"Turret_T1_C_07":           true,
	"Turret_T2_C_03":           true,
	"Turret_T2_C_04":           true,
	"Turret_T2_C_05":           true,
	"Turret_T1_L_02":           true,
	"Turret_T1_L_03":           true,
	"Turret_T2_L_01":           true,
	"Turret_T2_L_02":           true,
	"Turret_T2_L_03":           true,
	"Turret_T1_R_02":           true,
	"Turret_T1_R_03":           true,
	"Turret_T2_R_01":           true,
	"Turret_T2_R_02":           true,
	"Turret_T2_R_03":           true,
	OrderSpawnGate:             true,
	ChaosSpawnGate:             true,
}

type materialChunk struct {
	Items map[string]mapObject `json:"items"`
}

type mapObject struct {
	Name       string `json:"name"`
	Definition struct {
		CampName string `json:"CampName"`
	} `json:"definition"`
	Transform [][]float64 `json:"transform"`
}

// position extracts the (x, z) translation from a 4x4 transform.
func (o mapObject) position() (Point, bool) {
	if len(o.Transform) == 0 {
		return Point{}, false
	}
	row := o.Transform[len(o.Transform)-1]
	if len(row) < 3 {
		return Point{}, false
	}
	return Point{X: row[0], Y: row[2]}, true
}

// Fetcher builds the lookup tables from CommunityDragon map geometry.
// It lives outside the engine: tables are fetched once, written to
// disk, and handed to the engine as plain inputs.
type Fetcher struct {
	Client *http.Client

	// URL overrides, for tests and version pinning.
	BuildingsSource string
	CampsSource     string
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

// FetchBuildings retrieves the building coordinate table.
func (f *Fetcher) FetchBuildings(ctx context.Context) (Table, error) {
	url := f.BuildingsSource
	if url == "" {
		url = BuildingsURL
	}

	chunk, err := f.fetchChunk(ctx, url, buildingsChunk)
	if err != nil {
		return nil, err
	}

	t := make(Table)
	for _, obj := range chunk.Items {
		if !buildingNames[obj.Name] {
			continue
		}
		if p, ok := obj.position(); ok {
			t[obj.Name] = p
		}
	}
	return t, nil
}

// FetchCamps retrieves the jungle camp / objective pit table and
// derives the Dragon pit by mirroring Baron through the map center.
func (f *Fetcher) FetchCamps(ctx context.Context, buildings Table) (Table, error) {
	url := f.CampsSource
	if url == "" {
		url = CampsURL
	}

	chunk, err := f.fetchChunk(ctx, url, campsChunk)
	if err != nil {
		return nil, err
	}

	t := make(Table)
	for _, obj := range chunk.Items {
		if obj.Definition.CampName == "" {
			continue
		}
		if p, ok := obj.position(); ok {
			t[obj.Definition.CampName] = p
		}
	}

	center, haveCenter := buildings.Lookup(MapCenter)
	baron, haveBaron := t.Lookup(BaronPit)
	if haveCenter && haveBaron {
		t[DragonPit] = Mirror(center, baron)
	}
	return t, nil
}

func (f *Fetcher) fetchChunk(ctx context.Context, url, chunkName string) (*materialChunk, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("coords: building request: %w", err)
	}

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("coords: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coords: fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	var materials map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&materials); err != nil {
		return nil, fmt.Errorf("coords: decoding materials: %w", err)
	}

	raw, ok := materials[chunkName]
	if !ok {
		return nil, fmt.Errorf("coords: chunk %q not present in %s", chunkName, url)
	}

	var chunk materialChunk
	if err := json.Unmarshal(raw, &chunk); err != nil {
		return nil, fmt.Errorf("coords: decoding chunk %q: %w", chunkName, err)
	}
	return &chunk, nil
}
