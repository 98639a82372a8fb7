package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RawStore reads and writes raw API payloads as one JSON file per
// match, laid out root/dataset/table/region=<region>/<matchID>.json so
// raw and processed data share the same partitioning scheme.
type RawStore struct {
	root    string
	dataset string
}

// NewRawStore creates a raw store rooted at root/dataset.
func NewRawStore(root, dataset string) *RawStore {
	return &RawStore{root: root, dataset: dataset}
}

// PartitionDir returns the directory holding one table partition.
func (s *RawStore) PartitionDir(table, region string) string {
	return filepath.Join(s.root, s.dataset, table, "region="+region)
}

func (s *RawStore) path(table, region, matchID string) string {
	return filepath.Join(s.PartitionDir(table, region), matchID+".json")
}

// ListMatches returns the match identifiers present in one partition,
// sorted, derived from the JSON file names.
func (s *RawStore) ListMatches(table, region string) ([]string, error) {
	entries, err := os.ReadDir(s.PartitionDir(table, region))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", table, region, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Open opens the raw payload of one match for reading.
func (s *RawStore) Open(table, region, matchID string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(table, region, matchID))
	if err != nil {
		return nil, fmt.Errorf("open raw %s/%s/%s: %w", table, region, matchID, err)
	}
	return f, nil
}

// WriteJSON persists one raw payload, creating the partition directory
// as needed.
func (s *RawStore) WriteJSON(table, region, matchID string, v any) error {
	dir := s.PartitionDir(table, region)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create partition dir: %w", err)
	}

	f, err := os.Create(s.path(table, region, matchID))
	if err != nil {
		return fmt.Errorf("create raw file: %w", err)
	}

	enc := json.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode raw %s: %w", matchID, err)
	}
	return f.Close()
}
