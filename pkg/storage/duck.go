package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// Prober answers idempotency queries against already-flushed Parquet
// files using an in-memory DuckDB instance.
type Prober struct {
	store *ParquetStore
	db    *sql.DB
}

// NewProber opens an in-memory DuckDB connection over the store.
func NewProber(store *ParquetStore) (*Prober, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Prober{store: store, db: db}, nil
}

// Close releases the DuckDB connection.
func (p *Prober) Close() error {
	return p.db.Close()
}

// HasRecordsInAllTables reports whether the match already has at least
// one record in every given table, counting both flushed Parquet files
// and records still sitting in the store's buffers. A match present in
// only some tables reports false so a rerun can repair it.
func (p *Prober) HasRecordsInAllTables(ctx context.Context, matchID, region string, tables []string) (bool, error) {
	for _, table := range tables {
		found, err := p.hasRecords(ctx, table, region, matchID)
		if err != nil {
			return false, err
		}
		if !found && !p.bufferHasMatch(table, region, matchID) {
			return false, nil
		}
	}
	return true, nil
}

func (p *Prober) hasRecords(ctx context.Context, table, region, matchID string) (bool, error) {
	dir := p.store.PartitionDir(table, region)
	files, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	if err != nil || len(files) == 0 {
		return false, nil
	}

	glob := filepath.Join(dir, "*.parquet")
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM read_parquet('%s') WHERE "matchId" = ?`,
		strings.ReplaceAll(glob, "'", "''"),
	)

	var count int64
	if err := p.db.QueryRowContext(ctx, query, matchID).Scan(&count); err != nil {
		return false, fmt.Errorf("probe %s: %w", table, err)
	}
	return count > 0, nil
}

func (p *Prober) bufferHasMatch(table, region, matchID string) bool {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	for _, rec := range p.store.buffers[partitionKey{table, region}] {
		if id, ok := rec.String("matchId"); ok && id == matchID {
			return true
		}
	}
	return false
}
