// Package storage persists match records: raw payloads as JSON and
// processed tables as hive-partitioned Parquet files.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/compress"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"
	"github.com/google/uuid"

	"github.com/gptilt/datasets/internal/model"
)

// CompressionType represents Parquet compression options.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionSnappy
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

// String returns the compression type name.
func (c CompressionType) String() string {
	switch c {
	case CompressionSnappy:
		return "snappy"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// ParseCompression parses a compression type string.
func ParseCompression(s string) CompressionType {
	switch s {
	case "snappy":
		return CompressionSnappy
	case "gzip":
		return CompressionGzip
	case "zstd":
		return CompressionZstd
	case "lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

func (c CompressionType) codec() compress.Compression {
	switch c {
	case CompressionSnappy:
		return compress.Codecs.Snappy
	case CompressionGzip:
		return compress.Codecs.Gzip
	case CompressionZstd:
		return compress.Codecs.Zstd
	case CompressionLZ4:
		return compress.Codecs.Lz4
	default:
		return compress.Codecs.Uncompressed
	}
}

// ParquetStore buffers record batches per (table, region) partition and
// writes each buffer to its own Parquet file on Flush. Safe for
// concurrent use; workers append batches while one of them flushes.
type ParquetStore struct {
	root        string
	dataset     string
	compression CompressionType
	allocator   memory.Allocator

	mu      sync.Mutex
	buffers map[partitionKey][]model.Record
	flushed int64
	dropped []*RecordConversionError
}

type partitionKey struct {
	table  string
	region string
}

// NewParquetStore creates a store rooted at root/dataset.
func NewParquetStore(root, dataset string, compression CompressionType) *ParquetStore {
	return &ParquetStore{
		root:        root,
		dataset:     dataset,
		compression: compression,
		allocator:   memory.NewGoAllocator(),
		buffers:     make(map[partitionKey][]model.Record),
	}
}

// PartitionDir returns the directory holding one table partition:
// root/dataset/table/region=<region>.
func (s *ParquetStore) PartitionDir(table, region string) string {
	return filepath.Join(s.root, s.dataset, table, "region="+region)
}

// StoreBatch appends records to the in-memory buffer of one partition.
func (s *ParquetStore) StoreBatch(table, region string, records []model.Record) {
	if len(records) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := partitionKey{table, region}
	s.buffers[key] = append(s.buffers[key], records...)
}

// Buffered reports how many records one partition currently buffers.
func (s *ParquetStore) Buffered(table, region string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffers[partitionKey{table, region}])
}

// Flush writes every non-empty buffer to a new Parquet file and clears
// the buffers. Records dropped during Arrow conversion are retained for
// DroppedRecords; partitions that fail wholesale abort the flush.
func (s *ParquetStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for key, records := range s.buffers {
		if len(records) == 0 {
			continue
		}
		if err := s.writePartition(key, records); err != nil {
			errs = append(errs, fmt.Errorf("flush %s/%s: %w", key.table, key.region, err))
			continue
		}
		delete(s.buffers, key)
	}
	return errors.Join(errs...)
}

func (s *ParquetStore) writePartition(key partitionKey, records []model.Record) error {
	rec, dropped, err := toArrow(s.allocator, records)
	s.dropped = append(s.dropped, dropped...)
	if err != nil {
		return err
	}
	defer rec.Release()

	dir := s.PartitionDir(key.table, key.region)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create partition dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+".parquet")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	writerProps := parquet.NewWriterProperties(
		parquet.WithCompression(s.compression.codec()),
		parquet.WithDictionaryDefault(true),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	w, err := pqarrow.NewFileWriter(rec.Schema(), f, writerProps, arrowProps)
	if err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("create parquet writer: %w", err)
	}

	if err := w.Write(rec); err != nil {
		w.Close()
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write record batch: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close parquet file: %w", err)
	}

	s.flushed += rec.NumRows()
	return nil
}

// RowsWritten returns the total number of rows flushed to disk.
func (s *ParquetStore) RowsWritten() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushed
}

// DroppedRecords returns the records dropped during Arrow conversion.
func (s *ParquetStore) DroppedRecords() []*RecordConversionError {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*RecordConversionError, len(s.dropped))
	copy(out, s.dropped)
	return out
}
