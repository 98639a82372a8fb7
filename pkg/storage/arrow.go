package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"github.com/gptilt/datasets/internal/model"
)

// columnKind is the inferred storage type of one record column.
type columnKind uint8

const (
	kindUnknown columnKind = iota
	kindInt64
	kindFloat64
	kindBool
	kindString
	kindIntList
)

// inferSchema scans a batch and infers each column's type from the
// non-null values it holds. Mixed integer/float columns widen to
// float64; any other mix degrades to string, with non-scalar values
// JSON-encoded. Columns that only ever hold nulls are typed as string.
func inferSchema(records []model.Record) ([]string, []columnKind) {
	kinds := make(map[string]columnKind)
	for _, rec := range records {
		for col, v := range rec {
			if v == nil {
				if _, ok := kinds[col]; !ok {
					kinds[col] = kindUnknown
				}
				continue
			}
			kinds[col] = mergeKind(kinds[col], kindOf(v))
		}
	}

	columns := make([]string, 0, len(kinds))
	for col := range kinds {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	out := make([]columnKind, len(columns))
	for i, col := range columns {
		k := kinds[col]
		if k == kindUnknown {
			k = kindString
		}
		out[i] = k
	}
	return columns, out
}

func kindOf(v any) columnKind {
	switch t := v.(type) {
	case int, int32, int64:
		return kindInt64
	case float64, float32:
		return kindFloat64
	case bool:
		return kindBool
	case string:
		return kindString
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return kindInt64
		}
		return kindFloat64
	case []int:
		return kindIntList
	default:
		return kindString
	}
}

func mergeKind(a, b columnKind) columnKind {
	if a == kindUnknown || a == b {
		return b
	}
	if b == kindUnknown {
		return a
	}
	if (a == kindInt64 && b == kindFloat64) || (a == kindFloat64 && b == kindInt64) {
		return kindFloat64
	}
	return kindString
}

func arrowType(k columnKind) arrow.DataType {
	switch k {
	case kindInt64:
		return arrow.PrimitiveTypes.Int64
	case kindFloat64:
		return arrow.PrimitiveTypes.Float64
	case kindBool:
		return arrow.FixedWidthTypes.Boolean
	case kindIntList:
		return arrow.ListOf(arrow.PrimitiveTypes.Int64)
	default:
		return arrow.BinaryTypes.String
	}
}

// RecordConversionError describes one record dropped during Arrow
// conversion because a value could not be coerced to its column type.
type RecordConversionError struct {
	Index  int
	Column string
	Err    error
}

func (e *RecordConversionError) Error() string {
	return fmt.Sprintf("record %d column %q: %v", e.Index, e.Column, e.Err)
}

func (e *RecordConversionError) Unwrap() error { return e.Err }

// toArrow converts a batch of records into one Arrow record with an
// inferred schema. Records whose values cannot be coerced to the
// inferred column types are skipped and reported individually, so one
// malformed record never poisons the batch.
func toArrow(alloc memory.Allocator, records []model.Record) (arrow.Record, []*RecordConversionError, error) {
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty batch")
	}

	columns, kinds := inferSchema(records)
	fields := make([]arrow.Field, len(columns))
	for i, col := range columns {
		fields[i] = arrow.Field{Name: col, Type: arrowType(kinds[i]), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(alloc, schema)
	defer builder.Release()

	var dropped []*RecordConversionError
	rows := 0

next:
	for idx, rec := range records {
		// Coerce the whole row before appending anything, so a bad
		// value never leaves the builders half-filled.
		values := make([]any, len(columns))
		for i, col := range columns {
			v, err := coerce(rec[col], kinds[i])
			if err != nil {
				dropped = append(dropped, &RecordConversionError{Index: idx, Column: col, Err: err})
				continue next
			}
			values[i] = v
		}

		for i := range columns {
			appendValue(builder.Field(i), kinds[i], values[i])
		}
		rows++
	}

	if rows == 0 {
		return nil, dropped, fmt.Errorf("all %d records failed conversion", len(records))
	}
	return builder.NewRecord(), dropped, nil
}

// coerce converts one raw record value to the Go representation of its
// column kind, or nil for null.
func coerce(v any, k columnKind) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch k {
	case kindInt64:
		switch t := v.(type) {
		case int:
			return int64(t), nil
		case int32:
			return int64(t), nil
		case int64:
			return t, nil
		case json.Number:
			return t.Int64()
		}

	case kindFloat64:
		switch t := v.(type) {
		case int:
			return float64(t), nil
		case int32:
			return float64(t), nil
		case int64:
			return float64(t), nil
		case float32:
			return float64(t), nil
		case float64:
			return t, nil
		case json.Number:
			return t.Float64()
		}

	case kindBool:
		if t, ok := v.(bool); ok {
			return t, nil
		}

	case kindString:
		switch t := v.(type) {
		case string:
			return t, nil
		case json.Number:
			return t.String(), nil
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encode %T: %w", v, err)
			}
			return string(encoded), nil
		}

	case kindIntList:
		if t, ok := v.([]int); ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %T", v)
}

func appendValue(b array.Builder, k columnKind, v any) {
	if v == nil {
		b.AppendNull()
		return
	}

	switch k {
	case kindInt64:
		b.(*array.Int64Builder).Append(v.(int64))
	case kindFloat64:
		b.(*array.Float64Builder).Append(v.(float64))
	case kindBool:
		b.(*array.BooleanBuilder).Append(v.(bool))
	case kindString:
		b.(*array.StringBuilder).Append(v.(string))
	case kindIntList:
		lb := b.(*array.ListBuilder)
		vb := lb.ValueBuilder().(*array.Int64Builder)
		lb.Append(true)
		for _, n := range v.([]int) {
			vb.Append(int64(n))
		}
	}
}
