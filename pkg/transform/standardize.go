package transform

import (
	"github.com/gptilt/datasets/internal/model"
)

// eventIDColumn holds the sequential per-match event identifier assigned
// after the final sort.
const eventIDColumn = "eventId"

// standardize projects every event onto the union of all columns
// observed across the stream, with explicit nulls for fields an event
// does not carry, and assigns sequential event identifiers. Downstream
// columnar sinks require every record of a match to share one schema.
func standardize(events []*model.Event) []model.Record {
	sparse := make([]model.Record, 0, len(events))
	columns := map[string]struct{}{eventIDColumn: {}}

	for _, ev := range events {
		rec := ev.Record()
		for col := range rec {
			columns[col] = struct{}{}
		}
		sparse = append(sparse, rec)
	}

	records := make([]model.Record, 0, len(sparse))
	for i, rec := range sparse {
		full := make(model.Record, len(columns))
		for col := range columns {
			if v, ok := rec[col]; ok {
				full[col] = v
			} else {
				full[col] = nil
			}
		}
		full[eventIDColumn] = i
		records = append(records, full)
	}
	return records
}
