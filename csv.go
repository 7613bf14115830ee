package translit

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// csvColumns maps CSV header names to Record fields. Reading accepts any
// subset in any order; writing emits all of them in this order.
var csvColumns = []struct {
	name string
	get  func(*Record) *string
}{
	{"id", func(r *Record) *string { return &r.ID }},
	{"period", func(r *Record) *string { return &r.Period }},
	{"genre", func(r *Record) *string { return &r.Genre }},
	{"subgenre", func(r *Record) *string { return &r.Subgenre }},
	{"language", func(r *Record) *string { return &r.Language }},
	{"transliteration", func(r *Record) *string { return &r.Transliteration }},
	{"transliteration_clean", func(r *Record) *string { return &r.Clean }},
	{"transliteration_final", func(r *Record) *string { return &r.Final }},
	{"glyph_names", func(r *Record) *string { return &r.SignNames }},
	{"glyphs", func(r *Record) *string { return &r.Glyphs }},
}

var countColumns = []struct {
	name string
	get  func(*Record) *int
}{
	{"resolved", func(r *Record) *int { return &r.Counts.Resolved }},
	{"unknown", func(r *Record) *int { return &r.Counts.Unknown }},
	{"special", func(r *Record) *int { return &r.Counts.Special }},
}

// ReadRecords reads a CSV corpus with a header row. Unknown columns are
// ignored; an "id" column is required.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	if _, ok := index["id"]; !ok {
		return nil, errors.New("read csv header: no id column")
	}

	var out []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		var rec Record
		for _, col := range csvColumns {
			if i, ok := index[col.name]; ok && i < len(row) {
				*col.get(&rec) = row[i]
			}
		}
		for _, col := range countColumns {
			i, ok := index[col.name]
			if !ok || i >= len(row) || row[i] == "" {
				continue
			}
			n, err := strconv.Atoi(row[i])
			if err != nil {
				line, _ := cr.FieldPos(i)
				return nil, fmt.Errorf("read csv line %d: %s: %w", line, col.name, err)
			}
			*col.get(&rec) = n
		}
		out = append(out, rec)
	}
}

// WriteRecords writes records as CSV with a header row.
func WriteRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(csvColumns)+len(countColumns))
	for _, col := range csvColumns {
		header = append(header, col.name)
	}
	for _, col := range countColumns {
		header = append(header, col.name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(header))
	for i := range records {
		rec := &records[i]
		for j, col := range csvColumns {
			row[j] = *col.get(rec)
		}
		for j, col := range countColumns {
			row[len(csvColumns)+j] = strconv.Itoa(*col.get(rec))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv record %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
