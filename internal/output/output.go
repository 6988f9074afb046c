// Package output renders API results in machine-readable and
// human-readable formats. Machine formats (json, jsonl, csv, tsv) carry
// the full record set; the human format is a table for the terminal.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/TwiN/go-color"
)

// Format identifies an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
	FormatTSV   Format = "tsv"
	FormatHuman Format = "human"
)

// ParseFormat validates a format name. Parsing is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON, FormatJSONL, FormatCSV, FormatTSV, FormatHuman:
		return Format(strings.ToLower(name)), nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected json, jsonl, csv, tsv or human)", name)
	}
}

// Options controls rendering.
type Options struct {
	Format   Format
	Fields   []string // projection; empty means all fields
	NoHeader bool     // csv/tsv only
	NoColor  bool
}

// Write renders data to w in the selected format. data may be a single
// struct, a pointer, a slice, or a map; it is normalized through its
// JSON representation so every format sees the same field names.
func (o Options) Write(w io.Writer, data any) error {
	records, single, err := normalize(data)
	if err != nil {
		return err
	}

	switch o.Format {
	case FormatJSON:
		return o.writeJSON(w, records, single)
	case FormatJSONL:
		return o.writeJSONL(w, records)
	case FormatCSV:
		return o.writeDelimited(w, records, ',')
	case FormatTSV:
		return o.writeDelimited(w, records, '\t')
	case FormatHuman:
		return o.writeHuman(w, records)
	default:
		return fmt.Errorf("unknown output format %q", o.Format)
	}
}

// normalize round-trips data through JSON into generic records. single
// reports whether the input was a lone record rather than a list.
func normalize(data any) (records []map[string]any, single bool, err error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("encoding output: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, false, fmt.Errorf("encoding output: %w", err)
	}

	switch v := value.(type) {
	case []any:
		records = make([]map[string]any, 0, len(v))
		for _, item := range v {
			record, ok := item.(map[string]any)
			if !ok {
				record = map[string]any{"value": item}
			}
			records = append(records, record)
		}
		return records, false, nil
	case map[string]any:
		return []map[string]any{v}, true, nil
	case nil:
		return nil, false, nil
	default:
		return []map[string]any{{"value": v}}, true, nil
	}
}

func (o Options) project(record map[string]any) map[string]any {
	if len(o.Fields) == 0 {
		return record
	}
	projected := make(map[string]any, len(o.Fields))
	for _, field := range o.Fields {
		if value, ok := record[field]; ok {
			projected[field] = value
		}
	}
	return projected
}

func (o Options) writeJSON(w io.Writer, records []map[string]any, single bool) error {
	var payload any
	if single {
		if len(records) == 0 {
			payload = nil
		} else {
			payload = o.project(records[0])
		}
	} else {
		projected := make([]map[string]any, 0, len(records))
		for _, record := range records {
			projected = append(projected, o.project(record))
		}
		payload = projected
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func (o Options) writeJSONL(w io.Writer, records []map[string]any) error {
	encoder := json.NewEncoder(w)
	for _, record := range records {
		if err := encoder.Encode(o.project(record)); err != nil {
			return err
		}
	}
	return nil
}

// columns returns the output column order: the explicit projection if
// set, otherwise the sorted union of all record keys.
func (o Options) columns(records []map[string]any) []string {
	if len(o.Fields) > 0 {
		return o.Fields
	}
	seen := make(map[string]struct{})
	for _, record := range records {
		for key := range record {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (o Options) writeDelimited(w io.Writer, records []map[string]any, comma rune) error {
	if len(records) == 0 {
		return nil
	}

	columns := o.columns(records)
	writer := csv.NewWriter(w)
	writer.Comma = comma

	if !o.NoHeader {
		if err := writer.Write(columns); err != nil {
			return err
		}
	}
	for _, record := range records {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = cellValue(record[column], "")
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (o Options) writeHuman(w io.Writer, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}

	columns := o.columns(records)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	headers := make([]string, len(columns))
	for i, column := range columns {
		header := strings.ToUpper(column)
		if !o.NoColor {
			header = color.InBold(header)
		}
		headers[i] = header
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, record := range records {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = cellValue(record[column], "-")
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// cellValue flattens a record value to a single cell. Nested objects
// and lists are re-encoded as compact JSON; missing/null values render
// as the format's empty marker.
func cellValue(value any, empty string) string {
	switch v := value.(type) {
	case nil:
		return empty
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return fmt.Sprintf("%t", v)
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	default:
		return fmt.Sprint(v)
	}
}
