package output

import (
	"encoding/json"
	"strings"
	"testing"
)

type testRecord struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Tags    []string `json:"tags,omitempty"`
	Private bool     `json:"private"`
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"json", "jsonl", "csv", "tsv", "human", "JSON", "Human"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", name, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) should fail")
	}
}

func TestWriteJSONSingleRecord(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	opts := Options{Format: FormatJSON}
	if err := opts.Write(&sb, testRecord{ID: 1, Name: "ride"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["name"] != "ride" {
		t.Errorf("name = %v", decoded["name"])
	}
	// A single record stays an object, not a one-element array.
	if strings.HasPrefix(strings.TrimSpace(sb.String()), "[") {
		t.Error("single record rendered as array")
	}
}

func TestWriteJSONListAndProjection(t *testing.T) {
	t.Parallel()

	records := []testRecord{
		{ID: 1, Name: "ride", Tags: []string{"road"}},
		{ID: 2, Name: "run"},
	}

	var sb strings.Builder
	opts := Options{Format: FormatJSON, Fields: []string{"id", "name"}}
	if err := opts.Write(&sb, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d records", len(decoded))
	}
	if _, ok := decoded[0]["tags"]; ok {
		t.Error("projection should drop unselected fields")
	}
	if decoded[0]["id"] != float64(1) {
		t.Errorf("id = %v", decoded[0]["id"])
	}
}

func TestWriteJSONL(t *testing.T) {
	t.Parallel()

	records := []testRecord{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}

	var sb strings.Builder
	opts := Options{Format: FormatJSONL}
	if err := opts.Write(&sb, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(line), &decoded); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	records := []testRecord{
		{ID: 1, Name: "ride", Tags: []string{"road", "hilly"}, Private: true},
		{ID: 2, Name: "run"},
	}

	var sb strings.Builder
	opts := Options{Format: FormatCSV, Fields: []string{"id", "name", "tags"}}
	if err := opts.Write(&sb, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "id,name,tags" {
		t.Errorf("header = %q", lines[0])
	}
	// Nested values are embedded as JSON.
	if !strings.Contains(lines[1], `road`) {
		t.Errorf("row = %q", lines[1])
	}
	// Missing tags render as an empty cell.
	if !strings.HasSuffix(lines[2], ",") {
		t.Errorf("row = %q, want trailing empty cell", lines[2])
	}
}

func TestWriteCSVNoHeader(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	opts := Options{Format: FormatCSV, Fields: []string{"id", "name"}, NoHeader: true}
	if err := opts.Write(&sb, []testRecord{{ID: 7, Name: "x"}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := strings.TrimRight(sb.String(), "\n"); got != "7,x" {
		t.Errorf("output = %q", got)
	}
}

func TestWriteTSVUsesTabs(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	opts := Options{Format: FormatTSV, Fields: []string{"id", "name"}}
	if err := opts.Write(&sb, []testRecord{{ID: 7, Name: "x"}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if lines[0] != "id\tname" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "7\tx" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteHumanTable(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	opts := Options{Format: FormatHuman, Fields: []string{"id", "name", "tags"}, NoColor: true}
	records := []testRecord{{ID: 1, Name: "ride"}}
	if err := opts.Write(&sb, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "ID") || !strings.Contains(out, "NAME") {
		t.Errorf("headers missing: %q", out)
	}
	// Absent values render as a dash.
	if !strings.Contains(out, "-") {
		t.Errorf("missing value marker absent: %q", out)
	}
}

func TestWriteEmptyList(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatJSONL, FormatCSV, FormatTSV, FormatHuman} {
		var sb strings.Builder
		opts := Options{Format: format}
		if err := opts.Write(&sb, []testRecord{}); err != nil {
			t.Errorf("Write(%s) error = %v", format, err)
		}
		if sb.Len() != 0 {
			t.Errorf("Write(%s) produced output for empty list: %q", format, sb.String())
		}
	}
}

func TestColumnsSortedWithoutProjection(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	opts := Options{Format: FormatCSV}
	if err := opts.Write(&sb, []testRecord{{ID: 1, Name: "a", Private: false}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	header := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")[0]
	if header != "id,name,private" {
		t.Errorf("header = %q, want sorted key union", header)
	}
}

func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	if got := FormatDuration(3725); got != "1:02:05" {
		t.Errorf("FormatDuration(3725) = %q", got)
	}
	if got := FormatDuration(95); got != "1:35" {
		t.Errorf("FormatDuration(95) = %q", got)
	}
	if got := FormatDistance(12345); got != "12.3 km" {
		t.Errorf("FormatDistance(12345) = %q", got)
	}
	if got := FormatDistance(850); got != "850 m" {
		t.Errorf("FormatDistance(850) = %q", got)
	}
	if got := FormatTime(0); got != "-" {
		t.Errorf("FormatTime(0) = %q", got)
	}
}
