package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/stackradar/pkg/errors"
	"github.com/matzehuels/stackradar/pkg/radar/chart"
)

func TestReadEntries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []chart.Entry
	}{
		{
			name:  "bare array",
			input: `[{"quadrant": 1, "ring": 2, "label": "Terraform"}]`,
			want:  []chart.Entry{{Quadrant: 1, Ring: 2, Label: "Terraform"}},
		},
		{
			name:  "wrapped object",
			input: `{"title": "ignored", "entries": [{"quadrant": 3, "ring": 0, "label": "Go", "status": "new", "active": true}]}`,
			want:  []chart.Entry{{Quadrant: 3, Label: "Go", Status: chart.StatusNew, Active: true}},
		},
		{
			name:  "numeric status",
			input: `[{"quadrant": 0, "ring": 1, "label": "Rust", "status": 2, "size": 20}]`,
			want:  []chart.Entry{{Ring: 1, Label: "Rust", Status: chart.StatusMoved, Size: 20}},
		},
		{
			name:  "empty list",
			input: `{"entries": []}`,
			want:  []chart.Entry{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadEntries(strings.NewReader(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadEntriesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "  "},
		{"malformed", `[{"quadrant": }`},
		{"missing entries", `{"items": []}`},
		{"unknown status", `[{"quadrant": 0, "ring": 0, "label": "x", "status": "retired"}]`},
		{"status out of range", `[{"quadrant": 0, "ring": 0, "label": "x", "status": 7}]`},
		{"entry not an object", `[42]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEntries(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestReadEntriesRequiresSegment(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"no quadrant", `[{"ring": 1, "label": "Vault"}]`, `entry 0 ("Vault"): missing "quadrant"`},
		{"no ring", `{"entries": [{"quadrant": 0, "ring": 0, "label": "ok"}, {"quadrant": 2, "label": "Nomad"}]}`, `entry 1 ("Nomad"): missing "ring"`},
		{"null quadrant", `[{"quadrant": null, "ring": 0, "label": "Consul"}]`, `missing "quadrant"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEntries(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidEntry) {
				t.Fatalf("err = %v, want INVALID_ENTRY", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}

	got, err := ReadEntries(strings.NewReader(`[{"Quadrant": 2, "RING": 1, "label": "Linkerd"}]`))
	if err != nil {
		t.Fatalf("keys in other case should count: %v", err)
	}
	if got[0].Quadrant != 2 || got[0].Ring != 1 {
		t.Errorf("got %+v", got[0])
	}
}

func TestRoundTrip(t *testing.T) {
	entries := []chart.Entry{
		{Quadrant: 0, Ring: 0, Label: "Kubernetes", Link: "https://kubernetes.io", Active: true},
		{Quadrant: 2, Ring: 1, Label: "Nomad", Status: chart.StatusNew},
		{Quadrant: 3, Ring: 2, Label: "Swarm", Status: chart.StatusMoved, Size: 16},
	}
	var buf bytes.Buffer
	if err := WriteEntries(&buf, entries); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"status": "new"`) {
		t.Errorf("status not written by name:\n%s", buf.String())
	}
	got, err := ReadEntries(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, entries) {
		t.Errorf("round trip = %+v, want %+v", got, entries)
	}
}

func TestImportExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	entries := []chart.Entry{{Quadrant: 1, Ring: 1, Label: "Vault"}}
	if err := ExportEntries(entries, path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportEntries(path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, entries) {
		t.Errorf("got %+v", got)
	}

	_, err = ImportEntries(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteEntriesNil(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEntries(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"entries": []`) {
		t.Errorf("nil entries written as %q", buf.String())
	}
}
