package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
)

type document struct {
	Entries []chart.Entry `json:"entries"`
}

// WriteEntries encodes entries as an indented {"entries": [...]} object.
// The output can be read back with [ReadEntries].
func WriteEntries(w io.Writer, entries []chart.Entry) error {
	if entries == nil {
		entries = []chart.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Entries: entries}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportEntries writes entries to a JSON file at path.
func ExportEntries(entries []chart.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteEntries(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
