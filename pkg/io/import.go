package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/stackradar/pkg/errors"
	"github.com/matzehuels/stackradar/pkg/radar/chart"
)

// requiredKeys are the entry fields whose zero value is a valid index, so
// leaving them out would silently place the entry in quadrant or ring 0.
var requiredKeys = []string{"quadrant", "ring"}

// ReadEntries decodes a JSON entry list from r.
//
// The input is either an array of entries or an object whose "entries" key
// holds one. Unknown fields are ignored so that files written for other
// radar tools still load. An unknown status string fails the whole read,
// and an entry without a quadrant or ring fails with
// errors.ErrCodeInvalidEntry.
//
// ReadEntries does not close r.
func ReadEntries(r io.Reader) ([]chart.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read entries")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty entry file")
	}

	var raw []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode entries")
		}
	} else {
		var doc struct {
			Entries []json.RawMessage `json:"entries"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode entries")
		}
		if doc.Entries == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, `missing "entries" array`)
		}
		raw = doc.Entries
	}
	return decodeEntries(raw)
}

func decodeEntries(raw []json.RawMessage) ([]chart.Entry, error) {
	entries := make([]chart.Entry, len(raw))
	for i, msg := range raw {
		if err := json.Unmarshal(msg, &entries[i]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode entry %d", i)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(msg, &fields); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode entry %d", i)
		}
		for _, key := range requiredKeys {
			if !hasField(fields, key) {
				return nil, errors.New(errors.ErrCodeInvalidEntry,
					"entry %d (%q): missing %q", i, entries[i].Label, key)
			}
		}
	}
	return entries, nil
}

// hasField matches keys the way encoding/json does, ignoring case. A null
// value counts as missing.
func hasField(fields map[string]json.RawMessage, key string) bool {
	for k, v := range fields {
		if strings.EqualFold(k, key) && string(v) != "null" {
			return true
		}
	}
	return false
}

// ImportEntries reads the entry file at path.
// A missing file is reported with errors.ErrCodeFileNotFound.
func ImportEntries(path string) ([]chart.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadEntries(f)
}
