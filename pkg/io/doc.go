// Package io provides JSON import and export for radar entry lists.
//
// # JSON Format
//
// An entry file is either a bare array of entries or an object with an
// "entries" array, the shape most radar data dumps already use:
//
//	{
//	  "entries": [
//	    {"quadrant": 0, "ring": 0, "label": "Kubernetes", "active": true},
//	    {"quadrant": 2, "ring": 1, "label": "Nomad", "status": "new"}
//	  ]
//	}
//
// # Entry Fields
//
// Required:
//   - quadrant: index into the chart's quadrants
//   - ring: index into the chart's rings
//   - label: display text, also shown in the legend
//
// Optional:
//   - link: URL opened from the blip and the legend
//   - status: "new", "moved" or "none" (the integers 0, 1 and 2 are accepted)
//   - active: whether the blip is drawn in its ring color
//   - size: blip size; enlarges the margin kept from the ring edges
//
// # Import
//
// Use [ImportEntries] to read a file, or [ReadEntries] to read from any
// io.Reader. Decoding checks the JSON shape and the status values only;
// whether a quadrant or ring exists depends on the chart, so range checks
// happen when the layout is built.
//
// # Export
//
// Use [ExportEntries] or [WriteEntries] to write entries back out as an
// indented {"entries": [...]} object. Settled positions are not part of
// this format; the JSON sink in [radar/sink] exports those.
//
// [radar/sink]: github.com/matzehuels/stackradar/pkg/radar/sink
package io
