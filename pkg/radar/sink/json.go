package sink

import (
	"encoding/json"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	runID   string
	sampled bool
}

// WithJSONRunID records the pipeline run that produced the layout.
func WithJSONRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithJSONSampled includes each entry's position before relaxation, which
// is handy when tuning the collision constants.
func WithJSONSampled() JSONOption { return func(r *jsonRenderer) { r.sampled = true } }

type jsonOutput struct {
	RunID     string         `json:"run_id,omitempty"`
	Title     string         `json:"title,omitempty"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Seed      int64          `json:"seed"`
	Order     []int          `json:"order"`
	Quadrants []jsonQuadrant `json:"quadrants"`
	Rings     []jsonRing     `json:"rings"`
	Stats     jsonStats      `json:"stats"`
	Entries   []jsonEntry    `json:"entries"`
}

type jsonQuadrant struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type jsonRing struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color,omitempty"`
}

type jsonStats struct {
	Ticks            int     `json:"ticks"`
	MaxDisplacement  float64 `json:"max_displacement"`
	Converged        bool    `json:"converged"`
	ResidualOverlaps int     `json:"residual_overlaps"`
}

type jsonEntry struct {
	ID       int          `json:"id"`
	Label    string       `json:"label"`
	Quadrant int          `json:"quadrant"`
	Ring     int          `json:"ring"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Link     string       `json:"link,omitempty"`
	Status   chart.Status `json:"status,omitempty"`
	Active   bool         `json:"active,omitempty"`
	SampledX *float64     `json:"sampled_x,omitempty"`
	SampledY *float64     `json:"sampled_y,omitempty"`
}

// RenderJSON exports the settled layout as a pretty-printed JSON document.
// Entries keep their input order and carry their id, segment and settled
// coordinates (origin at the chart center, y down).
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	rs := settings(l.Config.Render)
	out := jsonOutput{
		RunID:   r.runID,
		Title:   l.Config.Title,
		Width:   rs.Width,
		Height:  rs.Height,
		Seed:    l.Config.Tuning.Seed,
		Order:   l.Config.Order,
		Entries: make([]jsonEntry, len(l.Placements)),
		Stats: jsonStats{
			Ticks:            l.Stats.Ticks,
			MaxDisplacement:  l.Stats.MaxDisplacement,
			Converged:        l.Stats.Converged,
			ResidualOverlaps: l.Stats.ResidualOverlaps,
		},
	}
	for i, q := range l.Config.Quadrants {
		out.Quadrants = append(out.Quadrants, jsonQuadrant{Index: i, Name: q.Name})
	}
	for i, ring := range l.Config.Rings {
		out.Rings = append(out.Rings, jsonRing{Index: i, Name: ring.Name, Radius: ring.Radius, Color: ring.Color})
	}
	for i, p := range l.Placements {
		e := jsonEntry{
			ID:       p.ID,
			Label:    p.Entry.Label,
			Quadrant: p.Entry.Quadrant,
			Ring:     p.Entry.Ring,
			X:        p.X,
			Y:        p.Y,
			Link:     p.Entry.Link,
			Status:   p.Entry.Status,
			Active:   p.Entry.Active,
		}
		if r.sampled {
			sx, sy := p.Sampled.X, p.Sampled.Y
			e.SampledX, e.SampledY = &sx, &sy
		}
		out.Entries[i] = e
	}

	return json.MarshalIndent(out, "", "  ")
}
