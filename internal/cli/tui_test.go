package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/layout"
)

func sampleLayout(t *testing.T) layout.Layout {
	t.Helper()
	l, err := layout.Build(context.Background(), chart.Default(), sampleEntries)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func press(m InspectModel, key tea.KeyMsg) InspectModel {
	next, _ := m.Update(key)
	return next.(InspectModel)
}

var (
	keyDown = tea.KeyMsg{Type: tea.KeyDown}
	keyUp   = tea.KeyMsg{Type: tea.KeyUp}
	keyTab  = tea.KeyMsg{Type: tea.KeyTab}
)

func TestInspectModelRowsInIDOrder(t *testing.T) {
	m := NewInspectModel(sampleLayout(t))
	if len(m.Rows) != len(sampleEntries) {
		t.Fatalf("rows = %d, want %d", len(m.Rows), len(sampleEntries))
	}
	for i, p := range m.Rows {
		if p.ID != i+1 {
			t.Errorf("row %d has id %d", i, p.ID)
		}
	}
}

func TestInspectModelCursor(t *testing.T) {
	m := NewInspectModel(sampleLayout(t))
	m.Height = 3

	m = press(m, keyUp)
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}
	for range 5 {
		m = press(m, keyDown)
	}
	if m.Cursor != 5 || m.Offset != 3 {
		t.Errorf("cursor %d offset %d, want 5 and 3", m.Cursor, m.Offset)
	}
	for range 20 {
		m = press(m, keyDown)
	}
	if m.Cursor != len(m.Rows)-1 {
		t.Errorf("cursor = %d, want last row", m.Cursor)
	}
}

func TestInspectModelFilterCyclesInLegendOrder(t *testing.T) {
	m := NewInspectModel(sampleLayout(t))
	m = press(m, keyDown)

	var seen []int
	for range chart.NumQuadrants {
		m = press(m, keyTab)
		seen = append(seen, m.Filter)
		for _, p := range m.Rows {
			if p.Entry.Quadrant != m.Filter {
				t.Errorf("filter %d shows an entry of quadrant %d", m.Filter, p.Entry.Quadrant)
			}
		}
		if m.Cursor != 0 {
			t.Errorf("cursor = %d after changing the filter", m.Cursor)
		}
	}
	for i, q := range chart.DefaultOrder {
		if seen[i] != q {
			t.Errorf("filters = %v, want %v", seen, chart.DefaultOrder)
			break
		}
	}

	m = press(m, keyTab)
	if m.Filter != allQuadrants || len(m.Rows) != len(sampleEntries) {
		t.Errorf("after a full cycle filter = %d with %d rows", m.Filter, len(m.Rows))
	}
}

func TestInspectModelQuit(t *testing.T) {
	m := NewInspectModel(sampleLayout(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestInspectModelView(t *testing.T) {
	m := NewInspectModel(sampleLayout(t))
	view := m.View()
	for _, want := range []string{"Radar", "Label", m.Rows[0].Entry.Label, "all quadrants"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
}

func TestInspectModelEmpty(t *testing.T) {
	l, err := layout.Build(context.Background(), chart.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m := press(NewInspectModel(l), keyDown)
	if !strings.Contains(m.View(), "no entries") {
		t.Error("empty layout should say so")
	}
}

func TestPrintPlacements(t *testing.T) {
	var buf bytes.Buffer
	if err := printPlacements(&buf, sampleLayout(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, e := range sampleEntries {
		if !strings.Contains(out, e.Label) {
			t.Errorf("table lacks %q", e.Label)
		}
	}
	if !strings.Contains(out, "▲ moved") {
		t.Error("table lacks the moved marker")
	}
}
