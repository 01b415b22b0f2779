package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
	"github.com/matzehuels/stackradar/pkg/radar/collide"
	"github.com/matzehuels/stackradar/pkg/radar/layout"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorFaint)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
)

// allQuadrants is the filter value that shows every placement.
const allQuadrants = -1

var placementHeaders = []string{"", "ID", "Label", "Quadrant", "Ring", "X", "Y", "Status"}

// =============================================================================
// InspectModel - Interactive placement browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a settled layout.
type InspectModel struct {
	Layout layout.Layout
	Rows   []layout.Placement // visible placements, in id order
	Filter int                // quadrant index or allQuadrants
	Cursor int
	Height int
	Offset int
}

// NewInspectModel creates a model showing every placement.
func NewInspectModel(l layout.Layout) InspectModel {
	m := InspectModel{Layout: l, Filter: allQuadrants, Height: 15}
	m.Rows = m.visible()
	return m
}

func (m InspectModel) visible() []layout.Placement {
	all := m.Layout.ByID()
	if m.Filter == allQuadrants {
		return all
	}
	var out []layout.Placement
	for _, p := range all {
		if p.Entry.Quadrant == m.Filter {
			out = append(out, p)
		}
	}
	return out
}

// nextFilter steps through all quadrants, then each one in legend order.
func (m InspectModel) nextFilter() int {
	order := m.Layout.Config.Order
	if m.Filter == allQuadrants {
		if len(order) == 0 {
			return allQuadrants
		}
		return order[0]
	}
	for i, q := range order {
		if q == m.Filter && i+1 < len(order) {
			return order[i+1]
		}
	}
	return allQuadrants
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			m.Filter = m.nextFilter()
			m.Rows = m.visible()
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	title := m.Layout.Config.Title
	if title == "" {
		title = "Radar"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab quadrant  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no entries"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	page := m.Rows[m.Offset:end]

	t := placementTable(m.Layout.Config, page, func(row int) bool {
		return m.Offset+row == m.Cursor
	})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	filter := "all quadrants"
	if m.Filter != allQuadrants {
		filter = m.Layout.Config.Quadrants[m.Filter].Name
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] ", m.Cursor+1, len(m.Rows))))
	b.WriteString(StyleHighlight.Render(filter))
	b.WriteString("\n")

	p := m.Rows[m.Cursor]
	state := p.State.String()
	if p.State == collide.Settled {
		state = StyleSuccess.Render(state)
	}
	b.WriteString(listDimStyle.Render("  sampled at ("))
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%.1f", p.Sampled.X)))
	b.WriteString(listDimStyle.Render(", "))
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%.1f", p.Sampled.Y)))
	b.WriteString(listDimStyle.Render("), ") + state)
	if p.Entry.Link != "" {
		b.WriteString("  " + StyleLink.Render(p.Entry.Link))
	}
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Table Rendering
// =============================================================================

// placementTable builds the table shared by the browser and --plain output.
// current marks the highlighted row; it may be nil.
func placementTable(cfg chart.Config, rows []layout.Placement, current func(row int) bool) *table.Table {
	data := make([][]string, len(rows))
	for i, p := range rows {
		cursor := "  "
		if current != nil && current(i) {
			cursor = "▸ "
		}
		data[i] = []string{
			cursor,
			fmt.Sprint(p.ID),
			p.Entry.Label,
			cfg.Quadrants[p.Entry.Quadrant].Name,
			cfg.Rings[p.Entry.Ring].Name,
			fmt.Sprintf("%.1f", p.X),
			fmt.Sprintf("%.1f", p.Y),
			statusLabel(p.Entry.Status),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers(placementHeaders...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			p := rows[row]
			base := lipgloss.NewStyle()
			if col == 5 || col == 6 {
				base = base.Foreground(colorAccent)
			}
			if col == 4 {
				base = base.Foreground(lipgloss.Color(cfg.Rings[p.Entry.Ring].Color))
			}
			if !p.Entry.Active {
				base = base.Foreground(colorFaint)
			}
			if current != nil && current(row) {
				return base.Bold(true)
			}
			return base
		})
}

func statusLabel(s chart.Status) string {
	switch s {
	case chart.StatusNew:
		return "■ new"
	case chart.StatusMoved:
		return "▲ moved"
	default:
		return ""
	}
}
