package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stackradar/pkg/radar/layout"
)

// =============================================================================
// Color Palette
// =============================================================================

// Status colors borrow the stock chart's ring colors so that the terminal
// and the rendered chart agree.
var (
	colorAccent = lipgloss.Color("#2e86c1") // headings, coordinates
	colorSettle = lipgloss.Color("#27ae60") // outer ring: done
	colorCap    = lipgloss.Color("#e67e22") // middle ring: needs a look
	colorFail   = lipgloss.Color("#c0392b") // inner ring: failed
	colorLink   = lipgloss.Color("75")
	colorValue  = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

// Exported styles are shared with the inspector view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleValue     = lipgloss.NewStyle().Foreground(colorValue)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorSettle)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorCap)

	styleError   = lipgloss.NewStyle().Foreground(colorFail)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconSettled = "settled"
	iconCapped  = "tick cap"
	iconDot     = " · "
)

// =============================================================================
// Console - Human-facing status lines
// =============================================================================

// console writes status lines for people. Logs go through the logger on
// stderr; these go to the command's output so they can be captured.
type console struct {
	w io.Writer
}

func (c console) line(parts ...string) {
	fmt.Fprintln(c.w, strings.Join(parts, " "))
}

func (c console) success(format string, args ...any) {
	c.line(StyleSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func (c console) errorf(format string, args ...any) {
	c.line(styleError.Render(iconError), fmt.Sprintf(format, args...))
}

func (c console) warning(format string, args ...any) {
	c.line(StyleWarning.Render(iconWarning), StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (c console) info(format string, args ...any) {
	c.line(styleMuted.Render(iconInfo), fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line.
func (c console) detail(format string, args ...any) {
	c.line(" ", StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (c console) file(path string) {
	c.line(" ", StyleDim.Render(iconArrow), StyleValue.Render(path))
}

// keyValue prints a label padded to a fixed column and its value.
func (c console) keyValue(key, value string) {
	keyStyle := styleMuted.Width(12)
	c.line(keyStyle.Render(key), StyleValue.Render(value))
}

// stats prints one summary line for a relaxation run, e.g.
// "12 entries · 41 ticks · settled". A capped run also shows how far the
// last tick still moved an entry.
func (c console) stats(s layout.Stats) {
	parts := []string{
		fmt.Sprintf("%d entries", s.Entries),
		fmt.Sprintf("%d ticks", s.Ticks),
	}
	if s.ResidualOverlaps > 0 {
		parts = append(parts, fmt.Sprintf("%d overlaps", s.ResidualOverlaps))
	}
	status := StyleSuccess.Render(iconSettled)
	if !s.Converged {
		parts = append(parts, fmt.Sprintf("last move %.2f", s.MaxDisplacement))
		status = StyleWarning.Render(iconCapped)
	}
	c.line(" ", StyleDim.Render(strings.Join(parts, iconDot))+StyleDim.Render(iconDot)+status)
}

// nextStep suggests the command to run next.
func (c console) nextStep(description, cmd string) {
	c.line(StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func (c console) newline() {
	fmt.Fprintln(c.w)
}
