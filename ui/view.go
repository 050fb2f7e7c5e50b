package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robmorgan/orbit/rhythm"
	"github.com/robmorgan/orbit/trigger"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	regularStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("202")).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	s := m.ctl.Snapshot()

	state := "paused"
	if s.Playing {
		state = "playing"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("ORBIT") + "\n\n")
	fmt.Fprintf(&b, "BPM: %d   %s   note: %s   beats: %d %s\n\n",
		int(math.Round(s.Tempo)), state, m.ctl.NoteKind(), m.beats, m.beatIndicator())
	b.WriteString(renderRing(s.Angle, m.ctl.Triggers()) + "\n")
	b.WriteString(m.progress.ViewAs(s.Angle/rhythm.FullCircle) + "\n")
	fmt.Fprintf(&b, "%6.1f°\n", s.Angle)
	b.WriteString(helpStyle.Render("(space) play/pause  ([,]) BPM -/+  ({,}) BPM -/+10\n(r) regular  (a) accent  (n) selected note  (tab) switch note  (x) remove last  (c) clear  (q) quit"))

	return appStyle.Render(b.String())
}

func (m model) beatIndicator() string {
	if m.flash == 0 {
		return " "
	}
	if m.lastBeat == trigger.Accent {
		return accentStyle.Render("●")
	}
	return regularStyle.Render("●")
}

// renderRing unrolls the loop onto one line of ringWidth cells, starting at 0 degrees.
func renderRing(angle float64, points []trigger.Point) string {
	cells := make([]string, ringWidth)
	for i := range cells {
		cells[i] = "·"
	}
	for _, p := range points {
		if p.Kind == trigger.Accent {
			cells[cellFor(p.Angle)] = accentStyle.Render("O")
		} else if cells[cellFor(p.Angle)] == "·" {
			cells[cellFor(p.Angle)] = regularStyle.Render("o")
		}
	}
	cells[cellFor(angle)] = cursorStyle.Render("|")
	return strings.Join(cells, "")
}

func cellFor(angle float64) int {
	return int(rhythm.Normalize(angle)/rhythm.FullCircle*ringWidth) % ringWidth
}
