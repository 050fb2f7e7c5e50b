package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/orbit/trigger"
)

const flashFrames = 6

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			m.ctl.Toggle()
		case "[":
			m.ctl.NudgeTempo(-1)
		case "]":
			m.ctl.NudgeTempo(1)
		case "{":
			m.ctl.NudgeTempo(-10)
		case "}":
			m.ctl.NudgeTempo(10)
		case "r":
			m.ctl.AddTrigger(m.ctl.CurrentAngle(), trigger.Regular)
		case "a":
			m.ctl.AddTrigger(m.ctl.CurrentAngle(), trigger.Accent)
		case "n":
			m.ctl.AddTriggerDefault(m.ctl.CurrentAngle())
		case "tab":
			if m.ctl.NoteKind() == trigger.Accent {
				m.ctl.SetNoteKind(trigger.Regular)
			} else {
				m.ctl.SetNoteKind(trigger.Accent)
			}
		case "x":
			if points := m.ctl.Triggers(); len(points) > 0 {
				m.ctl.RemoveTrigger(points[len(points)-1].ID)
			}
		case "c":
			m.ctl.ClearTriggers()
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case frameMsg:
		m.ctl.Tick()
		if m.flash > 0 {
			m.flash--
		}
		return m, m.frameCmd()
	case beatMsg:
		m.beats++
		m.lastBeat = trigger.NoteKind(msg)
		m.flash = flashFrames
	}
	return m, nil
}
