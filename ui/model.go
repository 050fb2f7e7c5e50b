package ui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/orbit/rhythm"
	"github.com/robmorgan/orbit/trigger"
)

// Controller is the part of the engine the terminal ui drives.
type Controller interface {
	Tick() int
	Toggle() bool
	IsPlaying() bool
	NudgeTempo(delta float64) float64
	Tempo() float64
	CurrentAngle() float64
	Snapshot() rhythm.Snapshot
	AddTrigger(angle float64, kind trigger.NoteKind) string
	AddTriggerDefault(angle float64) string
	RemoveTrigger(id string)
	ClearTriggers()
	Triggers() []trigger.Point
	NoteKind() trigger.NoteKind
	SetNoteKind(kind trigger.NoteKind)
}

const ringWidth = 72

type frameMsg time.Time

type beatMsg trigger.NoteKind

type model struct {
	ctl           Controller
	frameInterval time.Duration
	progress      progress.Model
	beats         int
	lastBeat      trigger.NoteKind
	flash         int // frames left to highlight the last beat
	quitting      bool
}

// NewModel creates the terminal ui. It calls ctl.Tick once per frame, acting as the engine's refresh callback.
func NewModel(ctl Controller, frameInterval time.Duration) tea.Model {
	return model{
		ctl:           ctl,
		frameInterval: frameInterval,
		progress:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(ringWidth), progress.WithoutPercentage()),
	}
}

// Notifier reports beats to a program attached after the engine was built, so the ui can flash them. The
// program's event loop may itself be inside Tick when a beat fires; wrap the Notifier in an audio.Async.
type Notifier struct {
	mu sync.Mutex
	p  *tea.Program
}

// Attach starts forwarding beats to p.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.p = p
}

func (n *Notifier) Emit(kind trigger.NoteKind) error {
	n.mu.Lock()
	p := n.p
	n.mu.Unlock()

	if p != nil {
		p.Send(beatMsg(kind))
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return m.frameCmd()
}

func (m model) frameCmd() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
