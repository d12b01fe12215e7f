package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"twodo/app"
)

// Options configure the program.
type Options struct {
	// FrameRate is the number of idle ticks per second.
	FrameRate int
	Logger    *slog.Logger
	// Status is shown in the status line until the first action.
	Status string
}

type tickMsg time.Time

// Model adapts the core state machine to bubbletea. It owns the core model
// and only touches it from Update.
type Model struct {
	ctx  context.Context
	core *app.Model
	log  *slog.Logger

	frame time.Duration
	help  help.Model

	status    string
	statusErr bool

	width  int
	height int
}

func NewModel(ctx context.Context, core *app.Model, opts Options) *Model {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Model{
		ctx:    ctx,
		core:   core,
		log:    log,
		frame:  time.Second / time.Duration(opts.FrameRate),
		help:   help.New(),
		status: opts.Status,
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, core *app.Model, opts Options) error {
	applyColorProfile()
	fps := opts.FrameRate
	if fps > 120 {
		fps = 120
	}
	p := tea.NewProgram(
		NewModel(ctx, core, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithFPS(fps),
	)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.core.Mode() == app.ModeQuit {
		return m, nil
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = m.viewportWidth()
		m.core.SetFormWidth(m.popupWidth() - 4)
	}

	if out := m.core.Translate(msg); !out.IsNoop() {
		m.log.Debug("dispatch", "msg", out.String(), "mode", m.core.Mode().String())
		if err := app.Drain(m.ctx, m.core, out); err != nil {
			m.log.Warn("update failed", "msg", out.String(), "err", err)
			m.setStatus(err.Error(), true)
		} else if out.Kind != app.MsgInput {
			m.setStatus(statusFor(out.Kind), false)
		}
	}

	if m.core.Mode() == app.ModeQuit {
		m.log.Info("quit")
		return m, tea.Quit
	}
	if _, ok := msg.(tickMsg); ok {
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func statusFor(kind app.MsgKind) string {
	switch kind {
	case app.MsgAddTaskCommit:
		return "Task added"
	case app.MsgAddProjectCommit:
		return "Project added"
	case app.MsgDeleteTask:
		return "Task deleted"
	case app.MsgDeleteProject:
		return "Project deleted"
	case app.MsgToggleTaskStatus:
		return "Task updated"
	case app.MsgCopyTask:
		return "Copied to clipboard"
	case app.MsgReloadTask, app.MsgReloadProject:
		return "Reloaded"
	default:
		return ""
	}
}
