package tui

import (
	"context"
	"time"

	"giftbox/internal/board"
	"giftbox/internal/domain/models"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	unwrapFrames     = 4
	unwrapFrameDelay = 130 * time.Millisecond
	defaultColumns   = 8
)

type giftsLoadedMsg struct {
	gifts []models.Gift
	err   error
}

type openResultMsg struct {
	number int
	opened models.OpenedGift
	err    error
}

type unwrapTickMsg struct {
	number int
	frame  int
}

type model struct {
	api     API
	timeout time.Duration
	board   *board.Board

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int
	cursor int

	loading     bool
	loadErr     error
	unwrapFrame int
	focus       confirmModalFocus
}

func newModel(api API, opts Options) model {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		api:     api,
		timeout: opts.Timeout,
		board:   board.New(opts.Total),
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m model) loadCmd() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		gifts, err := api.ListGifts(ctx)
		return giftsLoadedMsg{gifts: gifts, err: err}
	}
}

func (m model) openCmd(n int) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		opened, err := api.OpenGift(ctx, n)
		return openResultMsg{number: n, opened: opened, err: err}
	}
}

func unwrapTick(n, frame int) tea.Cmd {
	return tea.Tick(unwrapFrameDelay, func(time.Time) tea.Msg {
		return unwrapTickMsg{number: n, frame: frame}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case giftsLoadedMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err == nil {
			m.board.Load(msg.gifts)
			m.clampCursor()
		}
		return m, nil

	case openResultMsg:
		if msg.err != nil {
			// оптимистичное значение остаётся до перезагрузки списка
			m.board.Fail(msg.number, msg.err)
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}
		m.board.ClearError()
		m.board.Resolve(msg.number, msg.opened.OpenedAt)
		return m, nil

	case unwrapTickMsg:
		if m.board.Unwrapping() != msg.number {
			return m, nil
		}
		if msg.frame < unwrapFrames {
			m.unwrapFrame = msg.frame
			return m, unwrapTick(msg.number, msg.frame+1)
		}
		m.unwrapFrame = 0
		if m.board.UnwrapDone(msg.number) {
			m.focus = confirmFocusConfirm
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.board.Pending() != 0:
		return m.handleConfirmKey(msg)
	case m.board.Viewing() != 0:
		if key.Matches(msg, m.keys.Close) {
			m.board.CloseViewer()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.columns())
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.columns())
	case key.Matches(msg, m.keys.Tap):
		return m.tap()
	}

	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()
	case key.Matches(msg, m.keys.Cancel):
		m.board.Cancel()
	case key.Matches(msg, m.keys.Toggle):
		if m.focus == confirmFocusConfirm {
			m.focus = confirmFocusCancel
		} else {
			m.focus = confirmFocusConfirm
		}
	case msg.String() == "enter":
		if m.focus == confirmFocusConfirm {
			return m.confirm()
		}
		m.board.Cancel()
	}

	return m, nil
}

func (m model) tap() (tea.Model, tea.Cmd) {
	n, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch m.board.Tap(n) {
	case board.ActionUnwrap:
		m.unwrapFrame = 0
		return m, unwrapTick(n, 1)
	default:
		return m, nil
	}
}

func (m model) confirm() (tea.Model, tea.Cmd) {
	n, ok := m.board.Confirm()
	if !ok {
		return m, nil
	}
	return m, m.openCmd(n)
}

func (m model) selected() (int, bool) {
	items := m.board.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return 0, false
	}
	return items[m.cursor].Gift.Number, true
}

func (m *model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= m.board.Len() {
		return
	}
	m.cursor = next
}

func (m *model) clampCursor() {
	if m.cursor >= m.board.Len() {
		m.cursor = m.board.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) columns() int {
	if m.width <= 0 {
		return defaultColumns
	}
	cols := m.width / cellWidth
	if cols < 1 {
		return 1
	}
	return cols
}
