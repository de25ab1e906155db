package tui

import (
	"fmt"
	"strings"
	"time"

	"giftbox/internal/board"

	"github.com/charmbracelet/lipgloss"
)

var unwrapGlyphs = []string{"🎁", "🎀", "✨", "💝"}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.board.Pending() != 0:
		b.WriteString(m.center(renderConfirmModal(m.board.Pending(), m.focus)))
	case m.board.Viewing() != 0:
		b.WriteString(m.center(m.renderViewer(m.board.Viewing())))
	case m.loading && m.board.Len() == 0:
		b.WriteString(m.spinner.View() + " loading gifts…")
	default:
		b.WriteString(m.renderGrid())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m model) renderHeader() string {
	title := styleTitle().Render("Open the gift that matches the number from the pill 💝")
	counter := styleMuted().Render(fmt.Sprintf("Opened %d / %d", m.board.OpenedCount(), m.board.Total()))
	return lipgloss.JoinVertical(lipgloss.Left, title, counter)
}

func (m model) renderGrid() string {
	items := m.board.Items()
	if len(items) == 0 {
		return styleMuted().Render("No gifts yet.")
	}

	cols := m.columns()
	rows := make([]string, 0, len(items)/cols+1)

	for start := 0; start < len(items); start += cols {
		end := start + cols
		if end > len(items) {
			end = len(items)
		}

		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderCell(items[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) renderCell(it board.Item, selected bool) string {
	n := it.Gift.Number
	label := fmt.Sprintf("%d", n)
	fg := colorWrapped

	switch {
	case m.board.Unwrapping() == n:
		label = unwrapGlyphs[m.unwrapFrame%len(unwrapGlyphs)]
		fg = colorPending
	case it.State == board.Opening:
		label = m.spinner.View()
		fg = colorPending
	case it.State == board.Opened && !it.Confirmed:
		label = label + "?"
		fg = colorPending
	case it.State == board.Opened:
		label = "✓" + label
		fg = colorOpened
	case it.State == board.ConfirmPending:
		fg = colorPending
	}

	return styleCell(fg, selected).Render(label)
}

func (m model) renderViewer(n int) string {
	it, ok := m.board.Item(n)
	if !ok {
		return ""
	}

	g := it.Gift
	lines := []string{
		styleTitle().Render(g.Title()),
		"",
		fmt.Sprintf("%s  %s", mediaIcon(string(g.MediaType)), g.PublicURL),
	}
	if g.OpenedAt != nil {
		lines = append(lines, styleMuted().Render("opened "+formatOpenedAt(*g.OpenedAt)))
	}
	lines = append(lines, "", styleMuted().Render("esc: close"))

	return styleModal().Render(strings.Join(lines, "\n"))
}

func (m model) renderStatus() string {
	switch {
	case m.loadErr != nil:
		return styleError().Render("Could not load gifts: " + m.loadErr.Error() + " (r to retry)")
	case m.board.Err() != nil:
		return styleError().Render("Open was not confirmed: " + m.board.Err().Error())
	case m.loading:
		return m.spinner.View() + styleMuted().Render(" syncing")
	default:
		return ""
	}
}

func (m model) center(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func mediaIcon(kind string) string {
	if kind == "video" {
		return "▶"
	}
	return "▣"
}

func formatOpenedAt(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 15:04:05")
}
