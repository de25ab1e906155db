package tui

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted     lipgloss.TerminalColor = ac("240", "243")
	colorTitle     lipgloss.TerminalColor = ac("#3c1e50", "#e7c6ff")
	colorWrapped   lipgloss.TerminalColor = ac("#c2185b", "#f48fb1")
	colorOpened    lipgloss.TerminalColor = ac("#2e7d32", "#a5d6a7")
	colorPending   lipgloss.TerminalColor = ac("#ef6c00", "#ffcc80")
	colorCursor    lipgloss.TerminalColor = ac("232", "255")
	colorError     lipgloss.TerminalColor = ac("#b71c1c", "#ef9a9a")
	colorModalBg   lipgloss.TerminalColor = ac("255", "235")
	colorControlBg lipgloss.TerminalColor = ac("252", "237")
	colorActiveBg  lipgloss.TerminalColor = ac("#f8bbd0", "#880e4f")
)

const cellWidth = 7

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleCell(fg lipgloss.TerminalColor, selected bool) lipgloss.Style {
	st := lipgloss.NewStyle().
		Width(cellWidth - 2).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Foreground(fg)
	if selected {
		st = st.BorderForeground(colorCursor).Bold(true)
	}
	return st
}

func styleModal() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorWrapped).
		Background(colorModalBg).
		Padding(1, 3)
}
