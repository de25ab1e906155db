package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func confirmPrompt(n int) string {
	return fmt.Sprintf("Open Gift #%d?", n)
}

const confirmWarning = "Once you open it, it stays open!"

func renderConfirmModal(n int, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Background(colorControlBg)
	btnActive := btnBase.
		Background(colorActiveBg).
		Bold(true)

	confirmLabel, cancelLabel := "Open it", "Not yet"
	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	} else {
		cancel = btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel)

	content := strings.Join([]string{
		styleTitle().Render(confirmPrompt(n)),
		confirmWarning,
		"",
		controls,
		"",
		styleMuted().Render("tab: focus   enter: select   y/n   esc: cancel"),
	}, "\n")

	return styleModal().Render(content)
}
