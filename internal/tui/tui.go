package tui

import (
	"context"
	"time"

	"giftbox/internal/domain/models"

	tea "github.com/charmbracelet/bubbletea"
)

// API is the part of the giftbox client the TUI needs.
type API interface {
	ListGifts(ctx context.Context) ([]models.Gift, error)
	OpenGift(ctx context.Context, number int) (models.OpenedGift, error)
}

type Options struct {
	// Total is shown in the counter until the first list arrives.
	Total   int
	Timeout time.Duration
}

func Run(api API, opts Options) error {
	m := newModel(api, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
