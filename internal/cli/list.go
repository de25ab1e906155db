package cli

import (
	"fmt"
	"io"
	"time"

	"giftbox/internal/domain/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List gifts and whether they are opened",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gifts, err := app.client().ListGifts(cmd.Context())
			if err != nil {
				return err
			}

			writeGiftTable(cmd.OutOrStdout(), gifts)
			return nil
		},
	}
}

func writeGiftTable(w io.Writer, gifts []models.Gift) {
	header := color.New(color.Bold)
	opened := color.New(color.FgGreen)
	wrapped := color.New(color.FgMagenta)

	openedCount := 0

	header.Fprintf(w, "%-4s  %-8s  %-6s  %-25s  %s\n", "#", "STATE", "MEDIA", "OPENED AT", "TITLE")
	for _, g := range gifts {
		state, at := wrapped.Sprint("wrapped "), "-"
		if g.OpenedAt != nil {
			openedCount++
			state = opened.Sprint("opened  ")
			at = g.OpenedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%-4d  %s  %-6s  %-25s  %s\n", g.Number, state, g.MediaType, at, g.Title())
	}

	fmt.Fprintf(w, "\nOpened %d / %d\n", openedCount, len(gifts))
}
