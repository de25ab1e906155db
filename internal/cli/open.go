package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <gift-number>",
		Short: "Open one gift; repeated opens report the original time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("gift number must be an integer: %q", args[0])
			}

			opened, err := app.client().OpenGift(cmd.Context(), n)
			if err != nil {
				return err
			}

			at := opened.OpenedAt.UTC().Format(time.RFC3339Nano)
			out := cmd.OutOrStdout()
			if opened.AlreadyOpened {
				color.New(color.FgYellow).Fprintf(out, "Gift #%d was already opened at %s\n", opened.Number, at)
				return nil
			}

			color.New(color.FgGreen).Fprintf(out, "Gift #%d opened at %s\n", opened.Number, at)
			return nil
		},
	}
}
