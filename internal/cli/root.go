package cli

import (
	"os"
	"strings"
	"time"

	"giftbox/internal/client"
	"giftbox/internal/config"
	"giftbox/internal/tui"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080"

type App struct {
	Server  string
	Timeout time.Duration
	Total   int
}

func (a *App) client() *client.Client {
	return client.New(a.Server, a.Timeout)
}

func NewRootCmd() *cobra.Command {
	config.LoadDotEnv()

	app := &App{}

	cmd := &cobra.Command{
		Use:          "unwrap",
		Short:        "Unwrap numbered gifts, each exactly once",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Interactive grid
  unwrap

  # Scriptable commands
  unwrap list
  unwrap open 7
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(app.client(), tui.Options{
				Total:   app.Total,
				Timeout: app.Timeout,
			})
		},
	}

	server := os.Getenv("GIFTBOX_URL")
	if server == "" {
		server = defaultServer
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", server, "giftbox API base URL (env GIFTBOX_URL)")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 10*time.Second, "per-request timeout")
	cmd.Flags().IntVar(&app.Total, "total", 53, "number of gifts shown before the first load")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newOpenCmd(app))

	return cmd
}
