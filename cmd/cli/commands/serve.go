package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelterconnect/shelter-matcher/pkg/core/services"
	"github.com/shelterconnect/shelter-matcher/pkg/httpapi"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the webhook that answers challenges and triggers matching runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr != "" {
				app.Cfg.Server.Addr = addr
			}

			app.Logger.Debug("serve command", zap.String("addr", app.Cfg.Server.Addr))

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			run := func(ctx context.Context) (*services.MatchResult, error) {
				return app.runMatching(ctx, services.MatchOptions{Diagnostics: os.Stdout})
			}

			return httpapi.NewServer(app.Cfg.Server, run, app.Logger).Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	return cmd
}
