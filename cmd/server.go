package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"visitor-pass-console/internal/app"
	"visitor-pass-console/internal/email"
	"visitor-pass-console/internal/nonce"
	"visitor-pass-console/internal/routes"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the console HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		revoked, err := nonce.NewStore(nonce.NonceStoreType(cfg.Session.RevocationStore), con.Provider, nonce.DefaultJanitorInterval)
		if err != nil {
			return fmt.Errorf("failed to initialize revocation store: %w", err)
		}
		defer revoked.Close()
		slog.Info("Initialized revocation store", "type", cfg.Session.RevocationStore)

		notifier, err := email.NewNotifier(cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize mail: %w", err)
		}

		engine, err := app.HTTPServer(cfg, routes.NewHandler(con, cfg, revoked, notifier))
		if err != nil {
			return err
		}
		return app.Serve(ctx, cfg.Listen, engine)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
