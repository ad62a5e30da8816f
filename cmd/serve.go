package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cirogiorgini/turnero-client/internal/api"
	"github.com/cirogiorgini/turnero-client/internal/booking"
	"github.com/cirogiorgini/turnero-client/internal/db"
	"github.com/cirogiorgini/turnero-client/internal/history"
	"github.com/cirogiorgini/turnero-client/internal/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the booking web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if err := cfg.RequireWebKeys(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var recorder history.Recorder = history.Noop{}
			if cfg.DatabaseURL != "" {
				conn, err := db.Open(ctx, cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer conn.Close()
				if err := conn.Ping(ctx); err != nil {
					return fmt.Errorf("db ping: %w", err)
				}
				store, err := history.NewStore(ctx, conn)
				if err != nil {
					return err
				}
				recorder = store
			}

			client := api.New(cfg.APIBaseURL, log)
			srv := &web.Server{
				API:      client,
				Sessions: web.NewSessions(cfg.CookieHashKey, cfg.CookieBlockKey),
				Fetcher:  booking.NewFetcher(client, log),
				History:  recorder,
				Log:      log,
			}
			return web.Start(ctx, cfg.ListenAddr, srv.Routes(), log)
		},
	}
}
