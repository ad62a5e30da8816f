package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirogiorgini/turnero-client/internal/api"
	"github.com/cirogiorgini/turnero-client/internal/auth"
	"github.com/cirogiorgini/turnero-client/internal/config"
	"github.com/cirogiorgini/turnero-client/internal/logging"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "turnero",
		Short: "Book barbershop appointments against a Turnero backend, from the terminal or a local web UI",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newKeysCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newRegisterCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newBranchCmd())
	root.AddCommand(newServiceCmd())
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newUserCmd())
	root.AddCommand(newHistoryCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the environment and builds the pieces every command needs.
func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logging.New(os.Stderr, cfg.LogLevel, false)
	return cfg, log, nil
}

// authedClient returns an API client carrying the cached session token.
func authedClient(cfg config.Config, log *slog.Logger) (*api.Client, auth.Identity, error) {
	cache, err := auth.NewCache(cfg.CacheSecret)
	if err != nil {
		return nil, auth.Identity{}, err
	}
	id, err := cache.Load()
	if err != nil {
		return nil, auth.Identity{}, err
	}
	c := api.New(cfg.APIBaseURL, log)
	c.SetToken(id.Token)
	return c, id, nil
}
