package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirogiorgini/turnero-client/internal/db"
	"github.com/cirogiorgini/turnero-client/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "history",
		Short: "Show bookings made from this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("history needs DATABASE_URL to be set")
			}

			ctx := context.Background()
			conn, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			store, err := history.NewStore(ctx, conn)
			if err != nil {
				return err
			}
			records, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Fprintf(os.Stdout, "%s %s  %-20s %s  booked %s\n",
					r.Date, r.Slot, r.BranchName, r.ClientName, r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	c.Flags().IntVar(&limit, "limit", 20, "number of bookings to show")
	return c
}
