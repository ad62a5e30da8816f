package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cirogiorgini/turnero-client/internal/api"
	"github.com/cirogiorgini/turnero-client/internal/booking"
	"github.com/cirogiorgini/turnero-client/internal/db"
	"github.com/cirogiorgini/turnero-client/internal/history"
)

func newBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book",
		Short: "Walk through the booking wizard in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, id, err := authedClient(cfg, log)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			wiz := booking.NewWizard(booking.NewStore())
			fetch := booking.NewFetcher(client, log)

			// Branch.
			branches, err := client.Branches(ctx)
			if err != nil {
				return err
			}
			if len(branches) == 0 {
				return fmt.Errorf("no branches available")
			}
			labels := make([]string, len(branches))
			for i, b := range branches {
				labels[i] = fmt.Sprintf("%s (%s)", b.Name, b.Address)
			}
			bi, err := choose("Branch", labels)
			if err != nil {
				return err
			}
			branch := branches[bi]
			if err := wiz.SelectBranch(booking.BranchSelection{ID: branch.ID, Name: branch.Name, Address: branch.Address}); err != nil {
				return err
			}
			if err := wiz.Next(); err != nil {
				return err
			}

			// Barber.
			barbers, err := client.BranchBarbers(ctx, branch.ID)
			if err != nil {
				return err
			}
			if len(barbers) == 0 {
				return fmt.Errorf("no barbers at %s", branch.Name)
			}
			labels = make([]string, len(barbers))
			for i, b := range barbers {
				labels[i] = b.Name
			}
			bri, err := choose("Barber", labels)
			if err != nil {
				return err
			}
			if err := wiz.SelectBarber(barbers[bri].ID); err != nil {
				return err
			}
			fetch.Feed(ctx, wiz, barbers[bri].ID)

			// Date.
			table := wiz.Availability()
			var openDays []string
			for _, d := range table.Days() {
				if d.Available {
					openDays = append(openDays, d.Date)
				}
			}
			if len(openDays) == 0 {
				return fmt.Errorf("%s has no open days", barbers[bri].Name)
			}
			di, err := choose("Date", openDays)
			if err != nil {
				return err
			}
			if err := wiz.SelectDate(openDays[di]); err != nil {
				return err
			}

			// Time.
			slots := table.FreeSlots(openDays[di])
			si, err := choose("Time", slots)
			if err != nil {
				return err
			}
			if err := wiz.SelectTime(slots[si]); err != nil {
				return err
			}
			if err := wiz.Next(); err != nil {
				return err
			}

			// Details, prefilled from the cached identity.
			for {
				name, err := promptDefault("Name", id.FullName)
				if err != nil {
					return err
				}
				email, err := promptDefault("Email", id.Email)
				if err != nil {
					return err
				}
				phone, err := promptDefault("Phone", "")
				if err != nil {
					return err
				}
				if err := wiz.SetDetails(name, email, phone); err != nil {
					return err
				}
				if err := wiz.Next(); err == nil {
					break
				}
				fmt.Fprintf(os.Stderr, "%s\n", booking.ValidateDetails(name, email, phone))
			}

			// Summary.
			d := wiz.Draft()
			fmt.Fprintf(os.Stdout, "\n%s — %s\n%s at %s\nfor %s <%s> %s\n\n",
				d.Branch.Name, d.Branch.Address, d.Date, d.Time, d.ClientName, d.ClientEmail, d.ClientPhone)
			ok, err := promptDefault("Confirm? [y/N]", "n")
			if err != nil {
				return err
			}
			if !strings.EqualFold(ok, "y") {
				return fmt.Errorf("canceled")
			}

			if err := wiz.Confirm(ctx, client); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "booked!")

			recordHistory(ctx, cfg.DatabaseURL, d, log)
			return nil
		},
	}
}

func newSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List days that still have free slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			// Day availability is public, no session needed.
			client := api.New(cfg.APIBaseURL, log)

			ctx := context.Background()
			days, err := booking.NewFetcher(client, log).OpenDays(ctx)
			if err != nil {
				return err
			}
			for _, d := range days {
				if !d.Available {
					continue
				}
				fmt.Fprintf(os.Stdout, "%s  %s\n", d.Date, strings.Join(d.FreeSlots, " "))
			}
			return nil
		},
	}
}

// recordHistory appends the booking to the local database when one is
// configured. Failures are logged, never fatal: the booking already went
// through upstream.
func recordHistory(ctx context.Context, databaseURL string, d booking.Draft, log *slog.Logger) {
	if databaseURL == "" {
		return
	}
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Warn("history unavailable", "error", err)
		return
	}
	defer conn.Close()
	store, err := history.NewStore(ctx, conn)
	if err != nil {
		log.Warn("history unavailable", "error", err)
		return
	}
	rec := history.FromDraft(d.Branch.ID, d.Branch.Name, d.Barber, d.Date, d.Time,
		d.ClientName, d.ClientEmail, d.ClientPhone)
	if err := store.Record(ctx, rec); err != nil {
		log.Warn("history record failed", "error", err)
	}
}

func choose(label string, options []string) (int, error) {
	fmt.Fprintf(os.Stderr, "%s:\n", label)
	for i, o := range options {
		fmt.Fprintf(os.Stderr, "  %d) %s\n", i+1, o)
	}
	line, err := promptLine("> ")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(options) {
		return 0, fmt.Errorf("pick a number between 1 and %d", len(options))
	}
	return n - 1, nil
}

func promptDefault(label, def string) (string, error) {
	p := label + ": "
	if def != "" {
		p = fmt.Sprintf("%s [%s]: ", label, def)
	}
	line, err := promptLine(p)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}
