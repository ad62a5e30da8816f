package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirogiorgini/turnero-client/internal/api"
	"github.com/cirogiorgini/turnero-client/internal/auth"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Barber's view of assigned appointments",
	}
	cmd.AddCommand(newScheduleListCmd())
	cmd.AddCommand(newScheduleSetCmd())
	return cmd
}

func newScheduleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List appointments assigned to the logged-in barber",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, id, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			if !id.IsBarber() && !id.IsAdmin() {
				return fmt.Errorf("the schedule is only available to barbers")
			}

			// The barber id lives inside the token.
			userID, _, err := auth.TokenClaims(id.Token)
			if err != nil {
				return err
			}
			appts, err := client.AssignedAppointments(context.Background(), userID)
			if err != nil {
				return err
			}
			for _, a := range appts {
				fmt.Fprintf(os.Stdout, "%s  %s %s  %-10s %s (%s)\n",
					a.ID, a.Date, a.Time, a.Status, a.ClientName, a.ClientPhone)
			}
			return nil
		},
	}
}

func newScheduleSetCmd() *cobra.Command {
	var status string
	c := &cobra.Command{
		Use:   "set <appointment-id>",
		Short: "Mark an appointment completed or canceled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch status {
			case api.StatusPending, api.StatusCompleted, api.StatusCanceled:
			default:
				return fmt.Errorf("status must be %s, %s or %s",
					api.StatusPending, api.StatusCompleted, api.StatusCanceled)
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, _, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			if err := client.UpdateAppointmentStatus(context.Background(), args[0], status); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "appointment %s -> %s\n", args[0], status)
			return nil
		},
	}
	c.Flags().StringVar(&status, "status", "", "new status (pending|completed|canceled)")
	_ = c.MarkFlagRequired("status")
	return c
}
