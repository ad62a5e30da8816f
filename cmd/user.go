package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirogiorgini/turnero-client/internal/auth"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserBarbersCmd())
	cmd.AddCommand(newUserPromoteCmd())
	return cmd
}

func newUserBarbersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "barbers",
		Short: "List all barbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, _, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			barbers, err := client.Barbers(context.Background())
			if err != nil {
				return err
			}
			for _, b := range barbers {
				fmt.Fprintf(os.Stdout, "%s  %s\n", b.ID, b.Name)
			}
			return nil
		},
	}
}

func newUserPromoteCmd() *cobra.Command {
	var role string
	c := &cobra.Command{
		Use:   "promote <user-id>",
		Short: "Change a user's role (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch role {
			case auth.RoleClient, auth.RoleBarber, auth.RoleAdmin:
			default:
				return fmt.Errorf("role must be %s, %s or %s",
					auth.RoleClient, auth.RoleBarber, auth.RoleAdmin)
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, _, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			if err := client.ChangeUserRole(context.Background(), args[0], role); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "user %s -> %s\n", args[0], role)
			return nil
		},
	}
	c.Flags().StringVar(&role, "role", auth.RoleBarber, "new role (cliente|barbero|admin)")
	return c
}
