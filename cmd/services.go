package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirogiorgini/turnero-client/internal/api"
)

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Inspect and administer the service catalog",
	}
	cmd.AddCommand(newServiceListCmd())
	cmd.AddCommand(newServiceAddCmd())
	cmd.AddCommand(newServiceUpdateCmd())
	cmd.AddCommand(newServiceRmCmd())
	cmd.AddCommand(newServiceStatusCmd())
	return cmd
}

func newServiceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List services",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client := api.New(cfg.APIBaseURL, log)
			services, err := client.Services(context.Background())
			if err != nil {
				return err
			}
			for _, s := range services {
				fmt.Fprintf(os.Stdout, "%s  %-20s $%.2f  %s\n", s.ID, s.Name, s.Price, s.Description)
			}
			return nil
		},
	}
}

func serviceFlags(c *cobra.Command, in *api.ServiceInput) {
	c.Flags().StringVar(&in.Name, "name", "", "service name")
	c.Flags().StringVar(&in.Description, "description", "", "description")
	c.Flags().Float64Var(&in.Price, "price", 0, "price")
}

func newServiceAddCmd() *cobra.Command {
	var in api.ServiceInput
	c := &cobra.Command{
		Use:   "add",
		Short: "Create a service (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, _, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			if err := client.CreateService(context.Background(), in); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created service %q\n", in.Name)
			return nil
		},
	}
	serviceFlags(c, &in)
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("price")
	return c
}

func newServiceUpdateCmd() *cobra.Command {
	var in api.ServiceInput
	c := &cobra.Command{
		Use:   "update <service-id>",
		Short: "Update a service (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, _, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			if err := client.UpdateService(context.Background(), args[0], in); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "updated")
			return nil
		},
	}
	serviceFlags(c, &in)
	return c
}

func newServiceRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <service-id>",
		Short: "Delete a service (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, _, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			if err := client.DeleteService(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
}

func newServiceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <service-id> <status>",
		Short: "Enable or disable a service (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, _, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			if err := client.SetServiceStatus(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "status set")
			return nil
		},
	}
}
