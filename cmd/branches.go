package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Inspect and administer branches",
	}
	cmd.AddCommand(newBranchListCmd())
	cmd.AddCommand(newBranchAddCmd())
	cmd.AddCommand(newBranchRmCmd())
	cmd.AddCommand(newBranchBarbersCmd())
	cmd.AddCommand(newBranchAssignCmd())
	cmd.AddCommand(newBranchUnassignCmd())
	return cmd
}

func newBranchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, _, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			branches, err := client.Branches(context.Background())
			if err != nil {
				return err
			}
			for _, b := range branches {
				fmt.Fprintf(os.Stdout, "%s  %s  %s\n", b.ID, b.Name, b.Address)
			}
			return nil
		},
	}
}

func newBranchAddCmd() *cobra.Command {
	var name, address string
	c := &cobra.Command{
		Use:   "add",
		Short: "Create a branch (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			client, _, err := authedClient(cfg, log)
			if err != nil {
				return err
			}
			if err := client.CreateBranch(context.Background(), name, address); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created branch %q\n", name)
			return nil
		},
	}
	c.Flags().StringVar(&name, "name", "", "branch name")
	c.Flags().StringVar(&address, "address", "", "street address")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("address")
	return c
}

func newBranchRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <branch-id>",
		Short: "Delete a branch (admin)",
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
			if err := client.DeleteBranch(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
}

func newBranchBarbersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "barbers <branch-id>",
		Short: "List the barbers working at a branch",
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
			barbers, err := client.BranchBarbers(context.Background(), args[0])
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

func newBranchAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <branch-id> <barber-id>",
		Short: "Assign a barber to a branch (admin)",
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
			if err := client.AddBranchBarber(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "assigned")
			return nil
		},
	}
}

func newBranchUnassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <branch-id> <barber-id>",
		Short: "Remove a barber from a branch (admin)",
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
			if err := client.RemoveBranchBarber(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "removed")
			return nil
		},
	}
}
