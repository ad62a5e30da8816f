package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cirogiorgini/turnero-client/internal/api"
	"github.com/cirogiorgini/turnero-client/internal/auth"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	c := &cobra.Command{
		Use:   "login",
		Short: "Log in and cache the session token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if password == "" {
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}

			client := api.New(cfg.APIBaseURL, log)
			user, err := client.Login(context.Background(), email, password)
			if err != nil {
				return err
			}

			cache, err := auth.NewCache(cfg.CacheSecret)
			if err != nil {
				return err
			}
			if err := cache.Save(auth.FromUser(user)); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "logged in as %s (%s)\n", user.FullName, user.Role)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "", "account email")
	c.Flags().StringVar(&password, "password", "", "account password (prompted if omitted)")
	_ = c.MarkFlagRequired("email")
	return c
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the cached session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			cache, err := auth.NewCache(cfg.CacheSecret)
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the cached identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			cache, err := auth.NewCache(cfg.CacheSecret)
			if err != nil {
				return err
			}
			id, err := cache.Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s <%s> role=%s\n", id.FullName, id.Email, id.Role)
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var in api.RegisterInput

	c := &cobra.Command{
		Use:   "register",
		Short: "Create a new client account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if in.Password == "" {
				in.Password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}

			client := api.New(cfg.APIBaseURL, log)
			user, err := client.Register(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "registered %s, run 'turnero login' to start booking\n", user.Email)
			return nil
		},
	}

	c.Flags().StringVar(&in.FullName, "name", "", "full name")
	c.Flags().StringVar(&in.Email, "email", "", "email")
	c.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	c.Flags().StringVar(&in.Birthdate, "birthdate", "", "birthdate YYYY-MM-DD")
	c.Flags().StringVar(&in.Password, "password", "", "password (prompted if omitted)")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("phone")
	return c
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	r := bufio.NewReader(os.Stdin)
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
