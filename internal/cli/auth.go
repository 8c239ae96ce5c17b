package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sajorahasan/FitSense/internal/client"
)

// NewSignupCommand registers a new account and caches its session token.
func NewSignupCommand(rootOpts *RootOptions) *cobra.Command {
	var name, timezone string

	cmd := &cobra.Command{
		Use:           "signup <email> <password>",
		Short:         "Create an account and sign in",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rootOpts.apiClient()
			if err != nil {
				return err
			}

			resp, err := api.Register(cmd.Context(), args[0], args[1], name, timezone)
			if err != nil {
				return err
			}

			if err := client.SaveToken(rootOpts.ConfigDir, resp.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			color.Green("Account created, signed in as %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone, e.g. Europe/Berlin")

	return cmd
}

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "login <email> <password>",
		Short:         "Sign in and cache the session token",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rootOpts.apiClient()
			if err != nil {
				return err
			}

			resp, err := api.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			if err := client.SaveToken(rootOpts.ConfigDir, resp.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			color.Green("Signed in as %s", args[0])
			return nil
		},
	}
}

func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Discard the cached session token",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ClearToken(rootOpts.ConfigDir); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			color.Yellow("Signed out")
			return nil
		},
	}
}
