package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sajorahasan/FitSense/internal/client"
	"github.com/sajorahasan/FitSense/internal/theme"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ServerURL string
	ConfigDir string
}

// NewRootCommand creates the root command for the fitsense CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fitsense",
		Short: "FitSense command line client",
		Long:  "Sign in to a FitSense server, walk the onboarding flow, manage the local theme preference, and watch live profile updates.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigDir == "" {
				dir, err := client.ConfigDir()
				if err != nil {
					return fmt.Errorf("resolve config dir: %w", err)
				}
				opts.ConfigDir = dir
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "http://localhost:8080", "FitSense server base URL")
	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "directory for the token cache and theme preference (default: user config dir)")

	cmd.AddCommand(NewSignupCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewMeCommand(opts))
	cmd.AddCommand(NewOnboardCommand(opts))
	cmd.AddCommand(NewThemeCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// apiClient builds a client carrying the cached token, which may be empty.
func (opts *RootOptions) apiClient() (*client.Client, error) {
	token, err := client.LoadToken(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	return client.New(opts.ServerURL, token), nil
}

// authedClient requires a cached token.
func (opts *RootOptions) authedClient() (*client.Client, error) {
	token, err := client.LoadToken(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil, fmt.Errorf("not signed in: run `fitsense login` first")
	}
	return client.New(opts.ServerURL, token), nil
}

// themeStore opens the durable theme preference backed by a single file in
// the config dir.
func (opts *RootOptions) themeStore() (*theme.Store, error) {
	storage := theme.NewFileStorage(filepath.Join(opts.ConfigDir, "theme"))
	return theme.NewStore(storage)
}
