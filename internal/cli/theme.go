package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sajorahasan/FitSense/internal/theme"
)

// NewThemeCommand manages the locally persisted theme preference and its
// one-way sync from the server-stored value.
func NewThemeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage the theme preference",
	}

	cmd.AddCommand(newThemeListCommand(rootOpts))
	cmd.AddCommand(newThemeSetCommand(rootOpts))
	cmd.AddCommand(newThemeSyncCommand(rootOpts))

	return cmd
}

func newThemeListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the bundled themes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rootOpts.themeStore()
			if err != nil {
				return err
			}

			current := store.Current()
			out := cmd.OutOrStdout()
			for _, t := range theme.Available() {
				marker := " "
				if t.ID == current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-10s %s\n", marker, t.ID, t.Name)
			}
			if _, ok := theme.Lookup(current); !ok {
				color.Yellow("current selection %q is not a bundled theme", current)
			}
			return nil
		},
	}
}

func newThemeSetCommand(rootOpts *RootOptions) *cobra.Command {
	var push bool

	cmd := &cobra.Command{
		Use:           "set <id>",
		Short:         "Select a theme and persist it",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, ok := theme.Lookup(id); !ok {
				return fmt.Errorf("unknown theme %q", id)
			}

			store, err := rootOpts.themeStore()
			if err != nil {
				return err
			}
			if err := store.Set(id); err != nil {
				return err
			}

			if push {
				api, err := rootOpts.authedClient()
				if err != nil {
					return err
				}
				if err := api.UpdateProfile(cmd.Context(), map[string]any{"themeId": id}); err != nil {
					return err
				}
			}

			color.Green("Theme set to %s", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&push, "push", false, "also store the preference on the server")

	return cmd
}

func newThemeSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "sync",
		Short:         "Adopt the server-stored theme preference",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rootOpts.authedClient()
			if err != nil {
				return err
			}

			user, err := api.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("no user record on the server")
			}

			store, err := rootOpts.themeStore()
			if err != nil {
				return err
			}

			changed, err := store.SyncFromUser(user.ThemeID)
			if err != nil {
				return err
			}
			if changed {
				color.Green("Theme synced to %s", store.Current())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Theme already %s\n", store.Current())
			}
			return nil
		},
	}
}
