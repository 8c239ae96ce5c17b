package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sajorahasan/FitSense/internal/client"
	"github.com/sajorahasan/FitSense/internal/gate"
)

// NewWatchCommand subscribes to live updates of the signed-in user's record
// and prints each change, including screen transitions as onboarding state
// moves.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "watch",
		Short:         "Stream live profile updates",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rootOpts.authedClient()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			screenGate := gate.New()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Watching for updates. Press Ctrl-C to stop.")

			err = api.Watch(ctx, func(update client.UserUpdate) {
				if update.User == nil {
					return
				}

				name := "(unnamed)"
				if update.User.Name != nil {
					name = *update.User.Name
				}
				fmt.Fprintf(out, "[%s] %s step=%d theme=%s\n",
					update.Timestamp, name, update.User.OnboardingStep, update.User.ThemeID)

				if state, changed := screenGate.Observe(true, update.User.OnboardingCompleted); changed {
					color.Cyan("  screen -> %s", state)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
