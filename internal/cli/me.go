package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sajorahasan/FitSense/internal/gate"
	"github.com/sajorahasan/FitSense/pkg/dateutil"
)

// NewMeCommand prints the signed-in account, its profile, and which screen
// the app would land on.
func NewMeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "me",
		Short:         "Show the signed-in user",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rootOpts.authedClient()
			if err != nil {
				return err
			}

			me, err := api.Me(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.Cyan("%s (#%d)", me.UserMetaData.Email, me.UserMetaData.ID)

			user := me.User
			if user != nil {
				if user.Name != nil {
					fmt.Fprintf(out, "  name:     %s\n", *user.Name)
				}
				if user.DateOfBirth != nil {
					if dob, err := dateutil.TimestampToDateString(*user.DateOfBirth); err == nil {
						fmt.Fprintf(out, "  born:     %s\n", dob)
					}
				}
				if user.Height != nil && user.Weight != nil {
					fmt.Fprintf(out, "  body:     %.1f cm, %.1f kg\n", *user.Height, *user.Weight)
				}
				if user.FitnessLevel != nil {
					fmt.Fprintf(out, "  fitness:  %s\n", *user.FitnessLevel)
				}
				if user.PrimaryGoal != nil {
					fmt.Fprintf(out, "  goal:     %s\n", *user.PrimaryGoal)
				}
				fmt.Fprintf(out, "  theme:    %s\n", user.ThemeID)
				if user.LastSyncAt != nil {
					syncedAt := time.UnixMilli(*user.LastSyncAt).UTC()
					fmt.Fprintf(out, "  synced:   %s\n", syncedAt.Format(time.RFC3339))
				}
			}

			state := gate.Resolve(true, me.OnboardingCompleted)
			fmt.Fprintf(out, "  screen:   %s\n", state)
			return nil
		},
	}
}
