package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sajorahasan/FitSense/internal/models"
	"github.com/sajorahasan/FitSense/internal/onboarding"
)

// NewOnboardCommand groups the onboarding flow: show where the user resumes,
// submit one step's screen, or finish the flow.
func NewOnboardCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Walk the onboarding flow",
	}

	cmd.AddCommand(newOnboardStatusCommand(rootOpts))
	cmd.AddCommand(newOnboardStepCommand(rootOpts))
	cmd.AddCommand(newOnboardCompleteCommand(rootOpts))

	return cmd
}

func newOnboardStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show where the flow resumes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rootOpts.authedClient()
			if err != nil {
				return err
			}

			resume, err := api.Resume(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if resume.Completed {
				color.Green("Onboarding complete")
				fmt.Fprintf(out, "  route: %s\n", resume.Route)
				return nil
			}

			fmt.Fprintf(out, "Next step: %d of %d (%s)\n",
				resume.NextStep, onboarding.TotalSteps, onboarding.Title(resume.NextStep))
			fmt.Fprintf(out, "  route: %s\n", resume.Route)
			return nil
		},
	}
}

func newOnboardStepCommand(rootOpts *RootOptions) *cobra.Command {
	var form onboarding.Form
	var notifyWorkouts, notifyMeals, notifyGoals, notifyInsights, notifyReports bool

	cmd := &cobra.Command{
		Use:   "step <1-4>",
		Short: "Submit one onboarding screen",
		Long: `Submit one onboarding screen. Required fields depend on the step:

  1  welcome       no fields
  2  personal      --height and --weight, optionally --dob (DD/MM/YYYY)
  3  fitness       --fitness-level and --goal
  4  preferences   optional --theme and notification toggles`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step %q", args[0])
			}

			if step == onboarding.StepPreferences {
				form.Notifications = &models.NotificationSettings{
					WorkoutReminders: notifyWorkouts,
					MealReminders:    notifyMeals,
					GoalCelebrations: notifyGoals,
					AIInsights:       notifyInsights,
					WeeklyReports:    notifyReports,
				}
			}

			patch, err := onboarding.BuildPatch(step, form)
			if err != nil {
				return err
			}

			api, err := rootOpts.authedClient()
			if err != nil {
				return err
			}

			resp, err := api.SubmitStep(cmd.Context(), step, patch)
			if err != nil {
				return err
			}

			color.Green("Step %d (%s) saved", step, onboarding.Title(step))
			fmt.Fprintf(cmd.OutOrStdout(), "  next: %s\n", resp.Next)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Height, "height", "", "height in cm")
	cmd.Flags().StringVar(&form.Weight, "weight", "", "weight in kg")
	cmd.Flags().StringVar(&form.DateOfBirth, "dob", "", "date of birth, DD/MM/YYYY")
	cmd.Flags().StringVar(&form.FitnessLevel, "fitness-level", "", "beginner, intermediate, or advanced")
	cmd.Flags().StringVar(&form.PrimaryGoal, "goal", "", "primary fitness goal")
	cmd.Flags().StringVar(&form.ThemeID, "theme", "", "theme preference")
	cmd.Flags().BoolVar(&notifyWorkouts, "notify-workouts", true, "workout reminders")
	cmd.Flags().BoolVar(&notifyMeals, "notify-meals", true, "meal reminders")
	cmd.Flags().BoolVar(&notifyGoals, "notify-goals", true, "goal celebrations")
	cmd.Flags().BoolVar(&notifyInsights, "notify-insights", true, "AI insights")
	cmd.Flags().BoolVar(&notifyReports, "notify-reports", true, "weekly reports")

	return cmd
}

func newOnboardCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "complete",
		Short:         "Mark onboarding finished",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := rootOpts.authedClient()
			if err != nil {
				return err
			}

			if err := api.CompleteOnboarding(cmd.Context()); err != nil {
				return err
			}

			color.Green("Onboarding complete, welcome to %s", onboarding.MainRoute)
			return nil
		},
	}
}
