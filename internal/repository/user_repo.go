package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sajorahasan/FitSense/internal/models"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, account_id, name, image, date_of_birth, gender, height_cm, weight_kg,
	fitness_level, activity_level, primary_goal,
	health_conditions, allergies, dietary_preferences,
	privacy_level, data_retention,
	notify_workout_reminders, notify_meal_reminders, notify_goal_celebrations,
	notify_ai_insights, notify_weekly_reports,
	theme_id, onboarding_step, onboarding_completed,
	last_sync_at, device_id, timezone, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.AccountID,
		&user.Name,
		&user.Image,
		&user.DateOfBirth,
		&user.Gender,
		&user.Height,
		&user.Weight,
		&user.FitnessLevel,
		&user.ActivityLevel,
		&user.PrimaryGoal,
		&user.HealthConditions,
		&user.Allergies,
		&user.DietaryPreferences,
		&user.PrivacyLevel,
		&user.DataRetention,
		&user.Notifications.WorkoutReminders,
		&user.Notifications.MealReminders,
		&user.Notifications.GoalCelebrations,
		&user.Notifications.AIInsights,
		&user.Notifications.WeeklyReports,
		&user.ThemeID,
		&user.OnboardingStep,
		&user.OnboardingCompleted,
		&user.LastSyncAt,
		&user.DeviceID,
		&user.Timezone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateDefaults inserts the user record that accompanies a new account:
// onboarding at step 1, not completed, all notification toggles on, private
// profile kept forever, default theme. The column defaults carry those values.
func (r *UserRepository) CreateDefaults(ctx context.Context, accountID int64, name, timezone string) (*models.User, error) {
	query := `
		INSERT INTO users (account_id, name, timezone)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, accountID, name, timezone))
}

func (r *UserRepository) GetByAccountID(ctx context.Context, accountID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE account_id = $1`
	return scanUser(r.db.QueryRow(ctx, query, accountID))
}

// UpdateUserInput is the partial field set of a profile patch. Every field is
// optional; nil fields are left untouched by the merge. Notifications travel
// as one unit: when present, all five toggles are written.
type UpdateUserInput struct {
	Name        *string
	Image       *string
	DateOfBirth *int64
	Gender      *string
	Height      *float64
	Weight      *float64

	FitnessLevel  *string
	ActivityLevel *string
	PrimaryGoal   *string

	HealthConditions   *[]string
	Allergies          *[]string
	DietaryPreferences *[]string

	PrivacyLevel  *string
	DataRetention *string
	Notifications *models.NotificationSettings
	ThemeID       *string

	OnboardingStep      *int
	OnboardingCompleted *bool

	DeviceID *string
	Timezone *string
}

func (input *UpdateUserInput) notificationArgs() (workout, meal, goal, ai, weekly *bool) {
	if input.Notifications == nil {
		return nil, nil, nil, nil, nil
	}
	n := input.Notifications
	return &n.WorkoutReminders, &n.MealReminders, &n.GoalCelebrations, &n.AIInsights, &n.WeeklyReports
}

const updateUserSet = `
		SET name = COALESCE($1, name),
			image = COALESCE($2, image),
			date_of_birth = COALESCE($3, date_of_birth),
			gender = COALESCE($4, gender),
			height_cm = COALESCE($5, height_cm),
			weight_kg = COALESCE($6, weight_kg),
			fitness_level = COALESCE($7, fitness_level),
			activity_level = COALESCE($8, activity_level),
			primary_goal = COALESCE($9, primary_goal),
			health_conditions = COALESCE($10, health_conditions),
			allergies = COALESCE($11, allergies),
			dietary_preferences = COALESCE($12, dietary_preferences),
			privacy_level = COALESCE($13, privacy_level),
			data_retention = COALESCE($14, data_retention),
			notify_workout_reminders = COALESCE($15, notify_workout_reminders),
			notify_meal_reminders = COALESCE($16, notify_meal_reminders),
			notify_goal_celebrations = COALESCE($17, notify_goal_celebrations),
			notify_ai_insights = COALESCE($18, notify_ai_insights),
			notify_weekly_reports = COALESCE($19, notify_weekly_reports),
			theme_id = COALESCE($20, theme_id),
			onboarding_completed = COALESCE($21, onboarding_completed),
			device_id = COALESCE($22, device_id),
			timezone = COALESCE($23, timezone),
			last_sync_at = $24,
			updated_at = NOW()`

func (input *UpdateUserInput) mergeArgs(lastSyncAt int64) []any {
	workout, meal, goal, ai, weekly := input.notificationArgs()
	return []any{
		input.Name,
		input.Image,
		input.DateOfBirth,
		input.Gender,
		input.Height,
		input.Weight,
		input.FitnessLevel,
		input.ActivityLevel,
		input.PrimaryGoal,
		input.HealthConditions,
		input.Allergies,
		input.DietaryPreferences,
		input.PrivacyLevel,
		input.DataRetention,
		workout,
		meal,
		goal,
		ai,
		weekly,
		input.ThemeID,
		input.OnboardingCompleted,
		input.DeviceID,
		input.Timezone,
		lastSyncAt,
	}
}

// UpdatePartial merges the provided fields into the record and stamps
// last_sync_at. Omitted fields keep their current value; onboarding_step is
// applied exactly as received.
func (r *UserRepository) UpdatePartial(ctx context.Context, accountID int64, input UpdateUserInput) (*models.User, error) {
	query := `
		UPDATE users` + updateUserSet + `,
			onboarding_step = COALESCE($25, onboarding_step)
		WHERE account_id = $26
		RETURNING ` + userColumns
	args := append(input.mergeArgs(time.Now().UnixMilli()), input.OnboardingStep, accountID)
	return scanUser(r.db.QueryRow(ctx, query, args...))
}

// AdvanceOnboarding applies a step submission's patch with a monotonic step
// marker: a stale submission that lands late cannot move onboarding_step
// backward.
func (r *UserRepository) AdvanceOnboarding(ctx context.Context, accountID int64, input UpdateUserInput, step int) (*models.User, error) {
	query := `
		UPDATE users` + updateUserSet + `,
			onboarding_step = GREATEST(onboarding_step, $25)
		WHERE account_id = $26
		RETURNING ` + userColumns
	args := append(input.mergeArgs(time.Now().UnixMilli()), step, accountID)
	return scanUser(r.db.QueryRow(ctx, query, args...))
}

// CompleteOnboarding is the terminal transition: completed goes one-way to
// true and the step lands on the final value regardless of what was recorded.
func (r *UserRepository) CompleteOnboarding(ctx context.Context, accountID int64) (*models.User, error) {
	query := `
		UPDATE users
		SET onboarding_completed = TRUE,
			onboarding_step = 4,
			last_sync_at = $1,
			updated_at = NOW()
		WHERE account_id = $2
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, time.Now().UnixMilli(), accountID))
}
