package models

import "time"

// Account is the identity row backing a login. A User record exists if and
// only if its Account exists; the two are created and deleted together.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NotificationSettings is patched as a single unit: when a caller sends
// notifications at all, all five toggles are written together.
type NotificationSettings struct {
	WorkoutReminders bool `json:"workoutReminders"`
	MealReminders    bool `json:"mealReminders"`
	GoalCelebrations bool `json:"goalCelebrations"`
	AIInsights       bool `json:"aiInsights"`
	WeeklyReports    bool `json:"weeklyReports"`
}

// DefaultNotificationSettings are applied when an account is created.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		WorkoutReminders: true,
		MealReminders:    true,
		GoalCelebrations: true,
		AIInsights:       true,
		WeeklyReports:    true,
	}
}

// User is the forward-facing user record. Profile fields stay nil until the
// onboarding flow (or a later profile patch) sets them. DateOfBirth and
// LastSyncAt are epoch milliseconds, never calendar types.
type User struct {
	ID        int64   `json:"id"`
	AccountID int64   `json:"account_id"`
	Name      *string `json:"name"`
	Image     *string `json:"image"`

	DateOfBirth *int64   `json:"dateOfBirth"`
	Gender      *string  `json:"gender"`
	Height      *float64 `json:"height"`
	Weight      *float64 `json:"weight"`

	FitnessLevel  *string `json:"fitnessLevel"`
	ActivityLevel *string `json:"activityLevel"`
	PrimaryGoal   *string `json:"primaryGoal"`

	HealthConditions   *[]string `json:"healthConditions"`
	Allergies          *[]string `json:"allergies"`
	DietaryPreferences *[]string `json:"dietaryPreferences"`

	PrivacyLevel  string               `json:"privacyLevel"`
	DataRetention string               `json:"dataRetention"`
	Notifications NotificationSettings `json:"notifications"`
	ThemeID       string               `json:"themeId"`

	OnboardingStep      int  `json:"onboardingStep"`
	OnboardingCompleted bool `json:"onboardingCompleted"`

	LastSyncAt *int64  `json:"lastSyncAt"`
	DeviceID   *string `json:"deviceId"`
	Timezone   *string `json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
