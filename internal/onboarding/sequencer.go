package onboarding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sajorahasan/FitSense/internal/models"
	"github.com/sajorahasan/FitSense/pkg/dateutil"
)

// The onboarding flow is four ordered screens. A persisted step value of N
// means step N was already submitted, so a resuming user lands on N+1.
const (
	StepWelcome     = 1
	StepPersonal    = 2
	StepFitness     = 3
	StepPreferences = 4

	TotalSteps = 4
)

const MainRoute = "/main"

var stepRoutes = map[int]string{
	StepWelcome:     "/onboarding/step1-welcome",
	StepPersonal:    "/onboarding/step2-personal",
	StepFitness:     "/onboarding/step3-fitness",
	StepPreferences: "/onboarding/step4-preferences",
}

var stepTitles = map[int]string{
	StepWelcome:     "Welcome to FitSense!",
	StepPersonal:    "Tell us about yourself",
	StepFitness:     "Your Fitness Profile",
	StepPreferences: "Almost there!",
}

var (
	ErrUnknownStep = errors.New("unknown onboarding step")

	errHeightWeightRequired = errors.New("Please enter your height and weight to continue.")
	errFitnessLevelRequired = errors.New("Please select your fitness level to continue.")
	errPrimaryGoalRequired  = errors.New("Please select your primary goal to continue.")
)

// Route returns the screen route for a step.
func Route(step int) (string, error) {
	route, ok := stepRoutes[step]
	if !ok {
		return "", ErrUnknownStep
	}
	return route, nil
}

// Title returns the screen heading for a step.
func Title(step int) string {
	return stepTitles[step]
}

// Resume maps a user record to the route a returning user should land on.
// A completed user goes straight to the main app; otherwise the recorded step
// is treated as already submitted and the next screen is returned. This check
// runs on entry to the flow and is cheap enough to repeat on every step.
func Resume(user *models.User) string {
	if user == nil {
		return stepRoutes[StepWelcome]
	}
	if user.OnboardingCompleted {
		return MainRoute
	}
	step := user.OnboardingStep
	if step < StepWelcome {
		step = StepWelcome
	}
	if step >= StepPreferences {
		return stepRoutes[StepPreferences]
	}
	return stepRoutes[step+1]
}

// NextStep is the step a resuming user should submit next, 0 when done.
func NextStep(user *models.User) int {
	if user != nil && user.OnboardingCompleted {
		return 0
	}
	route := Resume(user)
	for step, r := range stepRoutes {
		if r == route {
			return step
		}
	}
	return StepWelcome
}

// Progress returns the filled segment count of the fixed four-segment
// indicator rendered on every step screen.
func Progress(step int) int {
	if step < StepWelcome {
		return 0
	}
	if step > TotalSteps {
		return TotalSteps
	}
	return step
}

// Form carries the locally entered values for one step, as typed by the user.
// Numeric fields stay strings until validation converts them.
type Form struct {
	Height      string
	Weight      string
	DateOfBirth string

	FitnessLevel string
	PrimaryGoal  string

	Notifications *models.NotificationSettings
	ThemeID       string
}

// Patch is the partial field set a step submits, plus the step marker. Nil
// fields are omitted from the call and left untouched server-side.
type Patch struct {
	Height        *float64                     `json:"height,omitempty"`
	Weight        *float64                     `json:"weight,omitempty"`
	DateOfBirth   *int64                       `json:"dateOfBirth,omitempty"`
	FitnessLevel  *string                      `json:"fitnessLevel,omitempty"`
	PrimaryGoal   *string                      `json:"primaryGoal,omitempty"`
	Notifications *models.NotificationSettings `json:"notifications,omitempty"`
	ThemeID       *string                      `json:"themeId,omitempty"`
	Step          int                          `json:"onboardingStep"`
}

// BuildPatch validates a step's required fields and converts entered values
// into the patch the step submits. A validation error means no call should be
// issued at all.
func BuildPatch(step int, form Form) (*Patch, error) {
	switch step {
	case StepWelcome:
		return &Patch{Step: StepWelcome}, nil
	case StepPersonal:
		return buildPersonalPatch(form)
	case StepFitness:
		return buildFitnessPatch(form)
	case StepPreferences:
		return buildPreferencesPatch(form)
	default:
		return nil, ErrUnknownStep
	}
}

func buildPersonalPatch(form Form) (*Patch, error) {
	height := strings.TrimSpace(form.Height)
	weight := strings.TrimSpace(form.Weight)
	if height == "" || weight == "" {
		return nil, errHeightWeightRequired
	}

	heightVal, err := strconv.ParseFloat(height, 64)
	if err != nil {
		return nil, fmt.Errorf("Height must be a number: %q", form.Height)
	}
	weightVal, err := strconv.ParseFloat(weight, 64)
	if err != nil {
		return nil, fmt.Errorf("Weight must be a number: %q", form.Weight)
	}

	patch := &Patch{
		Height: &heightVal,
		Weight: &weightVal,
		Step:   StepPersonal,
	}

	if dob := strings.TrimSpace(form.DateOfBirth); dob != "" {
		timestamp, err := dateutil.DateStringToTimestamp(dob)
		if err != nil {
			return nil, fmt.Errorf("Invalid date format. Please use DD/MM/YYYY format. %w", err)
		}
		patch.DateOfBirth = &timestamp
	}

	return patch, nil
}

func buildFitnessPatch(form Form) (*Patch, error) {
	level := strings.TrimSpace(form.FitnessLevel)
	goal := strings.TrimSpace(form.PrimaryGoal)
	if level == "" {
		return nil, errFitnessLevelRequired
	}
	if goal == "" {
		return nil, errPrimaryGoalRequired
	}
	return &Patch{
		FitnessLevel: &level,
		PrimaryGoal:  &goal,
		Step:         StepFitness,
	}, nil
}

// Step 4 has no required fields: absent selections fall back to defaults.
func buildPreferencesPatch(form Form) (*Patch, error) {
	notifications := form.Notifications
	if notifications == nil {
		defaults := models.DefaultNotificationSettings()
		notifications = &defaults
	}
	themeID := strings.TrimSpace(form.ThemeID)
	if themeID == "" {
		themeID = "default"
	}
	return &Patch{
		Notifications: notifications,
		ThemeID:       &themeID,
		Step:          StepPreferences,
	}, nil
}
