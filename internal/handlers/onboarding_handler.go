package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/sajorahasan/FitSense/internal/models"
	"github.com/sajorahasan/FitSense/internal/onboarding"
	"github.com/sajorahasan/FitSense/internal/repository"
)

type onboardingStore interface {
	GetByAccountID(ctx context.Context, accountID int64) (*models.User, error)
	AdvanceOnboarding(ctx context.Context, accountID int64, input repository.UpdateUserInput, step int) (*models.User, error)
}

type OnboardingHandler struct {
	userRepo  onboardingStore
	publisher userPublisher
}

func NewOnboardingHandler(userRepo onboardingStore, publisher userPublisher) *OnboardingHandler {
	return &OnboardingHandler{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Resume reports where a returning user should land. Read-only: no mutation
// is issued on entry, the recorded step only tells the client which screen
// comes next.
func (h *OnboardingHandler) Resume(c *fiber.Ctx) error {
	accountID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.userRepo.GetByAccountID(c.Context(), accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	return c.JSON(fiber.Map{
		"route":     onboarding.Resume(user),
		"nextStep":  onboarding.NextStep(user),
		"completed": user.OnboardingCompleted,
	})
}

type onboardingStepRequest struct {
	Height      *float64 `json:"height"`
	Weight      *float64 `json:"weight"`
	DateOfBirth *int64   `json:"dateOfBirth"`

	FitnessLevel *string `json:"fitnessLevel"`
	PrimaryGoal  *string `json:"primaryGoal"`

	Notifications *models.NotificationSettings `json:"notifications"`
	ThemeID       *string                      `json:"themeId"`
}

// SubmitStep persists one onboarding screen's fields together with the step
// marker. Validation failures reject before any write. Step 4 also flips
// onboarding_completed in the same statement, so preferences and completion
// cannot come apart.
func (h *OnboardingHandler) SubmitStep(c *fiber.Ctx) error {
	accountID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	step, err := strconv.Atoi(c.Params("step"))
	if err != nil || step < onboarding.StepWelcome || step > onboarding.StepPreferences {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid onboarding step"})
	}

	var req onboardingStepRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}

	input, validationErr := buildStepInput(step, req)
	if validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	user, err := h.userRepo.AdvanceOnboarding(c.Context(), accountID, input, step)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save onboarding step"})
	}

	if h.publisher != nil {
		h.publisher.PublishUser(strconv.FormatInt(accountID, 10), user)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"next":    nextRouteAfter(step),
	})
}

func buildStepInput(step int, req onboardingStepRequest) (repository.UpdateUserInput, string) {
	var input repository.UpdateUserInput

	switch step {
	case onboarding.StepWelcome:
		// Nothing collected; the step marker is the whole patch.

	case onboarding.StepPersonal:
		if req.Height == nil || req.Weight == nil {
			return input, "height and weight are required"
		}
		if *req.Height <= 0 {
			return input, "height must be greater than 0"
		}
		if *req.Weight <= 0 {
			return input, "weight must be greater than 0"
		}
		if req.DateOfBirth != nil && *req.DateOfBirth < 0 {
			return input, "dateOfBirth must be an epoch-millisecond timestamp"
		}
		input.Height = req.Height
		input.Weight = req.Weight
		input.DateOfBirth = req.DateOfBirth

	case onboarding.StepFitness:
		if req.FitnessLevel == nil {
			return input, "fitnessLevel is required"
		}
		if req.PrimaryGoal == nil {
			return input, "primaryGoal is required"
		}
		if err := validateEnum(*req.FitnessLevel, allowedFitnessLevels, "fitnessLevel", "beginner, intermediate, advanced"); err != "" {
			return input, err
		}
		if err := validateEnum(*req.PrimaryGoal, allowedPrimaryGoals, "primaryGoal",
			"weight_loss, muscle_gain, maintenance, endurance, health_management"); err != "" {
			return input, err
		}
		input.FitnessLevel = req.FitnessLevel
		input.PrimaryGoal = req.PrimaryGoal

	case onboarding.StepPreferences:
		notifications := req.Notifications
		if notifications == nil {
			defaults := models.DefaultNotificationSettings()
			notifications = &defaults
		}
		themeID := "default"
		if req.ThemeID != nil {
			if err := validateEnum(*req.ThemeID, allowedThemeIDs, "themeId", "default, lavender, mint, sky"); err != "" {
				return input, err
			}
			themeID = *req.ThemeID
		}
		completed := true
		input.Notifications = notifications
		input.ThemeID = &themeID
		input.OnboardingCompleted = &completed
	}

	return input, ""
}

func nextRouteAfter(step int) string {
	if step >= onboarding.StepPreferences {
		return onboarding.MainRoute
	}
	route, err := onboarding.Route(step + 1)
	if err != nil {
		return onboarding.MainRoute
	}
	return route
}
