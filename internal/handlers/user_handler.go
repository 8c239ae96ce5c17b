package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/sajorahasan/FitSense/internal/models"
	"github.com/sajorahasan/FitSense/internal/repository"
	"github.com/sajorahasan/FitSense/internal/services"
	"golang.org/x/sync/errgroup"
)

const maxAvatarSizeBytes = 5 * 1024 * 1024

type userStore interface {
	GetByAccountID(ctx context.Context, accountID int64) (*models.User, error)
	UpdatePartial(ctx context.Context, accountID int64, input repository.UpdateUserInput) (*models.User, error)
	CompleteOnboarding(ctx context.Context, accountID int64) (*models.User, error)
}

type accountStore interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
}

type userPublisher interface {
	PublishUser(userID string, user *models.User)
}

type UserHandler struct {
	userRepo       userStore
	accountRepo    accountStore
	publisher      userPublisher
	storageService services.StorageService
}

func NewUserHandler(userRepo userStore, accountRepo accountStore, publisher userPublisher, storageService services.StorageService) *UserHandler {
	return &UserHandler{
		userRepo:       userRepo,
		accountRepo:    accountRepo,
		publisher:      publisher,
		storageService: storageService,
	}
}

// GetCurrentUser returns the caller's user record, or null when the record is
// gone (account deleted mid-session).
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	accountID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.userRepo.GetByAccountID(c.Context(), accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(nil)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	return c.JSON(user)
}

// GetAllUserData returns the record together with its account metadata, or
// null when either half is missing. The two lookups run concurrently.
func (h *UserHandler) GetAllUserData(c *fiber.Ctx) error {
	accountID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var (
		user    *models.User
		account *models.Account
	)

	g, ctx := errgroup.WithContext(c.Context())
	g.Go(func() error {
		u, err := h.userRepo.GetByAccountID(ctx, accountID)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	g.Go(func() error {
		a, err := h.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		account = a
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(nil)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user data"})
	}

	return c.JSON(fiber.Map{
		"user":         user,
		"userMetaData": account,
	})
}

type updateUserProfileRequest struct {
	Name        *string  `json:"name"`
	Image       *string  `json:"image"`
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

	PrivacyLevel  *string                      `json:"privacyLevel"`
	DataRetention *string                      `json:"dataRetention"`
	Notifications *models.NotificationSettings `json:"notifications"`
	ThemeID       *string                      `json:"themeId"`

	OnboardingStep      *int  `json:"onboardingStep"`
	OnboardingCompleted *bool `json:"onboardingCompleted"`

	DeviceID *string `json:"deviceId"`
	Timezone *string `json:"timezone"`
}

func (req updateUserProfileRequest) toInput() repository.UpdateUserInput {
	return repository.UpdateUserInput{
		Name:                req.Name,
		Image:               req.Image,
		DateOfBirth:         req.DateOfBirth,
		Gender:              req.Gender,
		Height:              req.Height,
		Weight:              req.Weight,
		FitnessLevel:        req.FitnessLevel,
		ActivityLevel:       req.ActivityLevel,
		PrimaryGoal:         req.PrimaryGoal,
		HealthConditions:    req.HealthConditions,
		Allergies:           req.Allergies,
		DietaryPreferences:  req.DietaryPreferences,
		PrivacyLevel:        req.PrivacyLevel,
		DataRetention:       req.DataRetention,
		Notifications:       req.Notifications,
		ThemeID:             req.ThemeID,
		OnboardingStep:      req.OnboardingStep,
		OnboardingCompleted: req.OnboardingCompleted,
		DeviceID:            req.DeviceID,
		Timezone:            req.Timezone,
	}
}

// UpdateProfile merges the provided fields into the caller's record and
// stamps last_sync_at. Fields absent from the body are untouched; the
// response echoes nothing.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	accountID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateUpdateUserRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	user, err := h.userRepo.UpdatePartial(c.Context(), accountID, req.toInput())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	h.publishUser(accountID, user)

	return c.JSON(fiber.Map{"success": true})
}

// CompleteOnboarding is the terminal onboarding transition: completed=true,
// step=4, regardless of the recorded step.
func (h *UserHandler) CompleteOnboarding(c *fiber.Ctx) error {
	accountID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.userRepo.CompleteOnboarding(c.Context(), accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete onboarding"})
	}

	h.publishUser(accountID, user)

	return c.JSON(fiber.Map{"success": true})
}

// UploadAvatar stores the image and patches the record's image field. The
// previous avatar is removed from storage once the new one is in place.
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	if h.storageService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	}

	accountID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}
	if fileHeader.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is empty"})
	}
	if fileHeader.Size > maxAvatarSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file exceeds 5MB limit"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar must be a jpg, jpeg, png, or webp file"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open avatar file"})
	}
	defer file.Close()

	current, err := h.userRepo.GetByAccountID(c.Context(), accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	filename := fmt.Sprintf("%d-%d%s", accountID, time.Now().UnixNano(), ext)
	avatarURL, err := h.storageService.UploadFile(c.Context(), file, filename, "users/avatars")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload avatar"})
	}

	if current.Image != nil && *current.Image != "" && *current.Image != avatarURL {
		_ = h.storageService.DeleteFile(c.Context(), *current.Image)
	}

	user, err := h.userRepo.UpdatePartial(c.Context(), accountID, repository.UpdateUserInput{Image: &avatarURL})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	h.publishUser(accountID, user)

	return c.JSON(fiber.Map{"image": avatarURL})
}

func (h *UserHandler) publishUser(accountID int64, user *models.User) {
	if h.publisher == nil || user == nil {
		return
	}
	h.publisher.PublishUser(strconv.FormatInt(accountID, 10), user)
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	userIDValue := c.Locals("user_id")
	userIDStr, ok := userIDValue.(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}
