package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/sajorahasan/FitSense/internal/models"
	"github.com/sajorahasan/FitSense/internal/repository"
)

type stubUserStore struct {
	user        *models.User
	getErr      error
	updateErr   error
	updateCalls int
	lastInput   repository.UpdateUserInput
	lastAccount int64

	completeCalls int
}

func (s *stubUserStore) GetByAccountID(_ context.Context, accountID int64) (*models.User, error) {
	s.lastAccount = accountID
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

func (s *stubUserStore) UpdatePartial(_ context.Context, accountID int64, input repository.UpdateUserInput) (*models.User, error) {
	s.updateCalls++
	s.lastAccount = accountID
	s.lastInput = input
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.user, nil
}

func (s *stubUserStore) CompleteOnboarding(_ context.Context, accountID int64) (*models.User, error) {
	s.completeCalls++
	s.lastAccount = accountID
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.user, nil
}

type stubAccountStore struct {
	account *models.Account
	err     error
}

func (s *stubAccountStore) GetByID(_ context.Context, _ int64) (*models.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.account, nil
}

type stubPublisher struct {
	userIDs []string
	users   []*models.User
}

func (s *stubPublisher) PublishUser(userID string, user *models.User) {
	s.userIDs = append(s.userIDs, userID)
	s.users = append(s.users, user)
}

func authenticatedApp(accountID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", accountID)
		return c.Next()
	})
	return app
}

func TestUpdateProfileForwardsOnlyProvidedFields(t *testing.T) {
	name := "Hasan"
	userStore := &stubUserStore{user: &models.User{ID: 1, AccountID: 7, Name: &name}}
	publisher := &stubPublisher{}
	handler := NewUserHandler(userStore, &stubAccountStore{}, publisher, nil)

	app := authenticatedApp("7")
	app.Put("/api/v1/users/profile", handler.UpdateProfile)

	body := `{"name":"Hasan","height":180.5}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if userStore.updateCalls != 1 || userStore.lastAccount != 7 {
		t.Fatalf("expected one update for account 7, got %d calls for %d", userStore.updateCalls, userStore.lastAccount)
	}

	input := userStore.lastInput
	if input.Name == nil || *input.Name != "Hasan" {
		t.Fatalf("expected name forwarded, got %+v", input.Name)
	}
	if input.Height == nil || *input.Height != 180.5 {
		t.Fatalf("expected height forwarded, got %+v", input.Height)
	}
	if input.Weight != nil || input.DateOfBirth != nil || input.ThemeID != nil {
		t.Fatalf("expected absent fields to stay nil, got %+v", input)
	}

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if parsed["success"] != true {
		t.Fatalf("expected success response, got %s", raw)
	}
	if _, ok := parsed["user"]; ok {
		t.Fatalf("response must not echo the record, got %s", raw)
	}

	if len(publisher.userIDs) != 1 || publisher.userIDs[0] != "7" {
		t.Fatalf("expected one published update for account 7, got %+v", publisher.userIDs)
	}
}

func TestUpdateProfileRejectsInvalidEnumBeforeWrite(t *testing.T) {
	userStore := &stubUserStore{}
	handler := NewUserHandler(userStore, &stubAccountStore{}, nil, nil)

	app := authenticatedApp("7")
	app.Put("/api/v1/users/profile", handler.UpdateProfile)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile", strings.NewReader(`{"gender":"unknown"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if userStore.updateCalls != 0 {
		t.Fatalf("expected no write on validation failure, got %d", userStore.updateCalls)
	}
}

func TestUpdateProfileUnauthenticated(t *testing.T) {
	userStore := &stubUserStore{}
	handler := NewUserHandler(userStore, &stubAccountStore{}, nil, nil)

	app := fiber.New()
	app.Put("/api/v1/users/profile", handler.UpdateProfile)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if userStore.updateCalls != 0 {
		t.Fatalf("expected no repository call, got %d", userStore.updateCalls)
	}
}

func TestUpdateProfileUserNotFound(t *testing.T) {
	userStore := &stubUserStore{updateErr: pgx.ErrNoRows}
	handler := NewUserHandler(userStore, &stubAccountStore{}, nil, nil)

	app := authenticatedApp("7")
	app.Put("/api/v1/users/profile", handler.UpdateProfile)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetCurrentUserReturnsNullWhenRecordGone(t *testing.T) {
	userStore := &stubUserStore{getErr: pgx.ErrNoRows}
	handler := NewUserHandler(userStore, &stubAccountStore{}, nil, nil)

	app := authenticatedApp("7")
	app.Get("/api/v1/users/me", handler.GetCurrentUser)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(raw)) != "null" {
		t.Fatalf("expected null body, got %q", raw)
	}
}

func TestGetAllUserDataCombinesRecordAndAccount(t *testing.T) {
	name := "Hasan"
	userStore := &stubUserStore{user: &models.User{ID: 1, AccountID: 7, Name: &name, ThemeID: "mint"}}
	accountStore := &stubAccountStore{account: &models.Account{ID: 7, Email: "hasan@example.com"}}
	handler := NewUserHandler(userStore, accountStore, nil, nil)

	app := authenticatedApp("7")
	app.Get("/api/v1/users/all-data", handler.GetAllUserData)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/all-data", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		User         *models.User    `json:"user"`
		UserMetaData *models.Account `json:"userMetaData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.User == nil || body.User.ThemeID != "mint" {
		t.Fatalf("unexpected user: %+v", body.User)
	}
	if body.UserMetaData == nil || body.UserMetaData.Email != "hasan@example.com" {
		t.Fatalf("unexpected metadata: %+v", body.UserMetaData)
	}
}

func TestGetAllUserDataReturnsNullWhenRecordGone(t *testing.T) {
	userStore := &stubUserStore{getErr: pgx.ErrNoRows}
	accountStore := &stubAccountStore{account: &models.Account{ID: 7}}
	handler := NewUserHandler(userStore, accountStore, nil, nil)

	app := authenticatedApp("7")
	app.Get("/api/v1/users/all-data", handler.GetAllUserData)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/all-data", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(raw)) != "null" {
		t.Fatalf("expected null body, got %q", raw)
	}
}

func TestCompleteOnboardingPublishesSnapshot(t *testing.T) {
	userStore := &stubUserStore{user: &models.User{ID: 1, AccountID: 7, OnboardingStep: 4, OnboardingCompleted: true}}
	publisher := &stubPublisher{}
	handler := NewUserHandler(userStore, &stubAccountStore{}, publisher, nil)

	app := authenticatedApp("7")
	app.Post("/api/v1/users/onboarding/complete", handler.CompleteOnboarding)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/onboarding/complete", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if userStore.completeCalls != 1 {
		t.Fatalf("expected one complete call, got %d", userStore.completeCalls)
	}
	if len(publisher.users) != 1 || !publisher.users[0].OnboardingCompleted {
		t.Fatalf("expected a completed snapshot published, got %+v", publisher.users)
	}
}
