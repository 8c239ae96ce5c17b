package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/sajorahasan/FitSense/internal/models"
	"github.com/sajorahasan/FitSense/internal/repository"
)

type stubOnboardingStore struct {
	user   *models.User
	getErr error

	advanceCalls int
	lastInput    repository.UpdateUserInput
	lastStep     int
	advanceErr   error
}

func (s *stubOnboardingStore) GetByAccountID(_ context.Context, _ int64) (*models.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

func (s *stubOnboardingStore) AdvanceOnboarding(_ context.Context, _ int64, input repository.UpdateUserInput, step int) (*models.User, error) {
	s.advanceCalls++
	s.lastInput = input
	s.lastStep = step
	if s.advanceErr != nil {
		return nil, s.advanceErr
	}
	return s.user, nil
}

func TestResumeRoutesToNextScreenWithoutMutation(t *testing.T) {
	store := &stubOnboardingStore{user: &models.User{ID: 1, AccountID: 7, OnboardingStep: 2}}
	handler := NewOnboardingHandler(store, nil)

	app := authenticatedApp("7")
	app.Get("/api/v1/users/onboarding/resume", handler.Resume)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/onboarding/resume", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Route     string `json:"route"`
		NextStep  int    `json:"nextStep"`
		Completed bool   `json:"completed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Route != "/onboarding/step3-fitness" || body.NextStep != 3 || body.Completed {
		t.Fatalf("unexpected resume response: %+v", body)
	}
	if store.advanceCalls != 0 {
		t.Fatalf("resume must not mutate, got %d advance calls", store.advanceCalls)
	}
}

func TestResumeCompletedGoesToMain(t *testing.T) {
	store := &stubOnboardingStore{user: &models.User{ID: 1, AccountID: 7, OnboardingStep: 4, OnboardingCompleted: true}}
	handler := NewOnboardingHandler(store, nil)

	app := authenticatedApp("7")
	app.Get("/api/v1/users/onboarding/resume", handler.Resume)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/onboarding/resume", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Route     string `json:"route"`
		Completed bool   `json:"completed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Route != "/main" || !body.Completed {
		t.Fatalf("unexpected resume response: %+v", body)
	}
}

func TestSubmitStepRejectsMissingRequiredFields(t *testing.T) {
	store := &stubOnboardingStore{}
	handler := NewOnboardingHandler(store, nil)

	app := authenticatedApp("7")
	app.Post("/api/v1/users/onboarding/steps/:step", handler.SubmitStep)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/onboarding/steps/2", strings.NewReader(`{"height":175.0}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if store.advanceCalls != 0 {
		t.Fatalf("expected no write on validation failure, got %d", store.advanceCalls)
	}
}

func TestSubmitStepRejectsOutOfRangeStep(t *testing.T) {
	store := &stubOnboardingStore{}
	handler := NewOnboardingHandler(store, nil)

	app := authenticatedApp("7")
	app.Post("/api/v1/users/onboarding/steps/:step", handler.SubmitStep)

	for _, step := range []string{"0", "5", "x"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/onboarding/steps/"+step, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("step %s: expected 400, got %d", step, resp.StatusCode)
		}
	}
	if store.advanceCalls != 0 {
		t.Fatalf("expected no writes, got %d", store.advanceCalls)
	}
}

func TestSubmitPersonalStepAdvances(t *testing.T) {
	store := &stubOnboardingStore{user: &models.User{ID: 1, AccountID: 7, OnboardingStep: 2}}
	publisher := &stubPublisher{}
	handler := NewOnboardingHandler(store, publisher)

	app := authenticatedApp("7")
	app.Post("/api/v1/users/onboarding/steps/:step", handler.SubmitStep)

	body := `{"height":175.5,"weight":70.2,"dateOfBirth":634694400000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/onboarding/steps/2", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastStep != 2 {
		t.Fatalf("expected step 2, got %d", store.lastStep)
	}
	if store.lastInput.Height == nil || *store.lastInput.Height != 175.5 {
		t.Fatalf("expected height forwarded, got %+v", store.lastInput.Height)
	}
	if store.lastInput.OnboardingCompleted != nil {
		t.Fatalf("personal step must not complete onboarding, got %+v", store.lastInput.OnboardingCompleted)
	}

	var parsed struct {
		Success bool   `json:"success"`
		Next    string `json:"next"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !parsed.Success || parsed.Next != "/onboarding/step3-fitness" {
		t.Fatalf("unexpected response: %+v", parsed)
	}
	if len(publisher.userIDs) != 1 || publisher.userIDs[0] != "7" {
		t.Fatalf("expected one published update, got %+v", publisher.userIDs)
	}
}

func TestSubmitPreferencesStepCompletesInOneWrite(t *testing.T) {
	store := &stubOnboardingStore{user: &models.User{ID: 1, AccountID: 7, OnboardingStep: 4, OnboardingCompleted: true}}
	handler := NewOnboardingHandler(store, nil)

	app := authenticatedApp("7")
	app.Post("/api/v1/users/onboarding/steps/:step", handler.SubmitStep)

	body := `{"themeId":"lavender","notifications":{"workoutReminders":true,"mealReminders":false,"goalCelebrations":true,"aiInsights":false,"weeklyReports":true}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/onboarding/steps/4", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.advanceCalls != 1 {
		t.Fatalf("preferences and completion must land in a single write, got %d", store.advanceCalls)
	}

	input := store.lastInput
	if input.OnboardingCompleted == nil || !*input.OnboardingCompleted {
		t.Fatalf("expected completion flag in the same input, got %+v", input.OnboardingCompleted)
	}
	if input.ThemeID == nil || *input.ThemeID != "lavender" {
		t.Fatalf("expected themeId forwarded, got %+v", input.ThemeID)
	}
	if input.Notifications == nil || input.Notifications.MealReminders {
		t.Fatalf("expected notification toggles forwarded, got %+v", input.Notifications)
	}

	var parsed struct {
		Next string `json:"next"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if parsed.Next != "/main" {
		t.Fatalf("expected /main after the final step, got %q", parsed.Next)
	}
}

func TestSubmitPreferencesStepDefaults(t *testing.T) {
	store := &stubOnboardingStore{user: &models.User{ID: 1, AccountID: 7}}
	handler := NewOnboardingHandler(store, nil)

	app := authenticatedApp("7")
	app.Post("/api/v1/users/onboarding/steps/:step", handler.SubmitStep)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/onboarding/steps/4", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	input := store.lastInput
	if input.ThemeID == nil || *input.ThemeID != "default" {
		t.Fatalf("expected default theme, got %+v", input.ThemeID)
	}
	if input.Notifications == nil || !input.Notifications.WorkoutReminders || !input.Notifications.WeeklyReports {
		t.Fatalf("expected default notification toggles, got %+v", input.Notifications)
	}
}

func TestSubmitStepUserNotFound(t *testing.T) {
	store := &stubOnboardingStore{advanceErr: pgx.ErrNoRows}
	handler := NewOnboardingHandler(store, nil)

	app := authenticatedApp("7")
	app.Post("/api/v1/users/onboarding/steps/:step", handler.SubmitStep)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/onboarding/steps/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
