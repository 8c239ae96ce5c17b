package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sajorahasan/FitSense/internal/models"
	"github.com/sajorahasan/FitSense/internal/onboarding"
)

// Client talks to the FitSense API on behalf of one signed-in account.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError carries the server's error message alongside the HTTP status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type MeResponse struct {
	User                *models.User `json:"user"`
	UserMetaData        AccountMeta  `json:"userMetaData"`
	OnboardingCompleted bool         `json:"onboardingCompleted"`
}

type AccountMeta struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type ResumeResponse struct {
	Route     string `json:"route"`
	NextStep  int    `json:"nextStep"`
	Completed bool   `json:"completed"`
}

type StepResponse struct {
	Success bool   `json:"success"`
	Next    string `json:"next"`
}

func (c *Client) Register(ctx context.Context, email, password, name, timezone string) (*AuthResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
		"timezone": timezone,
	}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var out *models.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile sends a partial update. Only the fields present in patch are
// written; everything else keeps its stored value.
func (c *Client) UpdateProfile(ctx context.Context, patch map[string]any) error {
	return c.do(ctx, http.MethodPut, "/api/v1/users/profile", patch, nil)
}

func (c *Client) Resume(ctx context.Context) (*ResumeResponse, error) {
	var out ResumeResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/onboarding/resume", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitStep sends the patch a step produced via onboarding.BuildPatch.
// Validation happens before this call, so a rejected form never reaches the
// network.
func (c *Client) SubmitStep(ctx context.Context, step int, patch *onboarding.Patch) (*StepResponse, error) {
	path := fmt.Sprintf("/api/v1/users/onboarding/steps/%d", step)
	var out StepResponse
	if err := c.do(ctx, http.MethodPost, path, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CompleteOnboarding(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/users/onboarding/complete", nil, nil)
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/users/account", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		message := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
