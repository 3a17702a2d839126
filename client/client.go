// Package client is the data layer a habit-tracking frontend embeds: a
// REST client for the backend, an in-memory per-session habit list kept
// consistent with it, and one-shot wake-up scheduling for reminders.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"habittracker-backend/models"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request; the transport default alone is not
// an acceptable bound for a mobile sync path.
const DefaultTimeout = 10 * time.Second

// Config configures a Client.
type Config struct {
	// BaseURL is the backend root, e.g. "http://localhost:8080".
	BaseURL string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
	// HTTPClient replaces the default client entirely when set.
	HTTPClient *http.Client
}

// Client is a thin REST client for the habit backend. Calls are never
// retried; the caller decides what a failure means for its state.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
	}
}

// APIError is a non-2xx response decoded from the backend's error
// envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}

	return apiErr
}

// GetUser fetches the user record for an external uid.
func (c *Client) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/user/"+url.PathEscape(uid), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterUser creates the user on first sign-in, or returns the existing
// record for a known uid.
func (c *Client) RegisterUser(ctx context.Context, uid, email string, profile map[string]string) (*models.User, error) {
	path := fmt.Sprintf("/user/%s?email=%s", url.PathEscape(uid), url.QueryEscape(email))
	payload := profile
	if payload == nil {
		payload = map[string]string{}
	}
	var user models.User
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Habits fetches all habits for a user, server-ordered by date then start
// time.
func (c *Client) Habits(ctx context.Context, uid string) ([]models.Habit, error) {
	var habits []models.Habit
	if err := c.do(ctx, http.MethodGet, "/habits/"+url.PathEscape(uid), nil, nil, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// Habit fetches a single habit by id.
func (c *Client) Habit(ctx context.Context, id uuid.UUID) (*models.Habit, error) {
	var habit models.Habit
	if err := c.do(ctx, http.MethodGet, "/habits/one/"+id.String(), nil, nil, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

// CreateHabit creates a habit for a user. The idempotency key lets the
// backend deduplicate a replayed create.
func (c *Client) CreateHabit(ctx context.Context, uid string, habit models.Habit, idempotencyKey uuid.UUID) (*models.Habit, error) {
	headers := map[string]string{"Idempotency-Key": idempotencyKey.String()}
	var created models.Habit
	if err := c.do(ctx, http.MethodPost, "/habits/"+url.PathEscape(uid), headers, habit, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateHabit overwrites all mutable fields of a habit.
func (c *Client) UpdateHabit(ctx context.Context, id uuid.UUID, habit models.Habit) error {
	return c.do(ctx, http.MethodPut, "/habits/"+id.String(), nil, habit, nil)
}

// DeleteHabit removes a habit; the backend cascades to its reminders.
func (c *Client) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/habits/"+id.String(), nil, nil, nil)
}

// CreateReminder creates a reminder for a habit.
func (c *Client) CreateReminder(ctx context.Context, habitID uuid.UUID, remindAt string) (*models.Reminder, error) {
	payload := map[string]string{
		"habitId":  habitID.String(),
		"remindAt": remindAt,
	}
	var reminder models.Reminder
	if err := c.do(ctx, http.MethodPost, "/reminder", nil, payload, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// Reminders fetches all reminders for a habit.
func (c *Client) Reminders(ctx context.Context, habitID uuid.UUID) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := c.do(ctx, http.MethodGet, "/reminder/"+habitID.String(), nil, nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// DeleteReminder removes a reminder by id.
func (c *Client) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/reminder/"+id.String(), nil, nil, nil)
}
