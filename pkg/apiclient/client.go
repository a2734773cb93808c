// Package apiclient provides a lightweight HTTP client for the Payam API.
// Uses raw HTTP calls (no generated SDK) behind a small interface so the
// session gate and review engine can be tested against stubs.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/payam/backend/internal/model"
	"github.com/payam/backend/pkg/auth"
)

// Client is the remote surface of the Payam API.
type Client interface {
	// SignIn authenticates and returns the profile plus the session token.
	SignIn(ctx context.Context, email, password string) (*model.Profile, string, error)
	// SignUp registers an account; no session is created.
	SignUp(ctx context.Context, email, password, fullName string) (*model.Profile, error)
	// SignOut invalidates the session server-side.
	SignOut(ctx context.Context, token string) error
	// Me resolves a session token to its profile.
	Me(ctx context.Context, token string) (*model.Profile, error)
	// ListSubmissions returns the submission collection, sorted and filtered.
	ListSubmissions(ctx context.Context, token string, opts model.SubmissionListOptions) ([]model.Submission, error)
	// UpdateSubmissionStatus transitions one submission's review status.
	UpdateSubmissionStatus(ctx context.Context, token, id string, status model.Status) error
}

// ErrInvalidCredentials mirrors the API's invalid_credentials response.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken mirrors the API's email_taken response.
var ErrEmailTaken = errors.New("email already registered")

// ErrNotFound mirrors the API's not_found response.
var ErrNotFound = errors.New("not found")

// APIError is any other non-2xx response from the API.
type APIError struct {
	Status int
	Code   string
	Field  string
	Reason string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api error %d: %s (%s: %s)", e.Status, e.Code, e.Field, e.Reason)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Code)
}

// RealClient talks to a running Payam API over HTTP.
type RealClient struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a RealClient for the given base URL (no trailing slash).
func NewClient(baseURL string) *RealClient {
	return &RealClient{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

var _ Client = (*RealClient)(nil)

func (c *RealClient) SignIn(ctx context.Context, email, password string) (*model.Profile, string, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/signin", "", body)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	token := ""
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookieName() {
			token = cookie.Value
		}
	}
	if token == "" {
		return nil, "", &APIError{Status: resp.StatusCode, Code: "missing_session_cookie"}
	}

	var p model.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, "", fmt.Errorf("decode profile: %w", err)
	}
	return &p, token, nil
}

func (c *RealClient) SignUp(ctx context.Context, email, password, fullName string) (*model.Profile, error) {
	body := map[string]string{
		"email":            email,
		"password":         password,
		"confirm_password": password,
		"full_name":        fullName,
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var p model.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

func (c *RealClient) SignOut(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/signout", token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *RealClient) Me(ctx context.Context, token string) (*model.Profile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var p model.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

func (c *RealClient) ListSubmissions(ctx context.Context, token string, opts model.SubmissionListOptions) ([]model.Submission, error) {
	opts = opts.Normalized()
	q := url.Values{}
	q.Set("sort", string(opts.SortBy))
	q.Set("order", string(opts.SortOrder))
	q.Set("status", string(opts.StatusFilter))

	resp, err := c.do(ctx, http.MethodGet, "/api/admin/submissions?"+q.Encode(), token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload struct {
		Submissions []model.Submission `json:"submissions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	return payload.Submissions, nil
}

func (c *RealClient) UpdateSubmissionStatus(ctx context.Context, token, id string, status model.Status) error {
	body := map[string]string{"status": string(status)}
	resp, err := c.do(ctx, http.MethodPatch, "/api/admin/submissions/"+url.PathEscape(id)+"/status", token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// do issues one request, attaching the session cookie when token is set.
func (c *RealClient) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName(), Value: token})
	}

	return c.httpClient.Do(req)
}

// checkStatus maps non-2xx responses to typed errors.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body struct {
		Error  string `json:"error"`
		Field  string `json:"field"`
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch body.Error {
	case "invalid_credentials":
		return ErrInvalidCredentials
	case "email_taken":
		return ErrEmailTaken
	case "not_found":
		return ErrNotFound
	}
	return &APIError{Status: resp.StatusCode, Code: body.Error, Field: body.Field, Reason: body.Reason}
}
