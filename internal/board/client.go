package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// API is the surface the session and UI layers depend on. It is
// implemented by *Client and by test fakes.
type API interface {
	Me(ctx context.Context, token string) (*UserProfile, error)
	Jobs(ctx context.Context) ([]Job, error)
	MyApplications(ctx context.Context, token string) ([]Application, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, username, email, password string) error
	SubmitApplication(ctx context.Context, token string, sub Submission) (*Application, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the job board HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *zap.Logger
}

const (
	defaultUserAgent = "jobdeck/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL, e.g.
// "http://localhost:8000/api".
func NewClient(apiBase string, log *zap.Logger) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		log:       log,
	}, nil
}

// Me verifies a bearer token and retrieves the profile behind it.
func (c *Client) Me(ctx context.Context, token string) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, http.MethodGet, "auth/me/", token, nil, "", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Jobs retrieves the full posting list. No authentication required.
func (c *Client) Jobs(ctx context.Context) ([]Job, error) {
	var payload jobList
	if err := c.do(ctx, http.MethodGet, "jobs/", "", nil, "", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// MyApplications retrieves the current user's applications.
func (c *Client) MyApplications(ctx context.Context, token string) ([]Application, error) {
	var payload []Application
	if err := c.do(ctx, http.MethodGet, "my-applications/", token, nil, "", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Login exchanges credentials for an access token and profile.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, &Error{Kind: KindValidation, cause: err}
	}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "auth/login/", "", bytes.NewReader(body), "application/json", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account. It does not authenticate; the caller
// logs in afterwards.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return &Error{Kind: KindValidation, cause: err}
	}
	return c.do(ctx, http.MethodPost, "auth/register/", "", bytes.NewReader(body), "application/json", nil)
}

// SubmitApplication posts a multipart application for a job. Status is
// always "pending"; the server owns every later transition.
func (c *Client) SubmitApplication(ctx context.Context, token string, sub Submission) (*Application, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("job", strconv.FormatInt(sub.JobID, 10)); err != nil {
		return nil, &Error{Kind: KindValidation, cause: err}
	}
	if err := form.WriteField("cover_letter", sub.CoverLetter); err != nil {
		return nil, &Error{Kind: KindValidation, cause: err}
	}
	if err := form.WriteField("status", StatusPending); err != nil {
		return nil, &Error{Kind: KindValidation, cause: err}
	}
	if len(sub.Resume) > 0 {
		name := sub.ResumeName
		if name == "" {
			name = "resume"
		}
		part, err := form.CreateFormFile("resume", name)
		if err != nil {
			return nil, &Error{Kind: KindValidation, cause: err}
		}
		if _, err := part.Write(sub.Resume); err != nil {
			return nil, &Error{Kind: KindValidation, cause: err}
		}
	}
	if err := form.Close(); err != nil {
		return nil, &Error{Kind: KindValidation, cause: err}
	}

	var created Application
	if err := c.do(ctx, http.MethodPost, "applications/", token, &buf, form.FormDataContentType(), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return &Error{Kind: KindNetwork, cause: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.Error(err))
		return &Error{Kind: KindNetwork, cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &Error{Kind: KindServer, Status: resp.StatusCode, Detail: decodeDetail(resp.Body)}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			apiErr.Kind = KindAuth
		}
		c.log.Warn("api error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail),
		)
		return apiErr
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeDetail pulls the server's message out of an error body. Django
// style payloads use "error" or "detail"; anything else is discarded.
func decodeDetail(r io.Reader) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		return nil, fmt.Errorf("api base URL is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", apiBase, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
