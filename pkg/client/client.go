// Package client implements the Meetix API client: a thin JSON-over-HTTP
// wrapper plus per-resource method groups. All business rules (availability,
// payment validation, certificate eligibility, coupon math) live in the
// backend; this layer only normalizes transport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// genericErrMsg is used when a failing response carries no usable message.
const genericErrMsg = "could not process server response"

// connectErrMsg is used for failures where no HTTP response was received.
const connectErrMsg = "could not reach the server, check your connection"

// SessionStore is the slice of the session store the request layer needs.
// *session.FileStore satisfies it.
type SessionStore interface {
	Token() string
	Set(token string, user *domain.User) error
	Clear() error
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Store   SessionStore
	// OnUnauthorized is invoked when any endpoint other than login/register
	// answers 401, after the store has been cleared. Registered once at
	// construction so the request layer never reaches into the UI.
	OnUnauthorized func()
	// HTTPClient overrides the default 30s-timeout client, mainly for tests.
	HTTPClient *http.Client
}

// Client is the Meetix API client.
type Client struct {
	baseURL        string
	store          SessionStore
	onUnauthorized func()
	httpClient     *http.Client
}

// New creates a new API client.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:        cfg.BaseURL,
		store:          cfg.Store,
		onUnauthorized: cfg.OnUnauthorized,
		httpClient:     hc,
	}
}

// isAuthEndpoint reports whether a 401 from path means bad credentials
// rather than an expired session.
func isAuthEndpoint(path string) bool {
	return path == "/auth/login" || path == "/auth/register"
}

func (c *Client) token() string {
	if c.store == nil {
		return ""
	}
	return c.store.Token()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path, out)
}

// send issues a prepared request, attaching the bearer token and applying
// the shared response handling. Single attempt, no retries: retry policy
// belongs to the caller.
func (c *Client) send(req *http.Request, path string, out any) error {
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("do request: %w", err)
		}
		return &APIError{Status: 0, Message: connectErrMsg}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.failure(resp, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: genericErrMsg}
		}
	}
	return nil
}

// failure turns a non-2xx response into an APIError, running the session
// teardown when the token was rejected outside of a credential check.
func (c *Client) failure(resp *http.Response, path string) error {
	msg := errorMessage(resp)

	if resp.StatusCode == http.StatusUnauthorized && !isAuthEndpoint(path) {
		if c.store != nil {
			c.store.Clear() //nolint:errcheck // teardown is best-effort
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// errorMessage extracts the backend-provided message from an error body,
// falling back to the HTTP status text when the body is not usable JSON.
func errorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if err == nil {
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil {
			if apiErr.Message != "" {
				return apiErr.Message
			}
			if apiErr.Error != "" {
				return apiErr.Error
			}
		}
	}
	if txt := http.StatusText(resp.StatusCode); txt != "" {
		return txt
	}
	return genericErrMsg
}

// download fetches a binary payload (PDF endpoints). The body is returned
// untouched on success; failures are normalized exactly like JSON requests.
func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, fmt.Errorf("do request: %w", err)
		}
		return nil, &APIError{Status: 0, Message: connectErrMsg}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.failure(resp, path)
	}

	const maxDocumentSize = 20 << 20 // 20 MB
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

// upload posts a single file as multipart/form-data (PIX proof endpoint).
func (c *Client) upload(ctx context.Context, path, field, filename string, data []byte, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, path, out)
}
