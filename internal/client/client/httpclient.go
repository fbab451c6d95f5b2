package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/carpark/internal/client/models"
	"github.com/dmitrijs2005/carpark/internal/common"
	"github.com/dmitrijs2005/carpark/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
	newID   func() string
}

// NewHTTPClient returns a client for the server at baseURL. The session cookie
// set by /api/login is kept in a private jar and sent on every later call.
func NewHTTPClient(baseURL string, log logging.Logger) (*HTTPClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	if log == nil {
		log = logging.Nop()
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		log:     log.With("component", "gateway"),
		newID:   func() string { return uuid.NewString() },
	}, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

// parsePayload never fails: anything that is not a JSON object becomes {}.
func parsePayload(data []byte) map[string]any {
	payload := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return payload
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		return map[string]any{}
	}
	return payload
}

func (c *HTTPClient) Do(ctx context.Context, method, path string, body any, out any) error {
	reader, err := encodeBody(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := c.newID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		data = nil
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, parsePayload(data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		// unparseable success bodies count as empty
		c.log.Debug(ctx, "response body ignored", "path", path, "error", err)
	}
	return nil
}

func (c *HTTPClient) doState(ctx context.Context, method, path string, body any) (*models.State, error) {
	var resp models.StateResponse
	if err := c.Do(ctx, method, path, body, &resp); err != nil {
		return nil, err
	}
	if resp.State == nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrMalformedResponse)
	}
	return resp.State, nil
}

func (c *HTTPClient) State(ctx context.Context) (*models.State, error) {
	var s *models.State
	if err := c.Do(ctx, http.MethodGet, "/api/state", nil, &s); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("GET /api/state: %w", ErrMalformedResponse)
	}
	return s, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	return c.Do(ctx, http.MethodPost, "/api/login", models.LoginRequest{Username: username, Password: password}, nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

func (c *HTTPClient) Park(ctx context.Context, plate string) (*models.State, error) {
	return c.doState(ctx, http.MethodPost, "/api/park", models.ParkRequest{Plate: plate})
}

func (c *HTTPClient) Remove(ctx context.Context, req models.RemoveRequest) (*models.State, error) {
	return c.doState(ctx, http.MethodPost, "/api/remove", req)
}

func (c *HTTPClient) UpdateComments(ctx context.Context, spot int, comments string) (*models.State, error) {
	path := "/api/spot/" + strconv.Itoa(spot) + "/comments"
	return c.doState(ctx, http.MethodPost, path, models.CommentsRequest{Comments: comments})
}

func (c *HTTPClient) UpdateRate(ctx context.Context, rate float64) (*models.State, error) {
	return c.doState(ctx, http.MethodPost, "/api/rate", models.RateRequest{RatePerHour: rate})
}

func (c *HTTPClient) Setup(ctx context.Context, capacity int) (*models.State, error) {
	return c.doState(ctx, http.MethodPost, "/api/setup", models.SetupRequest{Capacity: capacity})
}

func (c *HTTPClient) Save(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/api/save", nil, nil)
}

func (c *HTTPClient) Load(ctx context.Context) (*models.State, error) {
	return c.doState(ctx, http.MethodPost, "/api/load", nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var resp models.UsersResponse
	if err := c.Do(ctx, http.MethodGet, "/api/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, req models.CreateUserRequest) error {
	return c.Do(ctx, http.MethodPost, "/api/users", req, nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, username string) error {
	return c.Do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(username), nil, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, username, password string) error {
	path := "/api/users/" + url.PathEscape(username) + "/password"
	return c.Do(ctx, http.MethodPost, path, models.ResetPasswordRequest{Password: password}, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, next string) error {
	req := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	return c.Do(ctx, http.MethodPost, "/api/account/password", req, nil)
}

var _ Client = (*HTTPClient)(nil)
