package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/carpark/internal/client/models"
	"github.com/dmitrijs2005/carpark/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	body   string
	header http.Header
}

type fakeServer struct {
	srv      *httptest.Server
	requests []recordedRequest

	status int
	body   string
}

func newFakeServer(t *testing.T, status int, body string) *fakeServer {
	t.Helper()
	f := &fakeServer{status: status, body: body}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		f.requests = append(f.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			body:   string(data),
			header: r.Header.Clone(),
		})
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) last(t *testing.T) recordedRequest {
	t.Helper()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, url string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(url, nil)
	require.NoError(t, err)
	return c
}

const stateBody = `{"state": {"current_user": "alice", "capacity": 5, "available_spots": 4, "rate_per_hour": 2,
	"parked_cars": [{"spot": 1, "plate": "ABC", "time_in": "t", "comments": ""}], "transactions": []}}`

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPClient("not a url", nil)
	require.Error(t, err)
}

func TestDo_SetsHeadersAndEncodesBody(t *testing.T) {
	f := newFakeServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, f.srv.URL+"/")
	c.newID = func() string { return "req-1" }

	err := c.Do(context.Background(), http.MethodPost, "/api/park", models.ParkRequest{Plate: "XYZ"}, nil)
	require.NoError(t, err)

	r := f.last(t)
	assert.Equal(t, http.MethodPost, r.method)
	assert.Equal(t, "/api/park", r.path)
	assert.JSONEq(t, `{"plate": "XYZ"}`, r.body)
	assert.Equal(t, "application/json", r.header.Get("Content-Type"))
	assert.Equal(t, "application/json", r.header.Get("Accept"))
	assert.Equal(t, "req-1", r.header.Get(common.RequestIDHeaderName))
}

func TestDo_RawBodiesSentAsIs(t *testing.T) {
	f := newFakeServer(t, http.StatusOK, ``)
	c := newTestClient(t, f.srv.URL)

	require.NoError(t, c.Do(context.Background(), http.MethodPost, "/x", `{"a":1}`, nil))
	assert.Equal(t, `{"a":1}`, f.last(t).body)

	require.NoError(t, c.Do(context.Background(), http.MethodPost, "/x", json.RawMessage(`[1]`), nil))
	assert.Equal(t, `[1]`, f.last(t).body)

	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/x", nil, nil))
	assert.Empty(t, f.last(t).body)
}

func TestDo_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		unauth  bool
	}{
		{"server message", http.StatusBadRequest, `{"error": "Spot taken"}`, "Spot taken", false},
		{"no error field", http.StatusInternalServerError, `{"detail": "x"}`, DefaultErrorMessage, false},
		{"non json body", http.StatusBadGateway, `<html>oops</html>`, DefaultErrorMessage, false},
		{"empty body", http.StatusForbidden, ``, DefaultErrorMessage, false},
		{"non string error", http.StatusConflict, `{"error": 42}`, DefaultErrorMessage, false},
		{"unauthorized", http.StatusUnauthorized, `{"error": "Login required"}`, "Login required", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeServer(t, tt.status, tt.body)
			c := newTestClient(t, f.srv.URL)

			err := c.Do(context.Background(), http.MethodGet, "/api/state", nil, nil)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.NotNil(t, apiErr.Payload)
			assert.Equal(t, tt.unauth, errors.Is(err, ErrUnauthorized))
		})
	}
}

func TestDo_TransportFailureWrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	err := c.Do(context.Background(), http.MethodGet, "/api/state", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_UnparseableSuccessBodyIsEmpty(t *testing.T) {
	f := newFakeServer(t, http.StatusOK, `not json`)
	c := newTestClient(t, f.srv.URL)

	var out map[string]any
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/x", nil, &out))
	assert.Nil(t, out)
}

func TestState_DecodesSnapshot(t *testing.T) {
	f := newFakeServer(t, http.StatusOK, `{"current_user": "bob", "is_admin": true, "capacity": 2,
		"available_spots": 2, "rate_per_hour": 1.5, "parked_cars": [], "transactions": []}`)
	c := newTestClient(t, f.srv.URL)

	s, err := c.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bob", s.CurrentUser)
	assert.True(t, s.IsAdmin)
	assert.Equal(t, 1.5, s.RatePerHour)
	assert.Equal(t, "/api/state", f.last(t).path)
	assert.Equal(t, http.MethodGet, f.last(t).method)
}

func TestStateEndpoints_RequestShapes(t *testing.T) {
	hours := 3.0
	tests := []struct {
		name     string
		call     func(c *HTTPClient) (*models.State, error)
		wantPath string
		wantBody string
	}{
		{"park", func(c *HTTPClient) (*models.State, error) {
			return c.Park(context.Background(), "ABC")
		}, "/api/park", `{"plate": "ABC"}`},
		{"remove", func(c *HTTPClient) (*models.State, error) {
			return c.Remove(context.Background(), models.RemoveRequest{Spot: 4, HoursOverride: &hours})
		}, "/api/remove", `{"spot": 4, "hours_override": 3}`},
		{"comments", func(c *HTTPClient) (*models.State, error) {
			return c.UpdateComments(context.Background(), 7, "line1\nline2")
		}, "/api/spot/7/comments", `{"comments": "line1\nline2"}`},
		{"rate", func(c *HTTPClient) (*models.State, error) {
			return c.UpdateRate(context.Background(), 2.75)
		}, "/api/rate", `{"rate_per_hour": 2.75}`},
		{"setup", func(c *HTTPClient) (*models.State, error) {
			return c.Setup(context.Background(), 12)
		}, "/api/setup", `{"capacity": 12}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeServer(t, http.StatusOK, stateBody)
			c := newTestClient(t, f.srv.URL)

			s, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, "alice", s.CurrentUser)

			r := f.last(t)
			assert.Equal(t, http.MethodPost, r.method)
			assert.Equal(t, tt.wantPath, r.path)
			assert.JSONEq(t, tt.wantBody, r.body)
		})
	}
}

func TestLoad_MissingStateIsMalformed(t *testing.T) {
	f := newFakeServer(t, http.StatusOK, `{}`)
	c := newTestClient(t, f.srv.URL)

	_, err := c.Load(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, "/api/load", f.last(t).path)
}

func TestUserEndpoints(t *testing.T) {
	f := newFakeServer(t, http.StatusOK, `{"users": [{"username": "a", "role": "admin", "created_at": null}]}`)
	c := newTestClient(t, f.srv.URL)
	ctx := context.Background()

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a", users[0].Username)
	assert.False(t, users[0].CreatedAt.Valid)

	require.NoError(t, c.CreateUser(ctx, models.CreateUserRequest{Username: "n", Password: "p", Role: "user"}))
	assert.Equal(t, "/api/users", f.last(t).path)
	assert.JSONEq(t, `{"username": "n", "password": "p", "role": "user"}`, f.last(t).body)

	require.NoError(t, c.DeleteUser(ctx, "john doe"))
	assert.Equal(t, http.MethodDelete, f.last(t).method)
	assert.Equal(t, "/api/users/john%20doe", f.last(t).path)

	require.NoError(t, c.ResetPassword(ctx, "bob", "pw"))
	assert.Equal(t, "/api/users/bob/password", f.last(t).path)
	assert.JSONEq(t, `{"password": "pw"}`, f.last(t).body)

	require.NoError(t, c.ChangePassword(ctx, "old", "new"))
	assert.Equal(t, "/api/account/password", f.last(t).path)
	assert.JSONEq(t, `{"current_password": "old", "new_password": "new"}`, f.last(t).body)

	require.NoError(t, c.Save(ctx))
	assert.Equal(t, "/api/save", f.last(t).path)

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, "/api/logout", f.last(t).path)
}

func TestDeleteUser_EmptyBody(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNoContent} {
		f := newFakeServer(t, status, "")
		c := newTestClient(t, f.srv.URL)

		require.NoError(t, c.DeleteUser(context.Background(), "bob"), "status %d", status)
		assert.Equal(t, http.MethodDelete, f.last(t).method)
		assert.Equal(t, "/api/users/bob", f.last(t).path)
	}
}

func TestLogin_KeepsSessionCookie(t *testing.T) {
	var cookies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			cookies = append(cookies, c.Value)
		}
		if r.URL.Path == "/api/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = io.WriteString(w, `{"current_user": "alice"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "alice", "secret"))
	s, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", s.CurrentUser)
	assert.Equal(t, []string{"s1"}, cookies)
}
