package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/bankist/internal/config"
	"github.com/josh-kwaku/bankist/internal/handler"
	"github.com/josh-kwaku/bankist/internal/seed"
	"github.com/josh-kwaku/bankist/internal/service"
	"github.com/josh-kwaku/bankist/internal/testutil"
)

const testSecret = "test-session-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type apiClient struct {
	t     *testing.T
	url   string
	token string
}

func (c *apiClient) do(method, path string, body any, wantStatus int) envelope {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.url+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	require.Equal(c.t, wantStatus, resp.StatusCode, "body: %s", raw)

	var env envelope
	require.NoError(c.t, json.Unmarshal(raw, &env))
	return env
}

func (c *apiClient) errorCode(method, path string, body any, wantStatus int) string {
	c.t.Helper()
	env := c.do(method, path, body, wantStatus)
	require.False(c.t, env.Success)
	require.NotNil(c.t, env.Error)
	return env.Error.Code
}

func setupServer(t *testing.T) (*apiClient, *testutil.ManualScheduler) {
	t.Helper()
	return setupServerWith(t, service.DefaultSettings(), 10*time.Minute)
}

func setupServerWith(t *testing.T, settings service.Settings, tokenExpiry time.Duration) (*apiClient, *testutil.ManualScheduler) {
	t.Helper()

	accounts, err := seed.Accounts()
	require.NoError(t, err)

	sched := testutil.NewManualScheduler()
	bank, err := service.NewBankSession(accounts, sched, slog.New(slog.NewTextHandler(io.Discard, nil)), settings)
	require.NoError(t, err)

	h := handler.NewSessionHandler(bank, testSecret, tokenExpiry)
	srv := httptest.NewServer(newRouter(h, bank, testSecret, []byte("openapi: 3.0.3\n")))
	t.Cleanup(srv.Close)

	return &apiClient{t: t, url: srv.URL}, sched
}

type dashboard struct {
	Welcome   string `json:"welcome"`
	Balance   string `json:"balance"`
	Sorted    bool   `json:"sorted"`
	Movements []struct {
		Number int    `json:"number"`
		Amount string `json:"amount"`
	} `json:"movements"`
	Timer struct {
		Remaining int    `json:"remaining"`
		Display   string `json:"display"`
	} `json:"timer"`
}

func (c *apiClient) login(username string, pin int) dashboard {
	c.t.Helper()
	env := c.do(http.MethodPost, "/api/v1/session", map[string]any{"username": username, "pin": pin}, http.StatusOK)

	var out struct {
		Token     string    `json:"token"`
		Dashboard dashboard `json:"dashboard"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(c.t, out.Token)
	c.token = out.Token
	return out.Dashboard
}

func (c *apiClient) dashboard() dashboard {
	c.t.Helper()
	env := c.do(http.MethodGet, "/api/v1/dashboard", nil, http.StatusOK)
	var d dashboard
	require.NoError(c.t, json.Unmarshal(env.Data, &d))
	return d
}

func TestHealth(t *testing.T) {
	c, _ := setupServer(t)
	resp, err := http.Get(c.url + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginFlow(t *testing.T) {
	c, _ := setupServer(t)

	code := c.errorCode(http.MethodPost, "/api/v1/session", map[string]any{"username": "doesnotexist", "pin": 1234}, http.StatusUnauthorized)
	assert.Equal(t, "INVALID_CREDENTIALS", code)

	code = c.errorCode(http.MethodPost, "/api/v1/session", map[string]any{"username": "js"}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_FAILED", code)

	code = c.errorCode(http.MethodGet, "/api/v1/dashboard", nil, http.StatusUnauthorized)
	assert.Equal(t, "MISSING_TOKEN", code)

	d := c.login("js", 1111)
	assert.Equal(t, "Welcome back, Jonas", d.Welcome)
	assert.Equal(t, 600, d.Timer.Remaining)
	assert.Equal(t, "10:00", d.Timer.Display)
	require.Len(t, d.Movements, 8)
	assert.Equal(t, 8, d.Movements[0].Number, "newest movement first")
}

func TestTransferAndLoan(t *testing.T) {
	c, sched := setupServer(t)
	c.login("jd", 2222)

	code := c.errorCode(http.MethodPost, "/api/v1/transfers", map[string]any{"to": "jd", "amount": 10}, http.StatusUnprocessableEntity)
	assert.Equal(t, "SELF_TRANSFER_NOT_ALLOWED", code)

	code = c.errorCode(http.MethodPost, "/api/v1/transfers", map[string]any{"to": "js", "amount": 1_000_000}, http.StatusUnprocessableEntity)
	assert.Equal(t, "INSUFFICIENT_BALANCE", code)

	code = c.errorCode(http.MethodPost, "/api/v1/transfers", map[string]any{"to": "js", "amount": 0}, http.StatusBadRequest)
	assert.Equal(t, "INVALID_AMOUNT", code)

	code = c.errorCode(http.MethodPost, "/api/v1/transfers", map[string]any{"to": "nobody", "amount": 5}, http.StatusUnprocessableEntity)
	assert.Equal(t, "RECEIVER_NOT_FOUND", code)

	c.do(http.MethodPost, "/api/v1/transfers", map[string]any{"to": "js", "amount": "720"}, http.StatusOK)
	d := c.dashboard()
	assert.Equal(t, "$11,000.00", d.Balance)
	assert.Equal(t, "-720", d.Movements[0].Amount)

	code = c.errorCode(http.MethodPost, "/api/v1/loans", map[string]any{"amount": 90000}, http.StatusUnprocessableEntity)
	assert.Equal(t, "LOAN_NOT_ELIGIBLE", code)

	c.do(http.MethodPost, "/api/v1/loans", map[string]any{"amount": 1000}, http.StatusAccepted)
	assert.Len(t, c.dashboard().Movements, 9, "deposit still processing")

	sched.Advance(2500 * time.Millisecond)
	d = c.dashboard()
	require.Len(t, d.Movements, 10)
	assert.Equal(t, "1000", d.Movements[0].Amount)
	assert.Equal(t, "$12,000.00", d.Balance)
}

func TestSortAndTimer(t *testing.T) {
	c, sched := setupServer(t)
	c.login("js", 1111)

	sched.Advance(61 * time.Second)
	env := c.do(http.MethodGet, "/api/v1/session/timer", nil, http.StatusOK)
	assert.JSONEq(t, `{"remaining":539,"display":"08:59"}`, string(env.Data))

	env = c.do(http.MethodPost, "/api/v1/account/sort", nil, http.StatusOK)
	var sorted struct {
		Sorted    bool      `json:"sorted"`
		Dashboard dashboard `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sorted))
	assert.True(t, sorted.Sorted)
	assert.Equal(t, "25000", sorted.Dashboard.Movements[0].Amount, "largest first")
	assert.Equal(t, 600, sorted.Dashboard.Timer.Remaining)

	sched.Advance(600 * time.Second)
	code := c.errorCode(http.MethodGet, "/api/v1/dashboard", nil, http.StatusUnauthorized)
	assert.Equal(t, "SESSION_EXPIRED", code)
}

func TestLogoutAndClose(t *testing.T) {
	c, _ := setupServer(t)
	c.login("js", 1111)

	c.do(http.MethodDelete, "/api/v1/session", nil, http.StatusOK)
	code := c.errorCode(http.MethodGet, "/api/v1/dashboard", nil, http.StatusUnauthorized)
	assert.Equal(t, "SESSION_EXPIRED", code)

	c.login("js", 1111)
	code = c.errorCode(http.MethodPost, "/api/v1/account/close", map[string]any{"username": "js", "pin": 9999}, http.StatusUnauthorized)
	assert.Equal(t, "INVALID_CREDENTIALS", code)

	c.do(http.MethodPost, "/api/v1/account/close", map[string]any{"username": "js", "pin": 1111}, http.StatusOK)
	code = c.errorCode(http.MethodGet, "/api/v1/dashboard", nil, http.StatusUnauthorized)
	assert.Equal(t, "SESSION_EXPIRED", code)

	c.token = ""
	code = c.errorCode(http.MethodPost, "/api/v1/session", map[string]any{"username": "js", "pin": 1111}, http.StatusUnauthorized)
	assert.Equal(t, "INVALID_CREDENTIALS", code)
}

func TestReloginInvalidatesOldToken(t *testing.T) {
	c, _ := setupServer(t)
	c.login("js", 1111)
	old := c.token

	c.login("jd", 2222)
	c.dashboard()

	c.token = old
	code := c.errorCode(http.MethodGet, "/api/v1/dashboard", nil, http.StatusUnauthorized)
	assert.Equal(t, "SESSION_EXPIRED", code)
}

func TestActivityKeepsTokenUsablePastFirstTimeout(t *testing.T) {
	cfg := &config.Config{SessionTimeout: 1, TokenMaxAge: time.Hour}
	c, sched := setupServerWith(t, service.Settings{TimeoutSeconds: cfg.SessionTimeout}, cfg.TokenExpiry())
	c.login("js", 1111)

	for range 3 {
		time.Sleep(700 * time.Millisecond)
		sched.Advance(700 * time.Millisecond)
		c.do(http.MethodPost, "/api/v1/account/sort", nil, http.StatusOK)
	}

	env := c.do(http.MethodGet, "/api/v1/session/timer", nil, http.StatusOK)
	assert.JSONEq(t, `{"remaining":1,"display":"00:01"}`, string(env.Data))

	sched.Advance(time.Second)
	code := c.errorCode(http.MethodGet, "/api/v1/dashboard", nil, http.StatusUnauthorized)
	assert.Equal(t, "SESSION_EXPIRED", code)
}
