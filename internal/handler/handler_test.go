package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/bankist/internal/domain"
	"github.com/josh-kwaku/bankist/internal/service"
)

type stubBank struct {
	loginErr    error
	transferErr error
	loanErr     error
	loggedOut   bool
	transferred decimal.Decimal
	receiver    string
}

func (s *stubBank) Login(string, int) (uuid.UUID, error) { return uuid.New(), s.loginErr }
func (s *stubBank) Logout()                              { s.loggedOut = true }

func (s *stubBank) Dashboard() (*service.Dashboard, error) {
	return &service.Dashboard{
		FirstName: "Jonas",
		Username:  "js",
		Currency:  domain.CurrencyEUR,
		Locale:    "pt-PT",
		Remaining: 600,
		Now:       time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
	}, nil
}

func (s *stubBank) Transfer(to string, amount decimal.Decimal) error {
	s.receiver, s.transferred = to, amount
	return s.transferErr
}

func (s *stubBank) RequestLoan(decimal.Decimal) (uuid.UUID, error) { return uuid.New(), s.loanErr }
func (s *stubBank) CloseAccount(string, int) error                  { return nil }
func (s *stubBank) ToggleSort() (bool, error)                       { return true, nil }

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		loginErr error
		status   int
		code     string
	}{
		{"success", `{"username":"js","pin":1111}`, nil, http.StatusOK, ""},
		{"malformed body", `{`, nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing pin", `{"username":"js"}`, nil, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"wrong pin", `{"username":"js","pin":1}`, domain.ErrAuthenticationFailed, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSessionHandler(&stubBank{loginErr: tt.loginErr}, "test-secret", time.Hour)
			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
			resp := decodeResponse(t, rec)
			if tt.code == "" {
				assert.True(t, resp.Success)
				return
			}
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestTransfer_PassesAmountThrough(t *testing.T) {
	bank := &stubBank{}
	h := NewSessionHandler(bank, "test-secret", time.Hour)
	rec := httptest.NewRecorder()
	h.Transfer(rec, httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(`{"to":"jd","amount":"100.50"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jd", bank.receiver)
	assert.Equal(t, "100.5", bank.transferred.String())
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotAuthenticated, http.StatusUnauthorized, "SESSION_EXPIRED"},
		{domain.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{domain.ErrUnknownReceiver, http.StatusUnprocessableEntity, "RECEIVER_NOT_FOUND"},
		{domain.ErrInsufficientBalance, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"},
		{domain.ErrSelfTransfer, http.StatusUnprocessableEntity, "SELF_TRANSFER_NOT_ALLOWED"},
		{domain.ErrLoanNotEligible, http.StatusUnprocessableEntity, "LOAN_NOT_ELIGIBLE"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeResponse(t, rec).Error.Code)
		})
	}
}

func TestServeSpec(t *testing.T) {
	rec := httptest.NewRecorder()
	ServeSpec([]byte("openapi: 3.0.3"))(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "openapi: 3.0.3", rec.Body.String())

	rec = httptest.NewRecorder()
	ServeSpec(nil)(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
