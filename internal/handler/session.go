package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/auth"
	"github.com/josh-kwaku/bankist/internal/logging"
	"github.com/josh-kwaku/bankist/internal/service"
	"github.com/josh-kwaku/bankist/internal/view"
)

type bankSession interface {
	Login(username string, pin int) (uuid.UUID, error)
	Logout()
	Dashboard() (*service.Dashboard, error)
	Transfer(receiverUsername string, amount decimal.Decimal) error
	RequestLoan(amount decimal.Decimal) (uuid.UUID, error)
	CloseAccount(username string, pin int) error
	ToggleSort() (bool, error)
}

type SessionHandler struct {
	bank        bankSession
	tokenSecret string
	tokenExpiry time.Duration
}

func NewSessionHandler(bank bankSession, tokenSecret string, tokenExpiry time.Duration) *SessionHandler {
	return &SessionHandler{
		bank:        bank,
		tokenSecret: tokenSecret,
		tokenExpiry: tokenExpiry,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	PIN      *int   `json:"pin"`
}

func (r loginRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "required"})
	}
	if r.PIN == nil {
		errs = append(errs, FieldError{Field: "pin", Message: "required"})
	}
	return errs
}

type loginResponse struct {
	Token     string      `json:"token"`
	Dashboard view.Screen `json:"dashboard"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	sessionID, err := h.bank.Login(req.Username, *req.PIN)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	token, err := auth.GenerateToken(sessionID, req.Username, h.tokenSecret, h.tokenExpiry)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to issue session token", "error", err)
		h.bank.Logout()
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	d, err := h.bank.Dashboard()
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, loginResponse{
		Token:     token,
		Dashboard: view.Render(d),
	})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.bank.Logout()
	RespondSuccess(w, http.StatusOK, map[string]bool{"logged_out": true})
}

func (h *SessionHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.bank.Dashboard()
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, view.Render(d))
}

func (h *SessionHandler) Timer(w http.ResponseWriter, r *http.Request) {
	d, err := h.bank.Dashboard()
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, view.Timer{
		Remaining: d.Remaining,
		Display:   view.FormatTimer(d.Remaining),
	})
}
