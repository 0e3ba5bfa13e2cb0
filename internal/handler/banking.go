package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/logging"
	"github.com/josh-kwaku/bankist/internal/view"
)

type transferRequest struct {
	To     string           `json:"to"`
	Amount *decimal.Decimal `json:"amount"`
}

func (r transferRequest) Validate() []FieldError {
	var errs []FieldError
	if r.To == "" {
		errs = append(errs, FieldError{Field: "to", Message: "required"})
	}
	if r.Amount == nil {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	}
	return errs
}

type loanRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type loanResponse struct {
	LoanID uuid.UUID `json:"loan_id"`
	Status string    `json:"status"`
}

type closeRequest struct {
	Username string `json:"username"`
	PIN      *int   `json:"pin"`
}

func (r closeRequest) Validate() []FieldError {
	return loginRequest(r).Validate()
}

type sortResponse struct {
	Sorted    bool        `json:"sorted"`
	Dashboard view.Screen `json:"dashboard"`
}

func (h *SessionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	if err := h.bank.Transfer(req.To, *req.Amount); err != nil {
		logging.FromContext(r.Context()).Info("transfer rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	h.Dashboard(w, r)
}

func (h *SessionHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if req.Amount == nil {
		RespondValidationError(w, []FieldError{{Field: "amount", Message: "required"}})
		return
	}

	id, err := h.bank.RequestLoan(*req.Amount)
	if err != nil {
		logging.FromContext(r.Context()).Info("loan rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusAccepted, loanResponse{LoanID: id, Status: "processing"})
}

func (h *SessionHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	if err := h.bank.CloseAccount(req.Username, *req.PIN); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{"closed": req.Username})
}

func (h *SessionHandler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	sorted, err := h.bank.ToggleSort()
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	d, err := h.bank.Dashboard()
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, sortResponse{Sorted: sorted, Dashboard: view.Render(d)})
}
