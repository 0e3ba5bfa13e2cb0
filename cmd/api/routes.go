package main

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/josh-kwaku/bankist/internal/handler"
	"github.com/josh-kwaku/bankist/internal/middleware"
)

type sessionChecker interface {
	IsActive(id uuid.UUID) bool
}

func newRouter(h *handler.SessionHandler, sessions sessionChecker, secret string, spec []byte) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Liveness)
	mux.HandleFunc("GET /docs", handler.ServeDocs())
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec(spec))

	mux.HandleFunc("POST /api/v1/session", h.Login)

	authed := middleware.Session(secret, sessions)
	mux.Handle("DELETE /api/v1/session", authed(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /api/v1/session/timer", authed(http.HandlerFunc(h.Timer)))
	mux.Handle("GET /api/v1/dashboard", authed(http.HandlerFunc(h.Dashboard)))
	mux.Handle("POST /api/v1/transfers", authed(http.HandlerFunc(h.Transfer)))
	mux.Handle("POST /api/v1/loans", authed(http.HandlerFunc(h.RequestLoan)))
	mux.Handle("POST /api/v1/account/close", authed(http.HandlerFunc(h.CloseAccount)))
	mux.Handle("POST /api/v1/account/sort", authed(http.HandlerFunc(h.ToggleSort)))

	return middleware.Chain(mux, middleware.Tracing, middleware.Logging, middleware.Recovery)
}
