// File path: internal/transport/webhook/server.go

// Package webhook exposes the bot over HTTP: a Telegram-style webhook
// endpoint for update intake plus a small read-only admin API over the
// report catalog and the captured log history.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/dca-labs/reportbot/internal/catalog"
	"github.com/dca-labs/reportbot/internal/common"
	"github.com/dca-labs/reportbot/internal/transport"
)

const httpShutdownTimeout = 5 * time.Second

// Server routes webhook updates into the conversation handler.
type Server struct {
	router  chi.Router
	handler transport.Handler
	catalog *catalog.Store
}

// NewServer builds the HTTP surface. The catalog may be nil, in which case
// the report endpoints respond with 503.
func NewServer(handler transport.Handler, store *catalog.Store) (*Server, error) {
	if handler == nil {
		return nil, errors.New("update handler required")
	}
	s := &Server{router: chi.NewRouter(), handler: handler, catalog: store}
	s.routes()
	return s, nil
}

// Router returns the http.Handler for the server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Post("/webhook", s.handleWebhook)
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/logs", s.handleLogs)
	s.router.Get("/api/reports", s.handleReports)
	s.router.Get("/api/report", s.handleReport)
}

type webhookUpdate struct {
	Message *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// handleWebhook accepts one Telegram-style update per request. Dispatch is
// synchronous: the webhook caller gets its 200 only after the handler ran
// to completion, which keeps updates for one conversation serialized.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var upd webhookUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		logger.Warn("webhook: update decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if upd.Message == nil || strings.TrimSpace(upd.Message.Text) == "" {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	s.handler.HandleUpdate(r.Context(), transport.ParseMessage(upd.Message.Chat.ID, upd.Message.Text))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": common.LogEntries()})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("catalog unavailable"))
		return
	}
	summaries, err := s.catalog.ListReports(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": summaries})
}

// handleReport fetches one record by primary key. The key travels as a
// query parameter because its date component contains slashes.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("catalog unavailable"))
		return
	}
	key := strings.TrimSpace(r.URL.Query().Get("key"))
	if key == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("key required"))
		return
	}
	rec, err := s.catalog.GetReport(r.Context(), key)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Serve runs the server until the context is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	logger := common.Logger()
	srv := &http.Server{Addr: addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("webhook: listening", "addr", addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("webhook: request failed", "status", status, "error", err)
	} else {
		logger.Warn("webhook: request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
