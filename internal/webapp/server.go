// Package webapp exposes the HTTP endpoint the Telegram mini-app posts
// new subscriptions to.
package webapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
	"github.com/akrram0/Subscription-managerr-bot/internal/store"
)

type Server struct {
	repo store.Repo
	log  *zap.Logger
	srv  *http.Server
}

func New(addr string, repo store.Repo, log *zap.Logger) *Server {
	s := &Server{repo: repo, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/add_subscription", s.handleAdd)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type addRequest struct {
	UserID          int64   `json:"user_id"`
	ServiceName     string  `json:"service_name"`
	Cost            float64 `json:"cost"`
	Currency        string  `json:"currency"`
	BillingCycle    string  `json:"billing_cycle"`
	NextPaymentDate string  `json:"next_payment_date"`
}

type addResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, addResponse{Status: "error", Error: "method not allowed"})
		return
	}

	var req addRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, addResponse{Status: "error", Error: "invalid JSON body"})
		return
	}
	if req.UserID <= 0 {
		writeJSON(w, http.StatusBadRequest, addResponse{Status: "error", Error: "user_id is required"})
		return
	}

	name, err := domain.ValidateServiceName(req.ServiceName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, addResponse{Status: "error", Error: err.Error()})
		return
	}
	cycle, err := domain.ParseBillingCycle(req.BillingCycle)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, addResponse{Status: "error", Error: err.Error()})
		return
	}
	draft := domain.Draft{
		ServiceName:     name,
		Cost:            req.Cost,
		Currency:        req.Currency,
		BillingCycle:    cycle,
		NextPaymentDate: req.NextPaymentDate,
	}

	ctx := r.Context()
	if err := s.repo.EnsureUser(ctx, req.UserID); err != nil {
		s.log.Error("ensure user failed", zap.Int64("userID", req.UserID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, addResponse{Status: "error", Error: "storage failure"})
		return
	}

	id, err := s.repo.CreateSubscription(ctx, req.UserID, draft)
	if errors.Is(err, domain.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, addResponse{Status: "error", Error: err.Error()})
		return
	}
	if err != nil {
		s.log.Error("create subscription failed", zap.Int64("userID", req.UserID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, addResponse{Status: "error", Error: "storage failure"})
		return
	}

	s.log.Info("subscription added via webapp", zap.Int64("userID", req.UserID), zap.Int64("id", id))
	writeJSON(w, http.StatusOK, addResponse{Status: "success", ID: id})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
