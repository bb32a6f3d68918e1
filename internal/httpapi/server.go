// Package httpapi exposes the credential and expense operations over REST,
// mirroring the routes the web client consumed. Documents go over the wire
// with Mongo-style "_id" fields.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ametova/finkeeper/internal/kvstore"
	"github.com/ametova/finkeeper/internal/logging"
	"github.com/ametova/finkeeper/internal/session"
)

// Server holds the handler dependencies. Expense documents are read and
// written directly against the per-user partitions of the key-value store,
// so the REST layer serves any number of users concurrently.
type Server struct {
	sess      *session.Store
	kv        kvstore.Store
	log       logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration

	now   func() time.Time
	newID func() string
}

// Option customizes a Server.
type Option func(*Server)

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(s *Server) { s.now = fn }
}

// WithIDGenerator overrides the document id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) { s.newID = fn }
}

func NewServer(sess *session.Store, kv kvstore.Store, log logging.Logger, jwtSecret []byte, tokenTTL time.Duration, opts ...Option) *Server {
	s := &Server{
		sess:      sess,
		kv:        kv,
		log:       log,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route table. Everything under /api/expenses requires a
// bearer token.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)

	api := r.PathPrefix("/api/expenses").Subrouter()
	api.Use(s.requireAuth)
	api.HandleFunc("/{userId}", s.handleListExpenses).Methods(http.MethodGet)
	api.HandleFunc("", s.handleCreateExpense).Methods(http.MethodPost)
	api.HandleFunc("/{id}", s.handleUpdateExpense).Methods(http.MethodPatch)
	api.HandleFunc("/{id}", s.handleDeleteExpense).Methods(http.MethodDelete)

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn(context.Background(), "failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"message": msg})
}
