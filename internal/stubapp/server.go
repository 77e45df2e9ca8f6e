// Package stubapp is a local stand-in for the deployed crypto-intel API. It
// mirrors the HTTP contract the probes and smoke tests consume, so they can
// be exercised without a live deployment. It is a test fixture, not
// application code: the data it serves is canned.
package stubapp

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/minzf581/crypto-intel-engine-sub004/internal/authdebug"
)

type Server struct {
	Logger *zap.Logger
	Secret []byte

	// Creds accepted by the login endpoint.
	Email    string
	Password string
}

func NewServer(logger *zap.Logger, secret []byte, email, password string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Logger: logger, Secret: secret, Email: email, Password: password}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "crypto-intel-engine",
			"status":  "running",
			"ready":   true,
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireBearer)
			r.Get("/analysis/recommended-accounts/{coin}", s.handleRecommended)
			r.Get("/signals", s.handleSignals)
			r.Get("/accounts/search", s.handleSearch)
		})
	})

	return r
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var p struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad payload")
		return
	}
	if p.Email != s.Email || p.Password != s.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := authdebug.Mint(s.Secret, p.Email, time.Hour)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not mint token")
		return
	}
	s.Logger.Info("stub_login", zap.String("email", p.Email))
	writeData(w, map[string]string{"token": token})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		token := strings.TrimSpace(h[7:])
		if _, err := authdebug.ParseAndValidate(token, s.Secret); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRecommended(w http.ResponseWriter, r *http.Request) {
	coin := strings.ToUpper(chi.URLParam(r, "coin"))
	writeData(w, map[string]any{
		"coin": coin,
		"accounts": []map[string]any{
			{"username": "whale_alert", "score": 0.94},
			{"username": "onchain_watch", "score": 0.88},
		},
	})
}

func (s *Server) handleSignals(w http.ResponseWriter, _ *http.Request) {
	writeData(w, []map[string]any{
		{"coin": "BTC", "direction": "long", "confidence": 0.71},
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeData(w, map[string]any{"query": q, "accounts": []string{"whale_alert"}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
