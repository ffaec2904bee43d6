// Package httpserver exposes validation, pending downloads and the resource
// cache over HTTP and WebSocket.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/xmlres/internal/adapters/report"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultMaxBodyBytes   int64 = 8 << 20
	defaultPendingTimeout       = 30 * time.Second
	maxPendingTimeout           = 5 * time.Minute
	shutdownTimeout             = 10 * time.Second
	readHeaderTimeout           = 10 * time.Second

	// RequestIDHeader carries the id assigned to every request.
	RequestIDHeader = "X-Request-ID"
)

// Service validates document text. *diagnostics.Coordinator satisfies it.
type Service interface {
	ValidateText(ctx context.Context, uri string, r io.Reader) (*domain.DiagnosticsResult, error)
	Forget(uri string)
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins sets the origins allowed by CORS and the WebSocket
// upgrader. "*" allows every origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithMaxBodyBytes bounds the size of a submitted document.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithPendingTimeout sets how long GET /v1/pending/{id} waits by default.
func WithPendingTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.pendingTimeout = d
		}
	}
}

// Server is the HTTP surface of the subsystem.
type Server struct {
	svc     Service
	cache   ports.ResourceCache
	logger  ports.Logger
	pending *pendingTable

	origins        []string
	maxBody        int64
	pendingTimeout time.Duration
	upgrader       websocket.Upgrader
}

// New creates a server over svc and cache.
func New(svc Service, cache ports.ResourceCache, logger ports.Logger, opts ...Option) *Server {
	s := &Server{
		svc:            svc,
		cache:          cache,
		logger:         logger,
		pending:        newPendingTable(),
		origins:        []string{"*"},
		maxBody:        defaultMaxBodyBytes,
		pendingTimeout: defaultPendingTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the router of the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Get("/pending/{id}", s.handlePending)
		r.Get("/cache", s.handleCacheEntry)
		r.Delete("/cache", s.handleCacheEvict)
		r.Get("/ws", s.handleWebSocket)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrServerFailed, err.Error()), "addr", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done. Requests and WebSocket sessions
// inherit ctx, so they end with it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening on " + ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.With(zerr.Wrap(domain.ErrServerFailed, err.Error()), "addr", ln.Addr().String())
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(domain.ErrServerFailed, err.Error())
		}
		return nil
	}
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.Query().Get("uri")
	if uri == "" {
		uri = "untitled:" + uuid.NewString()
	}

	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	res, err := s.svc.ValidateText(r.Context(), uri, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSONError(w, http.StatusRequestEntityTooLarge, "document too large")
		case errors.Is(err, domain.ErrValidationSuperseded):
			writeJSONError(w, http.StatusConflict, err.Error())
		case r.Context().Err() != nil:
			return
		default:
			s.logger.Error(zerr.With(err, "request_id", requestIDFrom(r.Context())))
			writeJSONError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.pending.add(res.Pending)
	data, err := report.MarshalResult(res)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

type pendingResponse struct {
	ID        string `json:"id"`
	URI       string `json:"uri"`
	Completed bool   `json:"completed"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handlePending(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	signal, ok := s.pending.get(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown pending id")
		return
	}

	timeout := s.pendingTimeout
	if v := r.URL.Query().Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			writeJSONError(w, http.StatusBadRequest, "invalid timeout")
			return
		}
		timeout = min(d, maxPendingTimeout)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()
	_ = signal.Wait(ctx)
	if r.Context().Err() != nil {
		return
	}

	resp := pendingResponse{ID: signal.ID(), URI: signal.URI(), Completed: signal.Completed()}
	if err := signal.Err(); err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type cacheEntryResponse struct {
	Key         string     `json:"key"`
	State       string     `json:"state"`
	LocalPath   string     `json:"localPath,omitempty"`
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	LastError   string     `json:"lastError,omitempty"`
}

func (s *Server) handleCacheEntry(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.Query().Get("uri")
	if uri == "" {
		writeJSONError(w, http.StatusBadRequest, "uri is required")
		return
	}
	if !s.cache.CanUseCache(uri) {
		writeJSONError(w, http.StatusBadRequest, "uri is not served through the cache")
		return
	}

	e := s.cache.Entry(uri)
	resp := cacheEntryResponse{
		Key:       e.Key,
		State:     e.State.String(),
		LocalPath: e.LocalPath,
		LastError: e.LastError,
	}
	if resp.Key == "" {
		resp.Key = uri
	}
	if !e.LastAttempt.IsZero() {
		resp.LastAttempt = &e.LastAttempt
	}
	if !e.ExpiresAt.IsZero() {
		resp.ExpiresAt = &e.ExpiresAt
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCacheEvict(w http.ResponseWriter, r *http.Request) {
	if err := s.cache.Evict(r.Context()); err != nil {
		s.logger.Error(err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if slices.Contains(s.origins, "*") {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(s.origins, origin)
}

type ctxKey struct{}

// requestID assigns every request an id, honouring one sent by the client.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
		"code":  status,
	})
}
