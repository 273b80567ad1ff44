package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/audex/internal/domain"
	logpkg "github.com/kailas-cloud/audex/internal/logger"
	audienceuc "github.com/kailas-cloud/audex/internal/usecase/audience"
	healthuc "github.com/kailas-cloud/audex/internal/usecase/health"
	saveduc "github.com/kailas-cloud/audex/internal/usecase/saved"
)

// maxBodyBytes caps request bodies; filter states are a few KB.
const maxBodyBytes = 1 << 20

// ErrorCode is the machine-readable error code in error responses.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest      ErrorCode = "bad_request"
	CodeUnauthorized    ErrorCode = "unauthorized"
	CodeUnknownField    ErrorCode = "unknown_field"
	CodeUnknownCategory ErrorCode = "unknown_category"
	CodeKindMismatch    ErrorCode = "kind_mismatch"
	CodeDecodeFailed    ErrorCode = "decode_failed"
	CodeInvalidName     ErrorCode = "invalid_name"
	CodeNotFound        ErrorCode = "not_found"
	CodeInternalError   ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the audience service over HTTP.
type Server struct {
	audience        *audienceuc.Service
	saved           *saveduc.Service
	health          *healthuc.Service
	logger          *zap.Logger
	maxAudienceList int
	errorHandlers   []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	audience *audienceuc.Service,
	saved *saveduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		audience:        audience,
		saved:           saved,
		health:          health,
		logger:          logger,
		maxAudienceList: 100,
	}
	s.errorHandlers = []errorHandler{
		decodeErrorHandler,
		fieldErrorHandler(domain.ErrUnknownField, http.StatusNotFound, CodeUnknownField),
		fieldErrorHandler(domain.ErrKindMismatch, http.StatusBadRequest, CodeKindMismatch),
		sentinelHandler(domain.ErrInvalidName, http.StatusBadRequest, CodeInvalidName),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	}
	return s
}

// WithMaxAudienceList caps the number of users returned by GET /audience.
func (s *Server) WithMaxAudienceList(n int) *Server {
	if n > 0 {
		s.maxAudienceList = n
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/schema", s.ListSchema)
	r.Get("/schema/{category}", s.GetCategory)

	r.Route("/filters", func(r chi.Router) {
		r.Get("/", s.GetFilters)
		r.Delete("/", s.ClearFilters)
		r.Put("/{key}", s.SetFilter)
		r.Post("/{key}/toggle", s.ToggleFilter)
	})

	r.Route("/audience", func(r chi.Router) {
		r.Get("/", s.GetAudience)
		r.Get("/size", s.GetAudienceSize)
		r.Get("/export", s.ExportAudience)
		r.Get("/users/{id}", s.GetUser)
	})

	r.Post("/interpret", s.Interpret)
	r.Get("/interpret/suggestions", s.Suggestions)

	r.Get("/state", s.ExportState)
	r.Put("/state", s.ImportState)

	r.Route("/saved", func(r chi.Router) {
		r.Get("/", s.ListSaved)
		r.Put("/{name}", s.SaveState)
		r.Post("/{name}/load", s.LoadState)
		r.Delete("/{name}", s.DeleteSaved)
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	sentinels := []error{
		domain.ErrDecode,
		domain.ErrInvalidName,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// fieldErrorHandler is a sentinelHandler that also reports the offending key.
func fieldErrorHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			writeJSON(w, status, map[string]any{
				"code":    code,
				"message": msg,
				"field":   fe.Key,
			})
			return true
		}
		writeError(w, status, code, msg)
		return true
	}
}

// decodeErrorHandler reports why an imported state was rejected. The cause
// is a JSON syntax or type error, so it is safe to echo.
func decodeErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrDecode) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeDecodeFailed, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
