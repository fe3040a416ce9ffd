// Package server exposes the FAQ service and the token issuer over HTTP.
package server

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/faq"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/token"
)

const serviceName = "faq-voice-agent"

// Server holds the handlers' dependencies.
type Server struct {
	faq            *faq.Service
	issuer         *token.Issuer // nil when token issuance is not configured
	logger         *zap.Logger
	validate       *validator.Validate
	requestTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithTokenIssuer enables POST /token.
func WithTokenIssuer(issuer *token.Issuer) Option {
	return func(s *Server) {
		s.issuer = issuer
	}
}

// WithRequestTimeout bounds each request; zero disables the limit.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.requestTimeout = d
	}
}

// New creates a Server.
func New(svc *faq.Service, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	s := &Server{
		faq:            svc,
		logger:         logger,
		validate:       v,
		requestTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes configures all application routes and middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.requestTimeout > 0 {
		r.Use(middleware.Timeout(s.requestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Post("/token", s.handleToken)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/answer", s.handleAnswer)
		r.Post("/lookup", s.handleLookup)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "endpoint not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
