package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	arkresolver "github.com/dasch-swiss/ark-resolver"
	"github.com/dasch-swiss/ark-resolver/arkurl"
	"github.com/dasch-swiss/ark-resolver/health"
	"github.com/dasch-swiss/ark-resolver/resolver"
)

// Config bundles what the HTTP host needs.
type Config struct {
	// Resolver handles identifier resolution. Required.
	Resolver *arkresolver.Resolver

	// Logger receives request logs. Defaults to the resolver's logger.
	Logger *slog.Logger

	// Tracer records a span per resolution. Defaults to the resolver's
	// tracer, or a log-exporting provider when none is set.
	Tracer trace.Tracer

	// Cache short-circuits repeated resolutions. Optional.
	Cache *RedirectCache

	// Version is reported by the health endpoint.
	Version string
}

// Server is the HTTP host of the ARK resolver.
type Server struct {
	resolver *arkresolver.Resolver
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *serverMetrics
	cache    *RedirectCache
	router   *gin.Engine
	version  string
	started  time.Time
}

// New creates a Server and sets up its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = cfg.Resolver.Logger()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = cfg.Resolver.Tracer()
	}
	if tracer == nil {
		tracer = NewTracerProvider(logger).Tracer("github.com/dasch-swiss/ark-resolver/serve")
	}

	metrics, err := newServerMetrics()
	if err != nil {
		return nil, err
	}

	s := &Server{
		resolver: cfg.Resolver,
		logger:   logger,
		tracer:   tracer,
		metrics:  metrics,
		cache:    cfg.Cache,
		version:  cfg.Version,
		started:  time.Now(),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)
	router.GET("/convert/*arkID", s.handleConvert)
	if s.resolver.Settings().Config().GitHubSecret != "" {
		router.POST("/reload", s.handleReload)
	}

	// ARK identifiers contain slashes, so the redirect endpoint is the
	// catch-all rather than a route pattern.
	router.NoRoute(s.handleRedirect)

	s.router = router
	return s, nil
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves HTTP until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.resolver.Settings().Config().ListenAddr()

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("ark resolver listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleRedirect(c *gin.Context) {
	arkID := strings.TrimPrefix(c.Request.URL.Path, "/")

	ctx, span := s.tracer.Start(c.Request.Context(), "serve.redirect",
		trace.WithAttributes(attribute.String("ark.id", arkID)))
	defer span.End()

	if s.cache != nil {
		if redirect, err := s.cache.Get(ctx, arkID); err == nil {
			s.metrics.cacheHits.Add(ctx, 1)
			span.SetAttributes(attribute.Bool("ark.cache_hit", true))
			c.Redirect(http.StatusFound, redirect)
			return
		}
	}

	redirect, err := s.resolver.RedirectURL(arkID)
	if err != nil {
		s.failRequest(c, span, arkID, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, arkID, redirect); err != nil {
			s.logger.Warn("failed to cache redirect", "ark_id", arkID, "error", err)
		}
	}

	s.metrics.redirects.Add(ctx, 1)
	span.SetAttributes(attribute.String("ark.redirect", redirect))
	c.Redirect(http.StatusFound, redirect)
}

func (s *Server) handleConvert(c *gin.Context) {
	arkID := strings.TrimPrefix(c.Param("arkID"), "/")

	ctx, span := s.tracer.Start(c.Request.Context(), "serve.convert",
		trace.WithAttributes(attribute.String("ark.id", arkID)))
	defer span.End()

	converted, err := s.resolver.ConvertToV1(arkID)
	if err != nil {
		s.failRequest(c, span, arkID, err)
		return
	}

	s.metrics.conversions.Add(ctx, 1)
	c.JSON(http.StatusOK, gin.H{
		"input":     arkID,
		"converted": converted,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	checks := map[string]health.Status{
		"registry": health.RegistryCheck(s.resolver.Settings().Registry()),
	}
	if s.cache != nil {
		checks["cache"] = health.RedisCheck(c.Request.Context(), s.cache.Client())
	}

	statuses := make([]health.Status, 0, len(checks))
	for _, check := range checks {
		statuses = append(statuses, check)
	}
	overall := health.Combine(statuses...)

	code := http.StatusOK
	if overall.IsUnhealthy() {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  overall.Status,
		"uptime":  time.Since(s.started).String(),
		"version": s.version,
		"checks":  checks,
	})
}

func (s *Server) failRequest(c *gin.Context, span trace.Span, arkID string, err error) {
	status := statusForError(err)
	kind := errorKind(err)

	span.SetStatus(codes.Error, err.Error())
	s.metrics.countError(c.Request.Context(), kind)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "ark_id", arkID, "error", err)
		c.String(status, "internal error")
		return
	}

	s.logger.Debug("request rejected", "ark_id", arkID, "error", err)
	c.String(status, "%s", err.Error())
}

func statusForError(err error) int {
	var resolverErr *resolver.Error
	if errors.As(err, &resolverErr) {
		switch resolverErr.Kind {
		case resolver.KindValidation:
			return http.StatusBadRequest
		case resolver.KindNotFound:
			return http.StatusNotFound
		default:
			return http.StatusInternalServerError
		}
	}

	if errors.Is(err, arkurl.ErrInvalidARKID) || errors.Is(err, arkurl.ErrInvalidResourceIRI) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func errorKind(err error) string {
	var resolverErr *resolver.Error
	if errors.As(err, &resolverErr) {
		return resolverErr.Kind
	}
	return "internal"
}
