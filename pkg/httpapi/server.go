package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shelterconnect/shelter-matcher/internal/config"
	"github.com/shelterconnect/shelter-matcher/pkg/core/services"
)

const shutdownTimeout = 10 * time.Second

// RunFunc runs one matching pipeline for an incoming webhook
type RunFunc func(ctx context.Context) (*services.MatchResult, error)

// Server answers webhook verification challenges and triggers matching runs
type Server struct {
	cfg    config.ServerConfig
	run    RunFunc
	logger *zap.Logger
	engine *gin.Engine

	// held while a run is in progress
	runMu sync.Mutex
}

// NewServer creates the HTTP server and registers its routes
func NewServer(cfg config.ServerConfig, run RunFunc, logger *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		run:    run,
		logger: logger,
		engine: gin.New(),
	}

	s.engine.Use(requestLogger(logger))
	s.engine.Use(gin.Recovery())

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/", s.handleHook)
	s.engine.POST("/", s.handleHook)

	return s
}

// Handler returns the routed handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	<-errCh

	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleHook echoes a verification challenge, or runs the pipeline and returns the match file
func (s *Server) handleHook(c *gin.Context) {
	if challenge := c.GetHeader(s.cfg.ChallengeHeader); challenge != "" {
		s.logger.Info("Answering webhook challenge")
		c.Header(ResponseHeader(s.cfg.ChallengeHeader), challenge)
		c.Status(http.StatusOK)
		return
	}

	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "matching runs are triggered with POST"})
		return
	}

	if !s.runMu.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "a matching run is already in progress"})
		return
	}
	defer s.runMu.Unlock()

	result, err := s.run(c.Request.Context())
	if err != nil {
		s.logger.Error("Matching run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("Matching run complete",
		zap.String("run_id", result.RunID),
		zap.Int("matches", len(result.Set.Rows)),
		zap.Bool("emailed", result.Emailed))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Header("X-Run-ID", result.RunID)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// ResponseHeader names the header a challenge is echoed in:
// Smartsheet-Hook-Challenge is answered with Smartsheet-Hook-Response.
func ResponseHeader(challengeHeader string) string {
	return strings.TrimSuffix(http.CanonicalHeaderKey(challengeHeader), "-Challenge") + "-Response"
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
