package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"offplanbot/internal/config"
	"offplanbot/internal/handler"
	"offplanbot/internal/logging"
	"offplanbot/internal/repository"
	"offplanbot/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Setup(cfg.Logging); err != nil {
		logrus.Fatalf("Failed to set up logging: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Off-plan property assistant")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Optional search audit log. Interfaces stay nil when it is disabled.
	var (
		searchLogger  service.SearchLogger
		history       handler.SearchHistory
		feedbackStore handler.FeedbackStore
	)
	if cfg.PostgreSQL.Enabled {
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			logrus.Fatalf("Failed to prepare audit schema: %v", err)
		}

		searchLogger, history, feedbackStore = repo, repo, repo
		logrus.Info("✅ Connected to PostgreSQL audit log")
	} else {
		logrus.Warn("⚠️  PostgreSQL is disabled - searches and feedback will only be logged")
	}

	// Initialize services
	projects := service.NewProjectsClient(&cfg.Backend)
	opts := []service.ChatOption{}
	if searchLogger != nil {
		opts = append(opts, service.WithSearchLogger(searchLogger))
	}
	chat := service.NewChatService(service.NewExtractor(), projects, opts...)
	sessions := service.NewRegistry()

	logrus.WithField("backend", cfg.Backend.BaseURL).Info("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chat, sessions, history)
	feedbackHandler := handler.NewFeedbackHandler(feedbackStore)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	if origins := splitList(cfg.Server.AllowedOrigins); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "healthy",
			"service":         "offplan-chat-assistant",
			"version":         Version,
			"active_sessions": sessions.Len(),
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	handler.RegisterRoutes(router.Group("/api/v1"), chatHandler, feedbackHandler)

	// Serve the chat widget.
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, sessions, cfg.Sessions)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logrus.Infof("🚀 Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shut down: %v", err)
	}
	logrus.Info("✅ Server stopped")
}

// sweepSessions drops conversations that have been idle longer than the configured TTL
func sweepSessions(ctx context.Context, sessions *service.Registry, cfg config.SessionsConfig) {
	ttl := time.Duration(cfg.IdleTTLMinutes) * time.Minute
	ticker := time.NewTicker(time.Duration(cfg.SweepIntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sessions.Prune(now, ttl)
		}
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"took_ms": time.Since(start).Milliseconds(),
		}).Debug("request")
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
