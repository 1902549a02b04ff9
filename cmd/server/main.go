package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/run"

	"github.com/rowestoli/QuackLog/internal"
	"github.com/rowestoli/QuackLog/internal/api"
	"github.com/rowestoli/QuackLog/internal/auth"
	"github.com/rowestoli/QuackLog/internal/config"
	"github.com/rowestoli/QuackLog/internal/storage"
)

type app struct {
	logger internal.Logger
	repo   storage.SubmissionRepository
	cfg    *config.Config
}

func (a *app) Logger() internal.Logger                      { return a.logger }
func (a *app) SubmissionRepo() storage.SubmissionRepository { return a.repo }
func (a *app) Config() *config.Config                       { return a.cfg }

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	repo, err := storage.NewSubmissionRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer func() {
		if closer, ok := repo.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Errorf("failed to close storage: %v", err)
			}
		}
	}()

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.AuthToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/")
	authed.Use(auth.AuthMiddleware(provider, cfg))
	api.RegisterRoutes(authed, &app{logger: logger, repo: repo, cfg: cfg})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	var g run.Group
	g.Add(func() error {
		logger.Infof("server listening on %s", srv.Addr)
		return srv.ListenAndServe()
	}, func(error) {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("server shutdown: %v", err)
		}
	})
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	if err := g.Run(); err != nil {
		var sig run.SignalError
		if errors.As(err, &sig) {
			logger.Infof("shutting down: %v", sig)
			return
		}
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		logger.Fatalf("server error: %v", err)
	}
}
