// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/nsdebug/internal/channel"
	"github.com/mia-platform/nsdebug/internal/info"
	"github.com/mia-platform/nsdebug/internal/logger"
)

const (
	loggerName = "nsdebug:server"

	statusRoutesPrefix = "/-/"
)

type Server interface {
	Start() error
	Stop() error
}

type impServer struct {
	Config

	app *fiber.App
	log logger.Logger
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// NewServer builds the Fiber application serving registry with the given configuration.
func NewServer(ctx context.Context, cfg *Config, registry *channel.Registry) (Server, error) {
	if cfg == nil {
		var err error
		if cfg, err = LoadServerConfig(); err != nil {
			return nil, err
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               info.AppName,
		DisableStartupMessage: cfg.DisableStartupMessage,
		Immutable:             true,
	})
	log := logger.FromContext(ctx)
	app.Use(logger.RequestMiddlewareLogger(log, []string{statusRoutesPrefix}))

	statusRoutes(app, info.AppName, info.Version)
	debugRoutes(app, &debugHandlers{
		registry:    registry,
		passthrough: cfg.Passthrough(),
	})

	return &impServer{
		Config: *cfg,
		app:    app,
		log:    log.WithName(loggerName),
	}, nil
}

func (s *impServer) Start() error {
	address := fmt.Sprintf("%s:%d", s.HTTPHost, s.HTTPPort)
	s.log.Info("server listening", "address", address)
	if err := s.app.Listen(address); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

type statusResponse struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// statusRoutes registers the liveness and readiness probes.
func statusRoutes(app *fiber.App, serviceName, version string) {
	handler := func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(statusResponse{
			Status:  "OK",
			Name:    serviceName,
			Version: version,
		})
	}

	app.Get(statusRoutesPrefix+"healthz", handler)
	app.Get(statusRoutesPrefix+"ready", handler)
}
