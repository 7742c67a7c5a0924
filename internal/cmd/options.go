// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/mia-platform/nsdebug/internal/channel"
	"github.com/mia-platform/nsdebug/internal/config"
	"github.com/mia-platform/nsdebug/internal/demo"
	"github.com/mia-platform/nsdebug/internal/logger"
	"github.com/mia-platform/nsdebug/internal/namespace"
	"github.com/mia-platform/nsdebug/internal/server"
	"github.com/mia-platform/nsdebug/internal/sink"
)

const (
	serveLoggerName = "nsdebug:serve"

	activeLabel   = "active"
	inactiveLabel = "inactive"
)

type serverGetter func(context.Context, *server.Config, *channel.Registry) (server.Server, error)

// serveOptions holds the options set for the current serve function.
type serveOptions struct {
	channelsPaths []string
	skipDemo      bool
	consoleOut    io.Writer
	channelOut    io.Writer
	serverGetter  serverGetter

	lock sync.Mutex
}

// execute builds the channel registry, runs the walkthrough and serves until ctx is done or
// the process receives an interrupt.
func (o *serveOptions) execute(ctx context.Context) error {
	if !o.lock.TryLock() {
		return nil
	}
	defer o.lock.Unlock()

	log := logger.FromContext(ctx).WithName(serveLoggerName)
	cfg, err := server.LoadServerConfig()
	if err != nil {
		return err
	}

	registry, err := o.registry(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Passthrough() {
		log.Info("debug channels are not reconfigurable", "debug", cfg.Debug, "requiredPattern", cfg.DebugRequiredPattern)
	} else {
		if err := announce(registry, cfg); err != nil {
			return err
		}

		if !o.skipDemo {
			if err := demo.Run(o.consoleOut, registry); err != nil {
				return err
			}
		}
	}

	srv, err := o.serverGetter(ctx, cfg, registry)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Debug("stopping server", "reason", ctx.Err())
		if err := srv.Stop(); err != nil {
			log.Error("error stopping server", "error", err)
		}
	}()

	return srv.Start()
}

// registry creates the channel registry with the startup spec applied.
func (o *serveOptions) registry(ctx context.Context, cfg *server.Config) (*channel.Registry, error) {
	definitions, err := config.LoadDefinitions(o.channelsPaths)
	if err != nil {
		return nil, err
	}

	var output channel.Sink
	if strings.EqualFold(cfg.ChannelOutput, server.ChannelOutputLogger) {
		output = sink.NewLoggerSink(logger.FromContext(ctx))
	} else {
		output = sink.NewWriterSink(o.channelOut, sink.WithColors(cfg.ChannelColors))
	}

	registry := channel.NewRegistry(output)
	if err := registry.RegisterAll(definitions); err != nil {
		return nil, err
	}

	if cfg.Passthrough() {
		registry.SetActive("")
	} else {
		registry.SetActive(cfg.Debug)
	}

	return registry, nil
}

// announce writes the startup configuration on the always-on channel.
func announce(registry *channel.Registry, cfg *server.Config) error {
	if err := registry.Emitf(channel.AlwaysOn, "DEBUG: %s", cfg.Debug); err != nil {
		return err
	}
	if err := registry.Emitf(channel.AlwaysOn, "HTTP_PORT: %d", cfg.HTTPPort); err != nil {
		return err
	}

	if cfg.PortFromEnv {
		return registry.Emitf(channel.AlwaysOn, "HTTP_PORT is set to %d through the environment.", cfg.HTTPPort)
	}
	return registry.Emitf(channel.AlwaysOn, "HTTP_PORT not defined in the environment.\nHTTP_PORT is set to %d by default.", cfg.HTTPPort)
}

// matchOptions holds the options set for the current match function.
type matchOptions struct {
	channelsPaths []string
	spec          string
	specGiven     bool
	namespaces    []string
	out           io.Writer
}

// validate checks that an activation spec has been passed.
func (o *matchOptions) validate() error {
	if !o.specGiven {
		return errNoArguments
	}

	return nil
}

// execute prints the activation of the given namespaces, or of the channel table when no
// namespace has been passed.
func (o *matchOptions) execute() error {
	if len(o.namespaces) > 0 {
		spec := namespace.Parse(o.spec)
		for _, ns := range o.namespaces {
			fmt.Fprintf(o.out, "%s\t%s\n", ns, label(spec.Enabled(ns)))
		}
		return nil
	}

	definitions, err := config.LoadDefinitions(o.channelsPaths)
	if err != nil {
		return err
	}

	registry := channel.NewRegistry(nil)
	if err := registry.RegisterAll(definitions); err != nil {
		return err
	}

	registry.SetActive(o.spec)
	for _, ch := range registry.Channels() {
		fmt.Fprintf(o.out, "%s\t%s\t%s\n", ch.Name, ch.Namespace, label(ch.Active))
	}
	return nil
}

func label(active bool) string {
	if active {
		return activeLabel
	}
	return inactiveLabel
}
