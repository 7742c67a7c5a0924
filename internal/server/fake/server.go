// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"sync"
	"testing"

	"github.com/mia-platform/nsdebug/internal/server"
)

var _ server.Server = &Server{}

// Server is a server.Server that never listens; it only records its lifecycle.
type Server struct {
	tb testing.TB

	startedChan chan struct{}
	closedChan  chan struct{}
	startOnce   sync.Once
	stopOnce    sync.Once
}

func NewFakeServer(tb testing.TB) *Server {
	tb.Helper()

	return &Server{
		tb:          tb,
		startedChan: make(chan struct{}),
		closedChan:  make(chan struct{}),
	}
}

// Start blocks until Stop is called.
func (s *Server) Start() error {
	s.tb.Helper()
	s.startOnce.Do(func() { close(s.startedChan) })
	<-s.closedChan
	return nil
}

func (s *Server) Stop() error {
	s.tb.Helper()
	s.stopOnce.Do(func() { close(s.closedChan) })
	return nil
}

// StartedServer is closed once Start has been called.
func (s *Server) StartedServer() <-chan struct{} {
	s.tb.Helper()
	return s.startedChan
}

// StoppedServer is closed once Stop has been called.
func (s *Server) StoppedServer() <-chan struct{} {
	s.tb.Helper()
	return s.closedChan
}
