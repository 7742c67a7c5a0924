// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package sink

import (
	"github.com/mia-platform/nsdebug/internal/channel"
	"github.com/mia-platform/nsdebug/internal/logger"
)

var _ channel.Sink = &loggerSink{}

type loggerSink struct {
	log logger.Logger
}

// NewLoggerSink returns a sink that logs every message at INFO level with a logger
// named after the channel namespace.
func NewLoggerSink(log logger.Logger) channel.Sink {
	return &loggerSink{log: log}
}

func (s *loggerSink) Write(namespace, message string) error {
	s.log.WithName(namespace).Info(message)
	return nil
}
