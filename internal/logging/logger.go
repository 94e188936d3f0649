// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a JSON production logger, log level defaults to error
// when the provided one cannot be parsed.
func NewLogger(l string) *Logger {
	level, err := zapcore.ParseLevel(strings.ToLower(l))
	if err != nil {
		level = zapcore.ErrorLevel
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(level)
	c.EncoderConfig.TimeKey = "@timestamp"
	c.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	if level == zapcore.DebugLevel {
		c.Development = true
	}

	lgr, err := c.Build()
	if err != nil {
		panic(err)
	}

	return &Logger{
		SugaredLogger: lgr.Sugar(),
		// security events are always emitted, regardless of the level
		security: NewSecurityLogger(lgr.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel)).Named("security")),
	}
}
