/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides levelled logging for repoinsight.
// Sessions, the loader and the HTTP server write through a Logger;
// the engine packages stay silent and report through return values.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level defines log levels
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	// OFF disables logging
	OFF
)

// String returns string representation of log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel reads a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "OFF", "NONE":
		return OFF, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Logger interface defines basic methods for logging
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level Level)
	// Named returns a logger that tags every line with name and shares the level of its parent.
	Named(name string) Logger
	// WithLevel returns a logger with the same output and name and a level of its own.
	WithLevel(level Level) Logger
}

type defaultLogger struct {
	level  *Level
	name   string
	logger *log.Logger
}

// NewLogger creates a logger writing to output
//
// Example:
//
//	log := NewLogger(INFO, os.Stderr)
//	log.Info("loaded %d repositories", n)
func NewLogger(level Level, output io.Writer) Logger {
	lvl := level
	return &defaultLogger{
		level:  &lvl,
		logger: log.New(output, "", 0),
	}
}

func (l *defaultLogger) Debug(format string, args ...interface{}) { l.log(DEBUG, format, args...) }
func (l *defaultLogger) Info(format string, args ...interface{})  { l.log(INFO, format, args...) }
func (l *defaultLogger) Warn(format string, args ...interface{})  { l.log(WARN, format, args...) }
func (l *defaultLogger) Error(format string, args ...interface{}) { l.log(ERROR, format, args...) }

func (l *defaultLogger) SetLevel(level Level) {
	*l.level = level
}

func (l *defaultLogger) Named(name string) Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &defaultLogger{level: l.level, name: name, logger: l.logger}
}

func (l *defaultLogger) WithLevel(level Level) Logger {
	lvl := level
	return &defaultLogger{level: &lvl, name: l.name, logger: l.logger}
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	if *l.level == OFF || level < *l.level {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	if l.name != "" {
		l.logger.Printf("[%s] [%s] [%s] %s", timestamp, level, l.name, message)
		return
	}
	l.logger.Printf("[%s] [%s] %s", timestamp, level, message)
}

type discardLogger struct{}

// NewDiscardLogger creates a logger that drops everything, for tests and embedding.
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Debug(format string, args ...interface{}) {}
func (discardLogger) Info(format string, args ...interface{})  {}
func (discardLogger) Warn(format string, args ...interface{})  {}
func (discardLogger) Error(format string, args ...interface{}) {}
func (discardLogger) SetLevel(level Level)                     {}
func (d discardLogger) Named(name string) Logger               { return d }
func (d discardLogger) WithLevel(level Level) Logger             { return d }

var defaultInstance = NewLogger(INFO, os.Stderr)

// SetDefault replaces the process default logger
func SetDefault(l Logger) {
	defaultInstance = l
}

// GetDefault returns the process default logger
func GetDefault() Logger {
	return defaultInstance
}
