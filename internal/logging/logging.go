// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package logging builds the process logger: a fan-out of an optional
// console handler and rotating JSON files, wrapped with request correlation
// and redaction.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/retr0h/storefront/internal/config"
)

// File names written below config.Logging.Dir.
const (
	ErrorLogFile    = "error.log"
	CombinedLogFile = "combined.log"
)

// fallback receives handler failures; logging never fails the caller.
var fallback io.Writer = os.Stderr

// Options control the console handler.
type Options struct {
	// Console enables the console handler.
	Console bool
	// JSON writes console output as JSON instead of tinted text.
	JSON bool
	// NoColor disables ANSI colours in tinted output.
	NoColor bool
	// Writer is the console destination; defaults to os.Stderr.
	Writer io.Writer
	// Level overrides config.Logging.Level when non-nil.
	Level *slog.Level
}

// ParseLevel converts a config level name to a slog.Level, defaulting to info.
func ParseLevel(
	name string,
) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the root logger. The returned closer releases the rotating
// file handles and must be called on shutdown.
func New(
	cfg config.Logging,
	opts Options,
) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(cfg.Level)
	if opts.Level != nil {
		level = *opts.Level
	}

	handlers := make([]slog.Handler, 0, 3)
	closers := closerList{}

	if opts.Console {
		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		handlers = append(handlers, newConsoleHandler(w, level, opts))
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("creating log dir: %w", err)
		}

		errorLog := newRotatingFile(cfg, ErrorLogFile)
		combinedLog := newRotatingFile(cfg, CombinedLogFile)
		closers = append(closers, errorLog, combinedLog)

		handlers = append(
			handlers,
			newJSONHandler(errorLog, slog.LevelError),
			newJSONHandler(combinedLog, level),
		)
	}

	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewJSONHandler(io.Discard, nil))
	}

	return slog.New(Wrap(slogmulti.Fanout(handlers...))), closers, nil
}

// Wrap adds correlation attributes and error recovery to handler.
func Wrap(
	handler slog.Handler,
) slog.Handler {
	return slogmulti.
		Pipe(slogmulti.RecoverHandlerError(recoverHandlerError)).
		Handler(NewContextHandler(handler))
}

func recoverHandlerError(
	_ context.Context,
	record slog.Record,
	err error,
) {
	_, _ = fmt.Fprintf(fallback, "logging: dropped %q: %v\n", record.Message, err)
}

func newConsoleHandler(
	w io.Writer,
	level slog.Level,
	opts Options,
) slog.Handler {
	if opts.JSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: ReplaceAttr,
		})
	}

	return tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  time.Kitchen,
		NoColor:     opts.NoColor,
		ReplaceAttr: ReplaceAttr,
	})
}

func newJSONHandler(
	w io.Writer,
	level slog.Level,
) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: ReplaceAttr,
	})
}

func newRotatingFile(
	cfg config.Logging,
	name string,
) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, name),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

type closerList []io.Closer

// Close closes every file and joins the errors.
func (c closerList) Close() error {
	var errs []error
	for _, closer := range c {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
