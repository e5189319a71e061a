// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
)

// handlerBox keeps the stored type of the atomic value constant.
type handlerBox struct {
	h slog.Handler
}

// swapHandler forwards records to the handler currently installed by SetDefault.
// Loggers derived from the root at package init keep following later swaps.
type swapHandler struct {
	cur   *atomic.Value
	attrs []slog.Attr
}

func (s *swapHandler) inner() slog.Handler {
	h := s.cur.Load().(handlerBox).h
	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}
	return h
}

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.inner().Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.inner().Handle(ctx, r)
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &swapHandler{
		cur:   s.cur,
		attrs: append(slices.Clip(s.attrs), attrs...),
	}
}

func (s *swapHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

var (
	rootHandler = func() *swapHandler {
		var v atomic.Value
		v.Store(handlerBox{DiscardHandler()})
		return &swapHandler{cur: &v}
	}()
	root = NewLogger(rootHandler)
)

// SetDefault sets the handler of the root logger. Loggers obtained through
// WithContext, before or after the call, write to it.
func SetDefault(l Logger) {
	rootHandler.cur.Store(handlerBox{l.Handler()})
	slog.SetDefault(slog.New(rootHandler))
}

// Root returns the root logger
func Root() Logger {
	return root
}

// WithContext returns a logger derived from the root with the given context.
func WithContext(ctx ...any) Logger {
	return root.With(ctx...)
}

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...any) {
	Root().Log(LevelTrace, msg, ctx...)
}

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...any) {
	Root().Log(slog.LevelDebug, msg, ctx...)
}

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...any) {
	Root().Log(slog.LevelInfo, msg, ctx...)
}

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...any) {
	Root().Log(slog.LevelWarn, msg, ctx...)
}

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...any) {
	Root().Log(slog.LevelError, msg, ctx...)
}
