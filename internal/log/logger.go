/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log provides the slog setup shared by the engine and its tools.
// Records logged with a drag context (see WithDrag) carry the session id and
// tick, so a trace row and the log lines of the same tick can be matched.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"stickyguides/internal/version"

	// lumberjack is optional; used only if file logging is enabled
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
// Values can be provided directly or via environment variables:
//   - STG_LOG_LEVEL=debug|info|warn|error
//   - STG_LOG_FORMAT=console|json
//   - STG_LOG_FILE=<path> (enables file logging with rotation)
//   - STG_LOG_SOURCE=true|false (include source)
//
// Defaults: INFO level, console format, no source.
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string // optional path for file logging (rotated)
}

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   *slog.Logger
)

// L returns the default application logger, initializing from env if needed.
func L() *slog.Logger {
	defaultLoggerMu.RLock()
	l := defaultLogger
	defaultLoggerMu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// Init configures the global logger on stderr and sets slog.Default as well.
func Init(opts Options) {
	logger := New(opts, os.Stderr)
	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
	slog.SetDefault(logger)
}

// New builds a logger that writes console or JSON records to w and, when
// opts.File is set, JSON records to a rotated file as well.
func New(opts Options, w io.Writer) *slog.Logger {
	lvl := parseLevel(opts.Level)
	ho := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource}

	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = &consoleHandler{level: lvl, source: opts.AddSource, w: w, mu: &sync.Mutex{}}
	}
	h = withDrag(h)
	if f := strings.TrimSpace(opts.File); f != "" {
		rot := &lj.Logger{Filename: f, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		h = fanout{h, withDrag(slog.NewJSONHandler(rot, ho))}
	}
	return slog.New(h).With(
		slog.String("app", "stickyguides"),
		slog.String("ver", version.Version),
	)
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("STG_LOG_LEVEL", "info"),
		Format:    getenv("STG_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("STG_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("STG_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

// WithSession annotates the logger with a drag session id.
func WithSession(l *slog.Logger, id string) *slog.Logger { return l.With(slog.String("session", id)) }

// Discard returns a logger that drops every record.
func Discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

type dragKey struct{}

type dragInfo struct {
	session string
	tick    int
}

// WithDrag stores a drag session id and tick in ctx. Records logged with the
// context get "session" and "tick" attributes.
func WithDrag(ctx context.Context, session string, tick int) context.Context {
	return context.WithValue(ctx, dragKey{}, dragInfo{session: session, tick: tick})
}

// DragFrom returns the session id and tick stored by WithDrag.
func DragFrom(ctx context.Context) (session string, tick int, ok bool) {
	if ctx == nil {
		return "", 0, false
	}
	d, ok := ctx.Value(dragKey{}).(dragInfo)
	return d.session, d.tick, ok && d.session != ""
}

// dragHandler copies the drag context of a record into its attributes.
type dragHandler struct{ next slog.Handler }

func withDrag(h slog.Handler) slog.Handler { return dragHandler{next: h} }

func (d dragHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return d.next.Enabled(ctx, level)
}

func (d dragHandler) Handle(ctx context.Context, r slog.Record) error {
	if session, tick, ok := DragFrom(ctx); ok {
		r = r.Clone()
		r.AddAttrs(slog.String("session", session), slog.Int("tick", tick))
	}
	return d.next.Handle(ctx, r)
}

func (d dragHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return dragHandler{next: d.next.WithAttrs(attrs)}
}

func (d dragHandler) WithGroup(name string) slog.Handler {
	return dragHandler{next: d.next.WithGroup(name)}
}

// fanout sends every record to each handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// consoleHandler writes one line per record:
//
//	15:04:05.000 DBG [sticky] tick session=s1 tick=3 guides=1
//
// The component attribute becomes the bracketed prefix; app and ver are
// left to the JSON outputs.
type consoleHandler struct {
	level     slog.Level
	source    bool
	w         io.Writer
	mu        *sync.Mutex
	component string
	attrs     []slog.Attr
	prefix    string
}

var consoleSkip = map[string]bool{"app": true, "ver": true}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(levelString(r.Level))
	component := h.component
	var rec []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" && h.prefix == "" {
			component = a.Value.String()
		} else {
			rec = append(rec, a)
		}
		return true
	})
	if component != "" {
		b.WriteString(" [")
		b.WriteString(component)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	for _, a := range rec {
		writeAttr(&b, h.prefix, a)
	}
	if h.source && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		b.WriteString(" src=")
		b.WriteString(f.File)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Line))
	}
	b.WriteByte('\n')
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *h
	n.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		switch {
		case h.prefix == "" && a.Key == "component":
			n.component = a.Value.String()
		case h.prefix == "" && consoleSkip[a.Key]:
		default:
			a.Key = h.prefix + a.Key
			n.attrs = append(n.attrs, a)
		}
	}
	return &n
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	n := *h
	n.prefix = h.prefix + name + "."
	return &n
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(attrValueString(a.Value.Resolve()))
}

func levelString(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return l.String()
	}
}

func attrValueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindString:
		if s := v.String(); strings.ContainsAny(s, " =\"") {
			return strconv.Quote(s)
		}
		return v.String()
	default:
		return v.String()
	}
}
