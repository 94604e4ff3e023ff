/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("STG_LOG_LEVEL", "warn")
	t.Setenv("STG_LOG_FORMAT", "json")
	t.Setenv("STG_LOG_SOURCE", "true")
	t.Setenv("STG_LOG_FILE", "")

	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "" {
		t.Fatalf("FromEnv mismatch: %+v", opts)
	}
	if v := getenv("STG_UNSET_FOR_TEST", "fallback"); v != "fallback" {
		t.Fatalf("getenv fallback failed: %q", v)
	}
}

func TestConsole_ComponentPrefixAndDrag(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug"}, &buf)
	l = WithSession(l.With(slog.String("component", "sticky")), "s2")
	l.Debug("drag session started", slog.String("kind", "image"), slog.Float64("snap_distance", 8.5))

	out := buf.String()
	if !strings.Contains(out, " DBG [sticky] drag session started session=s2 kind=image snap_distance=8.5") {
		t.Fatalf("unexpected console line: %q", out)
	}
	if strings.Contains(out, "app=") || strings.Contains(out, "component=") {
		t.Fatalf("static attrs should stay out of the console: %q", out)
	}

	buf.Reset()
	l = New(Options{Level: "debug"}, &buf).With(slog.String("component", "trace"))
	l.InfoContext(WithDrag(context.Background(), "s3", 4), "frame")
	if out := buf.String(); !strings.Contains(out, "INF [trace] frame session=s3 tick=4") {
		t.Fatalf("drag context missing on console: %q", out)
	}
}

func TestConsole_LevelGroupsAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "warn"}, &buf)
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %q", buf.String())
	}
	l.WithGroup("cfg").Error("bad value", slog.Int("n", 42), slog.String("path", "my doc.json"), slog.Bool("ok", false))
	out := buf.String()
	if !strings.Contains(out, "ERR bad value cfg.n=42") || !strings.Contains(out, `cfg.path="my doc.json"`) || !strings.Contains(out, "cfg.ok=false") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, " WARNING ": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "loud": slog.LevelInfo}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
