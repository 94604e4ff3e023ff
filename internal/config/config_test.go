/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// isolate points the per-user config dir at a temp HOME and clears every override.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)
	for _, env := range envByKey {
		t.Setenv(env, "")
	}
	return home
}

func TestDefaultsWhenNoFile(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Sticky.Enabled || cfg.Sticky.SnapDistance != 8 || !cfg.Sticky.ShowGuidelines || cfg.Sticky.DebugMode {
		t.Fatalf("unexpected sticky defaults: %#v", cfg.Sticky)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %#v", cfg.Logging)
	}
}

func TestEnvOverridesSticky(t *testing.T) {
	isolate(t)
	t.Setenv(EnvSnapEnabled, "off")
	t.Setenv(EnvSnapDistance, "12.5")
	t.Setenv(EnvSnapMidpoints, "0")
	t.Setenv(EnvSnapDebug, "yes")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	s := cfg.Sticky
	if s.Enabled || s.SnapDistance != 12.5 || s.EnableMidpointSnapping || !s.DebugMode || !s.EnableEdgeSnapping {
		t.Fatalf("env overrides not applied: %#v", s)
	}
}

func TestEnvOverrideBadDistanceIgnored(t *testing.T) {
	isolate(t)
	t.Setenv(EnvSnapDistance, "wide")
	cfg, _ := Load()
	if cfg.Sticky.SnapDistance != 8 {
		t.Fatalf("unparsable distance should keep default, got %v", cfg.Sticky.SnapDistance)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "DEBUG "
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/stg.log"
	src.Trace.File = "trace.db"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/stg.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
	if dst.Trace.File != "trace.db" {
		t.Fatalf("trace file not merged: %#v", dst.Trace)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "X:/stg.log")
	t.Setenv(EnvTraceFile, "X:/trace.db")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "X:/stg.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
	if cfg.Trace.File != "X:/trace.db" {
		t.Fatalf("trace override not applied: %#v", cfg.Trace)
	}
	o := cfg.Logging.Options()
	if o.Level != "error" || o.Format != "json" || !o.AddSource || o.File != "X:/stg.log" {
		t.Fatalf("Options() = %#v", o)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	isolate(t)
	if runtime.GOOS == "windows" {
		t.Skip("per-user path uses AppData on windows")
	}
	cfg := Defaults()
	cfg.Sticky.SnapDistance = 4
	cfg.Sticky.EnableCenterSnapping = false
	cfg.Logging.Level = "warn"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	path, _ := ConfigPath()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Sticky != cfg.Sticky || got.Logging.Level != "warn" {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "sticky:\n  snap_distance: 3\n  midpoints: false\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	s := cfg.Sticky
	if s.SnapDistance != 3 || s.EnableMidpointSnapping || !s.Enabled || !s.EnableEdgeSnapping || !s.ShowGuidelines {
		t.Fatalf("missing keys must keep defaults: %#v", s)
	}
}

func TestLoadFile_FontsSkipIncomplete(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "fonts:\n  - family: Brand\n    weight: 700\n    file: /fonts/brand-bold.ttf\n  - family: NoFile\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cfg.Fonts) != 1 {
		t.Fatalf("want 1 font, got %#v", cfg.Fonts)
	}
	if f := cfg.Fonts[0]; f.Family != "Brand" || f.Weight != 700 || f.File != "/fonts/brand-bold.ttf" {
		t.Fatalf("unexpected font entry: %#v", f)
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sticky: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
	if cfg.Sticky.SnapDistance != 8 {
		t.Fatalf("defaults should still be returned on error")
	}
}

func TestEnvOverrideFor(t *testing.T) {
	isolate(t)
	if _, ok := EnvOverrideFor("sticky.enabled"); ok {
		t.Fatalf("no override expected without env")
	}
	t.Setenv(EnvSnapEnabled, "false")
	if env, ok := EnvOverrideFor("sticky.enabled"); !ok || env != EnvSnapEnabled {
		t.Fatalf("EnvOverrideFor = %q %v", env, ok)
	}
	if _, ok := EnvOverrideFor("general.theme"); ok {
		t.Fatalf("unknown keys have no override")
	}
}

func TestMarshalUsesYAMLKeys(t *testing.T) {
	b, err := Marshal(Defaults())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"config_version: 1", "snap_distance: 8", "show_guidelines: true", "midpoints: true"} {
		if !strings.Contains(string(b), k) {
			t.Fatalf("yaml missing %q:\n%s", k, b)
		}
	}
}
