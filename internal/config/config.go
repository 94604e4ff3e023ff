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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	applog "stickyguides/internal/log"
	"stickyguides/internal/sticky"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Keys missing from the file keep their defaults.

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// TraceConfig selects the SQLite file that records published frames. Empty disables tracing.
type TraceConfig struct {
	File string `yaml:"file"`
}

// FontConfig registers a TTF/OTF file for text bounds under a family, weight and style.
type FontConfig struct {
	Family string `yaml:"family"`
	Weight int    `yaml:"weight,omitempty"`
	Italic bool   `yaml:"italic,omitempty"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Sticky        sticky.Config `yaml:"sticky"`
	Logging       LoggingConfig `yaml:"logging"`
	Trace         TraceConfig   `yaml:"trace"`
	Fonts         []FontConfig  `yaml:"fonts,omitempty"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Sticky:        sticky.DefaultConfig(),
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvSnapEnabled    = "STG_SNAP_ENABLED"
	EnvSnapDistance   = "STG_SNAP_DISTANCE"
	EnvSnapGuidelines = "STG_SNAP_GUIDELINES"
	EnvSnapEdges      = "STG_SNAP_EDGES"
	EnvSnapCenters    = "STG_SNAP_CENTERS"
	EnvSnapMidpoints  = "STG_SNAP_MIDPOINTS"
	EnvSnapDebug      = "STG_SNAP_DEBUG"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "STG_LOG_LEVEL"
	EnvLogFormat = "STG_LOG_FORMAT"
	EnvLogSource = "STG_LOG_SOURCE"
	EnvLogFile   = "STG_LOG_FILE"
	EnvTraceFile = "STG_TRACE_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "StickyGuides")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "StickyGuides")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "stickyguides")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file yields the defaults; a file that is not
// valid YAML is an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		fileCfg := Defaults()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path, creating parent directories.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Marshal renders cfg as YAML.
func Marshal(cfg AppConfig) ([]byte, error) { return yaml.Marshal(cfg) }

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans and the distance: copy directly from src (file) so user preferences persist
	dst.Sticky = src.Sticky
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	if strings.TrimSpace(src.Trace.File) != "" {
		dst.Trace.File = strings.TrimSpace(src.Trace.File)
	}
	for _, f := range src.Fonts {
		if strings.TrimSpace(f.Family) == "" || strings.TrimSpace(f.File) == "" {
			continue
		}
		dst.Fonts = append(dst.Fonts, f)
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	bools := []struct {
		env string
		dst *bool
	}{
		{EnvSnapEnabled, &cfg.Sticky.Enabled},
		{EnvSnapGuidelines, &cfg.Sticky.ShowGuidelines},
		{EnvSnapEdges, &cfg.Sticky.EnableEdgeSnapping},
		{EnvSnapCenters, &cfg.Sticky.EnableCenterSnapping},
		{EnvSnapMidpoints, &cfg.Sticky.EnableMidpointSnapping},
		{EnvSnapDebug, &cfg.Sticky.DebugMode},
		{EnvLogSource, &cfg.Logging.Source},
	}
	for _, b := range bools {
		if v := strings.TrimSpace(os.Getenv(b.env)); v != "" {
			*b.dst = parseBool(v)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnapDistance)); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Sticky.SnapDistance = n
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTraceFile)); v != "" {
		cfg.Trace.File = v
	}
}

var envByKey = map[string]string{
	"sticky.enabled":         EnvSnapEnabled,
	"sticky.snap_distance":   EnvSnapDistance,
	"sticky.show_guidelines": EnvSnapGuidelines,
	"sticky.edges":           EnvSnapEdges,
	"sticky.centers":         EnvSnapCenters,
	"sticky.midpoints":       EnvSnapMidpoints,
	"sticky.debug":           EnvSnapDebug,
	"logging.level":          EnvLogLevel,
	"logging.format":         EnvLogFormat,
	"logging.source":         EnvLogSource,
	"logging.file":           EnvLogFile,
	"trace.file":             EnvTraceFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envByKey[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// Options converts the logging section into logger options.
func (l LoggingConfig) Options() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}
