/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package trace records every published guide frame into a SQLite file so a
// drag can be inspected after the fact. Recording is opt-in and sits behind
// the publisher like any other listener.
package trace

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stickyguides/internal/guides"
	applog "stickyguides/internal/log"
	"stickyguides/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

// schemaVersion tracks the trace database layout. Bump it together with a
// new step in runMigrations.
const schemaVersion = 2

// Recorder appends frames to a trace database. Each Recorder is one run with
// its own uuid; several runs may share a file.
type Recorder struct {
	db    *sql.DB
	path  string
	runID string
	log   *slog.Logger

	mu  sync.Mutex
	err error
}

// Open creates or opens the trace database at path, enables WAL and brings
// the schema up to date.
func Open(path string) (*Recorder, error) {
	l := applog.WithOperation(applog.WithComponent("trace"), "open").With(slog.String("path", path))
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("trace path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	for _, step := range []func(context.Context, *sql.DB) error{ensureMetaAndVersion, ensureSchema, runMigrations} {
		if err := step(ctx, db); err != nil {
			_ = db.Close()
			l.Error("prepare trace schema failed", slog.Any("err", err))
			return nil, err
		}
	}

	r := &Recorder{db: db, path: path, runID: uuid.NewString(), log: l}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := db.ExecContext(ctx, `INSERT INTO runs (run_id, app, started_at) VALUES (?, ?, ?)`, r.runID, version.String(), now); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("insert run: %w", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('last_run', ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`, r.runID); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("update meta: %w", err)
	}
	l.Debug("trace ready", slog.String("run", r.runID))
	return r, nil
}

func (r *Recorder) RunID() string { return r.runID }
func (r *Recorder) Path() string  { return r.path }

// Record stores one frame.
func (r *Recorder) Record(ctx context.Context, f guides.Frame) error {
	g, err := json.Marshal(nonNil(f.Guides))
	if err != nil {
		return fmt.Errorf("marshal guides: %w", err)
	}
	p, err := json.Marshal(nonNil(f.Projections))
	if err != nil {
		return fmt.Errorf("marshal projections: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO frames (run_id, session_id, tick, guides_json, projections_json, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		r.runID, f.SessionID, f.Tick, string(g), string(p), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert frame: %w", err)
	}
	return nil
}

// Listener adapts Record to the publisher. Write failures are logged once
// and kept for Err; later frames are still attempted.
func (r *Recorder) Listener() guides.Listener {
	return func(f guides.Frame) {
		ctx := applog.WithDrag(context.Background(), f.SessionID, f.Tick)
		if err := r.Record(ctx, f); err != nil {
			r.mu.Lock()
			first := r.err == nil
			if first {
				r.err = err
			}
			r.mu.Unlock()
			if first {
				r.log.WarnContext(ctx, "trace write failed", slog.Any("err", err))
			}
		}
	}
}

// Err returns the first error seen by the listener.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Frames returns the recorded frames of one drag session in recording
// order. An empty sessionID returns every frame of the file.
func (r *Recorder) Frames(ctx context.Context, sessionID string) ([]guides.Frame, error) {
	q := `SELECT session_id, tick, guides_json, projections_json FROM frames`
	var args []any
	if sessionID != "" {
		q += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()
	var out []guides.Frame
	for rows.Next() {
		var f guides.Frame
		var g, p string
		if err := rows.Scan(&f.SessionID, &f.Tick, &g, &p); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		if err := json.Unmarshal([]byte(g), &f.Guides); err != nil {
			return nil, fmt.Errorf("decode guides: %w", err)
		}
		if err := json.Unmarshal([]byte(p), &f.Projections); err != nil {
			return nil, fmt.Errorf("decode projections: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Sessions lists the session ids recorded by this run, in first-seen order.
func (r *Recorder) Sessions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id FROM frames WHERE run_id = ? AND session_id != '' GROUP BY session_id ORDER BY MIN(id)`, r.runID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close flushes and closes the database.
func (r *Recorder) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
