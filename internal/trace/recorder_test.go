/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package trace

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"stickyguides/internal/guides"
)

func openTemp(t *testing.T) (*Recorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace", "frames.sqlite")
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r, path
}

func TestRecorder_ListenerStoresFrames(t *testing.T) {
	r, _ := openTemp(t)
	pub := guides.NewPublisher()
	pub.Subscribe(r.Listener())

	pub.Publish(guides.Frame{SessionID: "s1", Tick: 1, Guides: []guides.Guide{{ID: "v-edge-c-left-right", Axis: guides.Vertical, Position: 150, Type: guides.Edge, SourceID: "c"}}})
	pub.Publish(guides.Frame{SessionID: "s1", Tick: 2})
	pub.Publish(guides.Frame{SessionID: "s2", Tick: 1, Projections: []guides.Projection{{ID: "p", SourceID: "c", Axis: guides.Horizontal, Position: 3, Kind: guides.Center}}})
	if err := r.Err(); err != nil {
		t.Fatalf("listener error: %v", err)
	}

	ctx := context.Background()
	s1, err := r.Frames(ctx, "s1")
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(s1) != 2 || s1[0].Tick != 1 || s1[1].Tick != 2 {
		t.Fatalf("session s1 frames = %+v", s1)
	}
	if len(s1[0].Guides) != 1 || s1[0].Guides[0].Position != 150 || s1[0].Guides[0].Axis != guides.Vertical {
		t.Fatalf("guide not preserved: %+v", s1[0].Guides)
	}
	if len(s1[1].Guides) != 0 {
		t.Fatalf("empty frame should stay empty: %+v", s1[1])
	}

	all, _ := r.Frames(ctx, "")
	if len(all) != 3 || all[2].Projections[0].Kind != guides.Center {
		t.Fatalf("all frames = %+v", all)
	}
	sessions, err := r.Sessions(ctx)
	if err != nil || fmt.Sprint(sessions) != "[s1 s2]" {
		t.Fatalf("Sessions = %v %v", sessions, err)
	}
}

func TestRecorder_ReopenKeepsFramesAndNewRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.sqlite")
	r1, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r1.Record(context.Background(), guides.Frame{SessionID: "a", Tick: 1}); err != nil {
		t.Fatal(err)
	}
	run1 := r1.RunID()
	if err := r1.Close(); err != nil {
		t.Fatal(err)
	}

	r2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r2.Close()
	if r2.RunID() == run1 || r2.RunID() == "" {
		t.Fatalf("each open is a new run: %q vs %q", r2.RunID(), run1)
	}
	frames, _ := r2.Frames(context.Background(), "a")
	if len(frames) != 1 {
		t.Fatalf("frames from earlier run must survive, got %d", len(frames))
	}
	if s, _ := r2.Sessions(context.Background()); len(s) != 0 {
		t.Fatalf("new run has no sessions yet: %v", s)
	}
	v, err := r2.SchemaVersion(context.Background())
	if err != nil || v != schemaVersion {
		t.Fatalf("SchemaVersion = %d %v", v, err)
	}
}

func TestRecorder_MigratesV1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.sqlite")
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path))
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
		`CREATE TABLE version (id INTEGER PRIMARY KEY CHECK(id=1), schema INTEGER NOT NULL, app TEXT, created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`,
		`INSERT INTO version VALUES (1, 1, 'old', 'x', 'x')`,
		`CREATE TABLE frames (id INTEGER PRIMARY KEY AUTOINCREMENT, run_id TEXT NOT NULL, session_id TEXT NOT NULL, tick INTEGER NOT NULL, guides_json TEXT NOT NULL, projections_json TEXT NOT NULL, ts TEXT NOT NULL)`,
	}
	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("seed %q: %v", q, err)
		}
	}
	_ = db.Close()

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open v1 file: %v", err)
	}
	defer r.Close()
	v, err := r.SchemaVersion(context.Background())
	if err != nil || v != 2 {
		t.Fatalf("expected migration to 2, got %d %v", v, err)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestRecorder_CloseTwice(t *testing.T) {
	r, _ := openTemp(t)
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}
}
