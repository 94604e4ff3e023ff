/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sticky

import (
	"testing"

	"stickyguides/internal/canvas"
	"stickyguides/internal/guides"
)

func TestProjections_Counts(t *testing.T) {
	moving := []canvas.Element{el("m", 0, 0, 20, 20)}
	cands := []canvas.Element{el("a", 100, 0, 10, 10), el("b", 0, 100, 10, 10)}
	cfg := DefaultConfig()
	if got := Projections(moving, cands, cfg); got != nil {
		t.Fatalf("no projections without debug mode, got %d", len(got))
	}

	cfg.DebugMode = true
	all := Projections(moving, cands, cfg)
	if len(all) != 30 {
		t.Fatalf("expected 3 elements x 2 axes x 5 lines, got %d", len(all))
	}
	moved := 0
	for _, p := range all {
		if p.IsMovingElement {
			moved++
			if p.SourceID != "m" {
				t.Fatalf("only the moving element is tagged: %+v", p)
			}
		}
	}
	if moved != 10 {
		t.Fatalf("moving element projections = %d", moved)
	}

	cfg.EnableCenterSnapping, cfg.EnableMidpointSnapping = false, false
	edges := Projections(moving, cands, cfg)
	if len(edges) != 12 {
		t.Fatalf("edge only: want 3 x 4, got %d", len(edges))
	}
	first := edges[0]
	if first.ID != "proj-v-edge-m-left" || first.Axis != guides.Vertical || first.Position != 0 || first.Kind != guides.Edge {
		t.Fatalf("unexpected first projection %+v", first)
	}
	if edges[1].Position != 20 || edges[2].Axis != guides.Horizontal {
		t.Fatalf("order should be x edges then y edges: %+v", edges[:4])
	}
}

func TestProjections_MidpointValues(t *testing.T) {
	cfg := Config{DebugMode: true, EnableMidpointSnapping: true}
	got := Projections(nil, []canvas.Element{el("c", 100, 200, 40, 80)}, cfg)
	want := []float64{110, 130, 220, 260}
	if len(got) != len(want) {
		t.Fatalf("got %d projections", len(got))
	}
	for i, p := range got {
		if p.Position != want[i] || p.Kind != guides.Midpoint || p.IsMovingElement {
			t.Fatalf("projection %d = %+v, want position %v", i, p, want[i])
		}
	}
}
