/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"encoding/json"
	"testing"
)

func TestPath_BoundsTriangle(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(0, 10)
	p.Close()

	b, ok := p.Bounds()
	if !ok {
		t.Fatalf("expected bounds for non-empty path")
	}
	if b.X != 0 || b.Y != 0 || b.W != 10 || b.H != 10 {
		t.Fatalf("unexpected bounds: %+v", b)
	}

	moved := p.Translated(Pt{5, 5})
	bb, _ := moved.Bounds()
	if bb.X != 5 || bb.Y != 5 || bb.W != 10 || bb.H != 10 {
		t.Fatalf("unexpected translated bounds: %+v", bb)
	}
	// original untouched
	if p.Cmds[1].Data[0] != 10 {
		t.Fatalf("Translated mutated the receiver: %+v", p.Cmds[1])
	}
}

func TestPath_EmptyHasNoBounds(t *testing.T) {
	var p Path
	if _, ok := p.Bounds(); ok {
		t.Fatalf("empty path must not report bounds")
	}
	p.Close()
	if _, ok := p.Bounds(); ok {
		t.Fatalf("close-only path must not report bounds")
	}
}

func TestPath_SubPaths(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 10)
	p.Close()
	p.MoveTo(100, 100)
	p.LineTo(120, 130)

	subs := p.SubPaths()
	if len(subs) != 2 {
		t.Fatalf("expected 2 sub-paths, got %d", len(subs))
	}
	b, _ := subs[1].Bounds()
	if b.X != 100 || b.Y != 100 || b.W != 20 || b.H != 30 {
		t.Fatalf("unexpected second sub-path bounds: %+v", b)
	}
}

func TestPathCmd_JSONRoundTripsUsedArgs(t *testing.T) {
	var p Path
	p.MoveTo(1, 2)
	p.CubicTo(3, 4, 5, 6, 7, 8)
	p.Close()

	b, err := json.Marshal(p.Cmds)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `[{"op":"M","args":[1,2]},{"op":"C","args":[3,4,5,6,7,8]},{"op":"Z"}]`; got != want {
		t.Fatalf("json = %s, want %s", got, want)
	}
	var back []PathCmd
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back[1] != p.Cmds[1] {
		t.Fatalf("cubic mismatch: %+v vs %+v", back[1], p.Cmds[1])
	}
}

func TestPathCmd_RejectsWrongArity(t *testing.T) {
	var c PathCmd
	if err := json.Unmarshal([]byte(`{"op":"L","args":[1]}`), &c); err == nil {
		t.Fatalf("expected arity error")
	}
	if err := json.Unmarshal([]byte(`{"op":"X","args":[]}`), &c); err == nil {
		t.Fatalf("expected unknown op error")
	}
}
