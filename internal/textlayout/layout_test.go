/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"testing"

	"stickyguides/internal/vector"
)

// Face7x13: 7px advance, 11 ascent + 2 descent, no line gap.

func TestWordWrap_BreaksBetweenWords(t *testing.T) {
	b := NewWordWrap(BasicProvider{}).Layout("Hello world from Go", FontSpec{}, 50)
	want := []string{"Hello", "world", "from Go"}
	if len(b.Lines) != len(want) {
		t.Fatalf("lines = %q, want %q", b.Lines, want)
	}
	for i := range want {
		if b.Lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, b.Lines[i], want[i])
		}
	}
	if b.Widths[2] != 49 || b.Width != 49 || b.Height != 39 {
		t.Fatalf("unexpected block size: %+v", b)
	}
}

func TestWordWrap_LongWordKeepsItsOwnLine(t *testing.T) {
	b := NewWordWrap(nil).Layout("a extraordinary b", FontSpec{}, 30)
	if len(b.Lines) != 3 || b.Lines[1] != "extraordinary" || b.Width != 91 {
		t.Fatalf("unexpected layout: %+v", b)
	}
}

func TestBounds_BlockAtOrigin(t *testing.T) {
	l := NewWordWrap(BasicProvider{})
	r, ok := l.Bounds("ABC", FontSpec{}, 0, vector.Pt{X: 10, Y: 20})
	if !ok {
		t.Fatalf("expected bounds for non-empty text")
	}
	if r != vector.R(10, 20, 21, 13) {
		t.Fatalf("unexpected block bounds: %+v", r)
	}

	r, _ = l.Bounds("AB\nCDEF", FontSpec{}, 0, vector.Pt{})
	if r.W != 28 || r.H != 26 {
		t.Fatalf("expected two lines 28x26, got %+v", r)
	}

	// Blank lines inside the text still take up height.
	r, _ = l.Bounds("A\n\nB", FontSpec{}, 0, vector.Pt{})
	if r.W != 7 || r.H != 39 {
		t.Fatalf("expected three lines 7x39, got %+v", r)
	}
}

func TestBounds_BlankTextIsAbsent(t *testing.T) {
	l := NewWordWrap(BasicProvider{})
	for _, s := range []string{"", " ", "\n\t \n"} {
		if _, ok := l.Bounds(s, FontSpec{}, 0, vector.Pt{}); ok {
			t.Fatalf("%q must not resolve bounds", s)
		}
	}
}
