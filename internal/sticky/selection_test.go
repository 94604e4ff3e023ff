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
	"stickyguides/internal/vector"
)

func TestUnionBounds(t *testing.T) {
	if _, ok := UnionBounds(); ok {
		t.Fatalf("empty union should be absent")
	}
	u, ok := UnionBounds(
		canvas.NewElementBounds(0, 0, 10, 10),
		canvas.NewElementBounds(30, -5, 10, 10),
	)
	if !ok || u != canvas.NewElementBounds(0, -5, 40, 15) {
		t.Fatalf("union = %+v", u)
	}
}

func TestMapSelectionDelta_Rigid(t *testing.T) {
	originals := map[string]canvas.ElementBounds{
		"a":          canvas.NewElementBounds(0, 0, 10, 10),
		"b":          canvas.NewElementBounds(30, 7, 5, 5),
		SelectionKey: canvas.NewElementBounds(0, 0, 35, 12),
	}
	moves := MapSelectionDelta(originals, vector.Pt{X: 4.5, Y: -2})
	if len(moves) != 2 {
		t.Fatalf("selection key is not a member: %+v", moves)
	}
	if moves["a"] != (vector.Pt{X: 4.5, Y: -2}) || moves["b"] != (vector.Pt{X: 34.5, Y: 5}) {
		t.Fatalf("moves = %+v", moves)
	}
	da := moves["a"].Sub(originals["a"].Position())
	db := moves["b"].Sub(originals["b"].Position())
	if da != db {
		t.Fatalf("members must share one delta: %+v vs %+v", da, db)
	}
}
