/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sticky

import (
	"stickyguides/internal/canvas"
	"stickyguides/internal/vector"
)

// UnionBounds returns the smallest bounds enclosing all inputs; ok is false
// for no input.
func UnionBounds(bounds ...canvas.ElementBounds) (canvas.ElementBounds, bool) {
	if len(bounds) == 0 {
		return canvas.ElementBounds{}, false
	}
	out := bounds[0]
	for _, b := range bounds[1:] {
		out = out.Union(b)
	}
	return out, true
}

// MapSelectionDelta moves every member of a selection rigidly: each entry of
// the result is the member's original position plus delta. The reserved
// SelectionKey is not a member and is skipped.
func MapSelectionDelta(originals map[string]canvas.ElementBounds, delta vector.Pt) map[string]vector.Pt {
	out := make(map[string]vector.Pt, len(originals))
	for id, b := range originals {
		if id == SelectionKey {
			continue
		}
		out[id] = b.Position().Add(delta)
	}
	return out
}
