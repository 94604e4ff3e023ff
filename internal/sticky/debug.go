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
	"stickyguides/internal/guides"
)

// Projections lists every reference line of the given elements for the
// enabled families: two edges, one center and two midpoints per axis.
// Moving elements are tagged. Nothing is returned unless DebugMode is set.
func Projections(moving, candidates []canvas.Element, cfg Config) []guides.Projection {
	if !cfg.DebugMode {
		return nil
	}
	fams := cfg.Families()
	var out []guides.Projection
	emit := func(e canvas.Element, isMoving bool) {
		for _, ax := range axes {
			for _, fam := range fams {
				for _, f := range ax.features[fam] {
					out = append(out, guides.Projection{
						ID:              guides.ProjectionID(ax.axis, fam, e.ID, f.name),
						SourceID:        e.ID,
						Axis:            ax.axis,
						Position:        f.at(e.Bounds),
						Kind:            fam,
						IsMovingElement: isMoving,
					})
				}
			}
		}
	}
	for _, e := range moving {
		emit(e, true)
	}
	for _, e := range candidates {
		emit(e, false)
	}
	return out
}
