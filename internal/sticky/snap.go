/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sticky

import (
	"math"

	"stickyguides/internal/canvas"
	"stickyguides/internal/guides"
	"stickyguides/internal/vector"
)

// feature is one measurable line of a box along an axis.
type feature struct {
	name string
	at   func(canvas.ElementBounds) float64
}

// pair compares a feature of the moving box with one of a candidate.
type pair struct{ moving, cand feature }

// axisTable lists, per family, the features measured on one axis and the
// comparisons made between moving and candidate boxes. Comparison order is
// the tie-break order.
type axisTable struct {
	axis     guides.Axis
	features map[guides.Type][]feature
	pairs    map[guides.Type][]pair
	set      func(p *vector.Pt, v float64)
}

func newAxisTable(axis guides.Axis, near, far, center, nearMid, farMid feature, set func(*vector.Pt, float64)) axisTable {
	return axisTable{
		axis: axis,
		features: map[guides.Type][]feature{
			guides.Edge:     {near, far},
			guides.Center:   {center},
			guides.Midpoint: {nearMid, farMid},
		},
		pairs: map[guides.Type][]pair{
			guides.Edge:     {{near, near}, {near, far}, {far, near}, {far, far}},
			guides.Center:   {{center, center}},
			guides.Midpoint: {{nearMid, nearMid}, {farMid, farMid}},
		},
		set: set,
	}
}

// axes holds the x axis (vertical guide lines) then the y axis.
var axes = [2]axisTable{
	newAxisTable(guides.Vertical,
		feature{"left", canvas.ElementBounds.Left},
		feature{"right", canvas.ElementBounds.Right},
		feature{"centerx", canvas.ElementBounds.CenterX},
		feature{"leftmid", canvas.ElementBounds.LeftMid},
		feature{"rightmid", canvas.ElementBounds.RightMid},
		func(p *vector.Pt, v float64) { p.X = v }),
	newAxisTable(guides.Horizontal,
		feature{"top", canvas.ElementBounds.Top},
		feature{"bottom", canvas.ElementBounds.Bottom},
		feature{"centery", canvas.ElementBounds.CenterY},
		feature{"topmid", canvas.ElementBounds.TopMid},
		feature{"bottommid", canvas.ElementBounds.BottomMid},
		func(p *vector.Pt, v float64) { p.Y = v }),
}

// SnapResult is the outcome of one snap computation.
type SnapResult struct {
	Position vector.Pt
	Guides   []guides.Guide
	SnappedX bool
	SnappedY bool
}

// ComputeSnap places original at target, compares it against candidates and
// returns the corrected position together with one guide per match.
//
// The axes are independent. On each axis the first enabled family with a
// match (edge, then center, then midpoint) decides the correction. Within
// that family the closest match wins rather than the first one found, so
// the element locks onto the nearest alignment; ties keep the earliest
// candidate and comparison. The matched feature lands exactly on the candidate value.
// With snapping disabled the target is returned untouched and no guides.
func ComputeSnap(target vector.Pt, original canvas.ElementBounds, candidates []canvas.Element, cfg Config) SnapResult {
	res := SnapResult{Position: target}
	if !cfg.Enabled {
		return res
	}
	moving := original.At(target)
	origin := original.At(vector.Pt{})
	fams := cfg.Families()

	for ai, ax := range axes {
		found := false
		bestFam, bestDist, bestPos := 0, 0.0, 0.0
		for _, c := range candidates {
			for fi, fam := range fams {
				for _, pr := range ax.pairs[fam] {
					mv, cv := pr.moving.at(moving), pr.cand.at(c.Bounds)
					if !cfg.within(mv, cv) {
						continue
					}
					res.Guides = append(res.Guides, guides.Guide{
						ID:       guides.GuideID(ax.axis, fam, c.ID, pr.moving.name+"-"+pr.cand.name),
						Axis:     ax.axis,
						Position: cv,
						Type:     fam,
						SourceID: c.ID,
					})
					dist := math.Abs(mv - cv)
					if !found || fi < bestFam || (fi == bestFam && dist < bestDist) {
						found = true
						bestFam, bestDist = fi, dist
						bestPos = cv - pr.moving.at(origin)
					}
				}
			}
		}
		if !found {
			continue
		}
		ax.set(&res.Position, bestPos)
		if ai == 0 {
			res.SnappedX = true
		} else {
			res.SnappedY = true
		}
	}
	return res
}
