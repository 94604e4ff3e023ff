/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"math"

	"golang.org/x/image/font"

	"stickyguides/internal/vector"
)

// curveSteps is how many straight pieces approximate one curve command.
const curveSteps = 12

// Glyph is one glyph placed along a path. Pos is the centre of the glyph on
// the baseline and Angle the path tangent in radians. Box bounds the glyph
// cell, Advance wide and ascent+descent tall, after rotation onto the path.
type Glyph struct {
	Rune    rune
	Pos     vector.Pt
	Angle   float64
	Advance float64
	Box     vector.Rect
}

// LayoutOnPath places text along path, one glyph at a time, starting
// startOffset px from the path start. tracking is added between glyphs.
// Glyphs centred before the path start are skipped and layout stops at the
// first glyph whose centre would fall past the path end. It also
// returns the drawn length of the path; jumps between sub-paths do not count.
func LayoutOnPath(provider Provider, text string, spec FontSpec, path *vector.Path, tracking, startOffset float64) ([]Glyph, float64) {
	if provider == nil {
		provider = BasicProvider{}
	}
	w := newWalker(path.Flatten(curveSteps))
	if text == "" || w.total == 0 {
		return nil, w.total
	}
	face, met := provider.Resolve(spec)
	var out []Glyph
	s := startOffset
	prev := rune(-1)
	for _, r := range text {
		adv := runeAdvance(face, prev, r)
		if prev >= 0 {
			adv += tracking
		}
		if s+adv/2 < 0 {
			s += adv
			prev = r
			continue
		}
		pos, angle, ok := w.at(s + adv/2)
		if !ok {
			break
		}
		cell := vector.Rect{X: -adv / 2, Y: -met.Ascent, W: adv, H: met.Ascent + met.Descent}
		box := vector.Translate(pos.X, pos.Y).Mul(vector.Rotate(angle)).ApplyRect(cell)
		out = append(out, Glyph{Rune: r, Pos: pos, Angle: angle, Advance: adv, Box: box})
		s += adv
		prev = r
	}
	return out, w.total
}

// PathBounds returns the union of the glyph boxes of text laid along path.
// ok is false when the text is blank or no glyph fits.
func PathBounds(provider Provider, text string, spec FontSpec, path *vector.Path, tracking, startOffset float64) (vector.Rect, bool) {
	if Blank(text) {
		return vector.Rect{}, false
	}
	glyphs, _ := LayoutOnPath(provider, text, spec, path, tracking, startOffset)
	if len(glyphs) == 0 {
		return vector.Rect{}, false
	}
	out := glyphs[0].Box
	for _, g := range glyphs[1:] {
		out = out.Union(g.Box)
	}
	return out, true
}

// runeAdvance is the advance of cur plus the kerning against prev.
func runeAdvance(face font.Face, prev, cur rune) float64 {
	a, _ := face.GlyphAdvance(cur)
	if prev >= 0 {
		a += face.Kern(prev, cur)
	}
	return float64(a) / 64
}

type segment struct {
	a, b   vector.Pt
	start  float64 // arc length at a
	length float64
	angle  float64
}

// walker answers position queries along a set of polylines. Queries are
// expected in increasing order; it resumes from the last segment it found.
type walker struct {
	segs  []segment
	total float64
	i     int
}

func newWalker(lines [][]vector.Pt) *walker {
	w := &walker{}
	for _, pts := range lines {
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			l := math.Hypot(b.X-a.X, b.Y-a.Y)
			if l == 0 {
				continue
			}
			w.segs = append(w.segs, segment{a: a, b: b, start: w.total, length: l, angle: math.Atan2(b.Y-a.Y, b.X-a.X)})
			w.total += l
		}
	}
	return w
}

// at returns the point and tangent angle at arc length s. ok is false past
// the end of the path.
func (w *walker) at(s float64) (vector.Pt, float64, bool) {
	if s < 0 || s > w.total {
		return vector.Pt{}, 0, false
	}
	if w.i >= len(w.segs) || s < w.segs[w.i].start {
		w.i = 0
	}
	for ; w.i < len(w.segs); w.i++ {
		sg := w.segs[w.i]
		if s <= sg.start+sg.length {
			t := (s - sg.start) / sg.length
			return vector.Pt{X: sg.a.X + (sg.b.X-sg.a.X)*t, Y: sg.a.Y + (sg.b.Y-sg.a.Y)*t}, sg.angle, true
		}
	}
	return vector.Pt{}, 0, false
}
