/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "stickyguides/internal/vector"

// ElementBounds is an axis-aligned box with its derived alignment points.
// Values are immutable: At and Translate return new bounds, and
// NewElementBounds normalises negative sizes.
type ElementBounds struct {
	X, Y          float64
	Width, Height float64
}

// NewElementBounds builds bounds from an origin and size.
func NewElementBounds(x, y, w, h float64) ElementBounds {
	r := vector.R(x, y, w, h).Canon()
	return ElementBounds{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// FromRect converts a vector.Rect.
func FromRect(r vector.Rect) ElementBounds { return NewElementBounds(r.X, r.Y, r.W, r.H) }

func (b ElementBounds) Rect() vector.Rect     { return vector.R(b.X, b.Y, b.Width, b.Height) }
func (b ElementBounds) Position() vector.Pt   { return vector.Pt{X: b.X, Y: b.Y} }
func (b ElementBounds) Left() float64         { return b.X }
func (b ElementBounds) Right() float64        { return b.X + b.Width }
func (b ElementBounds) Top() float64          { return b.Y }
func (b ElementBounds) Bottom() float64       { return b.Y + b.Height }
func (b ElementBounds) CenterX() float64      { return b.X + b.Width/2 }
func (b ElementBounds) CenterY() float64      { return b.Y + b.Height/2 }
func (b ElementBounds) TopCenter() float64    { return b.CenterX() }
func (b ElementBounds) BottomCenter() float64 { return b.CenterX() }
func (b ElementBounds) LeftCenter() float64   { return b.CenterY() }
func (b ElementBounds) RightCenter() float64  { return b.CenterY() }

// Midpoints between an edge and the center on the same axis.
func (b ElementBounds) LeftMid() float64   { return b.X + b.Width/4 }
func (b ElementBounds) RightMid() float64  { return b.X + b.Width*3/4 }
func (b ElementBounds) TopMid() float64    { return b.Y + b.Height/4 }
func (b ElementBounds) BottomMid() float64 { return b.Y + b.Height*3/4 }

// At returns the same box with its origin moved to p.
func (b ElementBounds) At(p vector.Pt) ElementBounds {
	return ElementBounds{X: p.X, Y: p.Y, Width: b.Width, Height: b.Height}
}

// Translate returns the box moved by d.
func (b ElementBounds) Translate(d vector.Pt) ElementBounds {
	return b.At(b.Position().Add(d))
}

// Union returns the minimal box containing both.
func (b ElementBounds) Union(o ElementBounds) ElementBounds {
	return FromRect(b.Rect().Union(o.Rect()))
}
