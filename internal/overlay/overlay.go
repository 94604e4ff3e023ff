/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package overlay renders element bounds together with one published guide
// frame to SVG or PDF for offline inspection of a drag.
package overlay

import (
	"fmt"
	"path/filepath"
	"strings"

	"stickyguides/internal/canvas"
	"stickyguides/internal/guides"
	"stickyguides/internal/vector"
)

// Color is an opaque RGB color.
type Color struct{ R, G, B uint8 }

// Options controls overlay rendering. Zero values fall back to defaults.
type Options struct {
	Margin          float64
	ElementStroke   Color
	MovingStroke    Color
	GuideColor      Color
	ProjectionColor Color
	// Highlight lists ids drawn with MovingStroke, e.g. the dragged elements.
	Highlight []string
	// Labels writes element ids next to their boxes.
	Labels bool
	Title  string
}

func (o Options) withDefaults() Options {
	if o.Margin <= 0 {
		o.Margin = 20
	}
	if o.ElementStroke == (Color{}) {
		o.ElementStroke = Color{R: 96, G: 96, B: 96}
	}
	if o.MovingStroke == (Color{}) {
		o.MovingStroke = Color{R: 0, G: 120, B: 215}
	}
	if o.GuideColor == (Color{}) {
		o.GuideColor = Color{R: 255, G: 0, B: 170}
	}
	if o.ProjectionColor == (Color{}) {
		o.ProjectionColor = Color{R: 0, G: 180, B: 120}
	}
	return o
}

func (o Options) highlighted(id string) bool {
	for _, h := range o.Highlight {
		if h == id {
			return true
		}
	}
	return false
}

// Elements lists every element of the resolver's document that has bounds.
func Elements(r *canvas.Resolver) []canvas.Element {
	return canvas.Candidates(r, nil)
}

// Extent is the area covered by the elements and the frame's line positions.
// Guides only extend the extent along their own axis.
func Extent(elements []canvas.Element, f guides.Frame) vector.Rect {
	var pts []vector.Pt
	for _, e := range elements {
		r := e.Bounds.Rect()
		pts = append(pts, r.Min(), r.Max())
	}
	box, ok := vector.BoundsOf(pts)
	if !ok {
		box = vector.Rect{}
	}
	grow := func(axis guides.Axis, pos float64) {
		if axis == guides.Vertical {
			box = box.Union(vector.Rect{X: pos, Y: box.Y})
		} else {
			box = box.Union(vector.Rect{X: box.X, Y: pos})
		}
	}
	for _, g := range f.Guides {
		grow(g.Axis, g.Position)
	}
	for _, p := range f.Projections {
		grow(p.Axis, p.Position)
	}
	return box
}

// line is a guide or projection resolved to page coordinates.
type line struct {
	x1, y1, x2, y2 float64
	dashed         bool
}

// layout maps canvas coordinates onto a page with the extent's top-left at
// the margin.
type layout struct {
	ext    vector.Rect
	margin float64
}

func newLayout(elements []canvas.Element, f guides.Frame, opt Options) layout {
	return layout{ext: Extent(elements, f), margin: opt.Margin}
}

func (l layout) width() float64  { return l.ext.W + 2*l.margin }
func (l layout) height() float64 { return l.ext.H + 2*l.margin }

func (l layout) pt(x, y float64) (float64, float64) {
	return x - l.ext.X + l.margin, y - l.ext.Y + l.margin
}

func (l layout) lines(f guides.Frame) []line {
	var out []line
	add := func(axis guides.Axis, pos float64, dashed bool) {
		if axis == guides.Vertical {
			x, _ := l.pt(pos, 0)
			out = append(out, line{x1: x, y1: 0, x2: x, y2: l.height(), dashed: dashed})
			return
		}
		_, y := l.pt(0, pos)
		out = append(out, line{x1: 0, y1: y, x2: l.width(), y2: y, dashed: dashed})
	}
	for _, p := range f.Projections {
		add(p.Axis, p.Position, true)
	}
	for _, g := range f.Guides {
		add(g.Axis, g.Position, false)
	}
	return out
}

// ExportFile writes the overlay to path, choosing SVG or PDF by extension.
func ExportFile(path string, elements []canvas.Element, f guides.Frame, opt Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return WriteSVGFile(path, elements, f, opt)
	case ".pdf":
		return WritePDFFile(path, elements, f, opt)
	default:
		return fmt.Errorf("unsupported overlay format %q (want .svg or .pdf)", filepath.Ext(path))
	}
}
