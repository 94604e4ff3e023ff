/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Text measurement behind a small Provider interface so bounds stay
// deterministic in tests and follow real font metrics in the CLI.

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"stickyguides/internal/vector"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name
	SizePt float64
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// LineHeight is the distance between two baselines.
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent + m.LineGap }

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	return basicfont.Face7x13, faceMetrics(basicfont.Face7x13)
}

func faceMetrics(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  float64(m.Ascent.Round()),
		Descent: float64(m.Descent.Round()),
		LineGap: float64(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Block is text broken into lines in a single font.
type Block struct {
	Lines   []string
	Widths  []float64
	Width   float64
	Height  float64
	Metrics Metrics
}

// WordWrapLayouter breaks text at newlines and, when a width limit is set,
// between words. Runs of blanks collapse to one space. It does no shaping
// or hyphenation.
type WordWrapLayouter struct{ Provider Provider }

func NewWordWrap(provider Provider) *WordWrapLayouter { return &WordWrapLayouter{Provider: provider} }

// Layout breaks text into lines. A word wider than maxWidth keeps a line of
// its own; maxWidth <= 0 disables wrapping.
func (l *WordWrapLayouter) Layout(text string, spec FontSpec, maxWidth float64) Block {
	p := l.Provider
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve(spec)
	space := advance(face, " ")
	b := Block{Metrics: met}
	var words []string
	var w float64
	flush := func() {
		b.Lines = append(b.Lines, strings.Join(words, " "))
		b.Widths = append(b.Widths, w)
		b.Width = max(b.Width, w)
		words, w = nil, 0
	}
	for _, para := range strings.Split(text, "\n") {
		for _, word := range strings.Fields(para) {
			ww := advance(face, word)
			if len(words) > 0 && maxWidth > 0 && w+space+ww > maxWidth {
				flush()
			}
			if len(words) > 0 {
				w += space
			}
			words = append(words, word)
			w += ww
		}
		flush()
	}
	if n := len(b.Lines); n > 0 {
		b.Height = float64(n)*(met.Ascent+met.Descent) + float64(n-1)*met.LineGap
	}
	return b
}

// Bounds returns the box of the laid out block with its top-left corner at
// origin. ok is false when text holds nothing but whitespace.
func (l *WordWrapLayouter) Bounds(text string, spec FontSpec, maxWidth float64, origin vector.Pt) (vector.Rect, bool) {
	if Blank(text) {
		return vector.Rect{}, false
	}
	b := l.Layout(text, spec, maxWidth)
	return vector.Rect{X: origin.X, Y: origin.Y, W: b.Width, H: b.Height}, true
}

// Blank reports whether text has no visible content.
func Blank(text string) bool { return strings.TrimSpace(text) == "" }

func advance(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
