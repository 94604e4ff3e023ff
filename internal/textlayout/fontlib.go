/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFamily is the family served by GoFonts and used when a text element
// names no family.
const DefaultFamily = "Go"

// FontLibrary stores loaded OpenType fonts mapped by family/weight/italic.
// It does not support named instances/variations beyond weight and italic flags.
// Faces are built once per font, size and DPI and then reused; like any
// opentype face, a returned face serves one goroutine at a time.
type FontLibrary struct {
	fonts    map[fontKey]*opentype.Font
	fallback string

	mu    sync.Mutex
	faces map[faceKey]cachedFace
}

type faceKey struct {
	font      *opentype.Font
	size, dpi float64
}

type cachedFace struct {
	face font.Face
	met  Metrics
}

type fontKey struct {
	family string
	weight int
	italic bool
}

func NewFontLibrary() *FontLibrary { return &FontLibrary{fonts: make(map[fontKey]*opentype.Font)} }

// GoFonts returns a library preloaded with the Go font family (regular, bold,
// italic) registered as DefaultFamily and used as the fallback family.
func GoFonts() (*FontLibrary, error) {
	fl := NewFontLibrary()
	for _, f := range []struct {
		weight int
		italic bool
		data   []byte
	}{
		{400, false, goregular.TTF},
		{700, false, gobold.TTF},
		{400, true, goitalic.TTF},
	} {
		if err := fl.LoadBytes(DefaultFamily, f.weight, f.italic, f.data); err != nil {
			return nil, err
		}
	}
	fl.fallback = DefaultFamily
	return fl, nil
}

// LoadTTF loads a font file into the library under the given family/weight/italic.
func (fl *FontLibrary) LoadTTF(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return fl.LoadBytes(family, weight, italic, data)
}

// LoadBytes parses an in-memory TTF/OTF and registers it.
func (fl *FontLibrary) LoadBytes(family string, weight int, italic bool, data []byte) error {
	if fl.fonts == nil {
		fl.fonts = make(map[fontKey]*opentype.Font)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	fl.fonts[fontKey{family: family, weight: normWeight(weight), italic: italic}] = f
	return nil
}

func normWeight(w int) int {
	if w <= 0 {
		return 400
	}
	return w
}

// face returns the face of f at size and dpi, building it on first use.
func (fl *FontLibrary) face(f *opentype.Font, size, dpi float64) (font.Face, Metrics, error) {
	k := faceKey{font: f, size: size, dpi: dpi}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if c, ok := fl.faces[k]; ok {
		return c.face, c.met, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: dpi, Hinting: font.HintingNone})
	if err != nil {
		return nil, Metrics{}, err
	}
	if fl.faces == nil {
		fl.faces = make(map[faceKey]cachedFace)
	}
	c := cachedFace{face: face, met: faceMetrics(face)}
	fl.faces[k] = c
	return c.face, c.met, nil
}

func (fl *FontLibrary) find(spec FontSpec) *opentype.Font {
	if fl == nil || fl.fonts == nil {
		return nil
	}
	family := spec.Family
	if family == "" {
		family = fl.fallback
	}
	if f := fl.closest(family, normWeight(spec.Weight), spec.Italic); f != nil {
		return f
	}
	if family != fl.fallback && fl.fallback != "" {
		return fl.closest(fl.fallback, normWeight(spec.Weight), spec.Italic)
	}
	return nil
}

// closest picks the registered face of family nearest to weight, preferring a
// matching italic flag. Ties go to the lighter weight so lookups are stable.
func (fl *FontLibrary) closest(family string, weight int, italic bool) *opentype.Font {
	if f, ok := fl.fonts[fontKey{family: family, weight: weight, italic: italic}]; ok {
		return f
	}
	var best *opentype.Font
	bestScore := -1
	for k, f := range fl.fonts {
		if k.family != family {
			continue
		}
		d := k.weight - weight
		if d < 0 {
			d = -d
		}
		score := d * 2
		if k.italic != italic {
			score += 1000
		}
		if best == nil || score < bestScore || (score == bestScore && k.weight < weight) {
			best, bestScore = f, score
		}
	}
	return best
}

// OTProvider resolves FontSpec using a FontLibrary and falls back to another Provider.
// It uses kerning as provided by opentype.Face and font.Drawer.
type OTProvider struct {
	Lib      *FontLibrary
	DPI      float64 // default 72 if zero
	Fallback Provider
}

func (p OTProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	// Defaults
	if spec.SizePt <= 0 {
		spec.SizePt = 12
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 72
	}

	if p.Lib != nil {
		if f := p.Lib.find(spec); f != nil {
			if face, met, err := p.Lib.face(f, spec.SizePt, dpi); err == nil {
				return face, met
			}
		}
	}
	fb := p.Fallback
	if fb == nil {
		fb = BasicProvider{}
	}
	return fb.Resolve(spec)
}
