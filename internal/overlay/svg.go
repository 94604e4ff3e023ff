/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"stickyguides/internal/canvas"
	"stickyguides/internal/guides"
)

// WriteSVG renders the overlay as a standalone SVG document.
func WriteSVG(w io.Writer, elements []canvas.Element, f guides.Frame, opt Options) error {
	opt = opt.withDefaults()
	lay := newLayout(elements, f, opt)

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", lay.width(), lay.height(), lay.width(), lay.height())
	if opt.Title != "" {
		wf("  <title>%s</title>\n", escText(opt.Title))
	}
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", lay.width(), lay.height())

	for _, e := range elements {
		stroke := opt.ElementStroke
		if opt.highlighted(e.ID) {
			stroke = opt.MovingStroke
		}
		x, y := lay.pt(e.Bounds.X, e.Bounds.Y)
		wf("  <rect id=\"%s\" data-kind=\"%s\" x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			escAttr(e.ID), e.Kind, x, y, e.Bounds.Width, e.Bounds.Height, svgColor(stroke))
		if opt.Labels {
			wf("  <text x=\"%g\" y=\"%g\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"8\" fill=\"%s\">%s</text>\n", x, y-2, svgColor(stroke), escText(e.ID))
		}
	}

	for _, ln := range lay.lines(f) {
		if ln.dashed {
			wf("  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"4 2\"/>\n", ln.x1, ln.y1, ln.x2, ln.y2, svgColor(opt.ProjectionColor))
			continue
		}
		wf("  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"1\"/>\n", ln.x1, ln.y1, ln.x2, ln.y2, svgColor(opt.GuideColor))
	}
	wf("</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// WriteSVGFile writes the SVG overlay to path, creating parent directories.
func WriteSVGFile(path string, elements []canvas.Element, f guides.Frame, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, elements, f, opt); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escAttr(s string) string {
	// naive escaping sufficient for ids and titles
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, "&quot;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '\n':
			out = append(out, ' ')
		case '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
