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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"stickyguides/internal/canvas"
	"stickyguides/internal/guides"
)

// WritePDF renders the overlay onto a single PDF page sized to the extent.
// Units are points, one canvas unit per point.
func WritePDF(w io.Writer, elements []canvas.Element, f guides.Frame, opt Options) error {
	opt = opt.withDefaults()
	lay := newLayout(elements, f, opt)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: lay.width(), Ht: lay.height()},
	})
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	pdf.SetAuthor("stickyguides", false)
	pdf.SetFont("Helvetica", "", 8)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: lay.width(), Ht: lay.height()})

	for _, e := range elements {
		stroke := opt.ElementStroke
		if opt.highlighted(e.ID) {
			stroke = opt.MovingStroke
		}
		setDrawColor(pdf, stroke)
		pdf.SetLineWidth(1)
		x, y := lay.pt(e.Bounds.X, e.Bounds.Y)
		pdf.Rect(x, y, e.Bounds.Width, e.Bounds.Height, "D")
		if opt.Labels {
			pdf.SetTextColor(int(stroke.R), int(stroke.G), int(stroke.B))
			pdf.Text(x, y-2, e.ID)
		}
	}

	for _, ln := range lay.lines(f) {
		if ln.dashed {
			setDrawColor(pdf, opt.ProjectionColor)
			pdf.SetLineWidth(0.5)
			pdf.SetDashPattern([]float64{4, 2}, 0)
		} else {
			setDrawColor(pdf, opt.GuideColor)
			pdf.SetLineWidth(1)
			pdf.SetDashPattern([]float64{}, 0)
		}
		pdf.Line(ln.x1, ln.y1, ln.x2, ln.y2)
	}
	pdf.SetDashPattern([]float64{}, 0)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDFFile writes the PDF overlay to path, creating parent directories.
func WritePDFFile(path string, elements []canvas.Element, f guides.Frame, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := WritePDF(out, elements, f, opt); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}
