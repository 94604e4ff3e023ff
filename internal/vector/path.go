/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path commands and shapes.

import (
	"encoding/json"
	"fmt"
	"math"
)

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

var opLetters = [...]string{MoveTo: "M", LineTo: "L", QuadTo: "Q", CubicTo: "C", Close: "Z"}

// argc is the number of coordinates each op carries.
var argc = [...]int{MoveTo: 2, LineTo: 2, QuadTo: 4, CubicTo: 6, Close: 0}

func (op PathOp) String() string {
	if int(op) < len(opLetters) {
		return opLetters[op]
	}
	return fmt.Sprintf("PathOp(%d)", op)
}

func (op PathOp) MarshalText() ([]byte, error) {
	if int(op) >= len(opLetters) {
		return nil, fmt.Errorf("unknown path op %d", op)
	}
	return []byte(opLetters[op]), nil
}

func (op *PathOp) UnmarshalText(b []byte) error {
	for i, l := range opLetters {
		if l == string(b) {
			*op = PathOp(i)
			return nil
		}
	}
	return fmt.Errorf("unknown path op %q", string(b))
}

type PathCmd struct {
	Op   PathOp
	Data [6]float64 // enough for cubic; unused slots are zero
}

type pathCmdJSON struct {
	Op   PathOp    `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

// MarshalJSON writes only the coordinates the op uses, e.g. {"op":"L","args":[10,20]}.
func (c PathCmd) MarshalJSON() ([]byte, error) {
	if int(c.Op) >= len(argc) {
		return nil, fmt.Errorf("unknown path op %d", c.Op)
	}
	return json.Marshal(pathCmdJSON{Op: c.Op, Args: append([]float64(nil), c.Data[:argc[c.Op]]...)})
}

func (c *PathCmd) UnmarshalJSON(b []byte) error {
	var raw pathCmdJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if n := argc[raw.Op]; len(raw.Args) != n {
		return fmt.Errorf("path op %s expects %d args, got %d", raw.Op, n, len(raw.Args))
	}
	*c = PathCmd{Op: raw.Op}
	copy(c.Data[:], raw.Args)
	return nil
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float64{x, y}})
}
func (p *Path) LineTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float64{x, y}})
}
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [6]float64{cx, cy, x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float64{cx1, cy1, cx2, cy2, x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Bounds returns an axis-aligned bounding box of the path using a simple
// approximation by considering control points. This is sufficient for snapping
// and selection rectangles. ok is false for a path without drawable commands.
func (p *Path) Bounds() (Rect, bool) {
	if p == nil {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo, LineTo:
			add(c.Data[0], c.Data[1])
		case QuadTo:
			add(c.Data[0], c.Data[1])
			add(c.Data[2], c.Data[3])
		case CubicTo:
			add(c.Data[0], c.Data[1])
			add(c.Data[2], c.Data[3])
			add(c.Data[4], c.Data[5])
		case Close:
			// no-op for bounds
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}, false
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// SubPaths splits the path at every MoveTo. Commands before the first MoveTo
// form their own sub-path.
func (p *Path) SubPaths() []Path {
	if p == nil {
		return nil
	}
	ranges := p.SubPathRanges()
	out := make([]Path, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, Path{Cmds: p.Cmds[r[0]:r[1]]})
	}
	return out
}

// SubPathRanges returns the [start, end) command index range of each sub-path.
func (p *Path) SubPathRanges() [][2]int {
	var out [][2]int
	start := 0
	for i, c := range p.Cmds {
		if c.Op == MoveTo && i > start {
			out = append(out, [2]int{start, i})
			start = i
		}
	}
	if start < len(p.Cmds) {
		out = append(out, [2]int{start, len(p.Cmds)})
	}
	return out
}

// Translated returns a copy of the path moved by d.
func (p *Path) Translated(d Pt) Path {
	out := Path{Cmds: make([]PathCmd, len(p.Cmds))}
	for i, c := range p.Cmds {
		for j := 0; j < argc[c.Op]; j += 2 {
			c.Data[j] += d.X
			c.Data[j+1] += d.Y
		}
		out.Cmds[i] = c
	}
	return out
}

// Flatten samples the path into one polyline per sub-path. Curves are split
// into steps straight pieces; Close returns to the sub-path start. Sub-paths
// with fewer than two points are dropped.
func (p *Path) Flatten(steps int) [][]Pt {
	if p == nil {
		return nil
	}
	if steps < 2 {
		steps = 2
	}
	var out [][]Pt
	var cur []Pt
	var at, start Pt
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			flush()
			at = Pt{c.Data[0], c.Data[1]}
			start = at
			cur = append(cur, at)
		case LineTo:
			at = Pt{c.Data[0], c.Data[1]}
			cur = append(cur, at)
		case QuadTo:
			c1, end := Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}
			for s := 1; s <= steps; s++ {
				cur = append(cur, bezier(float64(s)/float64(steps), at, c1, end))
			}
			at = end
		case CubicTo:
			c1, c2, end := Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}, Pt{c.Data[4], c.Data[5]}
			for s := 1; s <= steps; s++ {
				cur = append(cur, bezier(float64(s)/float64(steps), at, c1, c2, end))
			}
			at = end
		case Close:
			if at != start {
				cur = append(cur, start)
				at = start
			}
		}
	}
	flush()
	return out
}

// bezier evaluates a quadratic or cubic Bezier curve at t using de Casteljau.
func bezier(t float64, pts ...Pt) Pt {
	buf := append([]Pt(nil), pts...)
	for n := len(buf) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			buf[i] = Pt{buf[i].X + (buf[i+1].X-buf[i].X)*t, buf[i].Y + (buf[i+1].Y-buf[i].Y)*t}
		}
	}
	return buf[0]
}
