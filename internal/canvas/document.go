/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"errors"
	"fmt"

	"stickyguides/internal/vector"
)

// Document is the scene the engine reads. The editor owns it and applies moves
// between ticks; the engine never mutates it.
// Geometry is in absolute canvas coordinates.
type Document struct {
	Name      string            `json:"name,omitempty"`
	Paths     []PathElement     `json:"paths,omitempty"`
	Texts     []TextElement     `json:"texts,omitempty"`
	Images    []ImageElement    `json:"images,omitempty"`
	Groups    []GroupElement    `json:"groups,omitempty"`
	Instances []InstanceElement `json:"instances,omitempty"`
	Selection []Ref             `json:"selection,omitempty"`
}

// PathElement is a vector path; every MoveTo starts a sub-path addressable as
// SubPathID(ID, index).
type PathElement struct {
	ID   string           `json:"id"`
	Cmds []vector.PathCmd `json:"cmds"`
}

// TextElement is a text block with its top-left corner at X,Y, or text laid
// along its own baseline path when OnPath is set.
type TextElement struct {
	ID          string           `json:"id"`
	X           float64          `json:"x"`
	Y           float64          `json:"y"`
	Content     string           `json:"content"`
	Font        string           `json:"font,omitempty"`
	Size        float64          `json:"size,omitempty"`
	Weight      int              `json:"weight,omitempty"`
	Italic      bool             `json:"italic,omitempty"`
	MaxWidth    float64          `json:"maxWidth,omitempty"`
	OnPath      []vector.PathCmd `json:"onPath,omitempty"`
	StartOffset float64          `json:"startOffset,omitempty"`
	Tracking    float64          `json:"tracking,omitempty"`
}

// ImageElement is a raster placed with declared size.
type ImageElement struct {
	ID     string  `json:"id"`
	Href   string  `json:"href,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// InstanceElement references a reusable symbol and is placed with declared size.
type InstanceElement struct {
	ID     string  `json:"id"`
	Symbol string  `json:"symbol,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// GroupElement aggregates other elements; groups may nest.
type GroupElement struct {
	ID       string `json:"id"`
	Children []Ref  `json:"children"`
}

func (d *Document) Path(id string) (*PathElement, bool) {
	for i := range d.Paths {
		if d.Paths[i].ID == id {
			return &d.Paths[i], true
		}
	}
	return nil, false
}

func (d *Document) Text(id string) (*TextElement, bool) {
	for i := range d.Texts {
		if d.Texts[i].ID == id {
			return &d.Texts[i], true
		}
	}
	return nil, false
}

func (d *Document) Image(id string) (*ImageElement, bool) {
	for i := range d.Images {
		if d.Images[i].ID == id {
			return &d.Images[i], true
		}
	}
	return nil, false
}

func (d *Document) Group(id string) (*GroupElement, bool) {
	for i := range d.Groups {
		if d.Groups[i].ID == id {
			return &d.Groups[i], true
		}
	}
	return nil, false
}

func (d *Document) Instance(id string) (*InstanceElement, bool) {
	for i := range d.Instances {
		if d.Instances[i].ID == id {
			return &d.Instances[i], true
		}
	}
	return nil, false
}

// KindOf reports the kind of the element with the given id. Sub-path ids
// resolve to KindSubPath when the parent path has that many sub-paths.
func (d *Document) KindOf(id string) (Kind, bool) {
	if _, ok := d.Path(id); ok {
		return KindPath, true
	}
	if _, ok := d.Text(id); ok {
		return KindText, true
	}
	if _, ok := d.Image(id); ok {
		return KindImage, true
	}
	if _, ok := d.Group(id); ok {
		return KindGroup, true
	}
	if _, ok := d.Instance(id); ok {
		return KindInstance, true
	}
	if pid, idx, ok := ParseSubPathID(id); ok {
		if p, ok := d.Path(pid); ok {
			vp := vector.Path{Cmds: p.Cmds}
			if idx < len(vp.SubPathRanges()) {
				return KindSubPath, true
			}
		}
	}
	return 0, false
}

// Refs lists every top-level element (sub-paths excluded) in collection order.
func (d *Document) Refs() []Ref {
	var out []Ref
	for _, p := range d.Paths {
		out = append(out, Ref{ID: p.ID, Kind: KindPath})
	}
	for _, t := range d.Texts {
		out = append(out, Ref{ID: t.ID, Kind: KindText})
	}
	for _, im := range d.Images {
		out = append(out, Ref{ID: im.ID, Kind: KindImage})
	}
	for _, g := range d.Groups {
		out = append(out, Ref{ID: g.ID, Kind: KindGroup})
	}
	for _, in := range d.Instances {
		out = append(out, Ref{ID: in.ID, Kind: KindInstance})
	}
	return out
}

// ErrUnknownElement is returned when a ref does not name an element of its kind.
var ErrUnknownElement = errors.New("unknown element")

// MoveBy translates the referenced element by delta. Groups move every
// descendant once, even when it is reachable through several groups.
func (d *Document) MoveBy(ref Ref, delta vector.Pt) error {
	return d.moveBy(ref, delta, map[string]bool{})
}

// MoveAll translates every ref by the same delta. Elements reachable from
// more than one ref (a group and its child, say) move once.
func (d *Document) MoveAll(refs []Ref, delta vector.Pt) error {
	moved := map[string]bool{}
	for _, ref := range refs {
		if err := d.moveBy(ref, delta, moved); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) moveBy(ref Ref, delta vector.Pt, moved map[string]bool) error {
	if moved[ref.ID] {
		return nil
	}
	moved[ref.ID] = true
	switch ref.Kind {
	case KindPath:
		p, ok := d.Path(ref.ID)
		if !ok {
			return fmt.Errorf("%w: path %q", ErrUnknownElement, ref.ID)
		}
		vp := vector.Path{Cmds: p.Cmds}
		p.Cmds = vp.Translated(delta).Cmds
	case KindSubPath:
		pid, idx, ok := ParseSubPathID(ref.ID)
		if !ok {
			return fmt.Errorf("%w: sub-path %q", ErrUnknownElement, ref.ID)
		}
		p, ok := d.Path(pid)
		if !ok {
			return fmt.Errorf("%w: sub-path %q", ErrUnknownElement, ref.ID)
		}
		vp := vector.Path{Cmds: p.Cmds}
		ranges := vp.SubPathRanges()
		if idx >= len(ranges) {
			return fmt.Errorf("%w: sub-path %q", ErrUnknownElement, ref.ID)
		}
		seg := vector.Path{Cmds: p.Cmds[ranges[idx][0]:ranges[idx][1]]}
		copy(p.Cmds[ranges[idx][0]:], seg.Translated(delta).Cmds)
	case KindText:
		t, ok := d.Text(ref.ID)
		if !ok {
			return fmt.Errorf("%w: text %q", ErrUnknownElement, ref.ID)
		}
		t.X += delta.X
		t.Y += delta.Y
		if len(t.OnPath) > 0 {
			vp := vector.Path{Cmds: t.OnPath}
			t.OnPath = vp.Translated(delta).Cmds
		}
	case KindImage:
		im, ok := d.Image(ref.ID)
		if !ok {
			return fmt.Errorf("%w: image %q", ErrUnknownElement, ref.ID)
		}
		im.X += delta.X
		im.Y += delta.Y
	case KindInstance:
		in, ok := d.Instance(ref.ID)
		if !ok {
			return fmt.Errorf("%w: instance %q", ErrUnknownElement, ref.ID)
		}
		in.X += delta.X
		in.Y += delta.Y
	case KindGroup:
		g, ok := d.Group(ref.ID)
		if !ok {
			return fmt.Errorf("%w: group %q", ErrUnknownElement, ref.ID)
		}
		for _, c := range g.Children {
			if err := d.moveBy(c, delta, moved); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: kind %s", ErrUnknownElement, ref.Kind)
	}
	return nil
}

// Validate checks that ids are present and unique and that group children and
// the selection point at existing elements.
func (d *Document) Validate() error {
	seen := map[string]bool{}
	for _, r := range d.Refs() {
		if r.ID == "" {
			return fmt.Errorf("empty id in %s collection", r.Kind)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate element id %q", r.ID)
		}
		seen[r.ID] = true
	}
	check := func(where string, r Ref) error {
		k, ok := d.KindOf(r.ID)
		if !ok || k != r.Kind {
			return fmt.Errorf("%s: %w: %s %q", where, ErrUnknownElement, r.Kind, r.ID)
		}
		return nil
	}
	for _, g := range d.Groups {
		for _, c := range g.Children {
			if err := check("group "+g.ID, c); err != nil {
				return err
			}
		}
	}
	for _, r := range d.Selection {
		if err := check("selection", r); err != nil {
			return err
		}
	}
	return nil
}
