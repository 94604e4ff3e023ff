/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"sync"

	"stickyguides/internal/textlayout"
	"stickyguides/internal/vector"
)

// ProviderFunc measures elements of one kind. ok is false when the element is
// unknown or has no content (empty path, empty text, childless group); callers
// skip such elements instead of snapping against a degenerate point.
type ProviderFunc func(r *Resolver, id string) (ElementBounds, bool)

// Resolver turns (id, kind) into ElementBounds using one provider per kind.
// It reads the document on every call and keeps no cache. Not safe for
// concurrent use.
type Resolver struct {
	doc       *Document
	text      textlayout.Provider
	providers map[Kind]ProviderFunc
	visiting  map[string]bool
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithTextProvider sets the font provider used to measure text.
func WithTextProvider(p textlayout.Provider) ResolverOption {
	return func(r *Resolver) { r.text = p }
}

// WithProvider overrides the provider for one kind.
func WithProvider(k Kind, fn ProviderFunc) ResolverOption {
	return func(r *Resolver) { r.providers[k] = fn }
}

var (
	goFontsOnce sync.Once
	goFontsProv textlayout.Provider
)

// defaultTextProvider serves the embedded Go fonts, falling back to the fixed
// 7x13 face if they cannot be parsed.
func defaultTextProvider() textlayout.Provider {
	goFontsOnce.Do(func() {
		lib, err := textlayout.GoFonts()
		if err != nil {
			goFontsProv = textlayout.BasicProvider{}
			return
		}
		goFontsProv = textlayout.OTProvider{Lib: lib}
	})
	return goFontsProv
}

// NewResolver builds a resolver over doc with the default providers.
func NewResolver(doc *Document, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		doc:      doc,
		visiting: map[string]bool{},
		providers: map[Kind]ProviderFunc{
			KindPath:     pathBounds,
			KindSubPath:  subPathBounds,
			KindText:     textBounds,
			KindImage:    imageBounds,
			KindGroup:    groupBounds,
			KindInstance: instanceBounds,
		},
	}
	for _, o := range opts {
		o(r)
	}
	if r.text == nil {
		r.text = defaultTextProvider()
	}
	return r
}

// Document returns the document the resolver reads.
func (r *Resolver) Document() *Document { return r.doc }

// TextProvider returns the font provider used for text elements.
func (r *Resolver) TextProvider() textlayout.Provider { return r.text }

// Register replaces the provider for kind.
func (r *Resolver) Register(k Kind, fn ProviderFunc) { r.providers[k] = fn }

// Resolve measures the element. It has no side effects on the document.
func (r *Resolver) Resolve(id string, kind Kind) (ElementBounds, bool) {
	if r == nil || r.doc == nil {
		return ElementBounds{}, false
	}
	fn, ok := r.providers[kind]
	if !ok || fn == nil {
		return ElementBounds{}, false
	}
	return fn(r, id)
}

// ResolveRef is Resolve for a Ref.
func (r *Resolver) ResolveRef(ref Ref) (ElementBounds, bool) { return r.Resolve(ref.ID, ref.Kind) }

func pathBounds(r *Resolver, id string) (ElementBounds, bool) {
	p, ok := r.doc.Path(id)
	if !ok {
		return ElementBounds{}, false
	}
	vp := vector.Path{Cmds: p.Cmds}
	b, ok := vp.Bounds()
	if !ok {
		return ElementBounds{}, false
	}
	return FromRect(b), true
}

func subPathBounds(r *Resolver, id string) (ElementBounds, bool) {
	pid, idx, ok := ParseSubPathID(id)
	if !ok {
		return ElementBounds{}, false
	}
	p, ok := r.doc.Path(pid)
	if !ok {
		return ElementBounds{}, false
	}
	vp := vector.Path{Cmds: p.Cmds}
	subs := vp.SubPaths()
	if idx >= len(subs) {
		return ElementBounds{}, false
	}
	b, ok := subs[idx].Bounds()
	if !ok {
		return ElementBounds{}, false
	}
	return FromRect(b), true
}

func textBounds(r *Resolver, id string) (ElementBounds, bool) {
	t, ok := r.doc.Text(id)
	if !ok || textlayout.Blank(t.Content) {
		return ElementBounds{}, false
	}
	spec := textlayout.FontSpec{Family: t.Font, SizePt: t.Size, Weight: t.Weight, Italic: t.Italic}
	var b vector.Rect
	if len(t.OnPath) > 0 {
		b, ok = textlayout.PathBounds(r.text, t.Content, spec, &vector.Path{Cmds: t.OnPath}, t.Tracking, t.StartOffset)
	} else {
		b, ok = textlayout.NewWordWrap(r.text).Bounds(t.Content, spec, t.MaxWidth, vector.Pt{X: t.X, Y: t.Y})
	}
	if !ok {
		return ElementBounds{}, false
	}
	return FromRect(b), true
}

func imageBounds(r *Resolver, id string) (ElementBounds, bool) {
	im, ok := r.doc.Image(id)
	if !ok {
		return ElementBounds{}, false
	}
	return NewElementBounds(im.X, im.Y, im.Width, im.Height), true
}

func instanceBounds(r *Resolver, id string) (ElementBounds, bool) {
	in, ok := r.doc.Instance(id)
	if !ok {
		return ElementBounds{}, false
	}
	return NewElementBounds(in.X, in.Y, in.Width, in.Height), true
}

// groupBounds unions the resolvable children. A group reachable from itself is
// cut at the repeat.
func groupBounds(r *Resolver, id string) (ElementBounds, bool) {
	g, ok := r.doc.Group(id)
	if !ok || r.visiting[id] {
		return ElementBounds{}, false
	}
	r.visiting[id] = true
	defer delete(r.visiting, id)

	var out ElementBounds
	found := false
	for _, c := range g.Children {
		cb, ok := r.ResolveRef(c)
		if !ok {
			continue
		}
		if !found {
			out, found = cb, true
			continue
		}
		out = out.Union(cb)
	}
	return out, found
}
