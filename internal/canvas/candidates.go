/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "stickyguides/internal/vector"

// Candidates returns every element of r's document that may serve as an
// alignment target while the ids in exclude are being dragged. Order follows
// the document collections so results are deterministic.
//
// Nested structure yields the most specific unit that is not itself moving:
// a path with an excluded sub-path is replaced by its remaining sub-paths, a
// group holding a moving descendant is dropped, and anything below an
// excluded group moves with it and is skipped.
func Candidates(r *Resolver, exclude map[string]bool) []Element {
	doc := r.Document()
	if doc == nil {
		return nil
	}
	parents := parentIndex(doc)
	carried := func(id string) bool {
		return exclude[id] || hasExcludedAncestor(id, parents, exclude, map[string]bool{})
	}

	var out []Element
	add := func(id string, k Kind) {
		if b, ok := r.Resolve(id, k); ok {
			out = append(out, Element{ID: id, Kind: k, Bounds: b})
		}
	}
	for _, ref := range doc.Refs() {
		if carried(ref.ID) {
			continue
		}
		switch ref.Kind {
		case KindPath:
			p, _ := doc.Path(ref.ID)
			n := len((&vector.Path{Cmds: p.Cmds}).SubPathRanges())
			split := false
			for i := 0; i < n; i++ {
				if exclude[SubPathID(ref.ID, i)] {
					split = true
					break
				}
			}
			if !split {
				add(ref.ID, KindPath)
				continue
			}
			for i := 0; i < n; i++ {
				if id := SubPathID(ref.ID, i); !exclude[id] {
					add(id, KindSubPath)
				}
			}
		case KindGroup:
			if containsExcluded(doc, ref.ID, exclude, map[string]bool{}) {
				continue
			}
			add(ref.ID, KindGroup)
		default:
			add(ref.ID, ref.Kind)
		}
	}
	return out
}

// parentIndex maps each child id to the groups listing it.
func parentIndex(doc *Document) map[string][]string {
	idx := map[string][]string{}
	for _, g := range doc.Groups {
		for _, c := range g.Children {
			idx[c.ID] = append(idx[c.ID], g.ID)
		}
	}
	return idx
}

func hasExcludedAncestor(id string, parents map[string][]string, exclude, seen map[string]bool) bool {
	for _, p := range parents[id] {
		if seen[p] {
			continue
		}
		seen[p] = true
		if exclude[p] || hasExcludedAncestor(p, parents, exclude, seen) {
			return true
		}
	}
	return false
}

// containsExcluded reports whether any descendant of group id, including
// sub-paths of descendant paths, is excluded.
func containsExcluded(doc *Document, id string, exclude, seen map[string]bool) bool {
	if seen[id] {
		return false
	}
	seen[id] = true
	g, ok := doc.Group(id)
	if !ok {
		return false
	}
	for _, c := range g.Children {
		if exclude[c.ID] {
			return true
		}
		switch c.Kind {
		case KindGroup:
			if containsExcluded(doc, c.ID, exclude, seen) {
				return true
			}
		case KindPath:
			if p, ok := doc.Path(c.ID); ok {
				n := len((&vector.Path{Cmds: p.Cmds}).SubPathRanges())
				for i := 0; i < n; i++ {
					if exclude[SubPathID(c.ID, i)] {
						return true
					}
				}
			}
		}
	}
	return false
}
