/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sticky

import "stickyguides/internal/canvas"

// SelectionKey is the reserved cache key holding the union of a multi-element
// selection.
const SelectionKey = "selection"

// State is the drag session lifecycle: Idle until a drag starts, Active
// until it ends.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// session holds the bounds captured when a drag started. The cache is
// written once by begin and only read until end clears it.
type session struct {
	id      string
	state   State
	kind    canvas.Kind
	dragged []string
	members []canvas.Ref
	cache   map[string]canvas.ElementBounds
	tick    int
}

// begin captures the original bounds of the dragged ids and of the current
// selection. Members that do not resolve are kept in the exclusion set but
// get no cache entry.
func (s *session) begin(sessionID string, ids []string, kind canvas.Kind, r *canvas.Resolver) {
	*s = session{id: sessionID, state: Active, kind: kind, cache: map[string]canvas.ElementBounds{}}
	seen := map[string]bool{}
	add := func(ref canvas.Ref) {
		if seen[ref.ID] {
			return
		}
		seen[ref.ID] = true
		s.members = append(s.members, ref)
		if b, ok := r.ResolveRef(ref); ok {
			s.cache[ref.ID] = b
		}
	}
	for _, id := range ids {
		s.dragged = append(s.dragged, id)
		add(canvas.Ref{ID: id, Kind: kind})
	}
	var selection []canvas.Ref
	if doc := r.Document(); doc != nil {
		selection = doc.Selection
	}
	for _, ref := range selection {
		add(ref)
	}
	if len(selection) == 0 && len(s.members) < 2 {
		return
	}
	var all []canvas.ElementBounds
	for _, m := range s.members {
		if b, ok := s.cache[m.ID]; ok {
			all = append(all, b)
		}
	}
	if u, ok := UnionBounds(all...); ok {
		s.cache[SelectionKey] = u
	}
}

func (s *session) end() { *s = session{} }

// group reports whether the members move as one rigid selection.
func (s *session) group() bool { return len(s.members) > 1 }

// moving returns the cache key snapped each tick and its original bounds.
func (s *session) moving() (string, canvas.ElementBounds, bool) {
	key := ""
	switch {
	case s.group():
		key = SelectionKey
	case len(s.dragged) == 1:
		key = s.dragged[0]
	case len(s.members) == 1:
		key = s.members[0].ID
	default:
		return "", canvas.ElementBounds{}, false
	}
	b, ok := s.cache[key]
	return key, b, ok
}

func (s *session) exclusion() map[string]bool {
	out := make(map[string]bool, len(s.members))
	for _, m := range s.members {
		out[m.ID] = true
	}
	return out
}

// live returns the original bounds of the members that still resolve. A
// member deleted mid-drag drops out; key limits the check to one member
// unless it is SelectionKey.
func (s *session) live(r *canvas.Resolver, key string) map[string]canvas.ElementBounds {
	out := map[string]canvas.ElementBounds{}
	for _, m := range s.members {
		if key != SelectionKey && m.ID != key {
			continue
		}
		b, ok := s.cache[m.ID]
		if !ok {
			continue
		}
		if _, ok := r.ResolveRef(m); ok {
			out[m.ID] = b
		}
	}
	return out
}
