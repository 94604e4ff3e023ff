/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPublisher_OrderAndReplace(t *testing.T) {
	p := NewPublisher()
	var calls []string
	p.Subscribe(func(f Frame) { calls = append(calls, "a"+f.SessionID) })
	p.Subscribe(func(f Frame) { calls = append(calls, "b"+f.SessionID) })

	p.Publish(Frame{SessionID: "1", Guides: []Guide{{ID: "g1"}, {ID: "g2"}}})
	p.Publish(Frame{SessionID: "2", Guides: []Guide{{ID: "g3"}}})

	if got := strings.Join(calls, ","); got != "a1,b1,a2,b2" {
		t.Fatalf("listener order = %s", got)
	}
	last := p.Last()
	if last.SessionID != "2" || len(last.Guides) != 1 || last.Guides[0].ID != "g3" {
		t.Fatalf("last frame must be replaced wholesale, got %+v", last)
	}
}

func TestPublisher_Unsubscribe(t *testing.T) {
	p := NewPublisher()
	n := 0
	unsub := p.Subscribe(func(Frame) { n++ })
	p.Publish(Frame{})
	unsub()
	unsub()
	p.Publish(Frame{})
	if n != 1 {
		t.Fatalf("expected one delivery before unsubscribe, got %d", n)
	}
	if p.Len() != 0 {
		t.Fatalf("expected no listeners, got %d", p.Len())
	}
}

func TestPublisher_ListenerMayUnsubscribeItself(t *testing.T) {
	p := NewPublisher()
	var unsub func()
	first, second := 0, 0
	unsub = p.Subscribe(func(Frame) { first++; unsub() })
	p.Subscribe(func(Frame) { second++ })
	p.Publish(Frame{})
	p.Publish(Frame{})
	if first != 1 || second != 2 {
		t.Fatalf("first=%d second=%d", first, second)
	}
}

func TestPublisher_NilListener(t *testing.T) {
	p := NewPublisher()
	p.Subscribe(nil)()
	p.Publish(Frame{Tick: 3})
	if p.Len() != 0 || p.Last().Tick != 3 {
		t.Fatalf("nil listener should be ignored")
	}
}

func TestFrame_Empty(t *testing.T) {
	if !(Frame{SessionID: "x"}).Empty() {
		t.Fatalf("frame without lines should be empty")
	}
	if (Frame{Projections: []Projection{{ID: "p"}}}).Empty() {
		t.Fatalf("frame with projections is not empty")
	}
}

func TestIDs(t *testing.T) {
	if got := GuideID(Vertical, Edge, "img", "right"); got != "v-edge-img-right" {
		t.Fatalf("GuideID = %q", got)
	}
	if got := ProjectionID(Horizontal, Center, "img", "y"); got != "proj-h-center-img-y" {
		t.Fatalf("ProjectionID = %q", got)
	}
}

func TestGuide_JSON(t *testing.T) {
	b, err := json.Marshal(Guide{ID: "v-edge-a-left", Axis: Vertical, Position: 150, Type: Edge, SourceID: "a"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"v-edge-a-left","axis":"vertical","position":150,"type":"edge","sourceId":"a"}`
	if string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}
}
