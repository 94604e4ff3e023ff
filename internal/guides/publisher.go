/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import "sync"

// Frame is everything published for one tick. An empty frame clears the
// overlay.
type Frame struct {
	SessionID   string       `json:"sessionId,omitempty"`
	Tick        int          `json:"tick"`
	Guides      []Guide      `json:"guides"`
	Projections []Projection `json:"projections,omitempty"`
}

// Empty reports whether the frame draws nothing.
func (f Frame) Empty() bool { return len(f.Guides) == 0 && len(f.Projections) == 0 }

// Listener receives every published frame.
type Listener func(Frame)

// Publisher broadcasts frames to listeners synchronously, in subscription
// order. Each Publish replaces the previous frame; nothing is queued.
// Subscribe and unsubscribe are safe from any goroutine.
type Publisher struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
	last   Frame
}

type subscription struct {
	id int
	fn Listener
}

func NewPublisher() *Publisher { return &Publisher{} }

// Subscribe registers fn and returns a func that removes it again. Calling
// the returned func more than once is harmless.
func (p *Publisher) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, subscription{id: id, fn: fn})
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish stores f as the current frame and hands it to every listener.
// Listeners run on the caller's goroutine and may unsubscribe themselves.
func (p *Publisher) Publish(f Frame) {
	p.mu.Lock()
	p.last = f
	subs := append([]subscription(nil), p.subs...)
	p.mu.Unlock()
	for _, s := range subs {
		s.fn(f)
	}
}

// Last returns the most recently published frame.
func (p *Publisher) Last() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Len returns the number of listeners.
func (p *Publisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}
