/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sticky

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"stickyguides/internal/canvas"
	"stickyguides/internal/guides"
	applog "stickyguides/internal/log"
	"stickyguides/internal/vector"
)

// ErrSessionNotActive is returned by per-tick calls made while no drag is
// in progress. The accompanying Result is an unsnapped passthrough.
var ErrSessionNotActive = errors.New("sticky: no active drag session")

// Result is what one tick hands back to the drag layer.
type Result struct {
	SessionID string
	Tick      int
	// Position is the snapped top-left of the moving element or selection.
	// When the moving element had no geometry at drag start it is the
	// cursor delta for Drag and the requested target for DragTo.
	Position vector.Pt
	// Delta is the snapped cumulative offset from the drag start.
	Delta  vector.Pt
	Guides []guides.Guide
	// Moves holds the new top-left of every member that has geometry.
	Moves    map[string]vector.Pt
	SnappedX bool
	SnappedY bool
}

// Engine runs drag sessions against one document. It reads geometry through
// the resolver on every tick and never mutates the document; the drag layer
// applies Result.Moves. Not safe for concurrent use.
type Engine struct {
	resolver *canvas.Resolver
	cfg      Config
	pub      *guides.Publisher
	sess     session
	log      *slog.Logger
	newID    func() string
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSessionIDs replaces the uuid generator used for session ids.
func WithSessionIDs(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// New creates an idle engine. A nil publisher gets a private one.
func New(resolver *canvas.Resolver, cfg Config, pub *guides.Publisher, opts ...Option) *Engine {
	if pub == nil {
		pub = guides.NewPublisher()
	}
	e := &Engine{
		resolver: resolver,
		cfg:      cfg,
		pub:      pub,
		log:      applog.WithComponent("sticky"),
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Config() Config                     { return e.cfg }
func (e *Engine) State() State                       { return e.sess.state }
func (e *Engine) SessionID() string                  { return e.sess.id }
func (e *Engine) Publisher() *guides.Publisher       { return e.pub }
func (e *Engine) Resolver() *canvas.Resolver         { return e.resolver }
func (e *Engine) Subscribe(l guides.Listener) func() { return e.pub.Subscribe(l) }

// OriginalBounds returns the bounds captured for key when the drag started.
// Outside an active drag nothing is cached.
func (e *Engine) OriginalBounds(key string) (canvas.ElementBounds, bool) {
	b, ok := e.sess.cache[key]
	return b, ok
}

// SetConfig swaps the configuration. While idle, debug projections of the
// static elements are republished so toggles show without a drag.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg
	e.log.Debug("config changed", slog.Bool("enabled", cfg.Enabled), slog.Float64("snap_distance", cfg.SnapDistance), slog.Bool("debug", cfg.DebugMode))
	if e.sess.state == Active {
		return
	}
	if cfg.DebugMode {
		e.pub.Publish(guides.Frame{Projections: Projections(nil, canvas.Candidates(e.resolver, nil), cfg)})
		return
	}
	if !e.pub.Last().Empty() {
		e.pub.Publish(guides.Frame{})
	}
}

// StartDragOperation begins a drag of ids, all of the given kind. The
// current document selection joins the drag as one rigid unit. Starting
// while a drag is active restarts the session.
func (e *Engine) StartDragOperation(ids []string, kind canvas.Kind) {
	if e.sess.state == Active {
		e.log.Debug("drag session restarted", slog.String("session", e.sess.id), slog.Int("ticks", e.sess.tick))
	}
	e.sess.begin(e.newID(), ids, kind, e.resolver)
	l := applog.WithSession(e.log, e.sess.id)
	l.Debug("drag session started",
		slog.String("kind", kind.String()),
		slog.Int("dragged", len(e.sess.dragged)),
		slog.Int("members", len(e.sess.members)),
		slog.Bool("group", e.sess.group()))
}

// EndDragOperation clears the session and returns to idle.
func (e *Engine) EndDragOperation() {
	if e.sess.state == Active {
		applog.WithSession(e.log, e.sess.id).Debug("drag session ended", slog.Int("ticks", e.sess.tick))
	}
	e.sess.end()
}

// ClearGuidelines ends any drag and publishes an empty frame.
func (e *Engine) ClearGuidelines() {
	e.EndDragOperation()
	e.pub.Publish(guides.Frame{})
}

// Drag runs one tick for the cumulative cursor delta since the drag started.
// The target is always original position plus delta, so corrections never
// feed back into later ticks.
func (e *Engine) Drag(delta vector.Pt) (Result, error) {
	if e.sess.state != Active {
		return Result{Delta: delta}, ErrSessionNotActive
	}
	e.sess.tick++
	key, orig, ok := e.sess.moving()
	if !ok {
		return e.passthrough(delta, delta), nil
	}
	target := orig.Position().Add(delta)
	live := e.sess.live(e.resolver, key)
	if len(live) == 0 {
		e.log.DebugContext(applog.WithDrag(context.Background(), e.sess.id, e.sess.tick), "moving element gone", slog.String("key", key))
		return e.passthrough(target, delta), nil
	}
	return e.snap(key, orig, target, live), nil
}

// DragTo runs one tick for an absolute target top-left of the moving
// element or selection.
func (e *Engine) DragTo(target vector.Pt) (Result, error) {
	if e.sess.state != Active {
		return Result{Position: target}, ErrSessionNotActive
	}
	_, orig, ok := e.sess.moving()
	if !ok {
		e.sess.tick++
		return e.passthrough(target, vector.Pt{}), nil
	}
	return e.Drag(target.Sub(orig.Position()))
}

// passthrough answers a tick whose moving element has no geometry.
func (e *Engine) passthrough(pos, delta vector.Pt) Result {
	e.pub.Publish(guides.Frame{SessionID: e.sess.id, Tick: e.sess.tick})
	return Result{SessionID: e.sess.id, Tick: e.sess.tick, Position: pos, Delta: delta}
}

func (e *Engine) snap(key string, orig canvas.ElementBounds, target vector.Pt, live map[string]canvas.ElementBounds) Result {
	cands := canvas.Candidates(e.resolver, e.sess.exclusion())
	sr := ComputeSnap(target, orig, cands, e.cfg)
	res := Result{
		SessionID: e.sess.id,
		Tick:      e.sess.tick,
		Position:  sr.Position,
		Delta:     sr.Position.Sub(orig.Position()),
		Guides:    sr.Guides,
		SnappedX:  sr.SnappedX,
		SnappedY:  sr.SnappedY,
	}
	kind := e.sess.kind
	if key == SelectionKey {
		res.Moves = MapSelectionDelta(live, res.Delta)
		kind = canvas.KindGroup
	} else {
		res.Moves = map[string]vector.Pt{key: sr.Position}
	}

	frame := guides.Frame{SessionID: e.sess.id, Tick: e.sess.tick}
	if e.cfg.ShowGuidelines {
		frame.Guides = sr.Guides
	}
	moving := []canvas.Element{{ID: key, Kind: kind, Bounds: orig.At(sr.Position)}}
	frame.Projections = Projections(moving, cands, e.cfg)
	e.pub.Publish(frame)

	e.log.DebugContext(applog.WithDrag(context.Background(), e.sess.id, e.sess.tick), "tick",
		slog.Int("candidates", len(cands)),
		slog.Int("guides", len(sr.Guides)))
	return res
}
