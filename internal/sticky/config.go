/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package sticky is the alignment and snapping engine ("sticky guidelines")
// used while dragging canvas elements. Each tick it measures the moving
// element or selection against every other element, locks the position
// onto the nearest edge, center or midpoint within tolerance and publishes
// the guide lines that fired.
package sticky

import "stickyguides/internal/guides"

// Config toggles snapping. It may change at any time; an active drag picks
// the new values up on its next tick.
type Config struct {
	Enabled                bool    `yaml:"enabled" json:"enabled"`
	SnapDistance           float64 `yaml:"snap_distance" json:"snapDistance"`
	ShowGuidelines         bool    `yaml:"show_guidelines" json:"showGuidelines"`
	EnableEdgeSnapping     bool    `yaml:"edges" json:"enableEdgeSnapping"`
	EnableCenterSnapping   bool    `yaml:"centers" json:"enableCenterSnapping"`
	EnableMidpointSnapping bool    `yaml:"midpoints" json:"enableMidpointSnapping"`
	DebugMode              bool    `yaml:"debug" json:"debugMode"`
}

// DefaultSnapDistance is the tolerance in canvas units used by DefaultConfig.
const DefaultSnapDistance = 8

// DefaultConfig enables every family with guides shown and debug off.
func DefaultConfig() Config {
	return Config{
		Enabled:                true,
		SnapDistance:           DefaultSnapDistance,
		ShowGuidelines:         true,
		EnableEdgeSnapping:     true,
		EnableCenterSnapping:   true,
		EnableMidpointSnapping: true,
	}
}

// Families returns the enabled alignment families in precedence order.
func (c Config) Families() []guides.Type {
	var out []guides.Type
	if c.EnableEdgeSnapping {
		out = append(out, guides.Edge)
	}
	if c.EnableCenterSnapping {
		out = append(out, guides.Center)
	}
	if c.EnableMidpointSnapping {
		out = append(out, guides.Midpoint)
	}
	return out
}

// within reports whether a and b are close enough to snap. A non-positive
// distance never matches.
func (c Config) within(a, b float64) bool {
	if c.SnapDistance <= 0 {
		return false
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= c.SnapDistance
}
