/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package guides carries the per-tick alignment output of the snapping
// engine to whoever draws it: guide lines, debug projections and a
// callback registry that broadcasts the latest frame.
package guides

import "fmt"

// Axis is the orientation of a guide line. A vertical line marks an x
// coordinate, a horizontal line a y coordinate.
type Axis string

const (
	Horizontal Axis = "horizontal"
	Vertical   Axis = "vertical"
)

// Type is the alignment family that produced a guide.
type Type string

const (
	Edge     Type = "edge"
	Center   Type = "center"
	Midpoint Type = "midpoint"
)

// Guide is one alignment line that fired on the current tick.
type Guide struct {
	ID       string  `json:"id"`
	Axis     Axis    `json:"axis"`
	Position float64 `json:"position"`
	Type     Type    `json:"type"`
	SourceID string  `json:"sourceId,omitempty"`
}

// Projection is a reference line measured on an element regardless of
// whether anything snapped to it.
type Projection struct {
	ID              string  `json:"id"`
	SourceID        string  `json:"sourceId"`
	Axis            Axis    `json:"axis"`
	Position        float64 `json:"position"`
	Kind            Type    `json:"kind"`
	IsMovingElement bool    `json:"isMovingElement,omitempty"`
}

// GuideID builds the stable id of a guide, e.g. "v-edge-img-right".
func GuideID(axis Axis, t Type, sourceID, feature string) string {
	return fmt.Sprintf("%s-%s-%s-%s", axis.short(), t, sourceID, feature)
}

// ProjectionID builds the stable id of a projection, e.g. "proj-h-center-img-y".
func ProjectionID(axis Axis, t Type, sourceID, feature string) string {
	return "proj-" + GuideID(axis, t, sourceID, feature)
}

func (a Axis) short() string {
	if a == Vertical {
		return "v"
	}
	return "h"
}
