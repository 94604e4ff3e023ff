/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas holds the editor document model as seen by the snapping
// engine: element collections, the current selection, a bounds resolver with
// one provider per element kind, and the candidate set builder.
package canvas

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of element variants on the canvas.
type Kind uint8

const (
	KindPath Kind = iota
	KindSubPath
	KindText
	KindImage
	KindGroup
	KindInstance
)

var kindNames = [...]string{
	KindPath:     "path",
	KindSubPath:  "subpath",
	KindText:     "text",
	KindImage:    "image",
	KindGroup:    "group",
	KindInstance: "instance",
}

// Kinds lists every variant in resolution order.
func Kinds() []Kind {
	return []Kind{KindPath, KindSubPath, KindText, KindImage, KindGroup, KindInstance}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown element kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element kind %q", s)
}

// Ref identifies an element together with its kind.
type Ref struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
}

// Element is a resolved candidate: id, kind and the bounds at query time.
type Element struct {
	ID     string
	Kind   Kind
	Bounds ElementBounds
}

// subPathSep joins a path id and a sub-path index, e.g. "p1/2".
const subPathSep = "/"

// SubPathID returns the id of the index-th sub-path of pathID.
func SubPathID(pathID string, index int) string {
	return pathID + subPathSep + strconv.Itoa(index)
}

// ParseSubPathID splits a sub-path id into its path id and index.
func ParseSubPathID(id string) (pathID string, index int, ok bool) {
	i := strings.LastIndex(id, subPathSep)
	if i <= 0 || i == len(id)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return id[:i], n, true
}
