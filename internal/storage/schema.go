/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */


package storage

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// ErrInvalidDocument is returned when a document fails schema or reference checks.
var ErrInvalidDocument = errors.New("invalid document")

//go:embed schema/document.schema.json
var documentSchema []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(documentSchema))
	})
	return schema, schemaErr
}

// Schema returns the embedded JSON schema for canvas documents.
func Schema() []byte { return append([]byte(nil), documentSchema...) }

// maxReported caps how many schema violations end up in one error message.
const maxReported = 5

// ValidateJSON checks raw document bytes against the embedded schema.
func ValidateJSON(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if res.Valid() {
		return nil
	}
	var msgs []string
	for i, e := range res.Errors() {
		if i == maxReported {
			msgs = append(msgs, fmt.Sprintf("and %d more", len(res.Errors())-maxReported))
			break
		}
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}
