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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"stickyguides/internal/canvas"
	applog "stickyguides/internal/log"
)

// BackupsDirName is the folder next to a document that keeps timestamped copies.
const BackupsDirName = "backups"

// Decode validates raw bytes against the schema, unmarshals them and checks
// element references.
func Decode(data []byte) (*canvas.Document, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	var doc canvas.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Open loads a document from path. If the file cannot be read or does not
// validate, the latest backup is tried before giving up.
func Open(path string) (*canvas.Document, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "open").With(slog.String("path", path))
	b, err := os.ReadFile(path)
	if err != nil {
		doc, berr := openLatestBackup(path)
		if berr != nil {
			return nil, fmt.Errorf("open document: %w; backup attempt: %v", err, berr)
		}
		l.Warn("document unreadable, restored from backup", slog.Any("err", err))
		return doc, nil
	}
	doc, derr := Decode(b)
	if derr != nil {
		bdoc, berr := openLatestBackup(path)
		if berr != nil {
			return nil, fmt.Errorf("parse document: %w; backup attempt: %v", derr, berr)
		}
		l.Warn("document invalid, restored from backup", slog.Any("err", derr))
		return bdoc, nil
	}
	return doc, nil
}

// Save writes doc to path with transactional semantics and a timestamped
// backup of the previous file (if present). Invalid documents are refused.
func Save(path string, doc *canvas.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("document path is required")
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure document dir: %w", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		bdir := filepath.Join(dir, BackupsDirName)
		if err := os.MkdirAll(bdir, 0o755); err != nil {
			return fmt.Errorf("ensure backups dir: %w", err)
		}
		stamp := time.Now().Format("20060102-150405")
		bpath := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", filepath.Base(path), stamp))
		if cerr := copyFile(path, bpath); cerr != nil {
			return fmt.Errorf("backup current document: %w", cerr)
		}
	}

	// Transactional write: to temp file in same directory, then rename over target
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp document: %w", werr)
	}
	// On Windows, replace by removing destination first if needed
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
	if rerr := os.Rename(temp, path); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace document: %w", rerr)
	}
	return nil
}

// Backups lists the backups of the document at path, oldest first.
func Backups(path string) ([]string, error) {
	bdir := filepath.Join(filepath.Dir(path), BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	prefix := filepath.Base(path) + "."
	var out []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".bak") {
			out = append(out, filepath.Join(bdir, name))
		}
	}
	sort.Strings(out) // timestamp in name yields lexicographic order
	return out, nil
}

// AutosaveCrashSnapshot writes doc into the backups folder next to path
// without touching the document itself. Validation is skipped so a
// half-edited document is still preserved.
func AutosaveCrashSnapshot(path string, doc *canvas.Document) (string, error) {
	if doc == nil {
		return "", errors.New("nil document")
	}
	if strings.TrimSpace(path) == "" {
		return "", errors.New("document path is required")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	bdir := filepath.Join(filepath.Dir(path), BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	out := filepath.Join(bdir, fmt.Sprintf("%s.crash-%s.json", filepath.Base(path), stamp))
	if err := writeFileSync(out, append(data, '\n')); err != nil {
		return "", fmt.Errorf("write crash snapshot: %w", err)
	}
	return out, nil
}

func openLatestBackup(path string) (*canvas.Document, error) {
	list, err := Backups(path)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New("no backups found")
	}
	latest := list[len(list)-1]
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	doc, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("parse latest backup: %w", err)
	}
	return doc, nil
}

// writeFileSync writes data to a file, ensures it is flushed to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

// copyFile copies a file from src to dst (overwrites dst if exists).
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}
