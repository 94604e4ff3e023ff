/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"stickyguides/internal/canvas"
	"stickyguides/internal/config"
	"stickyguides/internal/crash"
	"stickyguides/internal/guides"
	applog "stickyguides/internal/log"
	"stickyguides/internal/overlay"
	"stickyguides/internal/sticky"
	"stickyguides/internal/storage"
	"stickyguides/internal/textlayout"
	"stickyguides/internal/trace"
	"stickyguides/internal/vector"
	"stickyguides/internal/version"
)

func usage() {
	fmt.Println("Sticky Guides: snapping diagnostics")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  stickyguides version|-v|--version                        Show version")
	fmt.Println("  stickyguides config                                      Print the effective configuration")
	fmt.Println("  stickyguides simulate <doc.json> <id> <dx> <dy> [ticks]  Drag <id> and print the guides of every tick")
	fmt.Println("      --trace <db>   record published frames to a SQLite file")
	fmt.Println("      --out <path>   save the moved document to <path>")
	fmt.Println("  stickyguides overlay <doc.json> <out.svg|out.pdf> [<id> <dx> <dy>]")
	fmt.Println("                                                           Render bounds and guides of a one-tick drag")
}

func main() {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Defaults()
	}
	applog.Init(cfg.Logging.Options())
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}
	target := &crash.Target{}
	defer crash.Recover(target)

	args, flags := splitFlags(os.Args, "trace", "out")
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Sticky Guides: snapping diagnostics")
			fmt.Println(version.String())
			return
		case "config":
			b, err := config.Marshal(cfg)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if p, err := config.ConfigPath(); err == nil {
				fmt.Println("# file:", p)
			}
			fmt.Print(string(b))
			return
		case "simulate":
			if len(args) < 6 {
				fmt.Println("simulate requires <doc.json> <id> <dx> <dy>")
				usage()
				os.Exit(2)
			}
			if err := simulate(os.Stdout, cfg, target, args[2:], flags); err != nil {
				l.Error("simulate failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "overlay":
			if len(args) != 4 && len(args) != 7 {
				fmt.Println("overlay requires <doc.json> <out> and optionally <id> <dx> <dy>")
				usage()
				os.Exit(2)
			}
			if err := renderOverlay(os.Stdout, cfg, target, args[2:]); err != nil {
				l.Error("overlay failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// splitFlags removes "--name value" pairs for the given names from args.
func splitFlags(args []string, names ...string) ([]string, map[string]string) {
	flags := map[string]string{}
	known := map[string]bool{}
	for _, n := range names {
		known[n] = true
	}
	var rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if name, ok := strings.CutPrefix(a, "--"); ok && known[name] && i+1 < len(args) {
			flags[name] = args[i+1]
			i++
			continue
		}
		rest = append(rest, a)
	}
	return rest, flags
}

type dragSpec struct {
	id     string
	dx, dy float64
	ticks  int
}

func parseDrag(args []string) (dragSpec, error) {
	s := dragSpec{id: args[0], ticks: 1}
	var err error
	if s.dx, err = strconv.ParseFloat(args[1], 64); err != nil {
		return s, fmt.Errorf("parse dx: %w", err)
	}
	if s.dy, err = strconv.ParseFloat(args[2], 64); err != nil {
		return s, fmt.Errorf("parse dy: %w", err)
	}
	if len(args) > 3 {
		if s.ticks, err = strconv.Atoi(args[3]); err != nil || s.ticks < 1 {
			return s, fmt.Errorf("ticks must be a positive integer, got %q", args[3])
		}
	}
	return s, nil
}

// newResolver measures text with the Go fonts plus any configured font files.
func newResolver(doc *canvas.Document, fonts []config.FontConfig) (*canvas.Resolver, error) {
	if len(fonts) == 0 {
		return canvas.NewResolver(doc), nil
	}
	lib, err := textlayout.GoFonts()
	if err != nil {
		return nil, err
	}
	for _, f := range fonts {
		if err := lib.LoadTTF(f.Family, f.Weight, f.Italic, f.File); err != nil {
			return nil, err
		}
	}
	return canvas.NewResolver(doc, canvas.WithTextProvider(textlayout.OTProvider{Lib: lib})), nil
}

// drag replays the drag against the resolver's document and moves the dragged
// element and the selection by the final snapped delta.
func drag(r *canvas.Resolver, cfg sticky.Config, pub *guides.Publisher, spec dragSpec, each func(sticky.Result)) (sticky.Result, error) {
	doc := r.Document()
	kind, ok := doc.KindOf(spec.id)
	if !ok {
		return sticky.Result{}, fmt.Errorf("%w: %q", canvas.ErrUnknownElement, spec.id)
	}
	eng := sticky.New(r, cfg, pub)
	eng.StartDragOperation([]string{spec.id}, kind)
	var res sticky.Result
	for i := 1; i <= spec.ticks; i++ {
		f := float64(i) / float64(spec.ticks)
		r, err := eng.Drag(vector.Pt{X: spec.dx * f, Y: spec.dy * f})
		if err != nil {
			return res, err
		}
		res = r
		if each != nil {
			each(r)
		}
	}
	eng.EndDragOperation()
	refs := append([]canvas.Ref{{ID: spec.id, Kind: kind}}, doc.Selection...)
	if err := doc.MoveAll(refs, res.Delta); err != nil {
		return res, fmt.Errorf("apply drag: %w", err)
	}
	return res, nil
}

func simulate(w io.Writer, cfg config.AppConfig, target *crash.Target, args []string, flags map[string]string) error {
	docPath := args[0]
	doc, err := storage.Open(docPath)
	if err != nil {
		return err
	}
	target.Path, target.Doc = docPath, doc
	spec, err := parseDrag(args[1:])
	if err != nil {
		return err
	}
	r, err := newResolver(doc, cfg.Fonts)
	if err != nil {
		return err
	}
	tracePath := flags["trace"]
	if tracePath == "" {
		tracePath = cfg.Trace.File
	}

	pub := guides.NewPublisher()
	var rec *trace.Recorder
	if tracePath != "" {
		rec, err = trace.Open(tracePath)
		if err != nil {
			return err
		}
		defer func() { _ = rec.Close() }()
		unsubscribe := pub.Subscribe(rec.Listener())
		defer unsubscribe()
	}

	res, err := drag(r, cfg.Sticky, pub, spec, func(r sticky.Result) {
		_, _ = fmt.Fprintf(w, "tick %d: position (%g, %g) delta (%g, %g) snapped x=%t y=%t\n",
			r.Tick, r.Position.X, r.Position.Y, r.Delta.X, r.Delta.Y, r.SnappedX, r.SnappedY)
		for _, g := range r.Guides {
			_, _ = fmt.Fprintf(w, "  %s %s %s at %g (source %s)\n", g.ID, g.Axis, g.Type, g.Position, g.SourceID)
		}
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "moved %s and %d selected element(s) by (%g, %g)\n", spec.id, len(doc.Selection), res.Delta.X, res.Delta.Y)

	if rec != nil {
		if err := rec.Err(); err != nil {
			return err
		}
		frames, err := rec.Frames(context.Background(), res.SessionID)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "recorded %d frame(s) to %s (run %s)\n", len(frames), rec.Path(), rec.RunID())
	}
	if out := flags["out"]; out != "" {
		if err := storage.Save(out, doc); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "saved %s\n", out)
	}
	return nil
}

func renderOverlay(w io.Writer, cfg config.AppConfig, target *crash.Target, args []string) error {
	docPath, out := args[0], args[1]
	doc, err := storage.Open(docPath)
	if err != nil {
		return err
	}
	target.Path, target.Doc = docPath, doc
	r, err := newResolver(doc, cfg.Fonts)
	if err != nil {
		return err
	}

	opt := overlay.Options{Labels: true, Title: filepath.Base(docPath)}
	var frame guides.Frame
	if len(args) == 5 {
		spec, err := parseDrag(args[2:])
		if err != nil {
			return err
		}
		pub := guides.NewPublisher()
		if _, err := drag(r, cfg.Sticky, pub, spec, nil); err != nil {
			return err
		}
		frame = pub.Last()
		opt.Highlight = append([]string{spec.id}, selectionIDs(doc)...)
	} else if cfg.Sticky.DebugMode {
		frame = guides.Frame{Projections: sticky.Projections(nil, canvas.Candidates(r, nil), cfg.Sticky)}
	}
	if err := overlay.ExportFile(out, overlay.Elements(r), frame, opt); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "wrote %s (%d guide(s), %d projection(s))\n", out, len(frame.Guides), len(frame.Projections))
	return nil
}

func selectionIDs(doc *canvas.Document) []string {
	ids := make([]string, 0, len(doc.Selection))
	for _, ref := range doc.Selection {
		ids = append(ids, ref.ID)
	}
	return ids
}
