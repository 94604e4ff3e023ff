package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"stickyguides/internal/canvas"
	"stickyguides/internal/config"
	"stickyguides/internal/crash"
	"stickyguides/internal/storage"
)

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	doc := &canvas.Document{Images: []canvas.ImageElement{
		{ID: "a", X: 0, Y: 0, Width: 10, Height: 10},
		{ID: "b", X: 100, Y: 0, Width: 10, Height: 10},
	}}
	if err := storage.Save(path, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestSplitFlags(t *testing.T) {
	args, flags := splitFlags([]string{"bin", "simulate", "--trace", "t.db", "doc.json", "--out", "o.json", "--other"}, "trace", "out")
	if strings.Join(args, " ") != "bin simulate doc.json --other" {
		t.Fatalf("args = %v", args)
	}
	if flags["trace"] != "t.db" || flags["out"] != "o.json" {
		t.Fatalf("flags = %v", flags)
	}
}

func TestParseDrag(t *testing.T) {
	s, err := parseDrag([]string{"a", "1.5", "-2", "4"})
	if err != nil || s.id != "a" || s.dx != 1.5 || s.dy != -2 || s.ticks != 4 {
		t.Fatalf("got %+v err %v", s, err)
	}
	if _, err := parseDrag([]string{"a", "x", "0"}); err == nil {
		t.Fatalf("expected dx parse error")
	}
	if _, err := parseDrag([]string{"a", "1", "1", "0"}); err == nil {
		t.Fatalf("expected ticks error")
	}
}

func TestSimulate_SnapsTracesAndSaves(t *testing.T) {
	path := writeDoc(t)
	dir := filepath.Dir(path)
	flags := map[string]string{"trace": filepath.Join(dir, "trace.db"), "out": filepath.Join(dir, "moved.json")}
	target := &crash.Target{}
	var out bytes.Buffer
	if err := simulate(&out, config.Defaults(), target, []string{path, "a", "85", "3", "2"}, flags); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "tick 2:") || !strings.Contains(s, "v-edge-b-right-left") {
		t.Fatalf("unexpected output:\n%s", s)
	}
	if !strings.Contains(s, "recorded 2 frame(s)") {
		t.Fatalf("trace not recorded:\n%s", s)
	}
	if target.Path != path || target.Doc == nil {
		t.Fatalf("crash target not populated: %+v", target)
	}
	moved, err := storage.Open(flags["out"])
	if err != nil {
		t.Fatalf("open moved: %v", err)
	}
	if im, _ := moved.Image("a"); im.X != 90 || im.Y != 0 {
		t.Fatalf("a should snap to (90, 0), got (%v, %v)", im.X, im.Y)
	}
}

func TestSimulate_UnknownElement(t *testing.T) {
	path := writeDoc(t)
	err := simulate(&bytes.Buffer{}, config.Defaults(), &crash.Target{}, []string{path, "zzz", "1", "1"}, map[string]string{})
	if err == nil || !strings.Contains(err.Error(), "zzz") {
		t.Fatalf("expected unknown element error, got %v", err)
	}
}

func TestRenderOverlay(t *testing.T) {
	path := writeDoc(t)
	out := filepath.Join(filepath.Dir(path), "frame.svg")
	var w bytes.Buffer
	if err := renderOverlay(&w, config.Defaults(), &crash.Target{}, []string{path, out, "a", "88", "0"}); err != nil {
		t.Fatalf("renderOverlay: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read overlay: %v", err)
	}
	if !strings.Contains(string(b), "<svg") {
		t.Fatalf("not an svg: %s", b)
	}
	if strings.Contains(w.String(), "(0 guide(s)") {
		t.Fatalf("expected guides in the rendered frame: %s", w.String())
	}

	bad := filepath.Join(filepath.Dir(path), "frame.png")
	if err := renderOverlay(&w, config.Defaults(), &crash.Target{}, []string{path, bad}); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestNewResolver_ConfiguredFonts(t *testing.T) {
	doc := &canvas.Document{Texts: []canvas.TextElement{{ID: "t", Content: "Hello", Font: "Brand", Size: 24}}}
	file := filepath.Join(t.TempDir(), "brand.ttf")
	if err := os.WriteFile(file, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	r, err := newResolver(doc, []config.FontConfig{{Family: "Brand", File: file}})
	if err != nil {
		t.Fatalf("newResolver: %v", err)
	}
	b, ok := r.Resolve("t", canvas.KindText)
	if !ok || b.Width <= 0 || b.Height <= 0 {
		t.Fatalf("text should resolve with the configured font: %+v ok=%v", b, ok)
	}

	if _, err := newResolver(doc, []config.FontConfig{{Family: "Missing", File: filepath.Join(t.TempDir(), "none.ttf")}}); err == nil {
		t.Fatalf("expected error for a missing font file")
	}
}
