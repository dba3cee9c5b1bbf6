package svgdraw

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/benoitkugler/svgplot/svgicon"
	"github.com/benoitkugler/svgplot/svgpath"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
)

func TestRuns(t *testing.T) {
	points := svgpath.Path{
		{X: 0, Y: 0, Connect: true},
		{X: 1, Y: 1, Connect: true},
		{X: 2, Y: 2, Connect: false},
		{X: 3, Y: 3, Connect: true},
		{X: 4, Y: 4, Connect: false},
	}
	expected := []svgpath.Path{points[0:2], points[2:4], points[4:5]}
	if diff := cmp.Diff(expected, Runs(points)); diff != "" {
		t.Errorf("unexpected runs: %s", diff)
	}
	if runs := Runs(nil); len(runs) != 0 {
		t.Errorf("expected no run, got %v", runs)
	}
	// the flag of the first point is ignored
	if runs := Runs(svgpath.Path{{Connect: false}, {Connect: true}}); len(runs) != 1 {
		t.Errorf("expected one run, got %v", runs)
	}
}

// recorder logs the driver calls
type recorder struct {
	ops []string
}

func (r *recorder) SetColor(c color.NRGBA) {
	r.ops = append(r.ops, fmt.Sprintf("color %v", c))
}
func (r *recorder) SetStrokeWidth(w float64)  { r.ops = append(r.ops, "width") }
func (r *recorder) Polyline(run svgpath.Path) { r.ops = append(r.ops, "polyline "+run.String()) }
func (r *recorder) Cells(cells svgpath.Path)  { r.ops = append(r.ops, "cells") }

func TestDraw(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}
	records := []svgicon.RenderRecord{
		{
			Points: svgpath.Path{{X: 0, Y: 0, Connect: true}, {X: 10, Y: 10, Connect: true}, {X: 50, Y: 50}, {X: 60, Y: 60, Connect: true}},
			Style:  svgicon.Style{Stroke: &red, Fill: &blue},
		},
		{Points: svgpath.Path{{X: 5, Y: 5, Connect: true}}, Style: svgicon.Style{Stroke: &red, Fill: &blue}, IsFill: true},
		{Points: svgpath.Path{{X: 1, Y: 2, Connect: true}, {X: 3, Y: 4, Connect: true}}},
	}
	rec := &recorder{}
	Draw(records, rec)

	colorOp := func(c color.NRGBA) string { return fmt.Sprintf("color %v", c) }
	expected := []string{
		colorOp(red), "width",
		"polyline M0.000,0.000 L10.000,10.000",
		"polyline M50.000,50.000 L60.000,60.000",
		colorOp(blue), "cells",
		colorOp(svgicon.NeutralColor), "width",
		"polyline M1.000,2.000 L3.000,4.000",
	}
	if diff := cmp.Diff(expected, rec.ops); diff != "" {
		t.Errorf("unexpected driver calls: %s", diff)
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(10, 5)
	if cols, rows := c.Size(); cols != 10 || rows != 5 {
		t.Fatalf("unexpected size %d %d", cols, rows)
	}
	c.SetColor(color.NRGBA{G: 0xff, A: 0xff})
	c.Polyline(svgpath.Path{{X: 0, Y: 50}, {X: 100, Y: 50, Connect: true}})
	c.Cells(svgpath.Path{{X: 50, Y: 50}})

	lines := strings.Split(c.String(), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	expected := "⠤⠤⠤⠤⠤█⠤⠤⠤⠤"
	if lines[2] != expected {
		t.Errorf("expected %q, got %q", expected, lines[2])
	}
	for _, i := range []int{0, 1, 3, 4} {
		if strings.TrimSpace(lines[i]) != "" {
			t.Errorf("line %d should be empty, got %q", i, lines[i])
		}
	}

	colored := c.Lines(true)
	if !strings.Contains(colored[2], "\x1b[") {
		t.Errorf("expected color sequences in %q", colored[2])
	}
	if stripped := ansi.Strip(colored[2]); stripped != expected {
		t.Errorf("expected %q, got %q", expected, stripped)
	}

	c.Clear()
	if strings.TrimSpace(c.String()) != "" {
		t.Errorf("canvas should be empty after Clear, got %q", c.String())
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Polyline(svgpath.Path{{X: -50, Y: 150}, {X: 150, Y: -50, Connect: true}})
	c.Cells(svgpath.Path{{X: 200, Y: 200}, {X: -1, Y: -1}})
	// the diagonal crosses the whole canvas
	for _, line := range c.Lines(false) {
		if strings.TrimSpace(line) == "" {
			t.Errorf("expected a dot on every line, got %q", line)
		}
	}
}

func TestCanvasFarPoints(t *testing.T) {
	c := NewCanvas(80, 24)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Polyline(svgpath.Path{{X: 0, Y: 50}, {X: 1e12, Y: 50, Connect: true}})
		c.Polyline(svgpath.Path{{X: -1e6, Y: 20}, {X: 1e6, Y: 20, Connect: true}})
		c.Polyline(svgpath.Path{{X: 10, Y: 10}, {X: math.Inf(1), Y: 10, Connect: true}, {X: math.NaN(), Y: 0, Connect: true}})
		c.Polyline(svgpath.Path{{X: math.Inf(-1), Y: 90}})
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("plotting far away points does not terminate")
	}

	lines := c.Lines(false)
	// both horizontal lines cross the whole canvas
	for _, r := range []int{12, 19} {
		if strings.ContainsRune(lines[r], ' ') {
			t.Errorf("line %d should be full, got %q", r, lines[r])
		}
	}
}

func TestClip(t *testing.T) {
	x0, y0, x1, y1, ok := clip(-50, 50, 150, 50)
	if !ok || x0 != 0 || x1 != 100 || y0 != 50 || y1 != 50 {
		t.Errorf("unexpected clipped segment %g %g %g %g %v", x0, y0, x1, y1, ok)
	}
	if _, _, _, _, ok = clip(-10, -10, -5, 200); ok {
		t.Error("segment outside the canvas should be skipped")
	}
	if _, _, _, _, ok = clip(0, 0, math.NaN(), 10); ok {
		t.Error("non finite segment should be skipped")
	}
	x0, y0, x1, y1, ok = clip(10, 20, 30, 40)
	if !ok || x0 != 10 || y0 != 20 || x1 != 30 || y1 != 40 {
		t.Errorf("inner segment should be unchanged, got %g %g %g %g", x0, y0, x1, y1)
	}
}
