package svgicon

import (
	"errors"
	"math"
	"testing"

	"github.com/benoitkugler/svgplot/svgpath"
	"github.com/google/go-cmp/cmp"
)

func mustRender(t *testing.T, input string, opts Options) *Result {
	t.Helper()
	res, err := RenderString(input, opts)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestRenderOrder(t *testing.T) {
	const input = `<svg viewBox="0 0 100 100">
		<rect x="10" y="10" width="20" height="20" style="stroke: rgb(0, 0, 0); fill: rgb(255, 0, 0);"/>
		<path d="M 50 50 L 70 50 L 70 70 Z" style="fill: rgb(0, 255, 0);"/>
		<line x1="0" y1="0" x2="100" y2="100" style="stroke: rgb(0, 0, 255); fill: rgb(0, 0, 255);"/>
		<path d="M 0 0 L 10 10"/>
	</svg>`
	res := mustRender(t, input, Options{})

	type kind struct {
		IsFill bool
		N      int
	}
	var kinds []kind
	for _, rec := range res.Records {
		kinds = append(kinds, kind{rec.IsFill, len(rec.Points)})
	}
	expected := []kind{
		{false, 5},
		{true, 20 * 20},
		{false, 4},
		{true, 19 * 19},
		{false, 2},
		{false, 2},
	}
	if diff := cmp.Diff(expected, kinds); diff != "" {
		t.Errorf("unexpected records: %s", diff)
	}
}

func TestRenderRectOutline(t *testing.T) {
	res := mustRender(t, `<svg viewBox="0 0 200 400"><rect x="20" y="40" width="100" height="200"/></svg>`, Options{})
	if len(res.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(res.Records))
	}
	expected := svgpath.Path{
		{X: 10, Y: 90, Connect: true},
		{X: 60, Y: 90, Connect: true},
		{X: 60, Y: 40, Connect: true},
		{X: 10, Y: 40, Connect: true},
		{X: 10, Y: 90, Connect: true},
	}
	if diff := cmp.Diff(expected, res.Records[0].Points); diff != "" {
		t.Errorf("unexpected outline: %s", diff)
	}
}

func TestRenderLine(t *testing.T) {
	res := mustRender(t, `<svg viewBox="0 0 200 400"><line x1="20" y1="40" x2="100" y2="200" transform="translate(20)"/></svg>`, Options{})
	expected := svgpath.Path{{X: 20, Y: 90, Connect: true}, {X: 60, Y: 50, Connect: true}}
	if diff := cmp.Diff(expected, res.Records[0].Points); diff != "" {
		t.Errorf("unexpected line: %s", diff)
	}
}

func TestRectFillContainment(t *testing.T) {
	const x, y, w, h = 30., 50., 41., 77.
	vb := svgpath.ViewBox{Width: 200, Height: 400}
	res := mustRender(t, `<svg viewBox="0 0 200 400"><rect x="30" y="50" width="41" height="77" fill="red"/></svg>`, Options{})
	if len(res.Records) != 2 || !res.Records[1].IsFill {
		t.Fatalf("expected an outline and a fill, got %d records", len(res.Records))
	}
	sx, sy := vb.Scales()

	inside := func(i, k int) bool {
		srcX, srcY := float64(i)*sx, float64(k)*sy
		return x <= srcX && srcX < x+w && y <= srcY && srcY < y+h
	}
	emitted := map[[2]int]bool{}
	for _, p := range res.Records[1].Points {
		i, k := int(p.X), int(100-p.Y)
		if float64(i) != p.X || float64(k) != 100-p.Y {
			t.Fatalf("fill point %v is not on the grid", p)
		}
		if !inside(i, k) {
			t.Errorf("fill point %v is outside the rectangle", p)
		}
		emitted[[2]int{i, k}] = true
	}
	for i := 0; i <= 100; i++ {
		for k := 0; k <= 100; k++ {
			if inside(i, k) && !emitted[[2]int{i, k}] {
				t.Errorf("cell (%d, %d) is missing", i, k)
			}
		}
	}
	if len(emitted) != 21*19 {
		t.Errorf("expected %d cells, got %d", 21*19, len(emitted))
	}
}

func TestFillBounds(t *testing.T) {
	points := svgpath.Path{{X: 10.5, Y: 10.5}, {X: 20.2, Y: 30.7}, {X: 15, Y: 12}}
	cells := FillBounds(points)
	if len(cells) != 9*19 {
		t.Fatalf("expected %d cells, got %d", 9*19, len(cells))
	}
	for _, c := range cells {
		if c.X < 11 || c.X >= 20 || c.Y < 11 || c.Y >= 30 {
			t.Errorf("unexpected cell %v", c)
		}
	}

	if cells := FillBounds(nil); cells != nil {
		t.Errorf("expected no cell, got %v", cells)
	}

	// enumeration is clamped to the canvas
	huge := svgpath.Path{{X: -1e6, Y: -1e6}, {X: 1e6, Y: 1e6}}
	if cells := FillBounds(huge); len(cells) != 101*101 {
		t.Errorf("expected %d cells, got %d", 101*101, len(cells))
	}
}

func TestRenderDegenerateViewBox(t *testing.T) {
	for _, vb := range []string{"0 0 0 100", "0 0 100 0"} {
		_, err := RenderString(`<svg viewBox="`+vb+`"><path d="M 0 0 L 1 1"/></svg>`, Options{})
		if !errors.Is(err, ErrDegenerateGeometry) {
			t.Errorf("%s: expected degenerate geometry, got %v", vb, err)
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	doc, err := ExtractString(sampleDocument, WarnErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	first, err := doc.Render(Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := doc.Render(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs: %s", diff)
	}
	third := mustRender(t, sampleDocument, Options{ErrorMode: WarnErrorMode})
	if diff := cmp.Diff(first, third); diff != "" {
		t.Errorf("rendering from source differs: %s", diff)
	}
}

func TestRenderDiagnostics(t *testing.T) {
	const input = `<svg viewBox="0 0 100 100">
		<path d="M 0 0 L 10 10" transform="perspective(2) translate(10)"/>
		<path d="M 0 0 L"/>
		<path d="M 0 0 R 4 L 10 10"/>
	</svg>`
	res := mustRender(t, input, Options{ErrorMode: WarnErrorMode})
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	// the known part of the transform is still applied
	if p := res.Records[0].Points[0]; p.X != 10 || p.Y != 100 {
		t.Errorf("unexpected first point %v", p)
	}
	if len(res.Diagnostics) != 3 {
		t.Fatalf("expected 3 diagnostics, got %v", res.Diagnostics)
	}
	if d := res.Diagnostics[0]; d.Index != 0 || !errors.Is(d.Err, ErrUnsupportedTransform) {
		t.Errorf("unexpected diagnostic %v", d)
	}
	if d := res.Diagnostics[1]; d.Index != 1 || !errors.Is(d.Err, ErrMalformedPath) {
		t.Errorf("unexpected diagnostic %v", d)
	}
	if d := res.Diagnostics[2]; d.Index != 2 || d.Err != nil {
		t.Errorf("unexpected diagnostic %v", d)
	}

	_, err := RenderString(input, Options{ErrorMode: StrictErrorMode})
	var elErr *ElementError
	if !errors.As(err, &elErr) || elErr.Index != 1 {
		t.Errorf("expected an error for the second path, got %v", err)
	}
}

func TestRenderCircle(t *testing.T) {
	res := mustRender(t, `<svg viewBox="0 0 100 100"><circle cx="50" cy="50" r="20" fill="blue"/></svg>`, Options{ArcPoints: 10})
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Records))
	}
	outline := res.Records[0].Points
	if len(outline) != 1+11+11+1 {
		t.Errorf("unexpected number of points %d", len(outline))
	}
	for _, p := range outline {
		if r := math.Hypot(p.X-50, p.Y-50); math.Abs(r-20) > 1e-9 {
			t.Errorf("point %v is not on the circle", p)
		}
	}
	if fill := res.Records[1].Points; len(fill) != 39*39 {
		t.Errorf("unexpected number of cells %d", len(fill))
	}
}

func TestRenderTransformedRectFill(t *testing.T) {
	res := mustRender(t, `<svg viewBox="0 0 100 100"><rect x="0" y="0" width="10" height="10" fill="red" transform="translate(20, 20)"/></svg>`, Options{})
	fill := res.Records[1].Points
	// bounding box of the outline: [20, 30] x [70, 80]
	if len(fill) != 9*9 {
		t.Fatalf("unexpected number of cells %d", len(fill))
	}
	for _, c := range fill {
		if c.X <= 20 || c.X >= 30 || c.Y <= 70 || c.Y >= 80 {
			t.Errorf("unexpected cell %v", c)
		}
	}
}
