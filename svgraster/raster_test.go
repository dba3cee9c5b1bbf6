package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/benoitkugler/svgplot/svgicon"
)

const sample = `<svg viewBox="0 0 100 100">
	<rect x="10" y="10" width="30" height="30" style="stroke: rgb(0, 0, 0); fill: rgb(255, 0, 0);"/>
	<line x1="60" y1="90" x2="90" y2="90" style="stroke: rgb(0, 0, 255); stroke-width: 2;"/>
</svg>`

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestRasterSVGToImage(t *testing.T) {
	img, err := RasterSVGToImage(strings.NewReader(sample), svgicon.Options{},
		Options{Width: 200, Height: 200, Background: color.White})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("unexpected bounds %v", b)
	}

	// inside the rectangle: filled in red
	r, g, b, _ := img.At(50, 50).RGBA()
	if r != 0xffff || g != 0 || b != 0 {
		t.Errorf("expected red, got %v", img.At(50, 50))
	}
	// on the line: blue
	if r, _, b, _ := img.At(150, 180).RGBA(); r > 0x1000 || b < 0xf000 {
		t.Errorf("expected blue, got %v", img.At(150, 180))
	}
	// outside any shape
	if !isWhite(img.At(150, 50)) {
		t.Errorf("expected background, got %v", img.At(150, 50))
	}
}

func TestOversample(t *testing.T) {
	res, err := svgicon.RenderString(sample, svgicon.Options{})
	if err != nil {
		t.Fatal(err)
	}
	img := RasterRecords(res.Records, Options{Width: 50, Height: 40, Oversample: 3, Background: color.White})
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 40 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if isWhite(img.At(12, 10)) {
		t.Error("expected the rectangle fill")
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("unexpected bounds %v", decoded.Bounds())
	}
}
