package svgicon

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseColor(t *testing.T) {
	red := &color.NRGBA{R: 0xff, A: 0xff}
	for _, test := range []struct {
		input    string
		expected *color.NRGBA
	}{
		{"red", red},
		{"Red", red},
		{"#f00", red},
		{"#FF0000", red},
		{"rgb(255, 0, 0)", red},
		{"rgb(255,0,0)", red},
		{"rgb(100%, 0%, 0%)", red},
		{"rgb(300, -4, 0)", red},
		{"rgb(12, 34, 56)", &color.NRGBA{R: 12, G: 34, B: 56, A: 0xff}},
		{"none", nil},
		{"", nil},
		{"transparent", nil},
	} {
		got, err := ParseColor(test.input)
		if err != nil {
			t.Errorf("%q: %s", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Errorf("%q: unexpected color: %s", test.input, diff)
		}
	}

	for _, input := range []string{"url(#grad)", "rgb(1, 2)", "rgb(1, 2, 3", "#12", "#gggggg", "notacolor", "rgb(a, b, c)"} {
		if _, err := ParseColor(input); err == nil {
			t.Errorf("%q: expected an error", input)
		}
	}
}

func TestParseStyle(t *testing.T) {
	raw := "stroke: rgb(0, 0, 255); stroke-width: 3; fill: none; opacity: 0.5"
	s, err := ParseStyle(raw)
	if err != nil {
		t.Fatal(err)
	}
	blue := color.NRGBA{B: 0xff, A: 0xff}
	if diff := cmp.Diff(Style{Stroke: &blue, StrokeWidth: 3, Raw: raw}, s); diff != "" {
		t.Errorf("unexpected style: %s", diff)
	}
	if s.FillColor() != NeutralColor || s.StrokeColor() != blue {
		t.Errorf("unexpected colors %v %v", s.FillColor(), s.StrokeColor())
	}

	s, err = ParseStyle("fill: wrong; stroke-width: -2; stroke: black")
	if err == nil {
		t.Fatal("expected an error")
	}
	if s.Fill == nil || *s.Fill != NeutralColor {
		t.Errorf("expected the neutral fill, got %v", s.Fill)
	}
	if s.StrokeWidth != DefaultStrokeWidth {
		t.Errorf("expected the default width, got %g", s.StrokeWidth)
	}
	if s.Stroke == nil || *s.Stroke != (color.NRGBA{A: 0xff}) {
		t.Errorf("valid declarations should still apply, got %v", s.Stroke)
	}
}
