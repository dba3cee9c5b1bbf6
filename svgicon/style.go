package svgicon

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// NeutralColor is used when a color is required but missing or invalid.
var NeutralColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// DefaultStrokeWidth is the width used when none is specified.
const DefaultStrokeWidth = 1.

var errInvalidColor = errors.New("invalid color")

// Style is the parsed form of the presentation attributes
// of an element. A nil color means the painting is off.
type Style struct {
	Stroke, Fill *color.NRGBA
	StrokeWidth  float64
	// Raw is the original content of the style attribute
	Raw string
}

// StrokeColor returns the stroke color, or NeutralColor
// if there is none.
func (s Style) StrokeColor() color.NRGBA {
	if s.Stroke == nil {
		return NeutralColor
	}
	return *s.Stroke
}

// FillColor returns the fill color, or NeutralColor
// if there is none.
func (s Style) FillColor() color.NRGBA {
	if s.Fill == nil {
		return NeutralColor
	}
	return *s.Fill
}

// ParseStyle reads the CSS-like declarations of a style attribute,
// such as "stroke: rgb(0, 0, 0); stroke-width: 1; fill: none;".
// Unknown properties are ignored. Invalid values are replaced by
// defaults (NeutralColor for colors) and reported by the returned error,
// alongside the usable style.
func ParseStyle(raw string) (Style, error) {
	s := Style{StrokeWidth: DefaultStrokeWidth, Raw: raw}
	err := s.setDeclarations(raw)
	return s, err
}

func (s *Style) setDeclarations(raw string) error {
	var errs []error
	for _, pair := range strings.Split(raw, ";") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		if err := s.set(k, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// set updates one property. It returns an error
// for invalid values, after applying a fallback.
func (s *Style) set(k, v string) error {
	k = strings.ToLower(strings.TrimSpace(k))
	v = strings.TrimSpace(v)
	switch k {
	case "stroke", "fill":
		c, err := ParseColor(v)
		if err != nil {
			neutral := NeutralColor
			c = &neutral
		}
		if k == "stroke" {
			s.Stroke = c
		} else {
			s.Fill = c
		}
		return err
	case "stroke-width":
		w, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
		if err != nil || w < 0 {
			return fmt.Errorf("invalid stroke width %q", v)
		}
		s.StrokeWidth = w
	}
	return nil
}

// ParseColor parses an SVG color: a color keyword, #rgb, #rrggbb
// or rgb(r, g, b) with integer or percent values.
// "none" (or an empty string) returns nil.
func ParseColor(v string) (*color.NRGBA, error) {
	lv := strings.ToLower(strings.TrimSpace(v))
	switch lv {
	case "none", "", "transparent":
		return nil, nil
	}
	if c, ok := colornames.Map[lv]; ok {
		return &color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if strings.HasPrefix(lv, "#") {
		return parseHexColor(lv[1:])
	}
	if args, ok := strings.CutPrefix(lv, "rgb("); ok {
		args, ok = strings.CutSuffix(args, ")")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errInvalidColor, v)
		}
		vals := strings.Split(args, ",")
		if len(vals) != 3 {
			return nil, fmt.Errorf("%w: %q expects 3 components", errInvalidColor, v)
		}
		var c [3]uint8
		for i, val := range vals {
			cv, err := parseColorValue(val)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", errInvalidColor, v)
			}
			c[i] = cv
		}
		return &color.NRGBA{R: c[0], G: c[1], B: c[2], A: 0xff}, nil
	}
	return nil, fmt.Errorf("%w: %q", errInvalidColor, v)
}

func parseHexColor(hex string) (*color.NRGBA, error) {
	if len(hex) == 3 {
		// SVG specs say duplicate characters in case of 3 digit hex number
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("%w: #%s", errInvalidColor, hex)
	}
	var out [3]uint8
	for i := range out {
		t, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: #%s", errInvalidColor, hex)
		}
		out[i] = uint8(t)
	}
	return &color.NRGBA{R: out[0], G: out[1], B: out[2], A: 0xff}, nil
}

// parseColorValue reads an integer or a percentage, clamped to [0, 255]
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if p, ok := strings.CutSuffix(v, "%"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(f * 255 / 100), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return clampByte(f), nil
}

func clampByte(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f + 0.5)
}
