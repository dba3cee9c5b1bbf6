// Package gallery manages named collections of SVG shapes,
// browsed by index and rendered with svgicon.
//
// A gallery is described by a YAML file:
//
//	version: 1
//	viewBox: 0 0 100 100
//	shapes:
//	  - name: Cross
//	    elements:
//	      - <path d="M 50 75 V 25 M 25 50 H 75" style="stroke: red"/>
//	  - name: Logo
//	    file: logo.svg
//
// Shapes are always listed sorted by name, so that an index
// designates the same shape across runs.
package gallery

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/benoitkugler/svgplot/svgicon"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultViewBox is used for the snapshots of inline shapes.
	DefaultViewBox = "0 0 100 100"
	// SnapshotFilename is the file written by the CLI when saving the selected shape.
	SnapshotFilename = "current.svg"
)

var (
	ErrEmptyGallery  = errors.New("gallery has no shapes")
	ErrIndexOutRange = errors.New("shape index out of range")
)

// Shape is either a list of inline SVG elements, or a reference to
// a standalone SVG file (relative paths are resolved from the gallery file).
type Shape struct {
	Name     string   `yaml:"name"`
	Elements []string `yaml:"elements,omitempty"`
	File     string   `yaml:"file,omitempty"`
}

type Gallery struct {
	Version int     `yaml:"version"`
	ViewBox string  `yaml:"viewBox"`
	Shapes  []Shape `yaml:"shapes"`

	dir string // base directory for Shape.File
}

func (g *Gallery) normalize() {
	if g.Version == 0 {
		g.Version = 1
	}
	if strings.TrimSpace(g.ViewBox) == "" {
		g.ViewBox = DefaultViewBox
	}
	for i := range g.Shapes {
		if g.Shapes[i].Name == "" {
			g.Shapes[i].Name = g.Shapes[i].File
		}
	}
	sort.SliceStable(g.Shapes, func(i, j int) bool { return g.Shapes[i].Name < g.Shapes[j].Name })
}

const demoStyle = `style="stroke: rgb(255, 0, 0); stroke-width: 1; fill: none;"`

// Default returns the built-in demonstration shapes,
// one per supported drawing command.
func Default() *Gallery {
	g := &Gallery{
		Shapes: []Shape{
			{Name: "MHV", Elements: []string{`<path d="M 50.000 75.000 V 25.000 M 25.000 50.000 H 75.000" ` + demoStyle + `/>`}},
			{Name: "L", Elements: []string{`<path d="M 25.000 25.000 L 75.000 25.000 L 75.000 75.000 L 25.000 75.000 Z" ` + demoStyle + `/>`}},
			{Name: "C1", Elements: []string{`<path d="M 25.000 25.000 C 25.000 30.000 75.000 27.000 45.000 25.000" ` + demoStyle + `/>`}},
			{Name: "C2", Elements: []string{`<path d="M 25.000 25.000 C 25.000 30.000 75.000 27.000 45.000 50.000" ` + demoStyle + `/>`}},
			{Name: "A", Elements: []string{`<path d="M 25.000 25.000 A 10.000 10.000 90.000 0 0 50.000 50.000" ` + demoStyle + `/>`}},
			{Name: "AF1", Elements: []string{`<path d="M 25.000 25.000 A 10.000 10.000 90.000 1 0 50.000 50.000" ` + demoStyle + `/>`}},
			{Name: "AF2", Elements: []string{`<path d="M 25.000 25.000 A 10.000 10.000 90.000 0 1 50.000 50.000" ` + demoStyle + `/>`}},
			{Name: "Rect", Elements: []string{`<rect x="25.000" y="25.000" width="50.000" height="50.000" ` + demoStyle + `/>`}},
			{Name: "Line", Elements: []string{
				`<line x1="25.000" y1="25.000" x2="75.000" y2="75.000" ` + demoStyle + `/>`,
				`<line x1="75.000" y1="25.000" x2="25.000" y2="75.000" style="stroke: rgb(0, 0, 255); stroke-width: 1; fill: none;"/>`,
			}},
		},
	}
	g.normalize()
	return g
}

// Parse decodes a YAML gallery. Relative shape files
// are resolved from the working directory.
func Parse(data []byte) (*Gallery, error) {
	var g Gallery
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse gallery: %w", err)
	}
	for i, s := range g.Shapes {
		if s.File == "" && len(s.Elements) == 0 {
			return nil, fmt.Errorf("parse gallery: shape %d (%q) has neither elements nor file", i, s.Name)
		}
		if s.File != "" && len(s.Elements) != 0 {
			return nil, fmt.Errorf("parse gallery: shape %d (%q) has both elements and file", i, s.Name)
		}
	}
	g.normalize()
	return &g, nil
}

// Load reads the gallery file at path.
func Load(path string) (*Gallery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gallery: %w", err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, err
	}
	g.dir = filepath.Dir(path)
	return g, nil
}

// Write encodes the gallery as YAML.
func (g *Gallery) Write(w io.Writer) error {
	g.normalize()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode gallery: %w", err)
	}
	return enc.Close()
}

// Add inserts or replaces the shape with the same name.
func (g *Gallery) Add(s Shape) {
	for i := range g.Shapes {
		if g.Shapes[i].Name == s.Name {
			g.Shapes[i] = s
			return
		}
	}
	g.Shapes = append(g.Shapes, s)
	g.normalize()
}

// AddFile registers a standalone SVG file, named after its path.
func (g *Gallery) AddFile(path string) {
	g.Add(Shape{Name: path, File: path})
}

func (g *Gallery) Len() int { return len(g.Shapes) }

// Names returns the shape names, in index order.
func (g *Gallery) Names() []string {
	out := make([]string, len(g.Shapes))
	for i, s := range g.Shapes {
		out[i] = s.Name
	}
	return out
}

// Select returns the shape at the given index.
func (g *Gallery) Select(index int) (Shape, error) {
	if len(g.Shapes) == 0 {
		return Shape{}, ErrEmptyGallery
	}
	if index < 0 || index >= len(g.Shapes) {
		return Shape{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutRange, index, len(g.Shapes))
	}
	return g.Shapes[index], nil
}

// Cycle moves index by delta, wrapping around at both ends.
func Cycle(index, delta, length int) int {
	if length <= 0 {
		return 0
	}
	index = (index + delta) % length
	if index < 0 {
		index += length
	}
	return index
}

// Source returns the complete SVG document of the shape: the
// file content, or the inline elements wrapped in an <svg> root.
func (g *Gallery) Source(s Shape) (string, error) {
	if s.File != "" {
		path := s.File
		if !filepath.IsAbs(path) && g.dir != "" {
			path = filepath.Join(g.dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read shape %q: %w", s.Name, err)
		}
		return string(data), nil
	}
	var sb strings.Builder
	if err := writeDocument(&sb, g.ViewBox, s.Elements); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Render extracts and renders the shape at index.
func (g *Gallery) Render(index int, opts svgicon.Options) (*svgicon.Result, error) {
	s, err := g.Select(index)
	if err != nil {
		return nil, err
	}
	src, err := g.Source(s)
	if err != nil {
		return nil, err
	}
	res, err := svgicon.RenderString(src, opts)
	if err != nil {
		return nil, fmt.Errorf("shape %q: %w", s.Name, err)
	}
	return res, nil
}

// WriteSnapshot writes a standalone SVG document holding the given
// raw elements, one per line, in a 0 0 100 100 viewBox.
func WriteSnapshot(w io.Writer, elements []string) error {
	return writeDocument(w, DefaultViewBox, elements)
}

// SaveSnapshot writes the snapshot of the shape at index to path.
// File shapes are copied as is.
func (g *Gallery) SaveSnapshot(path string, index int) error {
	s, err := g.Select(index)
	if err != nil {
		return err
	}
	// read first, path may be the shape file itself
	src, err := g.Source(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func writeDocument(w io.Writer, viewBox string, elements []string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, `<?xml version="1.0" encoding="utf-8"?>`)
	fmt.Fprintf(bw, "<svg viewBox=\"%s\" xmlns=\"http://www.w3.org/2000/svg\">\n", viewBox)
	for _, e := range elements {
		fmt.Fprintln(bw, e)
	}
	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}
