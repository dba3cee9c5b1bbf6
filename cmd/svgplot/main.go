// Command svgplot plots simple SVG shapes in the terminal, with braille
// characters, and optionally exports them as PNG or PDF.
//
// Without argument, the built-in demonstration shapes are used. SVG files
// given as arguments are added to the gallery, named after their path.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/benoitkugler/svgplot/gallery"
	"github.com/benoitkugler/svgplot/svgdraw"
	"github.com/benoitkugler/svgplot/svgicon"
	"github.com/benoitkugler/svgplot/svgpdf"
	"github.com/benoitkugler/svgplot/svgraster"
	"github.com/charmbracelet/x/ansi"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"
)

const (
	defaultCols = 80
	defaultRows = 24

	// lines reserved above the canvas: tab bar and status
	headerRows = 2
)

var (
	// Flags
	galleryFile = flag.String("gallery", "", "YAML gallery file (built-in shapes if empty)")
	index       = flag.Int("index", 0, "Index of the shape to plot, in name order")
	list        = flag.Bool("list", false, "List the shapes and exit")
	pngOut      = flag.String("png", "", "Also write the shape as a PNG image")
	pngSize     = flag.Int("size", 400, "Size of the PNG image, in pixels")
	pdfOut      = flag.String("pdf", "", "Also write the shape as a PDF document")
	save        = flag.Bool("save", false, "Write the shape as a standalone SVG to "+gallery.SnapshotFilename)
	interactive = flag.Bool("i", false, "Browse the shapes with the keyboard (n: next, p: previous, s: save, q: quit)")
	watch       = flag.Bool("watch", false, "Plot again when the gallery or SVG files change")
	errorMode   = flag.String("error-mode", "warn", "Invalid elements handling: ignore, warn or strict")
	curveSteps  = flag.Int("curve-steps", 0, "Samples per Bézier segment (default 100)")
	arcPoints   = flag.Int("arc-points", 0, "Samples per arc, minus one (default 100)")
	noColor     = flag.Bool("no-color", false, "Disable terminal colors")
	verbose     = flag.Bool("v", false, "Verbose logging on stderr")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file.svg ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		svgicon.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	mode, err := svgicon.ParseErrorMode(*errorMode)
	if err != nil {
		log.Fatal(err)
	}
	p := &plotter{
		opts: svgicon.Options{
			ErrorMode:  mode,
			CurveSteps: *curveSteps,
			ArcPoints:  *arcPoints,
		},
		files:   flag.Args(),
		index:   *index,
		out:     os.Stdout,
		colored: !*noColor && term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err = p.load(); err != nil {
		log.Fatal(err)
	}

	if *list {
		for i, name := range p.gallery.Names() {
			fmt.Fprintf(p.out, "%3d  %s\n", i, name)
		}
		return
	}

	if err = p.export(); err != nil {
		log.Fatal(err)
	}

	switch {
	case *interactive:
		err = p.browse(os.Stdin)
	case *watch:
		err = p.watch()
	default:
		err = p.plot()
	}
	if err != nil {
		log.Fatal(err)
	}
}

// plotter holds the state of the CLI: the loaded
// gallery and the explicitly selected shape index.
type plotter struct {
	opts    svgicon.Options
	files   []string
	gallery *gallery.Gallery
	index   int

	out     io.Writer
	colored bool
}

func (p *plotter) load() error {
	g := gallery.Default()
	if *galleryFile != "" {
		var err error
		g, err = gallery.Load(*galleryFile)
		if err != nil {
			return err
		}
	}
	for _, file := range p.files {
		g.AddFile(file)
	}
	if g.Len() == 0 {
		return gallery.ErrEmptyGallery
	}
	if p.index < 0 || p.index >= g.Len() {
		return fmt.Errorf("invalid -index %d: the gallery has %d shapes", p.index, g.Len())
	}
	p.gallery = g
	return nil
}

// canvasSize returns the canvas dimensions fitting the terminal.
func (p *plotter) canvasSize() (cols, rows int) {
	cols, rows = defaultCols, defaultRows
	if f, ok := p.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			cols, rows = w, h
		}
	}
	return cols, max(rows-headerRows, 1)
}

func (p *plotter) tabBar(width int) string {
	names := p.gallery.Names()
	chunks := make([]string, len(names))
	for i, name := range names {
		if i == p.index {
			chunks[i] = "[" + name + "]"
		} else {
			chunks[i] = " " + name + " "
		}
	}
	return ansi.Truncate(strings.Join(chunks, " "), width, "…")
}

// plot renders the selected shape and prints it.
func (p *plotter) plot() error {
	res, err := p.gallery.Render(p.index, p.opts)
	if err != nil {
		return err
	}
	cols, rows := p.canvasSize()
	canvas := svgdraw.NewCanvas(cols, rows)
	svgdraw.Draw(res.Records, canvas)

	w := bufio.NewWriter(p.out)
	fmt.Fprintln(w, p.tabBar(cols))
	status := fmt.Sprintf("%d records", len(res.Records))
	if n := len(res.Diagnostics); n != 0 {
		status += fmt.Sprintf(", %d skipped: %s", n, res.Diagnostics[0])
	}
	fmt.Fprintln(w, ansi.Truncate(status, cols, "…"))
	for _, line := range canvas.Lines(p.colored) {
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

func (p *plotter) redraw() error {
	if p.colored {
		io.WriteString(p.out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
	}
	return p.plot()
}

// export writes the files requested by the flags.
func (p *plotter) export() error {
	if *save {
		if err := p.gallery.SaveSnapshot(gallery.SnapshotFilename, p.index); err != nil {
			return err
		}
	}
	if *pngOut == "" && *pdfOut == "" {
		return nil
	}
	res, err := p.gallery.Render(p.index, p.opts)
	if err != nil {
		return err
	}
	if *pngOut != "" {
		img := svgraster.RasterRecords(res.Records, svgraster.Options{
			Width: *pngSize, Height: *pngSize, Oversample: 2,
		})
		if err = writeFile(*pngOut, func(w io.Writer) error { return svgraster.WritePNG(w, img) }); err != nil {
			return err
		}
	}
	if *pdfOut != "" {
		name := p.gallery.Names()[p.index]
		err = writeFile(*pdfOut, func(w io.Writer) error {
			return svgpdf.WritePDF(w, res.Records, svgpdf.Options{Title: name, Compression: true})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// browse reads one command per line from `in`.
func (p *plotter) browse(in io.Reader) error {
	if err := p.redraw(); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "n", "":
			p.index = gallery.Cycle(p.index, 1, p.gallery.Len())
		case "p":
			p.index = gallery.Cycle(p.index, -1, p.gallery.Len())
		case "s":
			if err := p.gallery.SaveSnapshot(gallery.SnapshotFilename, p.index); err != nil {
				return err
			}
			fmt.Fprintf(p.out, "saved %s\n", gallery.SnapshotFilename)
			continue
		case "q":
			return nil
		default:
			continue
		}
		if err := p.redraw(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// watch plots the shape, then plots it again each time one of
// the source files is written, until interrupted.
func (p *plotter) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	sources := append([]string(nil), p.files...)
	if *galleryFile != "" {
		sources = append(sources, *galleryFile)
	}
	if len(sources) == 0 {
		return errors.New("-watch requires a gallery or SVG files")
	}
	ws, err := newWatchSet(sources)
	if err != nil {
		return err
	}
	for _, dir := range ws.dirs() {
		if err = watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	if err = p.redraw(); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	// editors often write in several steps: wait for the burst to end
	const settle = 100 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case ev := <-watcher.Events:
			if ws.matches(ev) {
				timer.Reset(settle)
			}
		case err := <-watcher.Errors:
			svgicon.Logger().Warn("watcher error", "err", err)
		case <-timer.C:
			if err := p.load(); err != nil {
				// keep the previous gallery until the file is fixed
				fmt.Fprintln(p.out, err)
				continue
			}
			if err := p.redraw(); err != nil {
				fmt.Fprintln(p.out, err)
			}
		case <-sig:
			return nil
		}
	}
}

// watchSet holds the watched files, as cleaned absolute paths.
// Their parent directories are watched rather than the files, since
// editors often save by renaming a new file over the old one.
type watchSet map[string]bool

func newWatchSet(files []string) (watchSet, error) {
	ws := make(watchSet, len(files))
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		ws[abs] = true
	}
	return ws, nil
}

// dirs returns the directories to watch, sorted.
func (ws watchSet) dirs() []string {
	seen := map[string]bool{}
	var out []string
	for file := range ws {
		if dir := filepath.Dir(file); !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}
	sort.Strings(out)
	return out
}

// matches reports whether the event may have changed a watched file.
func (ws watchSet) matches(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	return err == nil && ws[abs]
}
