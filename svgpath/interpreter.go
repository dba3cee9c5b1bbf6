package svgpath

import (
	"fmt"
	"unicode"
)

// argument counts of the supported commands
var commandArity = map[rune]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7, 'Z': 0,
}

// Interpreter walks path command groups and produces
// normalized points. Geometry is evaluated in user space,
// transformed by Matrix, then normalized by ViewBox.
//
// An Interpreter may be reused: each call to Run starts from
// a fresh state.
type Interpreter struct {
	ViewBox ViewBox
	Matrix  Matrix2D

	CurveSteps int // samples per Bézier segment, DefaultSteps if zero
	ArcPoints  int // samples per arc are ArcPoints + 1, DefaultSteps if zero

	points   Path
	warnings []string

	current      Vec  // current point, in user space
	subpathStart Vec  // target of the next close command
	started      bool // a moveto has been seen
	prevCommand  rune // upper case letter of the previous segment
	prevControl  Vec  // last control point, used to reflect for S and T
}

// NewInterpreter returns an interpreter for the given viewBox and transform.
func NewInterpreter(vb ViewBox, m Matrix2D) *Interpreter {
	return &Interpreter{ViewBox: vb, Matrix: m}
}

// Warnings returns the messages collected by the last call to Run,
// for commands which have been ignored.
func (ip *Interpreter) Warnings() []string { return ip.warnings }

func (ip *Interpreter) reset() {
	ip.points = nil
	ip.warnings = nil
	ip.current, ip.subpathStart = Vec{}, Vec{}
	ip.started = false
	ip.prevCommand = 0
	ip.prevControl = Vec{}
}

// Flatten tokenizes and interprets the path data `d`.
func (ip *Interpreter) Flatten(d string) (Path, error) {
	groups, err := Tokenize(d)
	if err != nil {
		return nil, err
	}
	return ip.Run(groups)
}

// Run interprets the command groups, in order.
func (ip *Interpreter) Run(groups []CommandGroup) (Path, error) {
	if err := ip.ViewBox.Validate(); err != nil {
		return nil, err
	}
	ip.reset()
	for _, g := range groups {
		if err := ip.runGroup(g); err != nil {
			return nil, err
		}
	}
	out := ip.points
	ip.points = nil
	return out, nil
}

// emit transforms and normalizes a user space point
func (ip *Interpreter) emit(p Vec, connect bool) {
	x, y := ip.Matrix.Transform(p.X, p.Y)
	x, y = ip.ViewBox.Normalize(x, y)
	ip.points = append(ip.points, Point{X: x, Y: y, Connect: connect})
}

func (ip *Interpreter) emitAll(ps []Vec) {
	for _, p := range ps {
		ip.emit(p, true)
	}
}

func (ip *Interpreter) curveSteps() int {
	if ip.CurveSteps > 0 {
		return ip.CurveSteps
	}
	return DefaultSteps
}

func (ip *Interpreter) arcPoints() int {
	if ip.ArcPoints > 0 {
		return ip.ArcPoints
	}
	return DefaultSteps
}

func (ip *Interpreter) runGroup(g CommandGroup) error {
	key := unicode.ToUpper(g.Command)
	arity, ok := commandArity[key]
	if !ok {
		ip.warnings = append(ip.warnings, fmt.Sprintf("unsupported path command %q ignored", g.Command))
		return nil
	}
	if !ip.started && key != 'M' {
		return fmt.Errorf("%w: command %q before moveto", ErrMalformedPath, g.Command)
	}
	relative := unicode.IsLower(g.Command)

	if arity == 0 {
		if len(g.Args) != 0 {
			ip.warnings = append(ip.warnings, fmt.Sprintf("arguments of close command %q ignored", g.Command))
		}
		ip.closePath()
		return nil
	}
	if len(g.Args) == 0 || len(g.Args)%arity != 0 {
		return fmt.Errorf("%w: command %q expects a multiple of %d arguments, got %d",
			ErrMalformedPath, g.Command, arity, len(g.Args))
	}
	for i := 0; i < len(g.Args); i += arity {
		args := g.Args[i : i+arity]
		cmd := key
		if cmd == 'M' && i > 0 { // extra pairs are implicit lineto
			cmd = 'L'
		}
		ip.segment(cmd, relative, args)
	}
	return nil
}

// abs resolves the coordinates (x, y) against the current point
// for relative commands.
func (ip *Interpreter) abs(relative bool, x, y float64) Vec {
	if relative {
		return Vec{X: ip.current.X + x, Y: ip.current.Y + y}
	}
	return Vec{X: x, Y: y}
}

func (ip *Interpreter) segment(cmd rune, relative bool, args []float64) {
	switch cmd {
	case 'M':
		p := ip.abs(relative, args[0], args[1])
		// the first moveto is the origin of the path;
		// the next ones lift the pen
		ip.emit(p, !ip.started)
		ip.started = true
		ip.current, ip.subpathStart = p, p
	case 'L':
		ip.lineTo(ip.abs(relative, args[0], args[1]))
	case 'H':
		x := args[0]
		if relative {
			x += ip.current.X
		}
		ip.lineTo(Vec{X: x, Y: ip.current.Y})
	case 'V':
		y := args[0]
		if relative {
			y += ip.current.Y
		}
		ip.lineTo(Vec{X: ip.current.X, Y: y})
	case 'C':
		c1 := ip.abs(relative, args[0], args[1])
		c2 := ip.abs(relative, args[2], args[3])
		end := ip.abs(relative, args[4], args[5])
		ip.cubicTo(c1, c2, end)
	case 'S':
		c1 := ip.current
		if ip.prevCommand == 'C' || ip.prevCommand == 'S' {
			c1 = ip.prevControl.reflect(ip.current)
		}
		c2 := ip.abs(relative, args[0], args[1])
		end := ip.abs(relative, args[2], args[3])
		ip.cubicTo(c1, c2, end)
	case 'Q':
		c := ip.abs(relative, args[0], args[1])
		end := ip.abs(relative, args[2], args[3])
		ip.quadTo(c, end)
	case 'T':
		c := ip.current
		if ip.prevCommand == 'Q' || ip.prevCommand == 'T' {
			c = ip.prevControl.reflect(ip.current)
		}
		ip.quadTo(c, ip.abs(relative, args[0], args[1]))
	case 'A':
		end := ip.abs(relative, args[5], args[6])
		ip.emitAll(SampleArc(ip.current, args[0], args[1], args[2], args[3] != 0, args[4] != 0, end, ip.arcPoints()))
		ip.current = end
	}
	ip.prevCommand = cmd
}

func (ip *Interpreter) lineTo(p Vec) {
	ip.emit(p, true)
	ip.current = p
}

func (ip *Interpreter) cubicTo(c1, c2, end Vec) {
	ip.emitAll(SampleCubic(ip.current, c1, c2, end, ip.curveSteps()))
	ip.prevControl = c2
	ip.current = end
}

func (ip *Interpreter) quadTo(c, end Vec) {
	ip.emitAll(SampleQuad(ip.current, c, end, ip.curveSteps()))
	ip.prevControl = c
	ip.current = end
}

// closePath reconnects to the start of the current subpath
func (ip *Interpreter) closePath() {
	ip.emit(ip.subpathStart, true)
	ip.current = ip.subpathStart
	ip.prevCommand = 'Z'
}
