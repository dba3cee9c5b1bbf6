package svgpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CommandGroup is one path command letter followed
// by its numeric arguments, as found in the path data.
type CommandGroup struct {
	Command rune
	Args    []float64
}

func (g CommandGroup) String() string {
	chunks := make([]string, 0, len(g.Args)+1)
	chunks = append(chunks, string(g.Command))
	for _, a := range g.Args {
		chunks = append(chunks, strconv.FormatFloat(a, 'g', -1, 64))
	}
	return strings.Join(chunks, " ")
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number %q", ErrMalformedPath, s)
	}
	return f, nil
}

// parseNumbers reads a comma or space separated list of numbers.
func parseNumbers(s string) ([]float64, error) {
	fields := splitOnCommaOrSpace(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ParseNumbers reads a comma or space separated list of numbers,
// such as a viewBox or a polyline points attribute.
func ParseNumbers(s string) ([]float64, error) { return parseNumbers(s) }

// splitPathData splits `d` on single separators: one whitespace
// character, one comma, or a comma followed by one whitespace character.
// Empty tokens, such as those left by a trailing or doubled
// separator, are rejected.
func splitPathData(d string) ([]string, error) {
	var (
		tokens []string
		start  int
	)
	for i := 0; i < len(d); {
		r, size := utf8.DecodeRuneInString(d[i:])
		if r != ',' && !unicode.IsSpace(r) {
			i += size
			continue
		}
		if i == start {
			return nil, fmt.Errorf("%w: empty token at offset %d in %q", ErrMalformedPath, i, d)
		}
		tokens = append(tokens, d[start:i])
		i += size
		if r == ',' {
			if next, size := utf8.DecodeRuneInString(d[i:]); unicode.IsSpace(next) {
				i += size
			}
		}
		start = i
	}
	if start == len(d) {
		if len(d) == 0 {
			return nil, fmt.Errorf("%w: empty path data", ErrMalformedPath)
		}
		return nil, fmt.Errorf("%w: trailing separator in %q", ErrMalformedPath, d)
	}
	return append(tokens, d[start:]), nil
}

// Tokenize splits the path data `d` into command groups.
// Every token starting with a letter opens a new group, and
// the numeric tokens following it are its arguments. A letter
// directly followed by a number (like "M10") is split in two.
func Tokenize(d string) ([]CommandGroup, error) {
	tokens, err := splitPathData(d)
	if err != nil {
		return nil, err
	}
	var groups []CommandGroup
	for _, tok := range tokens {
		r, size := utf8.DecodeRuneInString(tok)
		if unicode.IsLetter(r) {
			groups = append(groups, CommandGroup{Command: r})
			tok = tok[size:]
			if tok == "" {
				continue
			}
		}
		if len(groups) == 0 {
			return nil, fmt.Errorf("%w: argument %q before any command", ErrMalformedPath, tok)
		}
		v, err := parseFloat(tok)
		if err != nil {
			return nil, err
		}
		last := &groups[len(groups)-1]
		last.Args = append(last.Args, v)
	}
	return groups, nil
}
