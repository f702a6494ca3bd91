// path: internal/game/shape.go
package game

import (
	"fmt"
	"strings"

	"blokus_poc/internal/shared"
)

// Shape is one of the 21 polyomino templates. Squares are stored relative
// to the shape's origin, so the origin appears as (0, 0) among the squares
// except for the one template whose origin marker sits on an empty cell.
//
// CanBeTransformed records whether the source template carried an explicit
// origin marker. It is advisory metadata: flips and rotations are applied
// mechanically regardless.
type Shape struct {
	Kind             shared.ShapeKind
	CanBeTransformed bool
	Squares          []shared.Point
}

// ParseShape builds a Shape from its textual template. The template is a
// character grid: 'X' marks a square, 'O' a square that is also the
// origin, '@' an origin on an empty cell, and spaces mark empty cells.
// The first line is always blank and discarded; the remaining lines share
// a uniform indent that defines column 0. Without an origin marker the
// origin defaults to (0, 0) and CanBeTransformed is false.
func ParseShape(kind shared.ShapeKind, template string) (*Shape, error) {
	lines := strings.Split(template, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	lines = dedent(lines)

	var (
		squares   []shared.Point
		origin    shared.Point
		hasOrigin bool
	)
	for r, line := range lines {
		for c, ch := range line {
			pos := shared.Point{Row: r, Col: c}
			switch ch {
			case 'X':
				squares = append(squares, pos)
			case 'O', '@':
				if hasOrigin {
					return nil, fmt.Errorf("%w: %s has more than one origin marker", ErrMalformedTemplate, kind)
				}
				hasOrigin = true
				origin = pos
				if ch == 'O' {
					squares = append(squares, pos)
				}
			case ' ':
			default:
				return nil, fmt.Errorf("%w: %s contains %q", ErrMalformedTemplate, kind, ch)
			}
		}
	}
	if len(squares) == 0 {
		return nil, fmt.Errorf("%w: %s has no occupied cells", ErrMalformedTemplate, kind)
	}

	rel := make([]shared.Point, len(squares))
	for i, sq := range squares {
		rel[i] = shared.Point{Row: sq.Row - origin.Row, Col: sq.Col - origin.Col}
	}
	return &Shape{Kind: kind, CanBeTransformed: hasOrigin, Squares: rel}, nil
}

// dedent strips the indentation shared by every non-blank line.
func dedent(lines []string) []string {
	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		lead := len(line) - len(trimmed)
		if indent < 0 || lead < indent {
			indent = lead
		}
	}
	if indent <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= indent {
			out[i] = line[indent:]
		} else {
			out[i] = strings.TrimLeft(line, " ")
		}
	}
	return out
}

// Clone returns an independently mutable copy of the shape.
func (s *Shape) Clone() *Shape {
	squares := make([]shared.Point, len(s.Squares))
	copy(squares, s.Squares)
	return &Shape{Kind: s.Kind, CanBeTransformed: s.CanBeTransformed, Squares: squares}
}

// FlipHorizontally reflects every square across the vertical axis through
// the origin, in place: (r, c) -> (r, -c).
func (s *Shape) FlipHorizontally() {
	for i, sq := range s.Squares {
		s.Squares[i] = shared.Point{Row: sq.Row, Col: -sq.Col}
	}
}

// RotateRight rotates the squares 90 degrees clockwise about the origin,
// in place: (r, c) -> (c, -r).
func (s *Shape) RotateRight() {
	for i, sq := range s.Squares {
		s.Squares[i] = shared.Point{Row: sq.Col, Col: -sq.Row}
	}
}

// RotateLeft rotates the squares 90 degrees counter-clockwise about the
// origin, in place: (r, c) -> (-c, r).
func (s *Shape) RotateLeft() {
	for i, sq := range s.Squares {
		s.Squares[i] = shared.Point{Row: -sq.Col, Col: sq.Row}
	}
}
