// path: internal/game/movegen.go
package game

import (
	"fmt"
	"strings"

	"blokus_poc/internal/shared"
)

// orientation is one distinct way a shape can lie on the board, together
// with the flip/rotation that produced it.
type orientation struct {
	faceUp   bool
	rotation int
	squares  []shared.Point
}

// AvailableMoves enumerates every legal placement for the current player:
// each unplayed kind, each distinct orientation, anchored so that some
// square covers a candidate target point. Targets are the start positions
// before the player's first move and the empty corner-adjacent points of
// the player's territory afterwards; a legal piece must cover one of
// them, so the pruning loses nothing. Every candidate is confirmed by the
// same LegalToPlace used for direct placement.
func (e *Engine) AvailableMoves() []*Piece {
	if e.gameOver {
		return nil
	}
	targets := e.anchorTargets(e.player(e.curr))
	if len(targets) == 0 {
		return nil
	}

	var moves []*Piece
	for _, kind := range e.RemainingShapes(e.curr) {
		for _, orient := range e.orientations(kind) {
			tried := make(map[shared.Point]struct{}, len(targets)*len(orient.squares))
			for _, target := range targets {
				for _, sq := range orient.squares {
					anchor := shared.Point{Row: target.Row - sq.Row, Col: target.Col - sq.Col}
					if _, dup := tried[anchor]; dup {
						continue
					}
					tried[anchor] = struct{}{}

					piece, _ := e.NewPieceFor(kind, orient.faceUp, orient.rotation, anchor)
					legal, err := e.LegalToPlace(piece)
					if err != nil || !legal {
						continue
					}
					moves = append(moves, piece)
				}
			}
		}
	}
	return moves
}

// orientations returns the distinct orientations of a kind: 0-1 flips
// times 0-3 right rotations, deduplicated by the resulting relative
// square set so symmetric shapes collapse.
func (e *Engine) orientations(kind shared.ShapeKind) []orientation {
	seen := make(map[string]struct{}, 8)
	out := make([]orientation, 0, 8)
	for _, faceUp := range []bool{true, false} {
		for rotation := 0; rotation < 4; rotation++ {
			p := NewPiece(e.shapes[kind], faceUp, rotation)
			key := squaresKey(p.shape.Squares)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, orientation{
				faceUp:   faceUp,
				rotation: rotation,
				squares:  p.shape.Squares,
			})
		}
	}
	return out
}

// anchorTargets returns the board points at least one square of a legal
// piece must cover for the current player.
func (e *Engine) anchorTargets(ps *playerState) []shared.Point {
	if len(ps.played) == 0 {
		return e.StartPositions()
	}
	var (
		targets []shared.Point
		seen    = make(map[shared.Point]struct{})
	)
	for _, sq := range ps.ownedList {
		for _, delta := range shared.IntercardinalOffsets {
			n := sq.Add(delta)
			if !e.inBounds(n) || e.grid[n.Row][n.Col] != nil {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			targets = append(targets, n)
		}
	}
	return targets
}

// squaresKey canonicalizes a square set into a comparable string.
func squaresKey(squares []shared.Point) string {
	sorted := make([]shared.Point, len(squares))
	copy(sorted, squares)
	sortPoints(sorted)
	var b strings.Builder
	for _, sq := range sorted {
		fmt.Fprintf(&b, "%d,%d;", sq.Row, sq.Col)
	}
	return b.String()
}
