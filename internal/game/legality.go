// path: internal/game/legality.go
package game

import (
	"fmt"

	"blokus_poc/internal/shared"
)

// checkPlayable verifies the shared preconditions for placement queries:
// the current player has not already used this piece's kind, and the
// piece is anchored. On success it returns the absolute squares.
func (e *Engine) checkPlayable(p *Piece) ([]shared.Point, error) {
	if _, dup := e.player(e.curr).played[p.Kind()]; dup {
		return nil, fmt.Errorf("%w: player %d, kind %s", ErrAlreadyPlayed, e.curr, p.Kind())
	}
	return p.Squares()
}

// AnyWallCollisions reports whether any square of the piece would land
// outside the board.
func (e *Engine) AnyWallCollisions(p *Piece) (bool, error) {
	squares, err := e.checkPlayable(p)
	if err != nil {
		return false, err
	}
	return e.anyWallCollisions(squares), nil
}

// AnyCollisions reports whether the piece would collide with a wall or
// overlap any previously played square, of any player.
func (e *Engine) AnyCollisions(p *Piece) (bool, error) {
	squares, err := e.checkPlayable(p)
	if err != nil {
		return false, err
	}
	return e.anyCollisions(squares), nil
}

// LegalToPlace reports whether the current player may place the piece
// where it is anchored. A player's first piece must cover a start
// position; every later piece must touch the player's own territory at a
// corner and never along an edge.
func (e *Engine) LegalToPlace(p *Piece) (bool, error) {
	squares, err := e.checkPlayable(p)
	if err != nil {
		return false, err
	}
	return e.legalToPlace(p, squares), nil
}

func (e *Engine) anyWallCollisions(squares []shared.Point) bool {
	for _, sq := range squares {
		if !e.inBounds(sq) {
			return true
		}
	}
	return false
}

func (e *Engine) anyCollisions(squares []shared.Point) bool {
	if e.anyWallCollisions(squares) {
		return true
	}
	for _, sq := range squares {
		if e.grid[sq.Row][sq.Col] != nil {
			return true
		}
	}
	return false
}

func (e *Engine) legalToPlace(p *Piece, squares []shared.Point) bool {
	if e.gameOver {
		return false
	}
	if e.anyCollisions(squares) {
		return false
	}

	ps := e.player(e.curr)
	if len(ps.played) == 0 {
		for _, sq := range squares {
			if _, ok := e.starts[sq]; ok {
				return true
			}
		}
		return false
	}

	// Neighbor queries cannot fail here: checkPlayable already proved
	// the piece is anchored.
	cardinals, err := p.CardinalNeighbors()
	if err != nil {
		return false
	}
	for n := range cardinals {
		if e.ownedBy(ps, n) {
			return false
		}
	}
	intercardinals, err := p.IntercardinalNeighbors()
	if err != nil {
		return false
	}
	for n := range intercardinals {
		if e.ownedBy(ps, n) {
			return true
		}
	}
	return false
}
