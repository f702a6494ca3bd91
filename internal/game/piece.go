// path: internal/game/piece.go
package game

import (
	"fmt"

	"blokus_poc/internal/shared"
)

// Piece orients a single shape instance for placement on a board. Each
// piece owns an exclusive deep copy of its shape, so in-place transforms
// never alias across pieces. The optional anchor binds the shape's origin
// to an absolute board point; operations that need absolute coordinates
// fail until it is set.
type Piece struct {
	shape    *Shape
	anchor   shared.Point
	anchored bool
}

// NewPiece deep-copies shape and applies the initial orientation: one
// horizontal flip when faceUp is false, then rotation (mod 4) right
// rotations. The anchor starts unset.
func NewPiece(shape *Shape, faceUp bool, rotation int) *Piece {
	p := &Piece{shape: shape.Clone()}
	if !faceUp {
		p.shape.FlipHorizontally()
	}
	for i := 0; i < ((rotation%4)+4)%4; i++ {
		p.shape.RotateRight()
	}
	return p
}

// Kind returns the shape kind this piece instantiates.
func (p *Piece) Kind() shared.ShapeKind { return p.shape.Kind }

// Shape exposes the piece's owned shape copy. Mutate it only through the
// piece's transform methods.
func (p *Piece) Shape() *Shape { return p.shape }

// Anchor returns the anchor point and whether it has been set.
func (p *Piece) Anchor() (shared.Point, bool) { return p.anchor, p.anchored }

// SetAnchor binds the shape origin to an absolute board point,
// overwriting any previous anchor. No legality check happens here.
func (p *Piece) SetAnchor(anchor shared.Point) {
	p.anchor = anchor
	p.anchored = true
}

func (p *Piece) checkAnchor() error {
	if !p.anchored {
		return fmt.Errorf("%w: %s", ErrNoAnchor, p.shape.Kind)
	}
	return nil
}

// FlipHorizontally flips the piece in place. An unanchored piece cannot
// be reasoned about on a board, so transforms fail until SetAnchor.
func (p *Piece) FlipHorizontally() error {
	if err := p.checkAnchor(); err != nil {
		return err
	}
	p.shape.FlipHorizontally()
	return nil
}

// RotateRight rotates the piece 90 degrees clockwise in place.
func (p *Piece) RotateRight() error {
	if err := p.checkAnchor(); err != nil {
		return err
	}
	p.shape.RotateRight()
	return nil
}

// RotateLeft rotates the piece 90 degrees counter-clockwise in place.
func (p *Piece) RotateLeft() error {
	if err := p.checkAnchor(); err != nil {
		return err
	}
	p.shape.RotateLeft()
	return nil
}

// Squares returns the absolute board points covered by the piece.
func (p *Piece) Squares() ([]shared.Point, error) {
	if err := p.checkAnchor(); err != nil {
		return nil, err
	}
	out := make([]shared.Point, len(p.shape.Squares))
	for i, sq := range p.shape.Squares {
		out[i] = p.anchor.Add(sq)
	}
	return out, nil
}

// CardinalNeighbors returns the union of edge-adjacent points over all of
// the piece's squares, excluding the piece's own squares.
func (p *Piece) CardinalNeighbors() (map[shared.Point]struct{}, error) {
	return p.neighbors(shared.CardinalOffsets)
}

// IntercardinalNeighbors returns the union of corner-adjacent points over
// all of the piece's squares, excluding the piece's own squares.
func (p *Piece) IntercardinalNeighbors() (map[shared.Point]struct{}, error) {
	return p.neighbors(shared.IntercardinalOffsets)
}

func (p *Piece) neighbors(offsets [4]shared.Point) (map[shared.Point]struct{}, error) {
	squares, err := p.Squares()
	if err != nil {
		return nil, err
	}
	own := make(map[shared.Point]struct{}, len(squares))
	for _, sq := range squares {
		own[sq] = struct{}{}
	}
	out := make(map[shared.Point]struct{}, 4*len(squares))
	for _, sq := range squares {
		for _, delta := range offsets {
			n := sq.Add(delta)
			if _, self := own[n]; !self {
				out[n] = struct{}{}
			}
		}
	}
	return out, nil
}
