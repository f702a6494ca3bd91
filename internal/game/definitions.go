// path: internal/game/definitions.go
package game

import (
	"fmt"

	"blokus_poc/internal/shared"
)

// definitions holds the canonical template for each of the 21 shape
// kinds. 'O' marks the rotation/flip origin; the "V" shape uses '@' for an
// origin with no square there. "1" and "O" have no origin marker, so their
// parsed shapes report CanBeTransformed as false.
var definitions = map[shared.ShapeKind]string{
	shared.KindOne: `
X
`,
	shared.KindTwo: `
OX
`,
	shared.KindThree: `
XOX
`,
	shared.KindC: `
OX
X
`,
	shared.KindFour: `
XOXX
`,
	shared.KindSeven: `
XX
 O
 X
`,
	shared.KindS: `
 OX
XX
`,
	shared.KindLetterO: `
XX
XX
`,
	shared.KindA: `
 X
XOX
`,
	shared.KindF: `
 XX
XO
 X
`,
	shared.KindFive: `
X
X
O
X
X
`,
	shared.KindL: `
X
X
O
XX
`,
	shared.KindN: `
 X
OX
X
X
`,
	shared.KindP: `
XX
XO
X
`,
	shared.KindT: `
XXX
 O
 X
`,
	shared.KindU: `
X X
XOX
`,
	shared.KindV: `
  X
 @X
XXX
`,
	shared.KindW: `
  X
 OX
XX
`,
	shared.KindX: `
 X
XOX
 X
`,
	shared.KindY: `
 X
XO
 X
 X
`,
	shared.KindZ: `
XX
 O
 XX
`,
}

// LoadShapes parses the 21 canonical templates into an immutable catalog.
// The catalog is built once per engine; pieces deep-copy their shape
// before transforming it, so the catalog entries are never mutated.
func LoadShapes() (map[shared.ShapeKind]*Shape, error) {
	shapes := make(map[shared.ShapeKind]*Shape, shared.NumShapeKinds)
	for _, kind := range shared.AllShapeKinds {
		template, ok := definitions[kind]
		if !ok {
			return nil, fmt.Errorf("%w: no template for %s", ErrMalformedTemplate, kind)
		}
		shape, err := ParseShape(kind, template)
		if err != nil {
			return nil, err
		}
		if got, want := len(shape.Squares), kind.Size(); got != want {
			return nil, fmt.Errorf("%w: %s parsed %d squares, want %d", ErrMalformedTemplate, kind, got, want)
		}
		shapes[kind] = shape
	}
	return shapes, nil
}
