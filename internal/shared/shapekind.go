// path: internal/shared/shapekind.go
package shared

import "fmt"

// ShapeKind identifies one of the 21 Blokus polyomino shapes. The set is
// closed and is never extended at runtime. Each kind has a one-character
// name; KindLetterO is the square tetromino "O", distinct from KindOne "1".
type ShapeKind uint8

const (
	KindOne ShapeKind = iota
	KindTwo
	KindThree
	KindFour
	KindFive
	KindSeven
	KindA
	KindC
	KindF
	KindS
	KindL
	KindN
	KindLetterO
	KindP
	KindT
	KindU
	KindV
	KindW
	KindX
	KindY
	KindZ
)

// NumShapeKinds is the number of shape kinds each player starts with.
const NumShapeKinds = 21

// AllShapeKinds lists every kind in catalog order.
var AllShapeKinds = [NumShapeKinds]ShapeKind{
	KindOne, KindTwo, KindThree, KindFour, KindFive, KindSeven, KindA,
	KindC, KindF, KindS, KindL, KindN, KindLetterO, KindP, KindT, KindU,
	KindV, KindW, KindX, KindY, KindZ,
}

var kindNames = [NumShapeKinds]string{
	"1", "2", "3", "4", "5", "7", "A", "C", "F", "S", "L", "N", "O", "P",
	"T", "U", "V", "W", "X", "Y", "Z",
}

var kindSizes = [NumShapeKinds]int{
	1, 2, 3, 4, 5, 4, 4, 3, 5, 4, 5, 5, 4, 5, 5, 5, 5, 5, 5, 5, 5,
}

func (k ShapeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Size returns the number of squares in the kind's polyomino.
func (k ShapeKind) Size() int {
	if int(k) < len(kindSizes) {
		return kindSizes[k]
	}
	return 0
}

// ParseShapeKind resolves a one-character kind name.
func ParseShapeKind(s string) (ShapeKind, bool) {
	for i, name := range kindNames {
		if name == s {
			return ShapeKind(i), true
		}
	}
	return 0, false
}
