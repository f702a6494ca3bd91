// path: internal/shared/point.go
package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a board coordinate. Rows grow downward and columns grow
// rightward, so grids are indexed grid[r][c] with (0, 0) top-left.
// Points are compared by value.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.Row, p.Col) }

// Add returns p translated by delta.
func (p Point) Add(delta Point) Point {
	return Point{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Key packs p into a uint32 map key. Callers must only pack in-bounds
// board points, which keeps both coordinates in [0, 65536).
func (p Point) Key() uint32 { return uint32(p.Row)<<16 | uint32(p.Col) }

// CardinalOffsets are the four edge-adjacent deltas (N, S, W, E).
var CardinalOffsets = [4]Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// IntercardinalOffsets are the four corner-adjacent deltas (NW, NE, SW, SE).
var IntercardinalOffsets = [4]Point{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// ParsePoint reads a "row,col" pair.
func ParsePoint(s string) (Point, bool) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Point{}, false
	}
	row, errRow := strconv.Atoi(strings.TrimSpace(parts[0]))
	col, errCol := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errRow != nil || errCol != nil {
		return Point{}, false
	}
	return Point{Row: row, Col: col}, true
}
