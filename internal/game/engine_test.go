// path: internal/game/engine_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blokus_poc/internal/shared"
)

func newTestGame(t *testing.T, numPlayers, size int, starts []shared.Point) *Engine {
	t.Helper()
	eng, err := NewGame(numPlayers, size, starts)
	require.NoError(t, err)
	return eng
}

func fiveByFiveStarts() []shared.Point {
	return []shared.Point{{Row: 0, Col: 0}, {Row: 4, Col: 4}}
}

func countOccupied(eng *Engine) int {
	count := 0
	for _, row := range eng.Grid() {
		for _, cell := range row {
			if cell != nil {
				count++
			}
		}
	}
	return count
}

func TestNewGameValidation(t *testing.T) {
	tests := []struct {
		name       string
		numPlayers int
		size       int
		starts     []shared.Point
	}{
		{"zero players", 0, 5, fiveByFiveStarts()},
		{"five players", 5, 5, fiveByFiveStarts()},
		{"board too small", 2, 4, fiveByFiveStarts()},
		{"start off board", 2, 5, []shared.Point{{Row: 0, Col: 0}, {Row: 5, Col: 5}}},
		{"negative start", 1, 5, []shared.Point{{Row: -1, Col: 0}}},
		{"fewer starts than players", 2, 5, []shared.Point{{Row: 0, Col: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := NewGame(tt.numPlayers, tt.size, tt.starts)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, eng)
		})
	}
}

func TestNewGameInitialState(t *testing.T) {
	eng := newTestGame(t, 2, 5, fiveByFiveStarts())

	assert.Equal(t, 2, eng.NumPlayers())
	assert.Equal(t, 5, eng.Size())
	assert.Equal(t, 1, eng.CurrentPlayer())
	assert.False(t, eng.GameOver())
	assert.Nil(t, eng.Winners())
	assert.Empty(t, eng.RetiredPlayers())
	assert.Len(t, eng.RemainingShapes(1), shared.NumShapeKinds)
	assert.Equal(t, 0, countOccupied(eng))
}

func TestFirstMoveMustCoverStartPosition(t *testing.T) {
	eng := newTestGame(t, 1, 5, fiveByFiveStarts())

	piece, ok := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 1, Col: 1})
	require.True(t, ok)
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	assert.False(t, placed, "piece off the start positions must be rejected")
	assert.Equal(t, 0, countOccupied(eng))

	piece, _ = eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 0, Col: 0})
	placed, err = eng.MaybePlace(piece)
	require.NoError(t, err)
	require.True(t, placed)

	cell, occupied := eng.CellAt(shared.Point{Row: 0, Col: 0})
	require.True(t, occupied)
	assert.Equal(t, Cell{Player: 1, Kind: shared.KindOne}, cell)
}

func TestWallCollisionsForVerticalFive(t *testing.T) {
	eng := newTestGame(t, 1, 5, fiveByFiveStarts())

	// The FIVE bar spans rows anchor-2 .. anchor+2; only row 2 fits a
	// 5x5 board, at every column.
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			piece, _ := eng.NewPieceFor(shared.KindFive, true, 0, shared.Point{Row: row, Col: col})
			collides, err := eng.AnyWallCollisions(piece)
			require.NoError(t, err)
			assert.Equal(t, row != 2, collides, "anchor (%d, %d)", row, col)
		}
	}
}

func TestAnyCollisionsWithPlayedPieces(t *testing.T) {
	eng := newTestGame(t, 1, 5, fiveByFiveStarts())

	piece, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 0, Col: 0})
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	require.True(t, placed)

	overlapping, _ := eng.NewPieceFor(shared.KindTwo, true, 0, shared.Point{Row: 0, Col: 0})
	collides, err := eng.AnyCollisions(overlapping)
	require.NoError(t, err)
	assert.True(t, collides)

	free, _ := eng.NewPieceFor(shared.KindTwo, true, 0, shared.Point{Row: 2, Col: 2})
	collides, err = eng.AnyCollisions(free)
	require.NoError(t, err)
	assert.False(t, collides)
}

func TestAlreadyPlayedKindErrors(t *testing.T) {
	eng := newTestGame(t, 1, 5, fiveByFiveStarts())

	piece, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 0, Col: 0})
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	require.True(t, placed)

	// Single-player game: the turn wraps straight back to player 1.
	require.Equal(t, 1, eng.CurrentPlayer())

	dup, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 2, Col: 2})
	_, err = eng.MaybePlace(dup)
	require.ErrorIs(t, err, ErrAlreadyPlayed)
	_, err = eng.LegalToPlace(dup)
	require.ErrorIs(t, err, ErrAlreadyPlayed)
	_, err = eng.AnyWallCollisions(dup)
	require.ErrorIs(t, err, ErrAlreadyPlayed)
	assert.Equal(t, 1, countOccupied(eng), "failed precondition must not mutate the board")
}

func TestUnanchoredPieceErrors(t *testing.T) {
	eng := newTestGame(t, 1, 5, fiveByFiveStarts())
	shape, ok := eng.ShapeByKind(shared.KindOne)
	require.True(t, ok)
	piece := NewPiece(shape, true, 0)

	_, err := eng.AnyWallCollisions(piece)
	require.ErrorIs(t, err, ErrNoAnchor)
	_, err = eng.MaybePlace(piece)
	require.ErrorIs(t, err, ErrNoAnchor)
}

func TestCornerAndEdgeAdjacencyRules(t *testing.T) {
	eng := newTestGame(t, 1, 5, fiveByFiveStarts())

	piece, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 0, Col: 0})
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	require.True(t, placed)

	// Edge contact with own territory: TWO at (0, 1) touches (0, 0).
	edge, _ := eng.NewPieceFor(shared.KindTwo, true, 0, shared.Point{Row: 0, Col: 1})
	legal, err := eng.LegalToPlace(edge)
	require.NoError(t, err)
	assert.False(t, legal, "edge contact must be illegal")

	// No contact at all: TWO at (3, 3).
	island, _ := eng.NewPieceFor(shared.KindTwo, true, 0, shared.Point{Row: 3, Col: 3})
	legal, err = eng.LegalToPlace(island)
	require.NoError(t, err)
	assert.False(t, legal, "a detached piece must be illegal")

	// Corner contact only: TWO at (1, 1).
	corner, _ := eng.NewPieceFor(shared.KindTwo, true, 0, shared.Point{Row: 1, Col: 1})
	legal, err = eng.LegalToPlace(corner)
	require.NoError(t, err)
	assert.True(t, legal, "corner contact must be legal")

	placed, err = eng.MaybePlace(corner)
	require.NoError(t, err)
	assert.True(t, placed)
	assert.Equal(t, 3, countOccupied(eng))
}

func TestMaybePlaceLeavesStateUntouchedOnFailure(t *testing.T) {
	eng := newTestGame(t, 2, 5, fiveByFiveStarts())

	before := countOccupied(eng)
	currBefore := eng.CurrentPlayer()
	remainingBefore := eng.RemainingShapes(1)

	piece, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 2, Col: 2})
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	require.False(t, placed)

	assert.Equal(t, before, countOccupied(eng))
	assert.Equal(t, currBefore, eng.CurrentPlayer())
	assert.Equal(t, remainingBefore, eng.RemainingShapes(1))
}

func TestTurnAdvanceSkipsRetiredPlayers(t *testing.T) {
	eng := newTestGame(t, 2, 5, fiveByFiveStarts())

	eng.Retire()
	assert.Equal(t, []int{1}, eng.RetiredPlayers())
	assert.Equal(t, 2, eng.CurrentPlayer())
	assert.False(t, eng.GameOver())

	piece, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 4, Col: 4})
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	require.True(t, placed)

	// Player 1 is retired, so the turn stays with player 2.
	assert.Equal(t, 2, eng.CurrentPlayer())
}

func TestRetireBothPlayersEndsGame(t *testing.T) {
	eng := newTestGame(t, 2, 5, fiveByFiveStarts())

	eng.Retire()
	eng.Retire()

	require.True(t, eng.GameOver())
	assert.Equal(t, []int{1, 2}, eng.Winners())
	assert.Equal(t, -89, eng.GetScore(1))
	assert.Equal(t, -89, eng.GetScore(2))

	// Further retire calls are no-ops once the game is over.
	eng.Retire()
	assert.Equal(t, []int{1, 2}, eng.RetiredPlayers())
}

func TestScoreReflectsRemainingSquares(t *testing.T) {
	eng := newTestGame(t, 1, 5, fiveByFiveStarts())

	assert.Equal(t, -89, eng.GetScore(1))

	piece, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 0, Col: 0})
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	require.True(t, placed)

	assert.Equal(t, -88, eng.GetScore(1))
	assert.Equal(t, 0, eng.GetScore(0), "unknown players score zero")
}

func TestCompletionBonuses(t *testing.T) {
	eng := newTestGame(t, 1, 5, fiveByFiveStarts())
	ps := eng.player(1)
	for _, kind := range shared.AllShapeKinds {
		ps.played[kind] = struct{}{}
	}

	ps.lastPlayed = shared.KindW
	assert.Equal(t, 15, eng.GetScore(1))

	ps.lastPlayed = shared.KindOne
	assert.Equal(t, 20, eng.GetScore(1))
}

func TestWinnersPickHighestScore(t *testing.T) {
	eng := newTestGame(t, 2, 5, fiveByFiveStarts())

	piece, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 0, Col: 0})
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	require.True(t, placed)

	assert.Nil(t, eng.Winners(), "winners are undefined while the game is ongoing")

	eng.Retire() // player 2
	eng.Retire() // player 1

	require.True(t, eng.GameOver())
	assert.Equal(t, []int{1}, eng.Winners())
}

func TestResetRestoresInitialState(t *testing.T) {
	eng := newTestGame(t, 2, 5, fiveByFiveStarts())

	piece, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 0, Col: 0})
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	require.True(t, placed)
	eng.Retire()

	eng.Reset()

	assert.Equal(t, 0, countOccupied(eng))
	assert.Equal(t, 1, eng.CurrentPlayer())
	assert.Empty(t, eng.RetiredPlayers())
	assert.False(t, eng.GameOver())
	assert.Len(t, eng.RemainingShapes(1), shared.NumShapeKinds)
}

func TestStateSnapshot(t *testing.T) {
	eng := newTestGame(t, 2, 5, fiveByFiveStarts())

	piece, _ := eng.NewPieceFor(shared.KindOne, true, 0, shared.Point{Row: 0, Col: 0})
	placed, err := eng.MaybePlace(piece)
	require.NoError(t, err)
	require.True(t, placed)

	state := eng.State()
	assert.Equal(t, 5, state.Size)
	assert.Equal(t, 2, state.NumPlayers)
	assert.Equal(t, 2, state.CurrentPlayer)
	assert.False(t, state.GameOver)
	require.NotNil(t, state.Grid[0][0])
	assert.Equal(t, CellState{Player: 1, Kind: "1"}, *state.Grid[0][0])
	assert.Nil(t, state.Grid[2][2])
	require.Len(t, state.Players, 2)
	assert.Equal(t, []string{"1"}, state.Players[0].Played)
	assert.Len(t, state.Players[0].Remaining, shared.NumShapeKinds-1)
	assert.Equal(t, -88, state.Players[0].Score)
}
