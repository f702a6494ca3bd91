// path: internal/game/engine.go
// Package game implements the core Blokus rules engine state and API.
package game

import (
	"fmt"
	"sort"

	"github.com/kamstrup/intmap"

	"blokus_poc/internal/shared"
)

// Cell is an occupied grid square: the owning player and the shape kind
// played there. Empty squares are nil in the grid.
type Cell struct {
	Player int
	Kind   shared.ShapeKind
}

// playerState is the per-player bookkeeping behind the engine. The owned
// index and ownedList track the same point set; the map answers
// membership queries and the slice drives iteration.
type playerState struct {
	played     map[shared.ShapeKind]struct{}
	owned      *intmap.Map[uint32, struct{}]
	ownedList  []shared.Point
	lastPlayed shared.ShapeKind
	retired    bool
}

// Engine is the authoritative legality/placement/scoring state machine
// for one Blokus game. Players are numbered 1..numPlayers and player 1
// moves first. An Engine is not safe for concurrent use; callers fronting
// several games should guard each instance with its own lock around the
// query-then-mutate sequence.
type Engine struct {
	numPlayers int
	size       int
	starts     map[shared.Point]struct{}
	shapes     map[shared.ShapeKind]*Shape

	grid     [][]*Cell
	players  []*playerState
	curr     int // 1-based; stale once the game is over
	gameOver bool
}

// NewGame validates the configuration and returns a fresh engine.
// Configuration violations are reported as ErrInvalidConfig and no
// partial instance is created.
func NewGame(numPlayers, size int, startPositions []shared.Point) (*Engine, error) {
	if numPlayers < 1 || numPlayers > 4 {
		return nil, fmt.Errorf("%w: %d players, want 1 to 4", ErrInvalidConfig, numPlayers)
	}
	if size < 5 {
		return nil, fmt.Errorf("%w: board size %d, want at least 5", ErrInvalidConfig, size)
	}
	starts := make(map[shared.Point]struct{}, len(startPositions))
	for _, sp := range startPositions {
		if sp.Row < 0 || sp.Row >= size || sp.Col < 0 || sp.Col >= size {
			return nil, fmt.Errorf("%w: start position %s outside the %dx%d board", ErrInvalidConfig, sp, size, size)
		}
		starts[sp] = struct{}{}
	}
	if len(starts) < numPlayers {
		return nil, fmt.Errorf("%w: %d start positions for %d players", ErrInvalidConfig, len(starts), numPlayers)
	}
	shapes, err := LoadShapes()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		numPlayers: numPlayers,
		size:       size,
		starts:     starts,
		shapes:     shapes,
	}
	e.reset()
	return e, nil
}

// Reset restores the initial state for the same configuration: an empty
// board, no retirements, no shapes played, player 1 to move.
func (e *Engine) Reset() { e.reset() }

func (e *Engine) reset() {
	e.grid = make([][]*Cell, e.size)
	for r := range e.grid {
		e.grid[r] = make([]*Cell, e.size)
	}
	e.players = make([]*playerState, e.numPlayers)
	for i := range e.players {
		e.players[i] = &playerState{
			played: make(map[shared.ShapeKind]struct{}, shared.NumShapeKinds),
			owned:  intmap.New[uint32, struct{}](64),
		}
	}
	e.curr = 1
	e.gameOver = false
}

func (e *Engine) player(n int) *playerState { return e.players[n-1] }

func (e *Engine) inBounds(pt shared.Point) bool {
	return pt.Row >= 0 && pt.Row < e.size && pt.Col >= 0 && pt.Col < e.size
}

func (e *Engine) ownedBy(ps *playerState, pt shared.Point) bool {
	if !e.inBounds(pt) {
		return false
	}
	_, ok := ps.owned.Get(pt.Key())
	return ok
}

//
// Query surface
//

// NumPlayers returns the configured player count.
func (e *Engine) NumPlayers() int { return e.numPlayers }

// Size returns the board side length.
func (e *Engine) Size() int { return e.size }

// GameOver reports whether every player is retired or has played all 21
// shapes.
func (e *Engine) GameOver() bool { return e.gameOver }

// CurrentPlayer returns whose turn it is. While the game is ongoing this
// is never a retired or exhausted player; once the game is over the value
// is stale and not meaningful.
func (e *Engine) CurrentPlayer() int { return e.curr }

// StartPositions returns the configured start positions, sorted.
func (e *Engine) StartPositions() []shared.Point {
	out := make([]shared.Point, 0, len(e.starts))
	for sp := range e.starts {
		out = append(out, sp)
	}
	sortPoints(out)
	return out
}

// RetiredPlayers returns the players who have retired, ascending.
func (e *Engine) RetiredPlayers() []int {
	var out []int
	for n := 1; n <= e.numPlayers; n++ {
		if e.player(n).retired {
			out = append(out, n)
		}
	}
	return out
}

// Grid returns a snapshot copy of the board. Mutating the snapshot does
// not affect the engine.
func (e *Engine) Grid() [][]*Cell {
	out := make([][]*Cell, e.size)
	for r := range e.grid {
		row := make([]*Cell, e.size)
		for c, cell := range e.grid[r] {
			if cell != nil {
				copied := *cell
				row[c] = &copied
			}
		}
		out[r] = row
	}
	return out
}

// CellAt returns the cell at pt and whether it is occupied.
func (e *Engine) CellAt(pt shared.Point) (Cell, bool) {
	if !e.inBounds(pt) {
		return Cell{}, false
	}
	cell := e.grid[pt.Row][pt.Col]
	if cell == nil {
		return Cell{}, false
	}
	return *cell, true
}

// RemainingShapes lists the kinds a player has not yet played, in catalog
// order. Unknown players get nil.
func (e *Engine) RemainingShapes(player int) []shared.ShapeKind {
	if player < 1 || player > e.numPlayers {
		return nil
	}
	ps := e.player(player)
	out := make([]shared.ShapeKind, 0, shared.NumShapeKinds-len(ps.played))
	for _, kind := range shared.AllShapeKinds {
		if _, done := ps.played[kind]; !done {
			out = append(out, kind)
		}
	}
	return out
}

// ShapeByKind returns an independent copy of the catalog template for a
// kind.
func (e *Engine) ShapeByKind(kind shared.ShapeKind) (*Shape, bool) {
	shape, ok := e.shapes[kind]
	if !ok {
		return nil, false
	}
	return shape.Clone(), true
}

// NewPieceFor builds an anchored piece from one of the engine's catalog
// shapes: one flip when faceUp is false, then rotation right-rotations,
// anchored at anchor.
func (e *Engine) NewPieceFor(kind shared.ShapeKind, faceUp bool, rotation int, anchor shared.Point) (*Piece, bool) {
	shape, ok := e.shapes[kind]
	if !ok {
		return nil, false
	}
	p := NewPiece(shape, faceUp, rotation)
	p.SetAnchor(anchor)
	return p, true
}

func sortPoints(points []shared.Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Row != points[j].Row {
			return points[i].Row < points[j].Row
		}
		return points[i].Col < points[j].Col
	})
}

//
// Serializable state
//

// CellState is a serializable occupied cell.
type CellState struct {
	Player int    `json:"player"`
	Kind   string `json:"kind"`
}

// PlayerSummary is a serializable per-player view.
type PlayerSummary struct {
	Player    int      `json:"player"`
	Score     int      `json:"score"`
	Retired   bool     `json:"retired"`
	Played    []string `json:"played"`
	Remaining []string `json:"remaining"`
}

// BoardState is a serializable representation of the game state.
type BoardState struct {
	Size           int             `json:"size"`
	NumPlayers     int             `json:"numPlayers"`
	StartPositions []shared.Point  `json:"startPositions"`
	Grid           [][]*CellState  `json:"grid"`
	CurrentPlayer  int             `json:"currentPlayer"`
	GameOver       bool            `json:"gameOver"`
	Winners        []int           `json:"winners,omitempty"`
	Players        []PlayerSummary `json:"players"`
}

// State returns a serializable snapshot of the current game state.
func (e *Engine) State() BoardState {
	state := BoardState{
		Size:           e.size,
		NumPlayers:     e.numPlayers,
		StartPositions: e.StartPositions(),
		Grid:           make([][]*CellState, e.size),
		CurrentPlayer:  e.curr,
		GameOver:       e.gameOver,
		Winners:        e.Winners(),
		Players:        make([]PlayerSummary, 0, e.numPlayers),
	}
	for r := range e.grid {
		row := make([]*CellState, e.size)
		for c, cell := range e.grid[r] {
			if cell != nil {
				row[c] = &CellState{Player: cell.Player, Kind: cell.Kind.String()}
			}
		}
		state.Grid[r] = row
	}
	for n := 1; n <= e.numPlayers; n++ {
		ps := e.player(n)
		summary := PlayerSummary{
			Player:  n,
			Score:   e.GetScore(n),
			Retired: ps.retired,
		}
		for _, kind := range shared.AllShapeKinds {
			if _, done := ps.played[kind]; done {
				summary.Played = append(summary.Played, kind.String())
			} else {
				summary.Remaining = append(summary.Remaining, kind.String())
			}
		}
		state.Players = append(state.Players, summary)
	}
	return state
}
