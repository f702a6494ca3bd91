// path: internal/game/turns.go
package game

import "blokus_poc/internal/shared"

// Completion bonuses for a player who has played all 21 shapes: +15, and
// +5 more when the final piece was the one-square shape.
const (
	allPlayedBonus    = 15
	lastPieceOneBonus = 5
)

// MaybePlace places the piece if it is legal, records the shape kind for
// the current player, and advances the turn. It reports whether the
// placement happened; board and game state are untouched when it returns
// false. Preconditions (already played, missing anchor) error out before
// any mutation.
func (e *Engine) MaybePlace(p *Piece) (bool, error) {
	squares, err := e.checkPlayable(p)
	if err != nil {
		return false, err
	}
	if !e.legalToPlace(p, squares) {
		return false, nil
	}

	ps := e.player(e.curr)
	for _, sq := range squares {
		e.grid[sq.Row][sq.Col] = &Cell{Player: e.curr, Kind: p.Kind()}
		ps.owned.Put(sq.Key(), struct{}{})
		ps.ownedList = append(ps.ownedList, sq)
	}
	ps.played[p.Kind()] = struct{}{}
	ps.lastPlayed = p.Kind()
	e.advanceTurn()
	return true, nil
}

// Retire removes the current player from further turns. Retiring with
// every shape still in hand is legal; retiring after the game is over is
// a no-op.
func (e *Engine) Retire() {
	if e.gameOver {
		return
	}
	e.player(e.curr).retired = true
	e.advanceTurn()
}

// advanceTurn moves to the next player, in number order with wraparound,
// who is neither retired nor out of shapes. When no player is eligible
// the game is over and the current player is left stale.
func (e *Engine) advanceTurn() {
	for i := 1; i <= e.numPlayers; i++ {
		cand := (e.curr+i-1)%e.numPlayers + 1
		ps := e.player(cand)
		if !ps.retired && len(ps.played) < shared.NumShapeKinds {
			e.curr = cand
			return
		}
	}
	e.gameOver = true
}

// GetScore computes the score for a player: minus the total square count
// of their remaining shapes, plus the completion bonus when none remain.
// Scores may be queried at any time during the game.
func (e *Engine) GetScore(player int) int {
	if player < 1 || player > e.numPlayers {
		return 0
	}
	ps := e.player(player)
	if len(ps.played) == shared.NumShapeKinds {
		score := allPlayedBonus
		if ps.lastPlayed == shared.KindOne {
			score += lastPieceOneBonus
		}
		return score
	}
	score := 0
	for _, kind := range shared.AllShapeKinds {
		if _, done := ps.played[kind]; !done {
			score -= kind.Size()
		}
	}
	return score
}

// Winners returns the players tied for the highest score, ascending, or
// nil while the game is still in progress.
func (e *Engine) Winners() []int {
	if !e.gameOver {
		return nil
	}
	best := 0
	var winners []int
	for player := 1; player <= e.numPlayers; player++ {
		score := e.GetScore(player)
		switch {
		case len(winners) == 0 || score > best:
			best = score
			winners = []int{player}
		case score == best:
			winners = append(winners, player)
		}
	}
	return winners
}
