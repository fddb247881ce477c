// select.go implements the pluggable move-selection interface: the core
// applies whatever move a Selector picks, but never picks one itself
// beyond the trivial random reference implementation.

package chess

import "math/rand"

// Selector picks one legal move to play in the given position.
type Selector interface {
	// Name identifies the selector, e.g. for logging which strategy
	// produced a given move.
	Name() string
	// SelectMove returns a legal move for pos and true, or false if
	// pos has no legal moves.
	SelectMove(pos Position) (Move, bool)
}

// RandomSelector picks uniformly at random among the legal moves
// available in a position.
type RandomSelector struct{}

func (RandomSelector) Name() string { return "random" }

// SelectMove enumerates the legal moves for pos and returns one of them
// chosen uniformly at random.  It returns false instead of faulting
// when pos has no legal moves; callers that care should classify the
// state (see [Game.State]) before calling this.
func (RandomSelector) SelectMove(pos Position) (Move, bool) {
	var legal MoveList
	GenLegalMoves(pos, &legal)

	if legal.LastMoveIndex == 0 {
		return 0, false
	}

	return legal.Moves[rand.Intn(int(legal.LastMoveIndex))], true
}
