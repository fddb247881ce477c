/*
position.go defines the Position structure and its methods for chessboard
state management.
*/

package chess

/*
Position represents a chessboard state that can be converted to or parsed
from a FEN string.

Bitboards is indexed by the interleaved [Piece] constants (0-11), plus
three aggregate occupancy boards: 12 is every white piece, 13 is every
black piece, and 14 is every occupied square.
*/
type Position struct {
	Bitboards      [15]uint64
	ActiveColor    Color
	CastlingRights CastlingRights
	// EPTarget is the en passant target square, or -1 if none is set.
	// It is tracked purely for FEN round-tripping: en passant capture is
	// out of scope, so the move generator never reads it.
	EPTarget    int
	HalfmoveCnt int
	FullmoveCnt int
}

/*
MakeMove modifies the position by applying the specified move.  It is the
caller's responsibility to ensure that the specified move is at least
pseudo-legal, and that moved/captured were read from the board before the
move was made (normally via [Position.GetPieceFromSquare]).

Not only is the piece placement updated, but also the entire position,
including castling rights, en passant target, halfmove counter, fullmove
counter, and the active color.

Castling is never executed here (only its rights are tracked): the move
generator never produces a castling move in the first place.
*/
func (p *Position) MakeMove(m Move, moved, captured Piece) {
	to := uint64(1) << m.To()
	from := uint64(1) << m.From()

	// Clear the origin square.
	p.removePiece(moved, from)

	// Increment halfmove counter to detect 50-move rule draw.
	// This will be reset if the move is a capture or a pawn push.
	p.HalfmoveCnt++

	if captured != PieceNone {
		p.removePiece(captured, to)
		p.HalfmoveCnt = 0
	}

	switch m.Type() {
	case MoveNormal:
		p.placePiece(moved, to)

	case MovePromotion:
		switch m.PromoPiece() {
		case PromotionKnight:
			p.placePiece(PieceWKnight+p.ActiveColor, to)
		case PromotionBishop:
			p.placePiece(PieceWBishop+p.ActiveColor, to)
		case PromotionRook:
			p.placePiece(PieceWRook+p.ActiveColor, to)
		case PromotionQueen:
			p.placePiece(PieceWQueen+p.ActiveColor, to)
		}
	}

	// Reset the en passant target; it is only ever set below, by this
	// same move, and only lives for one ply.
	p.EPTarget = -1

	switch moved {
	case PieceWPawn, PieceBPawn:
		if m.To()+16 == m.From() {
			p.EPTarget = m.To() + 8
		} else if m.To()-16 == m.From() {
			p.EPTarget = m.To() - 8
		}
		p.HalfmoveCnt = 0
	// The king cannot castle with a rook that has already moved.
	case PieceWRook:
		switch m.From() {
		case SA1:
			p.CastlingRights &= ^CastlingWhiteLong
		case SH1:
			p.CastlingRights &= ^CastlingWhiteShort
		}
	case PieceBRook:
		switch m.From() {
		case SA8:
			p.CastlingRights &= ^CastlingBlackLong
		case SH8:
			p.CastlingRights &= ^CastlingBlackShort
		}
	// Moving the king forfeits both of that color's rights.
	case PieceWKing:
		p.CastlingRights &= ^(CastlingWhiteShort | CastlingWhiteLong)
	case PieceBKing:
		p.CastlingRights &= ^(CastlingBlackShort | CastlingBlackLong)
	}

	// A capture landing on a rook's original square revokes that side's
	// right too, even when that rook itself never moved.
	if captured != PieceNone {
		switch m.To() {
		case SA1:
			p.CastlingRights &= ^CastlingWhiteLong
		case SH1:
			p.CastlingRights &= ^CastlingWhiteShort
		case SA8:
			p.CastlingRights &= ^CastlingBlackLong
		case SH8:
			p.CastlingRights &= ^CastlingBlackShort
		}
	}

	// Increment the full move counter after black moves.
	if p.ActiveColor == ColorBlack {
		p.FullmoveCnt++
	}

	// Switch the active color.
	p.ActiveColor ^= 1
}

/*
GetPieceFromSquare returns the type of the piece that stands on the
specified square, or [PieceNone] if the square is empty.
*/
func (p *Position) GetPieceFromSquare(square uint64) Piece {
	for i := range p.Bitboards {
		if square&p.Bitboards[i] != 0 {
			return i
		}
	}
	return PieceNone
}

/*
placePiece places the piece on the specified square as well as updates the
occupancy and allies bitboards.
*/
func (p *Position) placePiece(piece Piece, square uint64) {
	p.Bitboards[piece] |= square
	p.Bitboards[12+(piece%2)] |= square
	p.Bitboards[14] |= square
}

/*
removePiece removes the piece from the specified square as well as
updates the occupancy and allies bitboards.

NOTE: If a piece of the specified type is not present on the specified
square, it will be placed rather than removed.
*/
func (p *Position) removePiece(piece Piece, square uint64) {
	p.Bitboards[piece] ^= square
	p.Bitboards[12+(piece%2)] ^= square
	p.Bitboards[14] ^= square
}
