// movegen.go implements move generation using the ray-attack scheme:
// sliding-piece attacks are derived at runtime from a precomputed ray per
// direction and the first blocker along it, rather than magic bitboards.

package chess

const (
	// Bitmask of all files except the A.
	NOT_A_FILE uint64 = 0xFEFEFEFEFEFEFEFE
	// Bitmask of all files except the H.
	NOT_H_FILE uint64 = 0x7F7F7F7F7F7F7F7F
	// Bitmask of all files except the A and B.
	NOT_AB_FILE uint64 = 0xFCFCFCFCFCFCFCFC
	// Bitmask of all files except the G and H.
	NOT_GH_FILE uint64 = 0x3F3F3F3F3F3F3F3F
	// Bitmask of all ranks except first.
	NOT_1ST_RANK uint64 = 0xFFFFFFFFFFFFFF00
	// Bitmask of all ranks except eighth.
	NOT_8TH_RANK uint64 = 0x00FFFFFFFFFFFFFF
	// Bitmask of the first rank.
	RANK_1 uint64 = 0xFF
	// Bitmask of the second rank.
	RANK_2 uint64 = 0xFF00
	// Bitmask of the fourth rank.
	RANK_4 uint64 = 0xFF000000
	// Bitmask of the fifth rank.
	RANK_5 uint64 = 0xFF00000000
	// Bitmask of the seventh rank.
	RANK_7 uint64 = 0xFF000000000000
	// Bitmask of the eighth rank.
	RANK_8 uint64 = 0xFF00000000000000
)

// GenLegalMoves generates legal moves for the currently active color
// using a copy-make approach: each pseudo-legal move is tried on a copy
// of the position, and kept only if the side that moved does not leave
// its own king in check.
func GenLegalMoves(p Position, l *MoveList) {
	ensureTables()
	l.LastMoveIndex = 0

	pseudoLegal := MoveList{}
	genPseudoMoves(p, &pseudoLegal)

	prev := p

	for i := byte(0); i < pseudoLegal.LastMoveIndex; i++ {
		m := pseudoLegal.Moves[i]
		moved := p.GetPieceFromSquare(1 << m.From())
		captured := p.GetPieceFromSquare(1 << m.To())

		p.MakeMove(m, moved, captured)

		if GenChecksCounter(p.Bitboards, 1^prev.ActiveColor) == 0 {
			l.Push(m)
		}

		p = prev
	}
}

// GenChecksCounter returns the number of pieces of the specified color
// that are delivering a check to the enemy king.  A side with no king on
// the board is never in check; setups without kings are legal inputs for
// isolated piece tests.
func GenChecksCounter(bitboards [15]uint64, c Color) (cnt int) {
	ensureTables()
	kingBB := bitboards[PieceWKing+(1^c)]
	if kingBB == 0 {
		return 0
	}
	king := bitScan(kingBB)
	occupied := bitboards[14]

	if pawnAttacks[1^c][king]&bitboards[PieceWPawn+c] != 0 {
		cnt++
	}
	if knightAttacks[king]&bitboards[PieceWKnight+c] != 0 {
		cnt++
	}
	if bishopAttacksAt(king, occupied)&bitboards[PieceWBishop+c] != 0 {
		cnt++
	}
	if rookAttacksAt(king, occupied)&bitboards[PieceWRook+c] != 0 {
		cnt++
	}
	if queenAttacksAt(king, occupied)&bitboards[PieceWQueen+c] != 0 {
		cnt++
	}
	if kingAttacks[king]&bitboards[PieceWKing+c] != 0 {
		cnt++
	}

	return cnt
}

// genPseudoMoves appends every pseudo-legal move for the active color to
// l.  Castling moves are never generated: only the bookkeeping of
// castling rights is in scope (see [Position.MakeMove]).
func genPseudoMoves(p Position, l *MoveList) {
	genKingMoves(p, l)
	genPawnMoves(p, l)
	genNormalMoves(p, l)
}

// genKingMoves appends pseudo-legal (non-castling) king moves to l.
func genKingMoves(p Position, l *MoveList) {
	kingBB := p.Bitboards[PieceWKing+p.ActiveColor]
	if kingBB == 0 {
		return
	}
	king := bitScan(kingBB)
	dests := kingAttacks[king] & ^p.Bitboards[12+p.ActiveColor]

	for dests > 0 {
		l.Push(NewMove(popLSB(&dests), king, MoveNormal))
	}
}

// genPawnMoves appends pseudo-legal pawn moves to l: single and double
// pushes, diagonal captures, and the four-way promotion expansion on the
// last rank.  En passant capture is out of scope and is never generated,
// even though [Position.EPTarget] is still tracked for FEN round-tripping.
func genPawnMoves(p Position, l *MoveList) {
	occupancy := p.Bitboards[14]
	enemies := p.Bitboards[12+(1^p.ActiveColor)]
	pawns := p.Bitboards[PieceWPawn+p.ActiveColor]

	dir, initRank, promoRank := 8, RANK_2, RANK_8
	if p.ActiveColor == ColorBlack {
		dir, initRank, promoRank = -8, RANK_7, RANK_1
	}

	for pawns > 0 {
		pawn := popLSB(&pawns)
		square := uint64(1) << pawn

		fwd, dblFwd := pawn+dir, pawn+2*dir
		fwdBB := uint64(1) << fwd
		if fwdBB&occupancy == 0 {
			if fwdBB&promoRank != 0 {
				pushPromotions(l, fwd, pawn)
			} else {
				l.Push(NewMove(fwd, pawn, MoveNormal))
			}
			if square&initRank != 0 && uint64(1)<<dblFwd&occupancy == 0 {
				l.Push(NewMove(dblFwd, pawn, MoveNormal))
			}
		}

		attacks := pawnAttacks[p.ActiveColor][pawn] & enemies
		for attacks > 0 {
			to := popLSB(&attacks)
			if uint64(1)<<to&promoRank != 0 {
				pushPromotions(l, to, pawn)
			} else {
				l.Push(NewMove(to, pawn, MoveNormal))
			}
		}
	}
}

// pushPromotions appends the four promotion moves (knight, bishop, rook,
// queen) for a pawn reaching the last rank via from->to.
func pushPromotions(l *MoveList, to, from int) {
	l.Push(NewPromotionMove(to, from, PromotionKnight))
	l.Push(NewPromotionMove(to, from, PromotionBishop))
	l.Push(NewPromotionMove(to, from, PromotionRook))
	l.Push(NewPromotionMove(to, from, PromotionQueen))
}

// genNormalMoves appends pseudo-legal moves for knights, bishops, rooks,
// and queens to l.
func genNormalMoves(p Position, l *MoveList) {
	c := p.ActiveColor
	allies := p.Bitboards[12+c]
	occupancy := p.Bitboards[14]

	for i := PieceWKnight + c; i <= PieceWQueen+c; i += 2 {
		pieces := p.Bitboards[i]
		for pieces > 0 {
			from := popLSB(&pieces)

			var dests uint64
			switch i {
			case PieceWKnight, PieceBKnight:
				dests = knightAttacks[from]
			case PieceWBishop, PieceBBishop:
				dests = bishopAttacksAt(from, occupancy)
			case PieceWRook, PieceBRook:
				dests = rookAttacksAt(from, occupancy)
			case PieceWQueen, PieceBQueen:
				dests = queenAttacksAt(from, occupancy)
			}

			dests &= ^allies
			for dests > 0 {
				l.Push(NewMove(popLSB(&dests), from, MoveNormal))
			}
		}
	}
}

// AttackMap returns the set of squares attacked by pieces of the
// specified color, given the full board occupancy.  Sliding pieces see
// through nothing but blockers: squares occupied by a friendly piece are
// still reported as attacked, since that is what a king may not step
// next to.
func AttackMap(bitboards [15]uint64, c Color) (attacks uint64) {
	ensureTables()
	occupied := bitboards[14]

	attacks |= genPawnAttacks(bitboards[PieceWPawn+c], c)
	attacks |= genKnightAttacks(bitboards[PieceWKnight+c])
	attacks |= genKingAttacks(bitboards[PieceWKing+c])

	bishops := bitboards[PieceWBishop+c]
	for bishops > 0 {
		attacks |= bishopAttacksAt(popLSB(&bishops), occupied)
	}
	rooks := bitboards[PieceWRook+c]
	for rooks > 0 {
		attacks |= rookAttacksAt(popLSB(&rooks), occupied)
	}
	queens := bitboards[PieceWQueen+c]
	for queens > 0 {
		attacks |= queenAttacksAt(popLSB(&queens), occupied)
	}

	return attacks
}

// genPawnAttacks returns the squares attacked by every pawn in the
// bitboard.  Use this to generate attacks for multiple pawns at once; for
// a single pawn, [pawnAttacks] (the lookup table) is cheaper.
func genPawnAttacks(pawn uint64, color Color) uint64 {
	if color == ColorWhite {
		return (pawn & NOT_A_FILE << 7) | (pawn & NOT_H_FILE << 9)
	}
	return (pawn & NOT_A_FILE >> 9) | (pawn & NOT_H_FILE >> 7)
}

// pawnEastAttacks returns the set of squares attacked towards the h-file
// by every pawn in the bitboard (white: north-east, black: south-east).
func pawnEastAttacks(pawns uint64, color Color) uint64 {
	if color == ColorWhite {
		return pawns & NOT_H_FILE << 9
	}
	return pawns & NOT_H_FILE >> 7
}

// pawnWestAttacks returns the set of squares attacked towards the a-file
// by every pawn in the bitboard (white: north-west, black: south-west).
func pawnWestAttacks(pawns uint64, color Color) uint64 {
	if color == ColorWhite {
		return pawns & NOT_A_FILE << 7
	}
	return pawns & NOT_A_FILE >> 9
}

// pawnSinglePush returns the destination squares of a single push for
// every pawn in the bitboard.
func pawnSinglePush(pawns, empty uint64, color Color) uint64 {
	if color == ColorWhite {
		return pawns << 8 & empty
	}
	return pawns >> 8 & empty
}

// pawnDoublePush returns the destination squares of a double push for
// every pawn in the bitboard still standing on its initial rank.
func pawnDoublePush(pawns, empty uint64, color Color) uint64 {
	single := pawnSinglePush(pawns, empty, color)
	if color == ColorWhite {
		return single << 8 & empty & RANK_4
	}
	return single >> 8 & empty & RANK_5
}

// genKnightAttacks returns a bitboard of squares attacked by knights.
func genKnightAttacks(knight uint64) uint64 {
	return (knight & NOT_A_FILE >> 17) |
		(knight & NOT_H_FILE >> 15) |
		(knight & NOT_AB_FILE >> 10) |
		(knight & NOT_GH_FILE >> 6) |
		(knight & NOT_AB_FILE << 6) |
		(knight & NOT_GH_FILE << 10) |
		(knight & NOT_A_FILE << 15) |
		(knight & NOT_H_FILE << 17)
}

// genKingAttacks returns a bitboard of squares attacked by a king.
func genKingAttacks(king uint64) uint64 {
	return (king & NOT_A_FILE >> 9) |
		(king >> 8) |
		(king & NOT_H_FILE >> 7) |
		(king & NOT_A_FILE >> 1) |
		(king & NOT_H_FILE << 1) |
		(king & NOT_A_FILE << 7) |
		(king << 8) |
		(king & NOT_H_FILE << 9)
}

/*
rookAttacksAt returns the squares a rook on sq attacks given the full
board occupancy, using the precalculated ray per direction and the first
blocker along it: if a ray has no blocker, the full ray is used; otherwise
everything past the first blocker is XOR-ed out.

The result includes squares occupied by a piece of either color (the
blocker itself); callers that need pseudo-legal destinations strip
friendly-occupied squares themselves.
*/
func rookAttacksAt(sq int, occupied uint64) uint64 {
	return rayAttack(&rookRays[dirNorth], sq, occupied, true) |
		rayAttack(&rookRays[dirEast], sq, occupied, true) |
		rayAttack(&rookRays[dirSouth], sq, occupied, false) |
		rayAttack(&rookRays[dirWest], sq, occupied, false)
}

// bishopAttacksAt is the diagonal equivalent of [rookAttacksAt].
func bishopAttacksAt(sq int, occupied uint64) uint64 {
	return rayAttack(&bishopRays[dirNE], sq, occupied, true) |
		rayAttack(&bishopRays[dirNW], sq, occupied, true) |
		rayAttack(&bishopRays[dirSE], sq, occupied, false) |
		rayAttack(&bishopRays[dirSW], sq, occupied, false)
}

// queenAttacksAt is the union of a rook's and a bishop's attacks from sq.
func queenAttacksAt(sq int, occupied uint64) uint64 {
	return rookAttacksAt(sq, occupied) | bishopAttacksAt(sq, occupied)
}

/*
rayAttack truncates a single direction's precalculated ray at its first
blocker: blockers := ray & occupied; if there are none, the full ray is
used as is; otherwise everything past the nearest blocker is XOR-ed out,
using that same direction's ray table entry for the blocker's square.

towardsHighBit must be true for rays generated by a left shift (North,
East, NE, NW: the square index increases along the ray) and false for
rays generated by a right shift (South, West, SE, SW: the square index
decreases along the ray).  The nearest blocker is the lowest-indexed
blocking square in the first case, and the highest-indexed one in the
second.
*/
func rayAttack(rayTable *[64]uint64, sq int, occupied uint64, towardsHighBit bool) uint64 {
	ray := rayTable[sq]

	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}

	var blockerSquare int
	if towardsHighBit {
		blockerSquare = bitScan(blockers)
	} else {
		blockerSquare = msb(blockers)
	}

	return ray ^ rayTable[blockerSquare]
}
