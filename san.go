/*
san.go implements conversions between moves and Standard Algebraic
Notation. See https://ia802908.us.archive.org/26/items/pgn-standard-1994-03-12/PGN_standard_1994-03-12.txt Section 8.2.3.
*/

package chess

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// sanPattern matches a SAN move string, stripped of its trailing check
// or checkmate marker: an optional piece letter, an optional
// disambiguating file and/or rank, an optional capture marker, the
// destination square, and an optional promotion suffix.
var sanPattern = regexp.MustCompile(`^([KQRBN]?)([a-h]?)([1-8]?)(x?)([a-h][1-8])(=[KQRBN])?$`)

/*
Move2SAN encodes the specified move to its SAN representation.

SAN string consists of these parts:
 1. Piece name, omitted for pawns;
 2. Optional originating (source) file or rank, used for disambiguation.  If a
    pawn performs a capture, its originating file is always included;
 3. Denotation of capture by 'x'. Mandatory for capture moves;
 4. Destination (to) file and rank;
 5. Denotation of check by '+'. Omitted when the move is a checkmate;
 6. Denotation of checkmate by '#'.

Castling is out of scope: the move generator never produces a castling
move, so no SAN castling notation ("O-O"/"O-O-O") is ever emitted here.
*/
func Move2SAN(
	m Move,
	pos *Position,
	legalMoves MoveList,
	p Piece,
	isCapture, isCheck, isCheckmate bool,
) string {
	var b strings.Builder
	b.Grow(6)

	switch p {
	case PieceWKnight, PieceBKnight:
		b.WriteByte('N')
	case PieceWBishop, PieceBBishop:
		b.WriteByte('B')
	case PieceWRook, PieceBRook:
		b.WriteByte('R')
	case PieceWQueen, PieceBQueen:
		b.WriteByte('Q')
	case PieceWKing, PieceBKing:
		b.WriteByte('K')
	}

	b.WriteString(disambiguate(m, p, pos, legalMoves))

	if isCapture {
		if p <= PieceBPawn {
			b.WriteByte(files[m.From()%8])
		}
		b.WriteByte('x')
	}

	// Append destination square.
	b.WriteString(Square2String[m.To()])

	// Append promotion info.
	if m.Type() == MovePromotion {
		switch m.PromoPiece() {
		case PromotionKnight:
			b.WriteString("=N")
		case PromotionBishop:
			b.WriteString("=B")
		case PromotionRook:
			b.WriteString("=R")
		case PromotionQueen:
			b.WriteString("=Q")
		}
	}

	if isCheckmate {
		b.WriteByte('#')
	} else if isCheck {
		b.WriteByte('+')
	}

	return b.String()
}

/*
disambiguate resolves the ambiguity that arises when multiple pieces of
the same type can move to the same square.  Pawn moves are never
ambiguous in SAN beyond the capture file (handled separately in
[Move2SAN]), so this always returns "" for p <= [PieceBPawn].

Standard disambiguation order:
 1. If the candidates can be told apart by their originating file, the
    file letter is inserted right after the piece letter;
 2. Otherwise, if they can be told apart by their originating rank, the
    rank digit is inserted instead;
 3. Otherwise both file and rank (i.e. the full origin square) are used.
*/
func disambiguate(m Move, p Piece, pos *Position, legalMoves MoveList) string {
	if p <= PieceBPawn {
		return ""
	}

	sameFile, sameRank, ambiguous := false, false, false

	for i := byte(0); i < legalMoves.LastMoveIndex; i++ {
		cand := legalMoves.Moves[i]
		if cand.From() == m.From() || cand.To() != m.To() {
			continue
		}
		if pos.GetPieceFromSquare(1<<cand.From()) != p {
			continue
		}

		ambiguous = true
		if cand.From()%8 == m.From()%8 {
			sameFile = true
		}
		if cand.From()/8 == m.From()/8 {
			sameRank = true
		}
	}

	if !ambiguous {
		return ""
	}
	if !sameFile {
		return string(files[m.From()%8])
	}
	if !sameRank {
		return strconv.Itoa(m.From()/8 + 1)
	}
	return Square2String[m.From()]
}

/*
ParseSAN resolves a SAN move string against the legal moves available in
the given position.  It reports an error instead of panicking on
anything it cannot resolve: an unparsable string, a capture marker that
disagrees with the destination square, an invalid promotion, a
destination no piece of the named type can legally reach, or a
still-ambiguous disambiguator.

Castling notation ("O-O"/"O-O-O") is out of scope and is rejected, since
[GenLegalMoves] never produces the move it would resolve to.  The
" e.p." suffix is recognised and stripped, but en passant captures are
never generated either, so such a move always fails to resolve.
*/
func ParseSAN(san string, pos Position) (Move, error) {
	san = strings.TrimSuffix(strings.TrimSuffix(san, "#"), "+")
	san = strings.TrimSuffix(san, " e.p.")

	if san == "O-O" || san == "O-O-O" {
		return 0, errors.New("castling is not supported")
	}

	groups := sanPattern.FindStringSubmatch(san)
	if groups == nil {
		return 0, errors.New("malformed SAN move")
	}

	pieceLetter, fileHint, rankHint, dest := groups[1], groups[2], groups[3], groups[5]

	destSquare := int(dest[0]-'a') + int(dest[1]-'1')*8

	wantPiece := PieceWPawn + pos.ActiveColor
	switch pieceLetter {
	case "N":
		wantPiece = PieceWKnight + pos.ActiveColor
	case "B":
		wantPiece = PieceWBishop + pos.ActiveColor
	case "R":
		wantPiece = PieceWRook + pos.ActiveColor
	case "Q":
		wantPiece = PieceWQueen + pos.ActiveColor
	case "K":
		wantPiece = PieceWKing + pos.ActiveColor
	}

	// The capture marker must agree with the destination square: en
	// passant aside (never generated here), SAN captures always land on
	// an occupied square and quiet moves never do.
	destPiece := pos.GetPieceFromSquare(1 << destSquare)
	if destPiece != PieceNone && destPiece%2 == pos.ActiveColor {
		return 0, errors.New("cannot move to a square occupied by your own piece")
	}
	if (groups[4] == "x") != (destPiece != PieceNone) {
		return 0, errors.New("capture flag does not match the destination square")
	}

	var wantPromo PromotionFlag = -1
	if groups[6] != "" {
		if pieceLetter != "" {
			return 0, errors.New("only pawns can promote")
		}
		promoRank := 7
		if pos.ActiveColor == ColorBlack {
			promoRank = 0
		}
		if destSquare/8 != promoRank {
			return 0, errors.New("pawn is not reaching a promotion rank")
		}
		switch groups[6][1] {
		case 'N':
			wantPromo = PromotionKnight
		case 'B':
			wantPromo = PromotionBishop
		case 'R':
			wantPromo = PromotionRook
		case 'Q':
			wantPromo = PromotionQueen
		default:
			return 0, errors.New("cannot promote to this piece")
		}
	}

	var legal MoveList
	GenLegalMoves(pos, &legal)

	match := Move(0)
	found := false

	for i := byte(0); i < legal.LastMoveIndex; i++ {
		cand := legal.Moves[i]
		if cand.To() != destSquare {
			continue
		}
		if pos.GetPieceFromSquare(1<<cand.From()) != wantPiece {
			continue
		}
		if fileHint != "" && cand.From()%8 != int(fileHint[0]-'a') {
			continue
		}
		if rankHint != "" && cand.From()/8 != int(rankHint[0]-'1') {
			continue
		}
		if wantPromo != -1 && (cand.Type() != MovePromotion || cand.PromoPiece() != wantPromo) {
			continue
		}
		if wantPromo == -1 && cand.Type() == MovePromotion {
			continue
		}

		if found {
			return 0, errors.New("ambiguous SAN move")
		}
		match = cand
		found = true
	}

	if !found {
		return 0, errors.New("no legal move matches SAN string")
	}

	return match, nil
}
