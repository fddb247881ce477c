// fen.go implements conversions between Forsyth-Edwards Notation (FEN)
// strings and chess positions.

package chess

import (
	"errors"
	"strconv"
	"strings"
)

// Each FEN string consists of six fields, separated by whitespace:
//  1. Piece placement.
//  2. Active color: "w" or "b".
//  3. Castling rights: "-" if neither side has any.
//  4. En passant target square: "-" if none.
//  5. Halfmove clock: used for the fifty-move rule.
//  6. Fullmove number.

// ParseFEN parses the given FEN string into a [Position].  Every missing
// field, an unknown character in the piece placement, an unknown active
// color and a non-numeric halfmove or fullmove count is reported as a
// distinct error; the returned position is not partially usable when err
// is non-nil.  Unknown castling letters are ignored, and a malformed en
// passant square is read as no target.
func ParseFEN(fen string) (Position, error) {
	var p Position

	fields := strings.Fields(fen)

	if len(fields) < 1 || fields[0] == "" {
		return p, errors.New("No board representation")
	}
	for i := 0; i < len(fields[0]); i++ {
		if !strings.ContainsRune("PNBRQKpnbrqk12345678/", rune(fields[0][i])) {
			return p, errors.New("Corrupted board representation")
		}
	}
	p.Bitboards = ParseBitboards(fields[0])

	if len(fields) < 2 {
		return p, errors.New("No color information")
	}
	switch fields[1] {
	case "w":
		p.ActiveColor = ColorWhite
	case "b":
		p.ActiveColor = ColorBlack
	default:
		return p, errors.New("Incorrect color!")
	}

	if len(fields) < 3 {
		return p, errors.New("No castling information")
	}
	for i := 0; i < len(fields[2]); i++ {
		switch fields[2][i] {
		case 'K':
			p.CastlingRights |= CastlingWhiteShort
		case 'Q':
			p.CastlingRights |= CastlingWhiteLong
		case 'k':
			p.CastlingRights |= CastlingBlackShort
		case 'q':
			p.CastlingRights |= CastlingBlackLong
		}
	}

	if len(fields) < 4 {
		return p, errors.New("No enpassant information")
	}
	p.EPTarget = parseEPSquare(fields[3])

	if len(fields) < 5 {
		return p, errors.New("No halfmove count")
	}
	halfmove, err := strconv.Atoi(fields[4])
	if err != nil {
		return p, errors.New("Corrupted halfmove count")
	}
	p.HalfmoveCnt = halfmove

	if len(fields) < 6 {
		return p, errors.New("No move count")
	}
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil {
		return p, errors.New("Corrupted move count")
	}
	p.FullmoveCnt = fullmove

	return p, nil
}

// SerializeFEN serializes the specified [Position] into a FEN string.
func SerializeFEN(p Position) string {
	var fen strings.Builder
	fen.Grow(64)

	fen.WriteString(SerializeBitboards(p.Bitboards))

	if p.ActiveColor == ColorWhite {
		fen.WriteString(" w ")
	} else {
		fen.WriteString(" b ")
	}

	cnt := 4
	if p.CastlingRights&CastlingWhiteShort != 0 {
		fen.WriteByte('K')
		cnt--
	}
	if p.CastlingRights&CastlingWhiteLong != 0 {
		fen.WriteByte('Q')
		cnt--
	}
	if p.CastlingRights&CastlingBlackShort != 0 {
		fen.WriteByte('k')
		cnt--
	}
	if p.CastlingRights&CastlingBlackLong != 0 {
		fen.WriteByte('q')
		cnt--
	}
	if cnt == 4 {
		fen.WriteByte('-')
	}
	fen.WriteByte(' ')

	if p.EPTarget < 0 {
		fen.WriteString("- ")
	} else {
		fen.WriteString(Square2String[p.EPTarget])
		fen.WriteByte(' ')
	}

	fen.WriteString(strconv.Itoa(p.HalfmoveCnt))
	fen.WriteByte(' ')
	fen.WriteString(strconv.Itoa(p.FullmoveCnt))

	return fen.String()
}

// ParseBitboards converts the first field of a FEN string into an array
// of bitboards.  The cursor walks the board starting from a8 (square 56)
// rank-major, matching the LERF layout this module uses throughout.
func ParseBitboards(piecePlacement string) (bitboards [15]uint64) {
	square := 56

	for i := 0; i < len(piecePlacement); i++ {
		char := piecePlacement[i]

		switch {
		case char == '/':
			square -= 16
		case char >= '1' && char <= '8':
			square += int(char - '0')
		default:
			piece := PieceWPawn
			switch char {
			case 'N':
				piece = PieceWKnight
			case 'B':
				piece = PieceWBishop
			case 'R':
				piece = PieceWRook
			case 'Q':
				piece = PieceWQueen
			case 'K':
				piece = PieceWKing
			case 'p':
				piece = PieceBPawn
			case 'n':
				piece = PieceBKnight
			case 'b':
				piece = PieceBBishop
			case 'r':
				piece = PieceBRook
			case 'q':
				piece = PieceBQueen
			case 'k':
				piece = PieceBKing
			}

			bb := uint64(1) << square
			bitboards[piece] |= bb
			if piece%2 == 0 {
				bitboards[12] |= bb
			} else {
				bitboards[13] |= bb
			}
			bitboards[14] |= bb

			square++
		}
	}

	return bitboards
}

// SerializeBitboards converts the array of bitboards into the first
// field of a FEN string.
func SerializeBitboards(bitboards [15]uint64) string {
	b := strings.Builder{}
	b.Grow(20)

	var board [64]byte

	for i := 0; i <= PieceBKing; i++ {
		bb := bitboards[i]
		for bb > 0 {
			square := popLSB(&bb)
			board[square] = PieceSymbols[i]
		}
	}

	emptySquares := byte(0)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			square := 8*rank + file
			char := board[square]

			if char == 0 {
				emptySquares++
			} else {
				if emptySquares > 0 {
					b.WriteByte('0' + emptySquares)
					emptySquares = 0
				}
				b.WriteByte(char)
			}

			if file == 7 {
				if emptySquares > 0 {
					b.WriteByte('0' + emptySquares)
					emptySquares = 0
				}
				if rank != 0 {
					b.WriteByte('/')
				}
			}
		}
	}

	return b.String()
}

// parseEPSquare parses the en passant field of a FEN string.  It returns
// -1 (no target) for "-", matching [Position.EPTarget]'s sentinel.
func parseEPSquare(str string) int {
	if str == "-" || len(str) < 2 {
		return -1
	}
	file := int(str[0] - 'a')
	rank := int(str[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return -1
	}
	return rank*8 + file
}
