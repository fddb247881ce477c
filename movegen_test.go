package chess

import "testing"

func TestRookAttacksAt(t *testing.T) {
	testcases := []struct {
		name     string
		sq       int
		occupied uint64
		expected uint64
	}{
		{
			"open board",
			SD4,
			uint64(1) << SD4,
			0x8080808f7080808,
		},
		{
			"blocked on every side",
			SD4,
			uint64(1)<<SD4 | uint64(1)<<SD2 | uint64(1)<<SD6 | uint64(1)<<SB4 | uint64(1)<<SF4,
			uint64(1)<<SD2 | uint64(1)<<SD3 | uint64(1)<<SD5 | uint64(1)<<SD6 |
				uint64(1)<<SB4 | uint64(1)<<SC4 | uint64(1)<<SE4 | uint64(1)<<SF4,
		},
	}

	for _, tc := range testcases {
		got := rookAttacksAt(tc.sq, tc.occupied)
		if got != tc.expected {
			t.Fatalf("%s: expected %x, got %x", tc.name, tc.expected, got)
		}
	}
}

func TestBishopAttacksAt(t *testing.T) {
	occupied := uint64(1)<<SD4 | uint64(1)<<SB2 | uint64(1)<<SF6
	expected := uint64(1)<<SC3 | uint64(1)<<SB2 |
		uint64(1)<<SE5 | uint64(1)<<SF6 |
		uint64(1)<<SC5 | uint64(1)<<SB6 | uint64(1)<<SA7 |
		uint64(1)<<SE3 | uint64(1)<<SF2 | uint64(1)<<SG1

	got := bishopAttacksAt(SD4, occupied)
	if got != expected {
		t.Fatalf("expected %x, got %x", expected, got)
	}
}

func TestGenPawnMoves(t *testing.T) {
	testcases := []struct {
		name     string
		fen      string
		expected int
	}{
		{"double and single push from start", "8/8/8/8/8/8/4P3/8 w - - 0 1", 2},
		{"single push allowed, double push blocked", "8/8/8/8/4p3/8/4P3/8 w - - 0 1", 1},
		{"diagonal captures", "8/8/8/8/8/3p1p2/4P3/8 w - - 0 1", 4},
		{"promotion expansion", "8/4P3/8/8/8/8/8/8 w - - 0 1", 4},
	}

	for _, tc := range testcases {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("%s: unexpected parse error: %v", tc.name, err)
		}

		var l MoveList
		genPawnMoves(pos, &l)

		if int(l.LastMoveIndex) != tc.expected {
			t.Fatalf("%s: expected %d moves, got %d", tc.name, tc.expected, l.LastMoveIndex)
		}
	}
}

func TestPawnPushes(t *testing.T) {
	testcases := []struct {
		name           string
		pawns, empty   uint64
		color          Color
		single, double uint64
	}{
		{"white from the initial rank", E2 | D2, ^(E2 | D2), ColorWhite, E3 | D3, E4 | D4},
		{"white single push only past the initial rank", E3, ^E3, ColorWhite, E4, 0},
		{"white blocked", E2, ^(E2 | E3), ColorWhite, 0, 0},
		{"white double push blocked on the fourth rank", E2, ^(E2 | E4), ColorWhite, E3, 0},
		{"black from the initial rank", E7, ^E7, ColorBlack, E6, E5},
		{"black blocked", E7, ^(E7 | E6), ColorBlack, 0, 0},
	}

	for _, tc := range testcases {
		if got := pawnSinglePush(tc.pawns, tc.empty, tc.color); got != tc.single {
			t.Fatalf("%s: expected single pushes %x, got %x", tc.name, tc.single, got)
		}
		if got := pawnDoublePush(tc.pawns, tc.empty, tc.color); got != tc.double {
			t.Fatalf("%s: expected double pushes %x, got %x", tc.name, tc.double, got)
		}
	}
}

func TestPawnDirectionalAttacks(t *testing.T) {
	testcases := []struct {
		name       string
		pawns      uint64
		color      Color
		east, west uint64
	}{
		{"white in the middle", E4, ColorWhite, F5, D5},
		{"white on the a-file does not wrap west", A4, ColorWhite, B5, 0},
		{"white on the h-file does not wrap east", H4, ColorWhite, 0, G5},
		{"black in the middle", E5, ColorBlack, F4, D4},
		{"black on the edges", A5 | H5, ColorBlack, B4, G4},
	}

	for _, tc := range testcases {
		if got := pawnEastAttacks(tc.pawns, tc.color); got != tc.east {
			t.Fatalf("%s: expected east attacks %x, got %x", tc.name, tc.east, got)
		}
		if got := pawnWestAttacks(tc.pawns, tc.color); got != tc.west {
			t.Fatalf("%s: expected west attacks %x, got %x", tc.name, tc.west, got)
		}
	}
}

func TestGenKingMoves(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/8/8/8/R3K2R w - - 0 1")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	var l MoveList
	genKingMoves(pos, &l)

	if l.LastMoveIndex != 5 {
		t.Fatalf("expected 5 king moves, got %d", l.LastMoveIndex)
	}
}

func TestAttackMap(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/8/8/PPPPPPPP/8 w - - 0 1")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	attacks := AttackMap(pos.Bitboards, ColorWhite)
	expected := uint64(0xFF0000)
	if attacks != expected {
		t.Fatalf("expected %x, got %x", expected, attacks)
	}
}

func TestGenChecksCounter(t *testing.T) {
	testcases := []struct {
		name     string
		fen      string
		color    Color
		expected int
	}{
		{"no check", InitialPos, ColorWhite, 0},
		{"rook checks king along open file", "4k3/8/8/8/8/8/4R3/4K3 w - - 0 1", ColorWhite, 1},
	}

	for _, tc := range testcases {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("%s: unexpected parse error: %v", tc.name, err)
		}

		got := GenChecksCounter(pos.Bitboards, tc.color)
		if got != tc.expected {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.expected, got)
		}
	}
}

// perft walks the legal move tree to the given depth and counts leaf
// nodes, used to cross-check the move generator against known results.
// See https://www.chessprogramming.org/Perft_Results
func perft(p Position, depth int) int {
	var l MoveList
	GenLegalMoves(p, &l)

	if depth == 1 {
		return int(l.LastMoveIndex)
	}

	nodes := 0
	prev := p

	for i := byte(0); i < l.LastMoveIndex; i++ {
		m := l.Moves[i]
		moved := p.GetPieceFromSquare(1 << m.From())
		captured := p.GetPieceFromSquare(1 << m.To())
		p.MakeMove(m, moved, captured)

		nodes += perft(p, depth-1)

		p = prev
	}

	return nodes
}

func TestPerft(t *testing.T) {
	pos, err := ParseFEN(InitialPos)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	testcases := []struct {
		depth    int
		expected int
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range testcases {
		got := perft(pos, tc.depth)
		if got != tc.expected {
			t.Fatalf("depth %d: expected %d nodes, got %d", tc.depth, tc.expected, got)
		}
	}
}

func BenchmarkGenPawnAttacks(b *testing.B) {
	for i := 0; i < b.N; i++ {
		genPawnAttacks(B4, ColorWhite)
	}
}

func BenchmarkGenKnightAttacks(b *testing.B) {
	for i := 0; i < b.N; i++ {
		genKnightAttacks(B4)
	}
}

func BenchmarkGenKingAttacks(b *testing.B) {
	for i := 0; i < b.N; i++ {
		genKingAttacks(B4)
	}
}

func BenchmarkRookAttacksAt(b *testing.B) {
	for i := 0; i < b.N; i++ {
		rookAttacksAt(SD4, 0x8000100000)
	}
}

func BenchmarkBishopAttacksAt(b *testing.B) {
	for i := 0; i < b.N; i++ {
		bishopAttacksAt(SD4, 0x8000100000)
	}
}

func BenchmarkGenKingMoves(b *testing.B) {
	pos, _ := ParseFEN("8/8/8/8/8/8/8/R3K2R w - - 0 1")

	for i := 0; i < b.N; i++ {
		genKingMoves(pos, &MoveList{})
	}
}

func BenchmarkGenLegalMoves(b *testing.B) {
	pos, _ := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	for i := 0; i < b.N; i++ {
		lm := MoveList{}
		GenLegalMoves(pos, &lm)
	}
}

func BenchmarkInitAttackTables(b *testing.B) {
	for i := 0; i < b.N; i++ {
		InitAttackTables()
	}
}
