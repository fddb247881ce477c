package chess

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	InitAttackTables()
	os.Exit(m.Run())
}

func TestNewGame(t *testing.T) {
	g := NewGame()

	if g.LegalMoves.LastMoveIndex != 20 {
		t.Fatalf("expected 20 legal moves from the starting position, got %d",
			g.LegalMoves.LastMoveIndex)
	}
	if g.State != StateNormal {
		t.Fatalf("expected normal state, got %s", g.State)
	}
}

func TestPushMoveCheckmate(t *testing.T) {
	// Scholar's mate: Qxf7#.
	g, err := NewGameFromFEN("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 5 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := NewMove(SF7, SH5, MoveNormal)
	if !g.IsMoveLegal(m) {
		t.Fatalf("Qxf7 should be legal")
	}

	san := g.PushMove(m)
	if san != "Qxf7#" {
		t.Fatalf("expected SAN \"Qxf7#\", got %q", san)
	}
	if g.State != StateCheckmate {
		t.Fatalf("expected checkmate, got %s", g.State)
	}
}

func TestPushMoveStalemate(t *testing.T) {
	g, err := NewGameFromFEN("k7/8/K6Q/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := NewMove(SB6, SH6, MoveNormal)
	san := g.PushMove(m)
	if g.State != StateStalemate {
		t.Fatalf("expected stalemate, got %s (san %q)", g.State, san)
	}
}

func TestClassifyState(t *testing.T) {
	testcases := []struct {
		name     string
		fen      string
		expected GameState
	}{
		{"starting position", InitialPos, StateNormal},
		// 1.f3 e5 2.g4 Qh4#, the fastest possible checkmate.
		{
			"fool's mate",
			"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
			StateCheckmate,
		},
		{
			"cornered king with no moves",
			"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			StateStalemate,
		},
		{
			"check with an escape",
			"4k3/8/8/8/8/8/4R3/4K3 b - - 0 1",
			StateCheck,
		},
	}

	for _, tc := range testcases {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("%s: unexpected parse error: %v", tc.name, err)
		}

		if got := ClassifyState(pos); got != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestIsMoveLegal(t *testing.T) {
	g := NewGame()

	legal := NewMove(SE4, SE2, MoveNormal)
	illegal := NewMove(SE5, SE2, MoveNormal)

	if !g.IsMoveLegal(legal) {
		t.Fatalf("e2e4 should be legal from the starting position")
	}
	if g.IsMoveLegal(illegal) {
		t.Fatalf("e2e5 should not be legal from the starting position")
	}
}

func BenchmarkPushMove(b *testing.B) {
	pos, _ := ParseFEN(InitialPos)

	for i := 0; i < b.N; i++ {
		g := &Game{position: pos}
		GenLegalMoves(g.position, &g.LegalMoves)
		g.PushMove(NewMove(SE4, SE2, MoveNormal))
	}
}
