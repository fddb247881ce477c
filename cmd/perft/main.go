// main.go implements a debugging and benchmarking CLI for the move
// generator.
//
// TODO: fix verbose perft. It doesn't print the resulting information
// correctly.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/xpakx/chess"
)

// result holds the counters printed to the console when the verbose
// flag is used.
type result struct {
	nodes        int
	captures     int
	promotions   int
	checks       int
	doubleChecks int
}

// perft is a debugging function that walks through the move generation
// tree of strictly legal moves to a given depth and counts the number
// of visited leaf nodes. The resulting count is then compared to
// predetermined values.
//
// See https://www.chessprogramming.org/Perft_Results
func perft(p chess.Position, depth int) int {
	l := chess.MoveList{}
	nodes := 0

	chess.GenLegalMoves(p, &l)

	if depth == 1 {
		return int(l.LastMoveIndex)
	}

	var prev chess.Position
	var moved, captured chess.Piece

	for i := byte(0); i < l.LastMoveIndex; i++ {
		prev = p
		moved = p.GetPieceFromSquare(1 << l.Moves[i].From())
		captured = p.GetPieceFromSquare(1 << l.Moves[i].To())
		p.MakeMove(l.Moves[i], moved, captured)

		nodes += perft(p, depth-1)

		p = prev
	}

	return nodes
}

// perftVerbose follows the same principle as perft, except it writes
// detailed move debugging information to r. Use this function to debug
// and find invalid branches in the move generation tree, not to
// measure performance.
func perftVerbose(p chess.Position, depth int, r *result, isRoot bool) int {
	l := chess.MoveList{}
	nodes := 0

	chess.GenLegalMoves(p, &l)

	if depth == 1 {
		return int(l.LastMoveIndex)
	}

	c := p.ActiveColor
	var prev chess.Position
	var moved, captured chess.Piece

	for i := byte(0); i < l.LastMoveIndex; i++ {
		if p.GetPieceFromSquare(1<<l.Moves[i].To()) != chess.PieceNone {
			r.captures++
		}

		prev = p
		moved = p.GetPieceFromSquare(1 << l.Moves[i].From())
		captured = p.GetPieceFromSquare(1 << l.Moves[i].To())
		p.MakeMove(l.Moves[i], moved, captured)

		cnt := chess.GenChecksCounter(p.Bitboards, 1^c)
		if cnt > 0 {
			r.checks++
		}
		if cnt > 1 {
			r.doubleChecks++
		}

		leaves := perftVerbose(p, depth-1, r, false)
		if isRoot {
			log.Printf("%s %d", move2UCI(l.Moves[i]), leaves)
		}
		nodes += leaves

		if l.Moves[i].Type() == chess.MovePromotion {
			r.promotions++
		}

		p = prev
	}

	return nodes
}

// move2UCI converts the move into a long algebraic notation string.
//
// Examples: e2e4, e7e5, e7e8q (for promotion).
func move2UCI(m chess.Move) string {
	var b strings.Builder
	b.Grow(5)

	b.WriteString(chess.Square2String[m.From()])
	b.WriteString(chess.Square2String[m.To()])

	if m.Type() == chess.MovePromotion {
		switch m.PromoPiece() {
		case chess.PromotionKnight:
			b.WriteByte('n')
		case chess.PromotionBishop:
			b.WriteByte('b')
		case chess.PromotionRook:
			b.WriteByte('r')
		case chess.PromotionQueen:
			b.WriteByte('q')
		}
	}

	return b.String()
}

// main runs perft and measures its execution time.
func main() {
	depth := flag.Int("depth", 1, "Performance test depth")
	verbose := flag.Bool("verbose", false, "Wether to print the debug info")
	fenFlag := flag.String("fen", chess.InitialPos, "FEN of the root position")
	cpuprofile := flag.String("cpuprofile", "", "File to write a cpu profile")
	memprofile := flag.String("memprofile", "", "File to write a memory profile")

	flag.Parse()

	r := &result{}

	fen := *fenFlag
	p, err := chess.ParseFEN(fen)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)

		if *verbose {
			log.Printf("\nRoot position:\n%s\n\n\t%s\n\n", position(p), fen)
			log.Printf("\t%d\t%d\t\t%d\t%d\t%d\t",
				*depth,
				r.nodes,
				r.captures,
				r.promotions,
				r.checks,
			)
			log.Printf("Elapsed time: %d ns", elapsed.Nanoseconds())
		} else {
			log.Printf("Nodes reached: %d", r.nodes)
			log.Printf("Elapsed time: %d ns", elapsed.Nanoseconds())
		}
	}()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		defer f.Close()
	}

	if *verbose {
		r.nodes = perftVerbose(p, *depth, r, true)
	} else {
		r.nodes = perft(p, *depth)
	}
}

// position formats a full chess position into a string.
func position(p chess.Position) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + 1 + '0')
		b.WriteString("  ")

		for file := 0; file < 8; file++ {
			square := uint64(1 << (8*rank + file))

			symbol := byte('.')

			for i := chess.PieceWPawn; i <= chess.PieceBKing; i++ {
				if square&p.Bitboards[i] != 0 {
					symbol = chess.PieceSymbols[i]
					break
				}
			}

			b.WriteByte(symbol)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}

	b.WriteString("   a  b  c  d  e  f  g  h\nActive color: ")

	if p.ActiveColor == chess.ColorWhite {
		b.WriteString("white\nEn passant: ")
	} else {
		b.WriteString("black\nEn passant: ")
	}

	if p.EPTarget < 0 {
		b.WriteString("none\nCastling rights: ")
	} else {
		b.WriteString(chess.Square2String[p.EPTarget])
		b.WriteString("\nCastling rights: ")
	}

	if p.CastlingRights&chess.CastlingWhiteShort != 0 {
		b.WriteByte('K')
	}
	if p.CastlingRights&chess.CastlingWhiteLong != 0 {
		b.WriteByte('Q')
	}
	if p.CastlingRights&chess.CastlingBlackShort != 0 {
		b.WriteByte('k')
	}
	if p.CastlingRights&chess.CastlingBlackLong != 0 {
		b.WriteByte('q')
	}

	return b.String()
}
