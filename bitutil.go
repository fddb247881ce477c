/*
bitutil.go implements useful bit utilities which are used in move generation
and position management.
*/

package chess

import "math/bits"

/*
CountBits returns the number of bits set within the bitboard.
*/
func CountBits(bitboard uint64) int {
	return bits.OnesCount64(bitboard)
}

/*
bitScan returns the index of the LSB within the bitboard.

NOTE: bitScan returns 64 for the empty bitboard, mirroring
[bits.TrailingZeros64]'s convention.  Callers must not scan an empty
bitboard.
*/
func bitScan(bitboard uint64) int {
	return bits.TrailingZeros64(bitboard)
}

/*
msb returns the index of the highest set bit within the bitboard.  Used by
the sliding-piece attack generators to find the nearest blocker in the
"south" and "west" directions, where the first blocker is the one closest
to the slider, i.e. the one with the highest square index below it.
*/
func msb(bitboard uint64) int {
	return 63 - bits.LeadingZeros64(bitboard)
}

/*
popLSB removes the LSB from the bitboard and returns its index.
*/
func popLSB(bitboard *uint64) int {
	lsb := bitScan(*bitboard)
	*bitboard &= *bitboard - 1
	return lsb
}
