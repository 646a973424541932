package jcodec

import "math/bits"

// MaxMatrixCandidates is the maximum number of candidate strings a single
// StringMatrix can dispatch, since the active set is carried as a 64-bit
// mask with one spare bit held in reserve.
const MaxMatrixCandidates = 63

// StringMatrix matches an incoming stream of runes against a fixed set of
// candidate strings in O(length) time with no allocation once built,
// without ever materializing the input as a string. It is the trie-as-
// bitset structure spec.md section 4.4 describes: a dense 2-D codepoint
// table plus a 64-bit "still possible" mask that the caller thread through
// successive Update calls.
//
// There is no direct analogue of this in the teacher repo (jibby matches a
// single fixed key at a time via peekBoundedQuote+bytes.Compare); this
// structure generalizes that idea to dispatching against many candidates at
// once the way a record decoder's field-name lookup needs to.
type StringMatrix struct {
	width   int
	height  int
	lengths []int
	initial uint64
	// table[charIndex][stringIndex] holds the rune at that position of that
	// candidate string, or -1 if the candidate is shorter than charIndex+1.
	table [][]int32
}

// NewStringMatrix builds a StringMatrix over 1..=63 non-empty candidate
// strings. Panics if xs is empty, too large, or contains an empty string.
func NewStringMatrix(xs []string) *StringMatrix {
	width := len(xs)
	if width == 0 || width > MaxMatrixCandidates {
		panic("jcodec: StringMatrix needs 1..63 candidates")
	}

	height := 0
	lengths := make([]int, width)
	for i, x := range xs {
		if len(x) == 0 {
			panic("jcodec: StringMatrix candidates must be non-empty")
		}
		runes := []rune(x)
		lengths[i] = len(runes)
		if len(runes) > height {
			height = len(runes)
		}
	}

	table := make([][]int32, height)
	for c := 0; c < height; c++ {
		row := make([]int32, width)
		for s, x := range xs {
			runes := []rune(x)
			if c < len(runes) {
				row[s] = runes[c]
			} else {
				row[s] = -1
			}
		}
		table[c] = row
	}

	return &StringMatrix{
		width:   width,
		height:  height,
		lengths: lengths,
		initial: (uint64(1) << uint(width)) - 1,
		table:   table,
	}
}

// Initial is the mask with every candidate still possible.
func (m *StringMatrix) Initial() uint64 {
	return m.initial
}

// Update clears the bit of every candidate whose rune at charIndex differs
// from c, and returns the resulting mask. charIndex must be called with
// strictly increasing values starting at 0 for a given match attempt.
func (m *StringMatrix) Update(mask uint64, charIndex int, c rune) uint64 {
	if mask == 0 || charIndex >= m.height {
		return 0
	}
	row := m.table[charIndex]

	if mask == m.initial {
		// Fast path: every candidate is still live, so a dense scan over
		// all width entries is more branch-predictable than bit-twiddling.
		var out uint64
		for s := 0; s < m.width; s++ {
			if row[s] == int32(c) {
				out |= uint64(1) << uint(s)
			}
		}
		return out
	}

	var out uint64
	for rem := mask; rem != 0; {
		s := bits.TrailingZeros64(rem)
		rem &= rem - 1
		if row[s] == int32(c) {
			out |= uint64(1) << uint(s)
		}
	}
	return out
}

// Exact clears the bit of every candidate whose length differs from length,
// removing candidates that are proper prefixes of the matched input.
func (m *StringMatrix) Exact(mask uint64, length int) uint64 {
	var out uint64
	for rem := mask; rem != 0; {
		s := bits.TrailingZeros64(rem)
		rem &= rem - 1
		if m.lengths[s] == length {
			out |= uint64(1) << uint(s)
		}
	}
	return out
}

// First returns the lowest-set-bit index of mask, or -1 if mask is empty.
func (m *StringMatrix) First(mask uint64) int {
	if mask == 0 {
		return -1
	}
	return bits.TrailingZeros64(mask)
}
