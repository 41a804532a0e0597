package rapidfuzz

import "math/bits"

// worstDistance is reported for released or failed matcher states.
const worstDistance = 1.0

// pattern holds per-rune bit masks for one query string, one bit per
// query position. Built once per matcher and reused across every
// candidate comparison.
type pattern struct {
	masks  map[rune][]uint64
	blocks int
	length int
}

func newPattern(query string) *pattern {
	runes := []rune(query)
	blocks := (len(runes) + 63) / 64

	masks := make(map[rune][]uint64, len(runes))
	for i, r := range runes {
		m, ok := masks[r]
		if !ok {
			m = make([]uint64, blocks)
			masks[r] = m
		}
		m[i/64] |= 1 << uint(i%64)
	}

	return &pattern{masks: masks, blocks: blocks, length: len(runes)}
}

// lcsLength returns the longest common subsequence length between the
// pattern and text, using Hyyrö's bit-parallel algorithm. Runs in
// O(len(text) * blocks) once the pattern masks are built.
func (p *pattern) lcsLength(text []rune) int {
	if p.length == 0 || len(text) == 0 {
		return 0
	}

	s := make([]uint64, p.blocks)
	for i := range s {
		s[i] = ^uint64(0)
	}

	for _, r := range text {
		m := p.masks[r]
		var carry uint64
		for b := 0; b < p.blocks; b++ {
			var mb uint64
			if m != nil {
				mb = m[b]
			}
			// u is a subset of s[b], so the subtraction below
			// never borrows across blocks; only the addition
			// carries.
			u := s[b] & mb
			sum, c := bits.Add64(s[b], u, carry)
			s[b] = sum | (s[b] - u)
			carry = c
		}
	}

	// Zero bits mark matched pattern positions. Bits beyond the
	// pattern length stay set throughout, so no tail masking is
	// needed.
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(^w)
	}
	return n
}

// indelRatio returns the InDel-based fuzzy distance in [0,1] between
// the pattern and candidate, matching rapidfuzz ratio semantics.
func (p *pattern) indelRatio(candidate string) float64 {
	text := []rune(candidate)
	total := p.length + len(text)
	if total == 0 {
		return 0
	}
	lcs := p.lcsLength(text)
	return 1 - float64(2*lcs)/float64(total)
}

// levenshteinDistance returns the plain edit distance between a and b
// using a two-row dynamic program over runes.
func levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// normalizedLevenshtein rescales the edit distance by the longer
// input's length, yielding a distance in [0,1].
func normalizedLevenshtein(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 0
	}
	return float64(levenshteinDistance(ra, rb)) / float64(longest)
}
