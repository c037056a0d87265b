// Package match computes the similarity ratio used to pair spreadsheet
// records with folders on disk.
package match

// Ratio returns a similarity score in [0, 1] between two strings.
//
// The score is a recursive longest-common-substring alignment: the longest
// common contiguous run of characters is located, the same procedure is
// applied to the unmatched prefix pair and suffix pair, and the total matched
// length M yields 2*M / (len(a) + len(b)). Two empty strings score 1.
//
// Downstream thresholds (the 0.8 classify cutoff, report ranking) are
// calibrated against this exact algorithm; do not swap in edit distance or
// token overlap.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchedLength(ra, rb)) / float64(total)
}

// matchedLength sums the lengths of all common substrings found by the
// recursive alignment.
func matchedLength(a, b []rune) int {
	ai, bi, n := longestCommonSubstring(a, b)
	if n == 0 {
		return 0
	}
	return n +
		matchedLength(a[:ai], b[:bi]) +
		matchedLength(a[ai+n:], b[bi+n:])
}

// longestCommonSubstring returns the start offsets and length of the longest
// common contiguous run. Ties prefer the earliest position in a, then in b,
// so the result is deterministic for repeated substrings.
func longestCommonSubstring(a, b []rune) (ai, bi, n int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] holds the length of the common suffix of a[:i] and b[:j].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] != b[j-1] {
				cur[j] = 0
				continue
			}
			cur[j] = prev[j-1] + 1
			if cur[j] > n {
				n = cur[j]
				ai = i - n
				bi = j - n
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	return ai, bi, n
}
