package lexical

import "math"

// PartialRatio computes an approximate string-matching score on a 0–100
// scale, tolerant of substring-type near-duplicates ("gold card" vs
// "gold card (co-brand)"). The shorter string is slid across the longer one
// and the best Ratcliff/Obershelp similarity of any window wins, so a full
// substring match always scores 100.
func PartialRatio(a, b string) int {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}

	best := 0.0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		r := ratio(shorter, longer[start:start+len(shorter)])
		if r > best {
			best = r
			if best == 1 {
				break
			}
		}
	}
	return int(math.Round(best * 100))
}

// ratio is the Ratcliff/Obershelp similarity: twice the total matched
// characters over the combined length.
func ratio(a, b []rune) float64 {
	matched := matchTotal(a, b)
	return 2 * float64(matched) / float64(len(a)+len(b))
}

// matchTotal sums matched characters by recursively taking the longest
// common substring and matching the pieces to its left and right.
func matchTotal(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchTotal(a[:ai], b[:bi]) +
		matchTotal(a[ai+size:], b[bi+size:])
}

// longestCommonSubstring returns the start offsets and length of the longest
// run of identical characters shared by a and b.
func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	// lengths[j] is the length of the common suffix ending at a[i-1], b[j-1].
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > size {
					size = lengths[j]
					ai = i - size
					bi = j - size
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return ai, bi, size
}
