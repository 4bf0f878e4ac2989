package similarity

import (
	"strings"
	"unicode"
)

// Checker compares texts by character n-gram overlap.
type Checker struct {
	threshold float64
	ngramSize int
}

func New(threshold float64, ngramSize int) *Checker {
	if ngramSize <= 0 {
		ngramSize = 3
	}
	return &Checker{threshold: threshold, ngramSize: ngramSize}
}

// normalize lowercases, removes punctuation, and collapses whitespace.
func (c *Checker) normalize(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevSpace = false
		} else if !prevSpace {
			sb.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(sb.String())
}

// Ngrams extracts all character n-grams from the text.
func (c *Checker) Ngrams(text string) map[string]struct{} {
	runes := []rune(c.normalize(text))
	set := make(map[string]struct{})
	for i := 0; i <= len(runes)-c.ngramSize; i++ {
		set[string(runes[i:i+c.ngramSize])] = struct{}{}
	}
	return set
}

// JaccardSimilarity computes |A intersection B| / |A union B|.
func JaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Distinct returns the indices of texts that are not too similar to an
// earlier kept text, in input order. Texts too short to yield any n-gram are
// never treated as duplicates.
func (c *Checker) Distinct(texts []string) []int {
	kept := make([]int, 0, len(texts))
	sets := make([]map[string]struct{}, 0, len(texts))
	for i, text := range texts {
		grams := c.Ngrams(text)
		dup := false
		if len(grams) > 0 {
			for _, prev := range sets {
				if len(prev) > 0 && JaccardSimilarity(grams, prev) >= c.threshold {
					dup = true
					break
				}
			}
		}
		if dup {
			continue
		}
		kept = append(kept, i)
		sets = append(sets, grams)
	}
	return kept
}
