package textutil

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/unicode/norm"
)

var nonAlphaNumPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Similarity returns a case-insensitive similarity ratio in [0,1] between
// two titles. Both sides are NFC-normalized and stripped of punctuation so
// "Amélie!" and "amelie" variants compare on their letters alone.
func Similarity(a, b string) float64 {
	a = foldForComparison(a)
	b = foldForComparison(b)
	if a == "" || b == "" {
		if a == b {
			return 1
		}
		return 0
	}
	if a == b {
		return 1
	}
	metric := &metrics.SorensenDice{CaseSensitive: false, NgramSize: 2}
	return strutil.Similarity(a, b, metric)
}

func foldForComparison(s string) string {
	s = norm.NFC.String(s)
	s = nonAlphaNumPattern.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
