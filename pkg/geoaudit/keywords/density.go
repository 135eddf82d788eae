package keywords

import "math"

// Density returns the share of total words taken by a keyword's occurrences,
// as a percentage rounded to two decimals. It returns 0 when totalWords is
// not positive.
func Density(frequency, ngramLen, totalWords int) float64 {
	if totalWords <= 0 {
		return 0
	}
	d := float64(frequency*ngramLen) / float64(totalWords) * 100
	return math.Round(d*100) / 100
}
