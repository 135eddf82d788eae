package keywords

import "testing"

func TestDensity(t *testing.T) {
	tests := []struct {
		name       string
		freq, n    int
		totalWords int
		want       float64
	}{
		{"zero total", 5, 1, 0, 0},
		{"negative total", 5, 1, -3, 0},
		{"unigram", 3, 1, 100, 3},
		{"bigram weighted by length", 3, 2, 200, 3},
		{"rounds to two decimals", 1, 1, 3, 33.33},
		{"zero frequency", 0, 2, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Density(tt.freq, tt.n, tt.totalWords); got != tt.want {
				t.Errorf("Density(%d, %d, %d) = %v, want %v", tt.freq, tt.n, tt.totalWords, got, tt.want)
			}
		})
	}
}

func TestAnalysisDensityUsesFrequency(t *testing.T) {
	a := Analysis{TotalWords: 400}
	k := Keyword{Text: "voice search", Frequency: 4, Length: 2, Rank: 6}

	if got := a.Density(k); got != 2 {
		t.Errorf("Expected density 2, got %v", got)
	}

	a.TotalWords = 0
	if got := a.Density(k); got != 0 {
		t.Errorf("Expected density 0 for empty document, got %v", got)
	}
}
