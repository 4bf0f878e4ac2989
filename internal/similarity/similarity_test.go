package similarity

import (
	"slices"
	"testing"
)

func TestNgrams(t *testing.T) {
	c := New(0.5, 3)
	got := c.Ngrams("Eco-Friendly!")
	for _, want := range []string{"eco", "co ", "o f", "dly"} {
		if _, ok := got[want]; !ok {
			t.Errorf("Ngrams missing %q", want)
		}
	}
	if len(c.Ngrams("ab")) != 0 {
		t.Error("text shorter than n should yield no n-grams")
	}
}

func TestDistinctPairs(t *testing.T) {
	c := New(0.6, 3)
	tests := []struct {
		a, b    string
		wantDup bool
	}{
		{"Gen Z embraces thrift fashion", "Gen Z embraces thrift fashion.", true},
		{"Gen Z embraces thrift fashion", "gen z EMBRACES thrift-fashion", true},
		{"Gen Z embraces thrift fashion", "Boomers buy luxury watches", false},
		{"a", "a", false},
	}
	for _, tt := range tests {
		dup := len(c.Distinct([]string{tt.a, tt.b})) == 1
		if dup != tt.wantDup {
			t.Errorf("Distinct(%q, %q) duplicate = %v, want %v", tt.a, tt.b, dup, tt.wantDup)
		}
	}
}

func TestDistinct(t *testing.T) {
	c := New(0.6, 3)
	got := c.Distinct([]string{
		"Sustainable sneakers are trending with Gen Z",
		"Sneaker resale market hits record",
		"Sustainable sneakers are trending with Gen Z shoppers",
		"x",
		"y",
	})
	if want := []int{0, 1, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("Distinct() = %v, want %v", got, want)
	}
}

func TestJaccardSimilarity(t *testing.T) {
	a := map[string]struct{}{"abc": {}, "bcd": {}}
	b := map[string]struct{}{"bcd": {}, "cde": {}}
	if got := JaccardSimilarity(a, b); got != 1.0/3.0 {
		t.Errorf("JaccardSimilarity() = %v, want 1/3", got)
	}
	if got := JaccardSimilarity(nil, nil); got != 1.0 {
		t.Errorf("JaccardSimilarity(empty, empty) = %v, want 1", got)
	}
}
