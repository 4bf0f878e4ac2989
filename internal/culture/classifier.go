package culture

import "strings"

// Preferences is what a Classifier derives from a flat tag list.
type Preferences struct {
	Colors            []string
	Values            []string
	VisualElements    []string
	FormatPreferences []string
	TopicsOfInterest  []string
}

// Classifier turns taste-graph tags into structured preferences.
type Classifier interface {
	Classify(tags []string) Preferences
}

// KeywordClassifier matches tags against fixed vocabularies by
// case-insensitive substring.
type KeywordClassifier struct {
	ColorTerms    []string
	ValueTerms    []string
	DefaultValues []string

	MaxColors  int
	MaxValues  int
	MaxVisuals int
	MaxFormats int
	MaxTopics  int
}

// DefaultClassifier returns the stock vocabulary and truncation limits.
func DefaultClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		ColorTerms:    []string{"color", "red", "blue", "green", "black", "white"},
		ValueTerms:    []string{"authentic", "sustainable", "innovative", "quality", "community"},
		DefaultValues: []string{"authenticity", "quality", "innovation"},
		MaxColors:     5,
		MaxValues:     10,
		MaxVisuals:    10,
		MaxFormats:    8,
		MaxTopics:     15,
	}
}

func (k *KeywordClassifier) Classify(tags []string) Preferences {
	values := firstN(matchAny(tags, k.ValueTerms), k.MaxValues)
	if len(values) == 0 {
		values = firstN(k.DefaultValues, len(k.DefaultValues))
	}
	return Preferences{
		Colors:            firstN(matchAny(tags, k.ColorTerms), k.MaxColors),
		Values:            values,
		VisualElements:    firstN(tags, k.MaxVisuals),
		FormatPreferences: firstN(tags, k.MaxFormats),
		TopicsOfInterest:  firstN(tags, k.MaxTopics),
	}
}

func matchAny(tags, terms []string) []string {
	var out []string
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}

// dedupe drops repeated entries, keeping the first occurrence.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
