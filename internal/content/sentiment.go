package content

import (
	"strings"
)

// Small polarity lexicon for the sentiment share of the content score.
// Only the sign of the result is used; this deliberately stays a shallow
// heuristic rather than a language-understanding feature.
var positiveWords = map[string]bool{
	"advance":      true,
	"amazing":      true,
	"best":         true,
	"better":       true,
	"boost":        true,
	"breakthrough": true,
	"efficient":    true,
	"excellent":    true,
	"good":         true,
	"great":        true,
	"growth":       true,
	"impressive":   true,
	"improve":      true,
	"improved":     true,
	"innovative":   true,
	"powerful":     true,
	"progress":     true,
	"promising":    true,
	"success":      true,
	"successful":   true,
	"win":          true,
}

var negativeWords = map[string]bool{
	"bad":      true,
	"bug":      true,
	"concern":  true,
	"decline":  true,
	"fail":     true,
	"failed":   true,
	"failure":  true,
	"flaw":     true,
	"loss":     true,
	"problem":  true,
	"risk":     true,
	"slow":     true,
	"threat":   true,
	"worse":    true,
	"worst":    true,
}

// Polarity returns a value in [-1,1]: positive when positive lexicon hits
// outnumber negative ones, 0 when neither appears.
func Polarity(text string) float64 {
	var positives, negatives int

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:()\"'")
		switch {
		case positiveWords[word]:
			positives++
		case negativeWords[word]:
			negatives++
		}
	}

	total := positives + negatives
	if total == 0 {
		return 0
	}
	return float64(positives-negatives) / float64(total)
}
