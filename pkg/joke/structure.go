package joke

import (
	"regexp"
	"strings"
)

// Target generated length, in words, requested of every model.
const (
	MinTargetWords = 15
	MaxTargetWords = 50
)

var sentenceCountRX = regexp.MustCompile(`[.!?]+`)

// Structure holds objective structural-validity properties of a joke,
// independent of any subjective rating.
type Structure struct {
	HasSetup           bool `json:"has_setup"`
	HasPunchline       bool `json:"has_punchline"`
	Valid              bool `json:"structure_valid"`
	WithinTargetLength bool `json:"within_target_length"`
	ExplicitMarkers    bool `json:"explicit_format_markers"`
	SentenceCount      int  `json:"sentence_count"`
}

// Structure reports whether the joke has both components, complied with the
// requested format, and landed in the target length range.
func (j ParsedJoke) Structure() Structure {
	hasSetup := strings.TrimSpace(j.Setup) != ""
	hasPunchline := strings.TrimSpace(j.Punchline) != ""
	total := len(strings.Fields(j.FullText))

	lower := strings.ToLower(j.FullText)
	markers := strings.Contains(lower, "setup:") && strings.Contains(lower, "punchline:")

	count := 0
	for _, s := range sentenceCountRX.Split(j.FullText, -1) {
		if strings.TrimSpace(s) != "" {
			count++
		}
	}

	return Structure{
		HasSetup:           hasSetup,
		HasPunchline:       hasPunchline,
		Valid:              hasSetup && hasPunchline,
		WithinTargetLength: total >= MinTargetWords && total <= MaxTargetWords,
		ExplicitMarkers:    markers,
		SentenceCount:      count,
	}
}
