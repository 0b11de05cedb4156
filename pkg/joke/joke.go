// Package joke segments raw generated text into a setup/punchline structure
// and computes shallow structural metrics over it. Both operations are total:
// every input string, including the empty one, maps to a defined result.
package joke

import (
	"regexp"
	"strings"
)

// ParsedJoke is the structured form of a single generated joke.
// FullText always holds the original, unmodified input. Setup and Punchline
// may be empty when the text cannot be segmented, but are never absent.
type ParsedJoke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
	FullText  string `json:"full_text"`
}

var (
	setupRX     = regexp.MustCompile(`(?is)setup:\s*(.+?)(?:punchline:|$)`)
	punchlineRX = regexp.MustCompile(`(?is)punchline:\s*(.+)$`)
	sentenceRX  = regexp.MustCompile(`[.!]\s+`)
)

// Parse segments text into setup and punchline. Rules are tried in order and
// the first that applies wins:
//
//  1. explicit case-insensitive "Setup:" / "Punchline:" markers (both must be
//     present, otherwise this rule does not apply at all);
//  2. split at the first '?', which stays with the setup;
//  3. split into sentences on '.' or '!' followed by whitespace; the last
//     sentence is the punchline, or the whole text is the setup when there is
//     only one sentence.
func Parse(text string) ParsedJoke {
	parsed := ParsedJoke{FullText: text}
	if text == "" {
		return parsed
	}

	setupMatch := setupRX.FindStringSubmatch(text)
	punchMatch := punchlineRX.FindStringSubmatch(text)
	if setupMatch != nil && punchMatch != nil {
		parsed.Setup = strings.TrimSpace(setupMatch[1])
		parsed.Punchline = strings.TrimSpace(punchMatch[1])
		return parsed
	}

	if before, after, ok := strings.Cut(text, "?"); ok {
		parsed.Setup = strings.TrimSpace(before) + "?"
		parsed.Punchline = strings.TrimSpace(after)
		return parsed
	}

	sentences := sentenceRX.Split(text, -1)
	if len(sentences) > 1 {
		parsed.Setup = strings.Join(sentences[:len(sentences)-1], ". ") + "."
		parsed.Punchline = sentences[len(sentences)-1]
		return parsed
	}

	parsed.Setup = text
	return parsed
}

// Metrics are shallow lexical measurements over a parsed joke.
type Metrics struct {
	TotalWords             int     `json:"total_words"`
	SetupWords             int     `json:"setup_words"`
	PunchlineWords         int     `json:"punchline_words"`
	SetupToPunchlineRatio  float64 `json:"setup_to_punchline_ratio"`
	HasQuestion            bool    `json:"has_question"`
	HasPunctuationEmphasis bool    `json:"has_punctuation_emphasis"`
}

// Metrics computes word counts and punctuation flags. Word counts use
// whitespace-delimited tokenization. The ratio denominator is floored at 1 so
// the value is finite for every input; downstream aggregation never needs
// null handling.
func (j ParsedJoke) Metrics() Metrics {
	setupWords := len(strings.Fields(j.Setup))
	punchWords := len(strings.Fields(j.Punchline))
	return Metrics{
		TotalWords:             len(strings.Fields(j.FullText)),
		SetupWords:             setupWords,
		PunchlineWords:         punchWords,
		SetupToPunchlineRatio:  float64(setupWords) / float64(max(punchWords, 1)),
		HasQuestion:            strings.Contains(j.Setup, "?"),
		HasPunctuationEmphasis: strings.Contains(j.Punchline, "!"),
	}
}
