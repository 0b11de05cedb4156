// Package features keyword-codes free-text humor explanations for the
// presence of mechanism categories. The scan is a deliberate, over-inclusive
// substring check: incidental matches are an accepted property of the
// exploratory analysis, not something to engineer around.
package features

import "strings"

// The fixed feature kinds used by the study, in reporting order.
const (
	Semantic = "semantic"
	Embodied = "embodied"
	Social   = "social"
	Threat   = "threat"
)

// Kinds returns the default feature kinds in reporting order.
func Kinds() []string {
	return []string{Semantic, Embodied, Social, Threat}
}

// DefaultKeywords is the study's keyword configuration: for each feature
// kind, the lower-case substrings whose presence counts as citing that kind.
func DefaultKeywords() map[string][]string {
	return map[string][]string{
		Semantic: {
			"ambiguous", "ambiguity", "double meaning", "wordplay", "pun",
			"multiple meanings", "semantic", "reinterpret", "frame", "shift",
			"incongruity", "incongruous", "unexpected", "twist", "surprise",
		},
		Embodied: {
			"physical", "pain", "hurt", "collision", "impact", "body",
			"bodily", "injury", "clumsy", "fall", "bump", "hit",
			"sensory", "tactile", "kinesthetic", "motor",
		},
		Social: {
			"social", "norm", "awkward", "embarrass", "inappropriate",
			"expect", "convention", "etiquette", "perspective",
			"understand", "recognize", "aware", "context", "situation",
		},
		Threat: {
			"threat", "danger", "risk", "harm", "safe", "benign",
			"mortality", "death", "die", "kill", "taboo", "dark",
		},
	}
}

// Codes holds per-kind presence counts over one explanation. A keyword
// contributes at most one to its kind's count regardless of how often it
// occurs, so each count is bounded by the size of that kind's keyword list.
type Codes struct {
	Counts map[string]int `json:"counts"`
}

// Has reports whether any keyword of the kind was present.
func (c Codes) Has(kind string) bool {
	return c.Counts[kind] > 0
}

// Count returns the number of distinct keywords of the kind that were
// present. Unknown kinds count zero.
func (c Codes) Count(kind string) int {
	return c.Counts[kind]
}

// Coder scans explanations against an injected keyword configuration.
// The configuration is fixed at construction and never mutated.
type Coder struct {
	kinds    []string
	keywords map[string][]string
}

// NewCoder builds a coder from a kind → keyword-list mapping. Keywords are
// normalized to lower case so matching stays case-insensitive regardless of
// how the configuration was written.
func NewCoder(keywords map[string][]string) *Coder {
	c := &Coder{keywords: make(map[string][]string, len(keywords))}
	for kind, list := range keywords {
		lowered := make([]string, len(list))
		for i, kw := range list {
			lowered[i] = strings.ToLower(kw)
		}
		c.kinds = append(c.kinds, kind)
		c.keywords[kind] = lowered
	}
	return c
}

// NewDefaultCoder builds a coder over the study's keyword lists.
func NewDefaultCoder() *Coder {
	return NewCoder(DefaultKeywords())
}

// Code scans text for each configured kind. Empty input is a defined
// default, not an error: every count is zero and every flag false.
func (c *Coder) Code(text string) Codes {
	codes := Codes{Counts: make(map[string]int, len(c.keywords))}
	for kind := range c.keywords {
		codes.Counts[kind] = 0
	}
	if text == "" {
		return codes
	}

	lower := strings.ToLower(text)
	for kind, list := range c.keywords {
		count := 0
		for _, kw := range list {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		codes.Counts[kind] = count
	}
	return codes
}

// Kinds returns the configured kinds. Order is not significant.
func (c *Coder) Kinds() []string {
	return c.kinds
}
