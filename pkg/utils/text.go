package utils

import (
	"strings"
	"unicode"

	"github.com/aryann/difflib"
)

// TokenizeWords splits s into runs of word characters, punctuation, and
// whitespace. Word runs include digits, hyphens, and apostrophes.
func TokenizeWords(s string) []string {
	var out []string
	var cur []rune
	kind := -1 // 0=space,1=word,2=punct
	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
	}
	for _, r := range s {
		k := 2
		switch {
		case unicode.IsSpace(r):
			k = 0
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' || r == '\'':
			k = 1
		}
		if kind == -1 {
			kind = k
		}
		if k != kind {
			flush()
			kind = k
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

// Words returns the lower-cased word tokens of s, dropping whitespace and
// punctuation runs.
func Words(s string) []string {
	tokens := TokenizeWords(s)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		r := []rune(tok)[0]
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			out = append(out, strings.ToLower(tok))
		}
	}
	return out
}

type WordDelta struct {
	Op   int
	Text string
}

// DiffWords word-diffs a against b. Op is -1 for tokens only in a, +1 for
// tokens only in b, 0 for common tokens.
func DiffWords(a, b string) []WordDelta {
	at := TokenizeWords(a)
	bt := TokenizeWords(b)
	recs := difflib.Diff(at, bt)
	out := make([]WordDelta, 0, len(recs))
	for _, r := range recs {
		switch r.Delta {
		case difflib.Common:
			out = append(out, WordDelta{Op: 0, Text: r.Payload})
		case difflib.LeftOnly:
			out = append(out, WordDelta{Op: -1, Text: r.Payload})
		case difflib.RightOnly:
			out = append(out, WordDelta{Op: +1, Text: r.Payload})
		}
	}
	return out
}

// SequenceSimilarity scores how closely b tracks a as an ordered word
// sequence: common diff tokens over total word tokens across both sides.
// Unlike OverlapRatio it is order-sensitive.
func SequenceSimilarity(a, b string) float64 {
	var common, words int
	for _, d := range DiffWords(strings.ToLower(a), strings.ToLower(b)) {
		tok := strings.TrimSpace(d.Text)
		if tok == "" {
			continue
		}
		r := []rune(tok)[0]
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			continue
		}
		switch d.Op {
		case 0:
			common++
			words += 2
		default:
			words++
		}
	}
	if words == 0 {
		return 0
	}
	return float64(2*common) / float64(words)
}

// ContainmentRatio is the fraction of a's distinct words that also occur in
// b: |a ∩ b| / |a|, with the denominator floored at 1.
func ContainmentRatio(a, b string) float64 {
	aw := make(map[string]struct{})
	for _, w := range Words(a) {
		aw[w] = struct{}{}
	}
	bw := make(map[string]struct{})
	for _, w := range Words(b) {
		bw[w] = struct{}{}
	}
	common := 0
	for w := range aw {
		if _, ok := bw[w]; ok {
			common++
		}
	}
	return float64(common) / float64(max(len(aw), 1))
}

// OverlapRatio is the Jaccard overlap of the lower-cased word sets of a and
// b: |a ∩ b| / |a ∪ b|. Both empty yields 0.
func OverlapRatio(a, b string) float64 {
	aw := make(map[string]struct{})
	for _, w := range Words(a) {
		aw[w] = struct{}{}
	}
	bw := make(map[string]struct{})
	for _, w := range Words(b) {
		bw[w] = struct{}{}
	}
	if len(aw) == 0 && len(bw) == 0 {
		return 0
	}
	common := 0
	for w := range aw {
		if _, ok := bw[w]; ok {
			common++
		}
	}
	union := len(aw) + len(bw) - common
	return float64(common) / float64(union)
}
