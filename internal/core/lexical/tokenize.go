package lexical

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinTokenLength is the shortest token, in runes, kept by Tokenize.
const MinTokenLength = 2

// tokenPattern matches runs of letters, digits, underscore and hyphen.
// Combining marks are separators, so a Thai word with vowel or tone signs
// splits into fragments, which overlap matches as substrings.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_-]+`)

// Tokenize normalises s and returns its tokens in order, duplicates included.
func Tokenize(s string) []string {
	raw := tokenPattern.FindAllString(Normalize(s), -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if utf8.RuneCountInString(t) < MinTokenLength {
			continue
		}
		out = append(out, t)
	}
	return out
}

// UniqueTokens returns the tokens of s with duplicates removed, first occurrence kept.
func UniqueTokens(s string) []string {
	toks := Tokenize(s)
	seen := make(map[string]struct{}, len(toks))
	out := toks[:0]
	for _, t := range toks {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// CountContained returns how many of tokens occur as substrings of text.
// Matching is literal containment, so a token may match inside a longer word.
func CountContained(tokens []string, text string) int {
	n := 0
	for _, t := range tokens {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}
