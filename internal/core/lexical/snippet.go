package lexical

import (
	"strings"
	"unicode"
)

// FallbackSnippetLength is the rune length of the snippet used when no sentence is chosen.
const FallbackSnippetLength = 220

// Thai sentence-ending characters: PAIYANNOI and MAIYAMOK.
const (
	thaiPaiyannoi = 'ฯ'
	thaiMaiyamok  = 'ๆ'
)

// SplitSentences splits normalised text on newline runs, on '.', '!' or '?'
// followed by whitespace, and after Thai sentence-ending characters.
// Pieces are trimmed and empty pieces dropped.
func SplitSentences(text string) []string {
	rs := []rune(text)
	var out []string
	start := 0
	emit := func(end int) {
		if s := strings.TrimSpace(string(rs[start:end])); s != "" {
			out = append(out, s)
		}
	}

	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == '\n' || r == '\r':
			emit(i)
			for i < len(rs) && (rs[i] == '\n' || rs[i] == '\r') {
				i++
			}
			start = i
		case (r == '.' || r == '!' || r == '?') && i+1 < len(rs) && unicode.IsSpace(rs[i+1]):
			emit(i + 1)
			i++
			for i < len(rs) && unicode.IsSpace(rs[i]) && rs[i] != '\n' && rs[i] != '\r' {
				i++
			}
			start = i
		case r == thaiPaiyannoi || r == thaiMaiyamok:
			emit(i + 1)
			i++
			for i < len(rs) && unicode.IsSpace(rs[i]) && rs[i] != '\n' && rs[i] != '\r' {
				i++
			}
			start = i
		default:
			i++
		}
	}
	emit(len(rs))
	return out
}

// ExtractSnippet returns the sentence of text containing the most query tokens.
// Repeated query tokens count once per occurrence. The first sentence
// reaching the best count wins; later ties do not replace it.
// When text has no sentences it returns the first FallbackSnippetLength runes.
func ExtractSnippet(query, text string) string {
	tokens := Tokenize(query)
	hay := Normalize(text)

	best := ""
	bestScore := -1
	for _, s := range SplitSentences(hay) {
		if score := CountContained(tokens, s); score > bestScore {
			best, bestScore = s, score
		}
	}
	if best == "" {
		best = truncateRunes(hay, FallbackSnippetLength)
	}
	return best
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Preview returns the first n runes of s followed by "..." when s is longer.
func Preview(s string, n int) string {
	t := truncateRunes(s, n)
	if len(t) < len(s) {
		return t + "..."
	}
	return t
}
