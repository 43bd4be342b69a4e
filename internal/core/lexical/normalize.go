package lexical

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// zeroWidth drops ZERO WIDTH SPACE, NON-JOINER, JOINER and the BOM.
var zeroWidth = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
)

// Normalize removes zero-width characters and applies canonical composition (NFC).
// Removal runs first so that characters separated only by a zero-width
// character still compose, which keeps Normalize idempotent.
func Normalize(s string) string {
	return norm.NFC.String(zeroWidth.Replace(s))
}

// CollapseWhitespace replaces every run of whitespace with one space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
