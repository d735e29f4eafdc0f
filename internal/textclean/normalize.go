package textclean

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var letterFolds = strings.NewReplacer(
	"ى", "ي",
	"ة", "ه",
	"ـ", "",
)

// NormalizeArabic folds Arabic letter variants for matching: hamza and madda
// forms of alef become bare alef, alef maqsura becomes ya, ta marbuta becomes
// ha, and diacritics and tatweel are removed. Whitespace is collapsed.
//
// The result is only used for comparisons and counting, never for display.
func NormalizeArabic(text string) string {
	if text == "" {
		return ""
	}
	// transform chains keep state, so one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = letterFolds.Replace(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// Token lower-cases a raw whitespace token, trims everything that is not a
// letter or digit and applies NormalizeArabic.
func Token(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return NormalizeArabic(b.String())
}

// Tokens splits text on whitespace and returns the non-empty normalized tokens.
func Tokens(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := Token(f); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CountWords returns the number of whitespace separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
