// Package textclean reduces OCR and extraction noise in mixed Arabic/English
// text before it is scored.
//
// Clean is total: it never fails and always returns its best effort. The steps
// run in a fixed order so that Clean(Clean(x)) == Clean(x).
package textclean

import (
	"strings"
	"unicode"
)

// Clean strips control characters and foreign-script noise, repairs common OCR
// artifacts and collapses redundant whitespace and punctuation.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	s := stripControls(text)
	s = filterAllowed(s)
	s = collapseTerminals(s)
	s = collapseLatinRuns(s)
	s = repairDigitSplices(s)

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = dropNoiseTokens(lines[i])
	}
	lines = dropLatinLines(lines)
	return joinLines(lines)
}

func stripControls(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r == '\t':
			b.WriteByte(' ')
		case unicode.Is(unicode.Cc, r), unicode.Is(unicode.Cf, r):
			// zero-width and bidi marks carry no text
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func filterAllowed(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAllowed(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func collapseTerminals(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevTerminal := false
	for _, r := range s {
		if IsTerminal(r) {
			if prevTerminal {
				continue
			}
			prevTerminal = true
		} else {
			prevTerminal = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// collapseLatinRuns turns "aaaa" style OCR stutter into a single letter.
func collapseLatinRuns(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); {
		j := i
		for j < len(rs) && rs[j] == rs[i] {
			j++
		}
		if IsLatinLetter(rs[i]) && j-i >= 3 {
			b.WriteRune(rs[i])
		} else {
			b.WriteString(string(rs[i:j]))
		}
		i = j
	}
	return b.String()
}

// repairDigitSplices restores digits misread as look-alike letters, e.g. 2O23.
func repairDigitSplices(s string) string {
	rs := []rune(s)
	for i := 1; i+1 < len(rs); i++ {
		if !isASCIIDigit(rs[i-1]) || !isASCIIDigit(rs[i+1]) {
			continue
		}
		switch rs[i] {
		case 'O', 'o':
			rs[i] = '0'
		case 'l', 'I':
			rs[i] = '1'
		}
	}
	return string(rs)
}

// dropNoiseTokens removes short or acronym-like Latin tokens that have no
// Latin neighbour on the line.
func dropNoiseTokens(line string) string {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return ""
	}
	latin := make([]bool, len(tokens))
	for i, t := range tokens {
		latin[i] = strings.IndexFunc(t, IsLatinLetter) >= 0
	}
	kept := tokens[:0:0]
	for i, t := range tokens {
		if isNoiseShape(t) {
			left := i > 0 && latin[i-1]
			right := i+1 < len(tokens) && latin[i+1]
			if !left && !right {
				continue
			}
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, " ")
}

func isNoiseShape(token string) bool {
	core := strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	n := 0
	upperConsonants := true
	for _, r := range core {
		if !IsLatinLetter(r) {
			return false
		}
		n++
		if !unicode.IsUpper(r) || strings.ContainsRune("AEIOUY", r) {
			upperConsonants = false
		}
	}
	switch {
	case n == 0:
		return false
	case n <= 2:
		return true
	case n <= 5:
		return upperConsonants
	}
	return false
}

// dropLatinLines discards lines dominated by Latin letters, but only in
// documents whose Arabic letters outnumber their Latin ones.
func dropLatinLines(lines []string) []string {
	counts := make([]ScriptCounts, len(lines))
	var arabic, latin int
	for i, l := range lines {
		counts[i] = CountScripts(l)
		arabic += counts[i].Arabic
		latin += counts[i].Latin
	}
	if arabic == 0 || arabic < latin {
		return lines
	}
	out := lines[:0:0]
	for i, l := range lines {
		c := counts[i]
		if c.Latin > c.Arabic && c.Latin*2 > c.NonSpace {
			continue
		}
		out = append(out, l)
	}
	return out
}

func joinLines(lines []string) string {
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
