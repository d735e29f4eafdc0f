package textclean

import "unicode"

// IsArabic reports whether r falls in one of the Arabic Unicode blocks.
func IsArabic(r rune) bool {
	switch {
	case r >= 0x0600 && r <= 0x06FF,
		r >= 0x0750 && r <= 0x077F,
		r >= 0x08A0 && r <= 0x08FF,
		r >= 0xFB50 && r <= 0xFDFF,
		r >= 0xFE70 && r <= 0xFEFF:
		return true
	}
	return false
}

// IsArabicLetter reports whether r is a letter in the Arabic script.
func IsArabicLetter(r rune) bool {
	return unicode.IsLetter(r) && unicode.Is(unicode.Arabic, r)
}

// IsLatinLetter reports whether r is a letter in the Latin script.
func IsLatinLetter(r rune) bool {
	return unicode.IsLetter(r) && unicode.Is(unicode.Latin, r)
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// IsDigit reports whether r is a Latin, Arabic-Indic or Extended Arabic-Indic digit.
func IsDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 0x0660 && r <= 0x0669) || (r >= 0x06F0 && r <= 0x06F9)
}

// IsTerminal reports whether r ends a sentence.
func IsTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '؟', '।':
		return true
	}
	return false
}

const allowedPunct = ".,:;!?'\"()[]-/«»،؛؟।$€£%٪"

func isAllowed(r rune) bool {
	if r == ' ' || r == '\n' {
		return true
	}
	if IsArabic(r) || IsLatinLetter(r) || isASCIIDigit(r) {
		return true
	}
	for _, p := range allowedPunct {
		if r == p {
			return true
		}
	}
	return false
}

// ScriptCounts tallies letters per script in s.
type ScriptCounts struct {
	Arabic   int
	Latin    int
	NonSpace int
}

// CountScripts returns the Arabic, Latin and non-space rune counts of s.
func CountScripts(s string) ScriptCounts {
	var c ScriptCounts
	for _, r := range s {
		switch {
		case IsArabicLetter(r):
			c.Arabic++
		case IsLatinLetter(r):
			c.Latin++
		}
		if !unicode.IsSpace(r) {
			c.NonSpace++
		}
	}
	return c
}
