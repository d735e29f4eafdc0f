package summarizer

import (
	"strings"
	"unicode/utf8"

	"docsum/internal/textclean"
)

// Vocabularies are normalized once at init so that matching compares
// NormalizeArabic output on both sides.
var (
	keywords   = newLexicon(englishKeywords, arabicKeywords)
	questions  = newLexicon(englishQuestions, arabicQuestions)
	connectors = newLexicon(englishConnectors, arabicConnectors)
)

var englishKeywords = []string{
	"important", "importance", "essential", "significant", "significantly", "key", "main", "critical", "crucial", "conclusion", "conclude", "therefore", "thus", "hence", "result", "results", "summary", "notably",
	"in conclusion", "as a result", "in summary", "most importantly",
}

var arabicKeywords = []string{
	"مهم", "مهمة", "هام", "هامة", "أهم", "أهمية", "ضروري", "أساسي", "جوهري", "رئيسي", "نتيجة", "نتائج", "لذلك", "إذن", "بالتالي", "خلاصة", "نستنتج", "استنتاج", "يجب",
	"في الختام", "من المهم", "خلاصة القول",
}

var englishQuestions = []string{"why", "how", "when", "what", "where", "who"}

var arabicQuestions = []string{"لماذا", "كيف", "متى", "ماذا", "أين", "هل"}

var englishConnectors = []string{
	"because", "although", "however", "since", "whereas", "moreover", "furthermore", "consequently",
	"so that", "in order to", "even though",
}

var arabicConnectors = []string{
	"لأن", "بسبب", "رغم", "لكن", "بينما", "لكي", "كي", "حيث", "إلا",
	"على الرغم", "من أجل", "بالرغم من",
}

// arabicProclitics are stripped from a token before lexicon lookup, longest first.
var arabicProclitics = []string{"وبال", "وال", "فال", "بال", "كال", "لل", "ال", "و", "ف", "ب", "ل", "ك"}

type wordSet map[string]struct{}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

// lexicon holds single words and multi-word phrases separately.
type lexicon struct {
	words   wordSet
	phrases []string
}

func newLexicon(lists ...[]string) lexicon {
	lx := lexicon{words: wordSet{}}
	for _, list := range lists {
		for _, entry := range list {
			norm := strings.Join(textclean.Tokens(entry), " ")
			if norm == "" {
				continue
			}
			if strings.Contains(norm, " ") {
				lx.phrases = append(lx.phrases, norm)
			} else {
				lx.words[norm] = struct{}{}
			}
		}
	}
	return lx
}

// match counts the hits of the lexicon in a normalized token sequence and
// reports the distinct entries that matched.
func (lx lexicon) match(tokens []string) (hits int, distinct map[string]struct{}) {
	distinct = map[string]struct{}{}
	for _, tok := range tokens {
		if w, ok := lx.lookup(tok); ok {
			hits++
			distinct[w] = struct{}{}
		}
	}
	if len(lx.phrases) > 0 {
		padded := " " + strings.Join(tokens, " ") + " "
		for _, p := range lx.phrases {
			if n := strings.Count(padded, " "+p+" "); n > 0 {
				hits += n
				distinct[p] = struct{}{}
			}
		}
	}
	return hits, distinct
}

func (lx lexicon) lookup(tok string) (string, bool) {
	if lx.words.has(tok) {
		return tok, true
	}
	for _, p := range arabicProclitics {
		rest, ok := strings.CutPrefix(tok, p)
		if !ok || utf8.RuneCountInString(rest) < 2 {
			continue
		}
		if lx.words.has(rest) {
			return rest, true
		}
	}
	return "", false
}
