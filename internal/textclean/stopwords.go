package textclean

import "strings"

var stopwords = map[string]struct{}{}

func init() {
	for _, list := range [][]string{englishStopwords, arabicStopwords} {
		for _, w := range list {
			stopwords[NormalizeArabic(strings.ToLower(w))] = struct{}{}
		}
	}
}

// IsStopword reports whether a normalized token is a high-frequency,
// low-information word in English or Arabic.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

var englishStopwords = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	"i", "me", "my", "we", "our", "you", "your", "he", "him", "his", "she", "her", "they", "them", "their", "its", "has", "have", "had", "do", "does", "did", "not", "no", "there", "here", "also", "would", "could", "may", "might", "must", "which", "who", "whom", "all", "any", "each", "some", "other", "only", "more", "most",
}

var arabicStopwords = []string{
	"في", "من", "على", "إلى", "الى", "عن", "مع", "هذا", "هذه", "ذلك", "تلك", "هؤلاء", "التي", "الذي", "الذين", "أو", "ثم", "أن", "إن", "كان", "كانت", "يكون", "تكون", "هو", "هي", "هم", "هن", "نحن", "أنا", "أنت", "أنتم", "لا", "لم", "لن", "قد", "ما", "كل", "بعض", "عند", "بين", "حتى", "إذا", "لقد", "كما", "أي", "غير", "بعد", "قبل", "منذ", "فقط", "أيضا", "جدا", "عليه", "فيه", "منه", "إليه", "وهو", "وهي", "التى", "هناك", "هنا",
}
