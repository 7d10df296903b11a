package score

import (
	"strings"
	"unicode"
)

// isCJK reports whether a rune is a CJK ideograph. CJK text carries no
// whitespace word boundaries, so each ideograph becomes its own token.
func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// Tokenize splits text into scoring tokens: CJK ideographs become single
// characters, other letter/digit runs split on whitespace and punctuation
// and are lowercased. The query and the candidate corpus must be tokenized
// with the same rule or BM25 and Jaccard scores are meaningless.
func Tokenize(text string) []string {
	tokens := make([]string, 0, len(text)/2)
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, strings.ToLower(word.String()))
			word.Reset()
		}
	}

	for _, r := range text {
		switch {
		case isCJK(r):
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word.WriteRune(r)
		default:
			// Whitespace and punctuation are both separators.
			flush()
		}
	}
	flush()

	return tokens
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]bool {
	tokens := Tokenize(text)
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}
