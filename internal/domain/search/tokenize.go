package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Token is a word occurrence with its byte span in the original text and
// its normalized lexeme.
type Token struct {
	Start  int
	End    int
	Lexeme string
}

// foldTransformer strips combining marks after NFD decomposition, so
// "forêt" and "foret" normalize identically.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and removes diacritics.
func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// stopwords are high-frequency French and English function words that
// carry no search signal. A query made only of these matches nothing.
var stopwords = map[string]bool{
	"au": true, "aux": true, "avec": true, "ce": true, "ces": true,
	"dans": true, "de": true, "des": true, "du": true, "elle": true,
	"en": true, "et": true, "il": true, "ils": true, "la": true,
	"le": true, "les": true, "leur": true, "ma": true, "mais": true,
	"ne": true, "nos": true, "notre": true, "nous": true, "on": true,
	"ou": true, "par": true, "pas": true, "pour": true, "qui": true,
	"que": true, "sa": true, "se": true, "ses": true, "son": true,
	"sur": true, "un": true, "une": true, "vos": true, "votre": true,
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "by": true, "for": true, "from": true, "in": true,
	"is": true, "it": true, "of": true, "or": true, "the": true,
	"to": true, "with": true,
}

// frSuffixes are stripped (longest first) before the plural/final-e
// rules. Light French stemming: enough for inflected forms of the same
// word to share a lexeme, not a full Snowball implementation.
var frSuffixes = []string{
	"issements", "issement", "atrices", "atrice",
	"ations", "ation", "ements", "ement",
	"ismes", "isme", "istes", "iste",
	"euses", "euse", "ences", "ence", "ances", "ance",
	"ieres", "iere", "iers", "ier",
	"ives", "ive",
}

// irregularStems maps folded stems whose circumflex replaced a
// historical "s" onto the lexeme of their derived family, so "forêt"
// and "forestier" reduce to the same lexeme.
var irregularStems = map[string]string{
	"foret":   "forest",
	"hopital": "hospital",
	"interet": "interest",
}

// stem reduces a folded word to its lexeme: suffix strip, then plural
// markers, then a trailing mute e, then the irregular-stem table.
func stem(w string) string {
	if len(w) > 5 {
		for _, suf := range frSuffixes {
			if strings.HasSuffix(w, suf) && len(w)-len(suf) >= 3 {
				w = w[:len(w)-len(suf)]
				break
			}
		}
	}
	if len(w) > 3 && (strings.HasSuffix(w, "s") || strings.HasSuffix(w, "x")) {
		w = w[:len(w)-1]
	}
	if len(w) > 4 && strings.HasSuffix(w, "e") {
		w = w[:len(w)-1]
	}
	if canonical, ok := irregularStems[w]; ok {
		return canonical
	}
	return w
}

// Tokenize splits text into word tokens with byte offsets, folding and
// stemming each one. Stopwords and sub-two-letter fragments are dropped,
// so symbol-only input yields no tokens.
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := fold(text[start:end])
		if len(word) >= 2 && !stopwords[word] {
			tokens = append(tokens, Token{Start: start, End: end, Lexeme: stem(word)})
		}
		start = -1
	}

	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))

	return tokens
}

// Lexemes returns the distinct lexemes of a text, in first-seen order.
func Lexemes(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range Tokenize(text) {
		if !seen[t.Lexeme] {
			seen[t.Lexeme] = true
			out = append(out, t.Lexeme)
		}
	}
	return out
}
