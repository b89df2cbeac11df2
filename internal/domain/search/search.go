// Package search implements the lexeme-based full-text matcher used for
// dataset listings: diacritic- and case-insensitive matching over title
// and description, relevance ranking, and highlighted headlines.
package search

import "strings"

// Field weights: a hit in the title counts more than one in the
// description.
const (
	titleWeight       = 1.0
	descriptionWeight = 0.8
	proximityBonus    = 0.25
)

// Markers wrapping matched spans in headlines.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Headlines carries the per-field highlighted snippets. A field that
// produced no match has a nil headline, even when the document matched
// through the other field.
type Headlines struct {
	Title       *string
	Description *string
}

// Result is the outcome of matching one document against a query.
type Result struct {
	Matched   bool
	Rank      float64
	Headlines Headlines
}

// Search matches a document's title and description against a query
// term. A document matches when at least one query lexeme appears in
// either field. Rank favors more matched lexemes, then lexemes appearing
// closer together. A query that tokenizes to zero lexemes matches
// nothing.
func Search(title, description, term string) Result {
	queryLexemes := Lexemes(term)
	if len(queryLexemes) == 0 {
		return Result{}
	}

	querySet := make(map[string]bool, len(queryLexemes))
	for _, lex := range queryLexemes {
		querySet[lex] = true
	}

	titleRank, titleHeadline := matchField(title, querySet, len(queryLexemes), titleWeight)
	descRank, descHeadline := matchField(description, querySet, len(queryLexemes), descriptionWeight)

	if titleHeadline == nil && descHeadline == nil {
		return Result{}
	}

	return Result{
		Matched: true,
		Rank:    titleRank + descRank,
		Headlines: Headlines{
			Title:       titleHeadline,
			Description: descHeadline,
		},
	}
}

// matchField computes the weighted rank contribution of one field and
// its headline. Returns (0, nil) when no query lexeme occurs.
func matchField(text string, querySet map[string]bool, queryLen int, weight float64) (float64, *string) {
	tokens := Tokenize(text)

	var matched []int
	matchedLexemes := make(map[string]bool)
	for i, t := range tokens {
		if querySet[t.Lexeme] {
			matched = append(matched, i)
			matchedLexemes[t.Lexeme] = true
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}

	coverage := float64(len(matchedLexemes)) / float64(queryLen)
	rank := weight * (coverage + proximityBonus*proximity(tokens, matched))

	headline := highlight(text, tokens, matched)
	return rank, &headline
}

// proximity scores how close together distinct matched lexemes sit:
// 1 for adjacent, decaying with the smallest token gap. A single
// distinct lexeme yields no proximity signal.
func proximity(tokens []Token, matched []int) float64 {
	best := -1
	for i := 1; i < len(matched); i++ {
		prev, cur := matched[i-1], matched[i]
		if tokens[prev].Lexeme == tokens[cur].Lexeme {
			continue
		}
		gap := cur - prev
		if best < 0 || gap < best {
			best = gap
		}
	}
	if best < 0 {
		return 0
	}
	return 1 / float64(best)
}

// highlight wraps every matched token of the original text in the
// marker pair, preserving all surrounding text verbatim.
func highlight(text string, tokens []Token, matched []int) string {
	var b strings.Builder
	b.Grow(len(text) + len(matched)*(len(markOpen)+len(markClose)))

	last := 0
	for _, idx := range matched {
		t := tokens[idx]
		b.WriteString(text[last:t.Start])
		b.WriteString(markOpen)
		b.WriteString(text[t.Start:t.End])
		b.WriteString(markClose)
		last = t.End
	}
	b.WriteString(text[last:])
	return b.String()
}
