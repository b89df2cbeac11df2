package search

import (
	"reflect"
	"testing"
)

func TestTokenize_FoldsDiacriticsAndCase(t *testing.T) {
	tokens := Tokenize("Émission")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	if tokens[0].Lexeme != "emission" {
		t.Errorf("expected lexeme 'emission', got %q", tokens[0].Lexeme)
	}
}

func TestTokenize_IrregularStems(t *testing.T) {
	// The circumflex hides a historical "s" kept by derived forms.
	tokens := Tokenize("Forêt")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	if tokens[0].Lexeme != "forest" {
		t.Errorf("expected lexeme 'forest', got %q", tokens[0].Lexeme)
	}
}

func TestTokenize_ByteOffsets(t *testing.T) {
	text := "Base Carbone"
	tokens := Tokenize(text)
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if text[tokens[1].Start:tokens[1].End] != "Carbone" {
		t.Errorf("expected span 'Carbone', got %q", text[tokens[1].Start:tokens[1].End])
	}
}

func TestTokenize_DropsStopwordsAndFragments(t *testing.T) {
	if tokens := Tokenize("de la et pour"); len(tokens) != 0 {
		t.Errorf("expected no tokens for stopwords, got %d", len(tokens))
	}
	if tokens := Tokenize("a à !"); len(tokens) != 0 {
		t.Errorf("expected no tokens for fragments, got %d", len(tokens))
	}
}

func TestTokenize_SymbolOnlyYieldsNothing(t *testing.T) {
	if tokens := Tokenize("?! ... ---"); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %d", len(tokens))
	}
}

func TestStem_SharedLexemeForInflections(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"forêt", "forêts"},
		{"carbone", "carbones"},
		{"forestier", "forestiers"},
		{"forêt", "forestier"},
		{"hôpital", "hospitalier"},
		{"émission", "émissions"},
	}
	for _, tt := range tests {
		la := Lexemes(tt.a)
		lb := Lexemes(tt.b)
		if len(la) != 1 || len(lb) != 1 || la[0] != lb[0] {
			t.Errorf("%q and %q should share a lexeme, got %v and %v", tt.a, tt.b, la, lb)
		}
	}
}

func TestLexemes_DistinctFirstSeenOrder(t *testing.T) {
	got := Lexemes("carbone national carbone")
	want := []string{"carbon", "national"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
