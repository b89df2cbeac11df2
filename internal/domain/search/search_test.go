package search

import (
	"strings"
	"testing"
)

func TestSearch_MatchesAccentInsensitive(t *testing.T) {
	result := Search("Inventaire national forestier", "Répartition des forêts", "forets")
	if !result.Matched {
		t.Fatal("expected a match")
	}
	if result.Headlines.Description == nil {
		t.Fatal("expected a description headline")
	}
	if !strings.Contains(*result.Headlines.Description, "<mark>forêts</mark>") {
		t.Errorf("expected marked span, got %q", *result.Headlines.Description)
	}
}

func TestSearch_MatchesAcrossInflectionFamily(t *testing.T) {
	result := Search("Inventaire national forestier", "", "forêt")
	if !result.Matched {
		t.Fatal("expected 'forêt' to match 'forestier'")
	}
	if result.Headlines.Title == nil {
		t.Fatal("expected a title headline")
	}
	if !strings.Contains(*result.Headlines.Title, "<mark>forestier</mark>") {
		t.Errorf("expected marked span, got %q", *result.Headlines.Title)
	}
}

func TestSearch_EmptyTermMatchesNothing(t *testing.T) {
	if result := Search("Base Carbone", "Facteurs d'émissions", ""); result.Matched {
		t.Error("expected no match for empty term")
	}
	if result := Search("Base Carbone", "Facteurs d'émissions", "?!"); result.Matched {
		t.Error("expected no match for punctuation-only term")
	}
}

func TestSearch_TitleOutranksDescription(t *testing.T) {
	inTitle := Search("Carbone", "Sans rapport", "carbone")
	inDescription := Search("Sans rapport", "Carbone", "carbone")
	if !inTitle.Matched || !inDescription.Matched {
		t.Fatal("expected both to match")
	}
	if inTitle.Rank <= inDescription.Rank {
		t.Errorf("title rank %f should exceed description rank %f", inTitle.Rank, inDescription.Rank)
	}
}

func TestSearch_MoreLexemesRankHigher(t *testing.T) {
	both := Search("Cadastre national", "", "cadastre national")
	one := Search("Cadastre communal", "", "cadastre national")
	if !both.Matched || !one.Matched {
		t.Fatal("expected both to match")
	}
	if both.Rank <= one.Rank {
		t.Errorf("full coverage rank %f should exceed partial %f", both.Rank, one.Rank)
	}
}

func TestSearch_ProximityBreaksCoverageTies(t *testing.T) {
	adjacent := Search("Base carbone nationale", "", "base carbone")
	spread := Search("Base de données carbone", "", "base carbone")
	if !adjacent.Matched || !spread.Matched {
		t.Fatal("expected both to match")
	}
	if adjacent.Rank <= spread.Rank {
		t.Errorf("adjacent rank %f should exceed spread %f", adjacent.Rank, spread.Rank)
	}
}

func TestSearch_HeadlineNilForUnmatchedField(t *testing.T) {
	result := Search("Base Carbone", "Facteurs d'émissions", "carbone")
	if !result.Matched {
		t.Fatal("expected a match")
	}
	if result.Headlines.Title == nil {
		t.Fatal("expected a title headline")
	}
	if *result.Headlines.Title != "Base <mark>Carbone</mark>" {
		t.Errorf("unexpected title headline %q", *result.Headlines.Title)
	}
	if result.Headlines.Description != nil {
		t.Errorf("expected nil description headline, got %q", *result.Headlines.Description)
	}
}

func TestSearch_OrSemanticsAcrossFields(t *testing.T) {
	// One lexeme hits the title, the other nothing: still a match.
	result := Search("Cadastre national", "Parcelles cadastrales", "national inexistant")
	if !result.Matched {
		t.Fatal("expected a match on partial coverage")
	}
	if result.Rank >= 1.0 {
		t.Errorf("partial coverage should rank below 1.0, got %f", result.Rank)
	}
}
