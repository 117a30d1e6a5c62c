package query

import (
	"errors"
	"testing"

	"github.com/oss-search/barrelsearch/internal/lexicon"
)

func seeded(words ...string) *lexicon.Lexicon {
	lex := lexicon.New()
	for _, w := range words {
		lex.AddOrGet(w)
	}
	return lex
}

func TestResolve_SingleWordExactMatch(t *testing.T) {
	lex := seeded("engineer", "analytics")

	got, err := Resolve("engineers", lex, DefaultConfig())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got.Mode != Single {
		t.Fatalf("Mode = %v, want Single", got.Mode)
	}
	wantID, _ := lex.Get("engineer")
	if got.Term.TermID != wantID || got.Term.Match != MatchExact {
		t.Errorf("Term = %+v, want exact match to %q (id %d)", got.Term, "engineer", wantID)
	}
}

func TestResolve_SingleWordFuzzyAboveCutoff(t *testing.T) {
	lex := seeded("engineer")

	got, err := Resolve("enginer", lex, DefaultConfig()) // one char missing
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got.Term.Match != MatchFuzzy || got.Term.MatchedForm != "engineer" {
		t.Errorf("Term = %+v, want fuzzy match to \"engineer\"", got.Term)
	}
}

func TestResolve_SingleWordBelowCutoffFails(t *testing.T) {
	lex := seeded("engineer")

	_, err := Resolve("zzzzzzzzzzzzz", lex, DefaultConfig())
	if !errors.Is(err, ErrWordNotFound) {
		t.Errorf("Resolve() error = %v, want ErrWordNotFound", err)
	}
}

func TestResolve_SingleWordOnlyStopwordsIsEmptyQuery(t *testing.T) {
	lex := seeded("engineer")

	_, err := Resolve("to", lex, DefaultConfig())
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Resolve() error = %v, want ErrEmptyQuery", err)
	}
}

func TestResolve_MultiWordAllResolved(t *testing.T) {
	lex := seeded("java", "analytics")

	got, err := Resolve("java analytics", lex, DefaultConfig())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got.Mode != Multi {
		t.Fatalf("Mode = %v, want Multi", got.Mode)
	}
	if len(got.Terms) != 2 {
		t.Fatalf("Terms = %+v, want 2 entries", got.Terms)
	}
	for _, term := range got.Terms {
		if term.Match != MatchExact {
			t.Errorf("term %+v, want exact match", term)
		}
	}
}

func TestResolve_MultiWordUnconditionalFuzzyFallback(t *testing.T) {
	lex := seeded("java", "analytics")

	// "pythonx" has no close relative in the lexicon but multi-mode
	// fuzzy fallback is unconditional -- it must still resolve to
	// *something* rather than failing, per spec §4.6 step 2.
	got, err := Resolve("java pythonx", lex, DefaultConfig())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(got.Terms) != 2 {
		t.Fatalf("Terms = %+v, want 2 entries", got.Terms)
	}
	if got.Terms[1].Match != MatchFuzzy {
		t.Errorf("second term = %+v, want fuzzy resolution", got.Terms[1])
	}
}

func TestResolve_MultiWordEmptyLexiconIsUnknownTerm(t *testing.T) {
	lex := lexicon.New() // empty: ClosestAny always misses

	_, err := Resolve("java analytics", lex, DefaultConfig())
	var unknown *UnknownTermError
	if !errors.As(err, &unknown) {
		t.Errorf("Resolve() error = %v, want *UnknownTermError", err)
	}
}
