// Package query implements the query resolver described in spec §4.6:
// turning raw query text into term ids the barrel store can look up,
// with the two deliberately divergent fuzzy-fallback policies spec §9
// calls out ("fuzzy-match policy divergence" — preserved, not unified).
package query

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oss-search/barrelsearch/internal/lexicon"
	"github.com/oss-search/barrelsearch/internal/text"
)

// ErrEmptyQuery is returned when a single- or multi-word query
// normalizes to nothing (e.g. the query was only stopwords), per spec
// §4.6 step 3 and §8's boundary behavior "query with only stopwords ->
// EmptyQuery".
var ErrEmptyQuery = errors.New("query: empty after normalization")

// ErrWordNotFound is returned when a single-word query has no lexicon
// entry within the configured fuzzy cutoff, per §8's "fuzzy single-word
// query with no entry above the 0.8 ratio -> word not found".
var ErrWordNotFound = errors.New("query: word not found")

// UnknownTermError reports a multi-word query token that could not be
// resolved to a term id (only possible when the lexicon is empty,
// since multi-mode fuzzy fallback is unconditional per spec §4.6 step 2).
type UnknownTermError struct {
	Token string
}

func (e *UnknownTermError) Error() string {
	return fmt.Sprintf("query: unknown term %q", e.Token)
}

// MatchType records how a token's term id was resolved, for
// observability (spec §4.6: "Record the match type for observability").
type MatchType int

const (
	MatchExact MatchType = iota
	MatchFuzzy
)

// ResolvedTerm is one query token's resolution result.
type ResolvedTerm struct {
	TermID      lexicon.TermID
	Surface     string // the normalized token that was looked up
	MatchedForm string // the lexicon word actually matched (== Surface on exact match)
	Match       MatchType
}

// Mode distinguishes the two resolution shapes of spec §4.6.
type Mode int

const (
	Single Mode = iota
	Multi
)

// Resolved is the sum type spec §4.6 names: either a lone term (Single)
// or a list of terms (Multi). Mode indicates which field set is valid.
type Resolved struct {
	Mode   Mode
	Term   ResolvedTerm   // valid iff Mode == Single
	Terms  []ResolvedTerm // valid iff Mode == Multi
}

// Config tunes the resolver's fuzzy matching. Only the single-word
// cutoff is configurable; multi-word fuzzy fallback always takes the
// nearest lexicon word and has no setting here.
type Config struct {
	// SingleCutoff is the minimum similarity ratio (0..1) a single-word
	// query's fuzzy match must clear to be accepted. Default 0.8.
	SingleCutoff float64
}

// DefaultConfig returns the spec's documented default: 0.8 ratio cutoff
// for single-word fuzzy matches.
func DefaultConfig() Config {
	return Config{SingleCutoff: 0.8}
}

// Resolve implements spec §4.6's algorithm end to end.
func Resolve(rawQuery string, lex *lexicon.Lexicon, cfg Config) (Resolved, error) {
	rawTokens := strings.Fields(rawQuery)

	if len(rawTokens) == 1 {
		return resolveSingle(rawQuery, lex, cfg)
	}
	return resolveMulti(rawQuery, lex)
}

func resolveSingle(rawQuery string, lex *lexicon.Lexicon, cfg Config) (Resolved, error) {
	lemmas := text.NormalizeQuerySingle(rawQuery)
	if len(lemmas) == 0 {
		return Resolved{}, ErrEmptyQuery
	}

	word := lemmas[0]
	if id, ok := lex.Get(word); ok {
		return Resolved{Mode: Single, Term: ResolvedTerm{
			TermID: id, Surface: word, MatchedForm: word, Match: MatchExact,
		}}, nil
	}

	matched, ok := lex.Closest(word, cfg.SingleCutoff)
	if !ok {
		return Resolved{}, ErrWordNotFound
	}
	id, _ := lex.Get(matched)
	slog.Info("single-word query resolved via fuzzy fallback",
		slog.String("query", word), slog.String("matched", matched))
	return Resolved{Mode: Single, Term: ResolvedTerm{
		TermID: id, Surface: word, MatchedForm: matched, Match: MatchFuzzy,
	}}, nil
}

func resolveMulti(rawQuery string, lex *lexicon.Lexicon) (Resolved, error) {
	lemmas := text.NormalizeQueryMulti(rawQuery)

	terms := make([]ResolvedTerm, 0, len(lemmas))
	for _, word := range lemmas {
		if id, ok := lex.Get(word); ok {
			terms = append(terms, ResolvedTerm{TermID: id, Surface: word, MatchedForm: word, Match: MatchExact})
			continue
		}

		matched, ok := lex.ClosestAny(word)
		if !ok {
			return Resolved{}, &UnknownTermError{Token: word}
		}
		id, _ := lex.Get(matched)
		slog.Info("multi-word query term resolved via fuzzy fallback",
			slog.String("query", word), slog.String("matched", matched))
		terms = append(terms, ResolvedTerm{TermID: id, Surface: word, MatchedForm: matched, Match: MatchFuzzy})
	}

	if len(terms) == 0 {
		return Resolved{}, ErrEmptyQuery
	}

	return Resolved{Mode: Multi, Terms: terms}, nil
}
