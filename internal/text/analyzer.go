// Package text implements the normalization pipeline that turns raw job
// posting text into the lemmatized, position-tagged token stream the rest
// of the engine is built on.
//
// Pipeline (ingest):
//
//	lowercase -> tokenize -> stopword/length filter (positions recorded
//	pre-filter) -> coarse POS tag -> POS-hinted lemmatize
//
// The query-time variants reuse the same filtering but differ in whether
// POS tagging actually runs (single-word queries get it, multi-word
// queries default every token to noun) and never keep positions.
package text

import (
	"strings"
	"unicode"
)

// Token is a surviving word paired with its pre-filter ordinal position
// in the source text, per spec §3.
type Token struct {
	Lemma    string
	Position int
}

// Config tunes the analyzer. MinTokenLength mirrors the "longer than 2
// characters" rule from spec §4.1 (i.e. length must exceed this value).
type Config struct {
	MinTokenLength int
}

// DefaultConfig is the standard pipeline configuration: tokens must be
// longer than 2 characters to survive.
func DefaultConfig() Config {
	return Config{MinTokenLength: 2}
}

// Normalize implements the ingest-time pipeline from spec §4.1: every
// kept token is POS-tagged in isolation and lemmatized with that hint.
// Positions are the token's ordinal in the pre-filter stream.
func Normalize(text string) []Token {
	return NormalizeWithConfig(text, DefaultConfig())
}

// NormalizeWithConfig is Normalize with an explicit Config.
func NormalizeWithConfig(text string, cfg Config) []Token {
	if text == "" {
		return nil
	}

	raw := tokenize(text)
	tokens := make([]Token, 0, len(raw))

	for i, word := range raw {
		if !keep(word, cfg) {
			continue
		}
		pos := tagPOS(word)
		tokens = append(tokens, Token{
			Lemma:    lemmatize(word, pos),
			Position: i,
		})
	}

	return tokens
}

// NormalizeQuerySingle is the single-word query variant of §4.1: POS
// tagging runs (same as ingest), but positions are discarded.
func NormalizeQuerySingle(text string) []string {
	cfg := DefaultConfig()
	raw := tokenize(text)
	out := make([]string, 0, len(raw))
	for _, word := range raw {
		if !keep(word, cfg) {
			continue
		}
		out = append(out, lemmatize(word, tagPOS(word)))
	}
	return out
}

// NormalizeQueryMulti is the multi-word query variant of §4.1: stopword
// and length filtering apply, but every token defaults to the noun hint
// rather than being POS-tagged (matching the original's unconditional
// lemmatizer.lemmatize(token) call with no POS argument).
func NormalizeQueryMulti(text string) []string {
	cfg := DefaultConfig()
	raw := tokenize(text)
	out := make([]string, 0, len(raw))
	for _, word := range raw {
		if !keep(word, cfg) {
			continue
		}
		out = append(out, lemmatize(word, Noun))
	}
	return out
}

// keep applies the alphanumeric + length + stopword filter shared by
// every pipeline variant.
func keep(word string, cfg Config) bool {
	if len(word) <= cfg.MinTokenLength {
		return false
	}
	if !isAlphanumeric(word) {
		return false
	}
	return !isStopword(word)
}

// tokenize lowercases and splits on any rune that is not a Unicode
// letter or digit, matching a standard word tokenizer's boundary rules
// closely enough for apostrophes and punctuation to act as delimiters.
func tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// isAlphanumeric reports whether every rune in the token is a letter or
// digit. strings.FieldsFunc already guarantees this for every token it
// produces, but the check is kept explicit because spec §4.1 states the
// constraint as part of the filter contract, not the tokenizer's.
func isAlphanumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return len(word) > 0
}

func isStopword(word string) bool {
	_, ok := englishStopwords[word]
	return ok
}
