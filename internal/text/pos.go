package text

import "strings"

// PartOfSpeech is the coarse tag spec §4.1 step 4 maps every token to
// before lemmatization.
type PartOfSpeech int

const (
	Noun PartOfSpeech = iota
	Verb
	Adjective
	Adverb
)

// tagPOS assigns a coarse part of speech to a single token in isolation.
//
// The retrieval pack carries no POS-tagging library (checked every
// go.mod under _examples/), so this is a small suffix-based heuristic
// standing in for the original implementation's averaged-perceptron
// tagger (nltk.pos_tag). It is deliberately conservative: anything it
// doesn't recognize falls through to the Noun default spec §4.1 calls
// for explicitly ("default noun when unmapped").
func tagPOS(word string) PartOfSpeech {
	switch {
	case strings.HasSuffix(word, "ly") && len(word) > 4:
		return Adverb
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		return Verb
	case strings.HasSuffix(word, "ize") || strings.HasSuffix(word, "ise"):
		return Verb
	case strings.HasSuffix(word, "ated") || strings.HasSuffix(word, "ified"):
		return Verb
	case strings.HasSuffix(word, "ous") || strings.HasSuffix(word, "ful") ||
		strings.HasSuffix(word, "ive") || strings.HasSuffix(word, "able") ||
		strings.HasSuffix(word, "ible") || strings.HasSuffix(word, "al"):
		return Adjective
	default:
		return Noun
	}
}

// lemmatize reduces a token to its dictionary form given a POS hint.
//
// Spec §1's Non-goals exclude stemming beyond lemmatization, so this is
// intentionally not a Porter/Snowball stemmer (the teacher's
// kljensen/snowball import is dropped for exactly this reason — see
// DESIGN.md). It approximates WordNetLemmatizer's per-POS suffix rules
// without a dictionary lookup.
func lemmatize(word string, pos PartOfSpeech) string {
	switch pos {
	case Verb:
		return lemmatizeVerb(word)
	case Adjective:
		return lemmatizeAdjective(word)
	case Adverb:
		return lemmatizeAdverb(word)
	default:
		return lemmatizeNoun(word)
	}
}

func lemmatizeNoun(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case endsWithSibilant(word) && strings.HasSuffix(word, "es") && len(word) > 4:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") &&
		!strings.HasSuffix(word, "us") && !strings.HasSuffix(word, "is") &&
		!strings.HasSuffix(word, "ics") && len(word) > 3:
		return word[:len(word)-1]
	default:
		return word
	}
}

func lemmatizeVerb(word string) string {
	switch {
	case strings.HasSuffix(word, "ying") && len(word) > 5:
		return word[:len(word)-4] + "y"
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		return restoreSilentE(word[:len(word)-3])
	case strings.HasSuffix(word, "ied") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		return restoreSilentE(word[:len(word)-2])
	case strings.HasSuffix(word, "es") && len(word) > 4:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 3:
		return word[:len(word)-1]
	default:
		return word
	}
}

func lemmatizeAdjective(word string) string {
	switch {
	case strings.HasSuffix(word, "iest") && len(word) > 5:
		return word[:len(word)-4] + "y"
	case strings.HasSuffix(word, "est") && len(word) > 4:
		return word[:len(word)-3]
	case strings.HasSuffix(word, "ier") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "er") && len(word) > 4:
		return word[:len(word)-2]
	default:
		return word
	}
}

func lemmatizeAdverb(word string) string {
	if strings.HasSuffix(word, "ily") && len(word) > 5 {
		return word[:len(word)-3] + "y"
	}
	if strings.HasSuffix(word, "ly") && len(word) > 4 {
		return word[:len(word)-2]
	}
	return word
}

func endsWithSibilant(word string) bool {
	for _, suffix := range []string{"ses", "xes", "zes", "ches", "shes"} {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

// restoreSilentE undoes the doubled-consonant / dropped-"e" pattern left
// by stripping "-ing" or "-ed" (e.g. "runn" -> "run", "writ" -> "write"
// is out of scope without a dictionary, but the common doubled-letter
// case is cheap to normalize).
func restoreSilentE(stem string) string {
	n := len(stem)
	if n >= 2 && stem[n-1] == stem[n-2] && isDoublableConsonant(stem[n-1]) {
		return stem[:n-1]
	}
	return stem
}

func isDoublableConsonant(b byte) bool {
	switch b {
	case 'b', 'd', 'g', 'l', 'm', 'n', 'p', 'r', 't':
		return true
	default:
		return false
	}
}
