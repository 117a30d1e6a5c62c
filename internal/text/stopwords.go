package text

// englishStopwords holds the common English words excluded from
// indexing and querying alike. struct{} values cost nothing per entry.
var englishStopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "across": {}, "after": {}, "again": {},
	"against": {}, "all": {}, "almost": {}, "alone": {}, "along": {}, "already": {},
	"also": {}, "although": {}, "always": {}, "am": {}, "among": {}, "an": {},
	"and": {}, "another": {}, "any": {}, "anyone": {}, "anything": {}, "anywhere": {},
	"are": {}, "around": {}, "as": {}, "at": {}, "back": {}, "be": {}, "became": {},
	"because": {}, "become": {}, "becomes": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "but": {}, "by": {}, "can": {}, "cannot": {},
	"could": {}, "did": {}, "do": {}, "does": {}, "doing": {}, "done": {}, "down": {},
	"during": {}, "each": {}, "either": {}, "else": {}, "enough": {}, "etc": {},
	"even": {}, "ever": {}, "every": {}, "few": {}, "for": {}, "from": {}, "further": {},
	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "hence": {}, "her": {},
	"here": {}, "hers": {}, "herself": {}, "him": {}, "himself": {}, "his": {}, "how": {},
	"however": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"itself": {}, "just": {}, "least": {}, "less": {}, "many": {}, "may": {}, "me": {},
	"might": {}, "more": {}, "most": {}, "much": {}, "must": {}, "my": {}, "myself": {},
	"neither": {}, "never": {}, "no": {}, "nobody": {}, "none": {}, "nor": {}, "not": {},
	"nothing": {}, "now": {}, "of": {}, "off": {}, "often": {}, "on": {}, "once": {},
	"one": {}, "only": {}, "onto": {}, "or": {}, "other": {}, "others": {}, "our": {},
	"ours": {}, "ourselves": {}, "out": {}, "over": {}, "own": {}, "per": {},
	"perhaps": {}, "rather": {}, "same": {}, "several": {}, "she": {}, "should": {},
	"since": {}, "so": {}, "some": {}, "someone": {}, "something": {}, "somewhere": {},
	"still": {}, "such": {}, "than": {}, "that": {}, "the": {}, "their": {}, "theirs": {},
	"them": {}, "themselves": {}, "then": {}, "there": {}, "therefore": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "though": {}, "through": {}, "thus": {}, "to": {},
	"too": {}, "toward": {}, "towards": {}, "under": {}, "until": {}, "up": {}, "upon": {},
	"us": {}, "very": {}, "was": {}, "we": {}, "were": {}, "what": {}, "whatever": {},
	"when": {}, "whenever": {}, "where": {}, "whereas": {}, "wherever": {}, "whether": {},
	"which": {}, "while": {}, "who": {}, "whoever": {}, "whole": {}, "whom": {}, "whose": {},
	"why": {}, "will": {}, "with": {}, "within": {}, "without": {}, "would": {}, "yet": {},
	"you": {}, "your": {}, "yours": {}, "yourself": {}, "yourselves": {},
}
