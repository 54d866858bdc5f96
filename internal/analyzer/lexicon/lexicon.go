// Package lexicon holds the static word lists and letter patterns used by the
// word classifier. Everything here is read-only data built at package init;
// nothing in this package is mutated after startup.
package lexicon

import "regexp"

// FunctionWords contains grammatical words (articles, prepositions, auxiliaries,
// pronouns) including contractions, matched against tokens verbatim.
var FunctionWords = setOf(
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "aren't", "as", "at", "be", "because", "been", "before", "being",
	"below", "between", "both", "but", "by", "can't", "cannot", "could", "couldn't", "did",
	"didn't", "do", "does", "doesn't", "doing", "don't", "down", "during", "each", "few",
	"for", "from", "further", "had", "hadn't", "has", "hasn't", "have", "haven't", "having",
	"he", "he'd", "he'll", "he's", "her", "here", "here's", "hers", "herself", "him",
	"himself", "his", "how", "how's", "i", "i'd", "i'll", "i'm", "i've", "if",
	"in", "into", "is", "isn't", "it", "it's", "its", "itself", "let's", "me",
	"more", "most", "mustn't", "my", "myself", "no", "nor", "not", "of", "off",
	"on", "once", "only", "or", "other", "ought", "our", "ours", "ourselves", "out",
	"over", "own", "same", "she", "she'd", "she'll", "she's", "should", "shouldn't", "so",
	"some", "such", "than", "that", "that's", "the", "their", "theirs", "them", "themselves",
	"then", "there", "there's", "these", "they", "they'd", "they'll", "they're", "they've", "this",
	"those", "through", "to", "too", "under", "until", "up", "very", "was", "wasn't",
	"we", "we'd", "we'll", "we're", "we've", "were", "weren't", "what", "what's", "when",
	"when's", "where", "where's", "which", "while", "who", "who's", "whom", "why", "why's",
	"with", "won't", "would", "wouldn't", "you", "you'd", "you'll", "you're", "you've", "your",
	"yours", "yourself", "yourselves",
)

// Latin markers.
var (
	LatinSuffixes = []string{"tion", "sion", "ity", "ment", "ence", "ance", "ous", "ious", "al", "ial", "ive", "ate"}
	LatinPrefixes = []string{"ex", "pre", "con", "pro", "trans", "inter", "circum"}
	LatinRoots    = []string{"port", "dict", "duct", "scribe", "script", "ject", "mit", "miss"}
)

// Germanic markers.
var (
	GermanicSuffixes = []string{"ly", "ness", "ship", "hood", "dom"}

	GermanicShortWords = setOf(
		"the", "and", "but", "for", "with", "that", "from", "have", "this", "then",
		"than", "when", "what", "who", "whom", "will", "shall", "can", "may", "might",
		"must", "upon", "onto", "into", "ever", "even", "just", "only", "some", "most",
		"much", "many", "own", "over",
	)

	StrongVerbs = setOf(
		"drink", "drank", "sing", "sang", "give", "gave",
		"speak", "spoke", "take", "took", "write", "wrote",
	)
)

// Vowels is the vowel set used for syllable counting; y counts as a vowel.
const Vowels = "aeiouy"

// SyllableExceptions overrides the vowel-run heuristic for a few short words.
var SyllableExceptions = map[string]int{
	"the":  1,
	"area": 3,
	"idea": 3,
	"real": 2,
}

// IrregularPatterns approximate silent letters and unpredictable vowel
// digraphs. A word is irregular when any one of them matches.
var IrregularPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([bcdfghjklmnpqrstvwxyz])e\b`), // silent e
	regexp.MustCompile(`^kn`),
	regexp.MustCompile(`^wr`),
	regexp.MustCompile(`mb\b`),
	regexp.MustCompile(`^hon`),
	regexp.MustCompile(`ould\b`),
	regexp.MustCompile(`ough`),
	regexp.MustCompile(`\bee|ea|ie|ei\b`),
	regexp.MustCompile(`(ph|gh)\w*`),
	regexp.MustCompile(`^ps|^sc|^pn`),
	regexp.MustCompile(`nation|mission`),
	regexp.MustCompile(`ow\b|ow.`),
	regexp.MustCompile(`break|great|bread`),
}

func setOf(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
