// Package classifier derives per-word properties from letter patterns alone:
// function-word membership, a Latin/Germanic origin guess, a syllable count
// and an irregular-spelling flag. The rules are deliberately approximate and
// use only the tables in package lexicon.
package classifier

import (
	"strings"

	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/lexicon"
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/tokenizer"
)

// Origin is the heuristic etymological class of a word.
type Origin string

const (
	OriginLatin    Origin = "latin"
	OriginGermanic Origin = "germanic"
	OriginNeutral  Origin = "neutral"
)

// Word is the classification of a single token.
type Word struct {
	Token          string `json:"token"`
	Letters        string `json:"letters"`
	LetterCount    int    `json:"letter_count"`
	IsFunctionWord bool   `json:"is_function_word"`
	Origin         Origin `json:"origin"`
	Syllables      int    `json:"syllables"`
	Irregular      bool   `json:"irregular"`
}

// Valid reports whether the token carried at least one letter. Letterless
// tokens are excluded from every per-word average.
func (w Word) Valid() bool {
	return w.Letters != ""
}

// Classify computes every property of token. The token is expected in the
// form produced by tokenizer.Tokenize.
func Classify(token string) Word {
	letters := tokenizer.StripLetters(token)
	return Word{
		Token:          token,
		Letters:        letters,
		LetterCount:    len(letters),
		IsFunctionWord: IsFunctionWord(token),
		Origin:         classifyLetters(letters),
		Syllables:      syllablesOf(letters),
		Irregular:      irregular(letters),
	}
}

// IsFunctionWord matches token verbatim, apostrophes included, so "don't" is
// a function word while "dont" is not.
func IsFunctionWord(token string) bool {
	_, ok := lexicon.FunctionWords[token]
	return ok
}

// CountLetters returns the number of a-z characters in token.
func CountLetters(token string) int {
	return len(tokenizer.StripLetters(token))
}

// ClassifyOrigin guesses whether token is Latinate or Germanic. Germanic
// markers are checked first and win when both kinds match.
func ClassifyOrigin(token string) Origin {
	return classifyLetters(tokenizer.StripLetters(token))
}

// CountSyllables estimates the syllables in token. It returns 0 only for a
// token without letters.
func CountSyllables(token string) int {
	return syllablesOf(tokenizer.StripLetters(token))
}

// IsIrregular reports whether token matches any irregular-spelling pattern.
func IsIrregular(token string) bool {
	return irregular(tokenizer.StripLetters(token))
}

func classifyLetters(w string) Origin {
	if w == "" {
		return OriginNeutral
	}
	if isGermanic(w) {
		return OriginGermanic
	}
	if isLatin(w) {
		return OriginLatin
	}
	return OriginNeutral
}

func isGermanic(w string) bool {
	if _, ok := lexicon.GermanicShortWords[w]; ok {
		return true
	}
	if hasAnySuffix(w, lexicon.GermanicSuffixes) {
		return true
	}
	_, ok := lexicon.StrongVerbs[w]
	return ok
}

func isLatin(w string) bool {
	if hasAnySuffix(w, lexicon.LatinSuffixes) {
		return true
	}
	for _, p := range lexicon.LatinPrefixes {
		if strings.HasPrefix(w, p) {
			return true
		}
	}
	for _, r := range lexicon.LatinRoots {
		if strings.Contains(w, r) {
			return true
		}
	}
	return false
}

func hasAnySuffix(w string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(w, s) {
			return true
		}
	}
	return false
}

func syllablesOf(w string) int {
	if w == "" {
		return 0
	}
	if n, ok := lexicon.SyllableExceptions[w]; ok {
		return n
	}

	count := 0
	prevVowel := false
	for i := 0; i < len(w); i++ {
		v := isVowel(w[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(w, "e") {
		count--
	}
	// Syllabic "-le" after a consonant, as in "table".
	if strings.HasSuffix(w, "le") && len(w) > 2 && !isVowel(w[len(w)-3]) {
		count++
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(c byte) bool {
	return strings.IndexByte(lexicon.Vowels, c) >= 0
}

func irregular(w string) bool {
	if w == "" {
		return false
	}
	for _, re := range lexicon.IrregularPatterns {
		if re.MatchString(w) {
			return true
		}
	}
	return false
}
