// Package analyzer reduces a passage of English text to five stylistic
// metrics: lexical density, average word length, Latin ratio, syllable
// complexity and spelling predictability. It is a pure function of its input
// and the read-only lexical tables, safe for concurrent use.
package analyzer

import (
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/classifier"
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/tokenizer"
)

// Metrics is the result of analysing one text. Percentages lie in [0, 100].
type Metrics struct {
	LexicalDensity         float64 `json:"lexical_density"`
	AverageWordLength      float64 `json:"average_word_length"`
	LatinRatio             float64 `json:"latin_ratio"`
	SyllableComplexity     float64 `json:"syllable_complexity"`
	SpellingPredictability float64 `json:"spelling_predictability"`

	TotalWords         int `json:"total_words"`
	ValidWordCount     int `json:"valid_word_count"`
	ContentWordCount   int `json:"content_word_count"`
	IrregularWordCount int `json:"irregular_word_count"`
	LatinCount         int `json:"latin_count"`
	GermanicCount      int `json:"germanic_count"`
	NeutralCount       int `json:"neutral_count"`
}

// Compute tokenizes text, classifies every token and aggregates the results.
// Empty input yields the zero Metrics.
func Compute(text string) Metrics {
	tokens := tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return Metrics{}
	}

	m := Metrics{TotalWords: len(tokens)}
	var letterSum, syllableSum int
	for _, tok := range tokens {
		w := classifier.Classify(tok)
		if !w.Valid() {
			continue
		}
		m.ValidWordCount++
		if !w.IsFunctionWord {
			m.ContentWordCount++
		}
		letterSum += w.LetterCount
		syllableSum += w.Syllables
		if w.Irregular {
			m.IrregularWordCount++
		}
		switch w.Origin {
		case classifier.OriginLatin:
			m.LatinCount++
		case classifier.OriginGermanic:
			m.GermanicCount++
		default:
			m.NeutralCount++
		}
	}

	m.LexicalDensity = percent(m.ContentWordCount, m.TotalWords)
	m.AverageWordLength = ratio(letterSum, m.ValidWordCount)
	m.LatinRatio = percent(m.LatinCount, m.LatinCount+m.GermanicCount)
	m.SyllableComplexity = ratio(syllableSum, m.ValidWordCount)
	m.SpellingPredictability = clamp(100-percent(m.IrregularWordCount, m.TotalWords), 0, 100)
	return m
}

// ClassifyText returns the classification of every token of text, letterless
// tokens included, in reading order.
func ClassifyText(text string) []classifier.Word {
	tokens := tokenizer.Tokenize(text)
	words := make([]classifier.Word, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, classifier.Classify(tok))
	}
	return words
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func percent(num, den int) float64 {
	return ratio(num, den) * 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
