package analyzer

// OriginBreakdown splits letter-bearing words into Latin, Germanic and
// neutral shares that sum to 100 (or are all 0 for an empty text).
type OriginBreakdown struct {
	LatinPercent    float64 `json:"latin_percent"`
	GermanicPercent float64 `json:"germanic_percent"`
	NeutralPercent  float64 `json:"neutral_percent"`
}

// Breakdown computes the stacked origin shares of m. Unlike LatinRatio the
// denominator includes neutral words.
func Breakdown(m Metrics) OriginBreakdown {
	total := m.LatinCount + m.GermanicCount + m.NeutralCount
	return OriginBreakdown{
		LatinPercent:    percent(m.LatinCount, total),
		GermanicPercent: percent(m.GermanicCount, total),
		NeutralPercent:  percent(m.NeutralCount, total),
	}
}

// Deltas holds user minus reference for each headline metric.
type Deltas struct {
	LexicalDensity         float64 `json:"lexical_density"`
	AverageWordLength      float64 `json:"average_word_length"`
	LatinRatio             float64 `json:"latin_ratio"`
	SyllableComplexity     float64 `json:"syllable_complexity"`
	SpellingPredictability float64 `json:"spelling_predictability"`
}

// Compare subtracts the reference metrics from the user's.
func Compare(user, reference Metrics) Deltas {
	return Deltas{
		LexicalDensity:         user.LexicalDensity - reference.LexicalDensity,
		AverageWordLength:      user.AverageWordLength - reference.AverageWordLength,
		LatinRatio:             user.LatinRatio - reference.LatinRatio,
		SyllableComplexity:     user.SyllableComplexity - reference.SyllableComplexity,
		SpellingPredictability: user.SpellingPredictability - reference.SpellingPredictability,
	}
}
