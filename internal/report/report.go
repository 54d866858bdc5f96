// Package report turns Metrics into presentation cards: a label, a
// formatted value, a bar width and, for two metrics, a status chip.
package report

import (
	"fmt"
	"math"

	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer"
)

type Key string

const (
	KeyLexicalDensity         Key = "lexical_density"
	KeyAverageWordLength      Key = "average_word_length"
	KeyLatinRatio             Key = "latin_ratio"
	KeySyllableComplexity     Key = "syllable_complexity"
	KeySpellingPredictability Key = "spelling_predictability"
)

// Level grades a status chip from low to high.
type Level string

const (
	LevelLow  Level = "low"
	LevelMid  Level = "mid"
	LevelHigh Level = "high"
)

type Chip struct {
	Label string `json:"label"`
	Level Level  `json:"level"`
}

// Meta describes how one metric is displayed.
type Meta struct {
	Key     Key
	Label   string
	Explain string
	format  string
	BarMax  float64
}

var catalogue = []Meta{
	{KeyLexicalDensity, "Lexical Density", "Content words versus function words.", "%.1f%%", 100},
	{KeyAverageWordLength, "Average Word Length", "Mean letters per word.", "%.1f letters", 10},
	{KeyLatinRatio, "Latin / Germanic", "Share of Latin-leaning vocabulary; stacked vs Germanic/neutral.", "%.1f%% Latin", 100},
	{KeySyllableComplexity, "Syllable Complexity", "Average syllables per word.", "%.1f syl/word", 4},
	{KeySpellingPredictability, "Spelling Predictability", "Lower irregular patterns = higher score.", "%.1f%%", 100},
}

// Card is one rendered metric.
type Card struct {
	Key      Key     `json:"key"`
	Label    string  `json:"label"`
	Explain  string  `json:"explain"`
	Value    float64 `json:"value"`
	Display  string  `json:"display"`
	BarMax   float64 `json:"bar_max"`
	BarWidth float64 `json:"bar_width"`
	Status   *Chip   `json:"status,omitempty"`
	// Stack is set on the Latin card only.
	Stack *analyzer.OriginBreakdown `json:"stack,omitempty"`
}

// Catalogue returns the display metadata in canonical order.
func Catalogue() []Meta {
	out := make([]Meta, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup returns the metadata for key.
func Lookup(key Key) (Meta, bool) {
	for _, m := range catalogue {
		if m.Key == key {
			return m, true
		}
	}
	return Meta{}, false
}

// Cards renders m in canonical order.
func Cards(m analyzer.Metrics) []Card {
	cards := make([]Card, 0, len(catalogue))
	for _, meta := range catalogue {
		v := Value(meta.Key, m)
		card := Card{
			Key:      meta.Key,
			Label:    meta.Label,
			Explain:  meta.Explain,
			Value:    v,
			Display:  meta.Format(v),
			BarMax:   meta.BarMax,
			BarWidth: BarWidth(v, meta.BarMax),
		}
		if chip, ok := Status(meta.Key, v); ok {
			card.Status = &chip
		}
		if meta.Key == KeyLatinRatio {
			stack := analyzer.Breakdown(m)
			card.Stack = &stack
		}
		cards = append(cards, card)
	}
	return cards
}

// Format renders v with the metric's unit and one decimal.
func (m Meta) Format(v float64) string {
	return fmt.Sprintf(m.format, v)
}

// Value picks the headline metric named by key out of m.
func Value(key Key, m analyzer.Metrics) float64 {
	switch key {
	case KeyLexicalDensity:
		return m.LexicalDensity
	case KeyAverageWordLength:
		return m.AverageWordLength
	case KeyLatinRatio:
		return m.LatinRatio
	case KeySyllableComplexity:
		return m.SyllableComplexity
	case KeySpellingPredictability:
		return m.SpellingPredictability
	}
	return 0
}

// DeltaValue is Value for a Deltas record.
func DeltaValue(key Key, d analyzer.Deltas) float64 {
	return Value(key, analyzer.Metrics{
		LexicalDensity:         d.LexicalDensity,
		AverageWordLength:      d.AverageWordLength,
		LatinRatio:             d.LatinRatio,
		SyllableComplexity:     d.SyllableComplexity,
		SpellingPredictability: d.SpellingPredictability,
	})
}

// BarWidth is v as a percentage of barMax, capped at 100.
func BarWidth(v, barMax float64) float64 {
	if barMax <= 0 || v <= 0 {
		return 0
	}
	return math.Min(100, v/barMax*100)
}

// Status returns the chip for lexical density and spelling predictability.
// Other metrics have none.
func Status(key Key, v float64) (Chip, bool) {
	switch key {
	case KeyLexicalDensity:
		switch {
		case v < 45:
			return Chip{"Informal", LevelLow}, true
		case v <= 55:
			return Chip{"Conversational", LevelMid}, true
		default:
			return Chip{"Formal", LevelHigh}, true
		}
	case KeySpellingPredictability:
		switch {
		case v < 70:
			return Chip{"Irregular", LevelLow}, true
		case v <= 80:
			return Chip{"Mixed", LevelMid}, true
		default:
			return Chip{"Predictable", LevelHigh}, true
		}
	}
	return Chip{}, false
}
