// Package validator gates text before analysis: too little text is refused,
// too few words only earns a warning.
package validator

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/tokenizer"
	"github.com/ParticlesofMind/english-language-analysis/pkg/config"
	apperrors "github.com/ParticlesofMind/english-language-analysis/pkg/errors"
)

// Policy holds the gate thresholds.
type Policy struct {
	MinChars int
	MinWords int
	MaxBytes int
}

// DefaultPolicy matches the defaults of config.AnalysisConfig.
func DefaultPolicy() Policy {
	return Policy{MinChars: 50, MinWords: 50, MaxBytes: 1 << 20}
}

// PolicyFromConfig builds a Policy from the analysis section.
func PolicyFromConfig(cfg config.AnalysisConfig) Policy {
	return Policy{MinChars: cfg.MinChars, MinWords: cfg.MinWords, MaxBytes: cfg.MaxBytes}
}

// Assessment describes text that passed the gate.
type Assessment struct {
	Chars    int      `json:"chars"`
	Words    int      `json:"words"`
	Warnings []string `json:"warnings,omitempty"`
}

// ShortTextMessage is the guidance returned for text below MinChars.
func (p Policy) ShortTextMessage() string {
	return fmt.Sprintf("Minimum %d characters required for reliable metrics.", p.MinChars)
}

// FewWordsWarning is attached to results computed from fewer than MinWords tokens.
func (p Policy) FewWordsWarning() string {
	return fmt.Sprintf("Fewer than %d words; results may be noisy.", p.MinWords)
}

// Check applies p to text. Characters are counted as runes after trimming
// surrounding whitespace. Errors are *errors.AppError values wrapping
// ErrTextTooShort (422) or ErrTextTooLong (413).
func Check(text string, p Policy) (Assessment, error) {
	if p.MaxBytes > 0 && len(text) > p.MaxBytes {
		return Assessment{}, apperrors.Newf(apperrors.ErrTextTooLong, http.StatusRequestEntityTooLarge,
			"Text exceeds the %d byte limit.", p.MaxBytes)
	}
	chars := utf8.RuneCountInString(strings.TrimSpace(text))
	if chars < p.MinChars {
		return Assessment{Chars: chars}, apperrors.New(apperrors.ErrTextTooShort, http.StatusUnprocessableEntity, p.ShortTextMessage())
	}
	a := Assessment{
		Chars: chars,
		Words: len(tokenizer.Tokenize(text)),
	}
	if a.Words < p.MinWords {
		a.Warnings = append(a.Warnings, p.FewWordsWarning())
	}
	return a, nil
}
