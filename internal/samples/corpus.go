// Package samples precomputes metrics for the four fixed reference passages
// that user texts are compared against. A Corpus is built once at startup and
// is read-only afterwards, so it may be shared by concurrent readers without
// locking.
package samples

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer"
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/tokenizer"
	apperrors "github.com/ParticlesofMind/english-language-analysis/pkg/errors"
)

const (
	// DefaultWindow is the canonical number of words each passage is cut to
	// before its metrics are computed.
	DefaultWindow = 180
	// DefaultExcerptLength is the number of characters shown as excerpt.
	DefaultExcerptLength = 380
)

// Sample is a reference passage together with its cached metrics.
type Sample struct {
	Language    Language         `json:"language"`
	Title       string           `json:"title"`
	Attribution string           `json:"source"`
	Text        string           `json:"-"`
	Bounded     string           `json:"-"`
	Excerpt     string           `json:"excerpt"`
	Metrics     analyzer.Metrics `json:"metrics"`
}

// Corpus holds the preprocessed reference samples.
type Corpus struct {
	samples map[Language]Sample
	order   []Language
}

// Load bounds every reference text to window words (0 keeps the full text),
// computes its metrics and returns the resulting Corpus. Passages are
// processed concurrently; ctx only bounds that fan-out.
func Load(ctx context.Context, window, excerptLen int) (*Corpus, error) {
	if excerptLen <= 0 {
		excerptLen = DefaultExcerptLength
	}
	logger := slog.Default().With("component", "samples")

	langs := make([]Language, 0, len(sources))
	for lang := range sources {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })

	results := make([]Sample, len(langs))
	g, ctx := errgroup.WithContext(ctx)
	for i, lang := range langs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("preprocessing %s sample: %w", lang, err)
			}
			results[i] = build(lang, sources[lang], window, excerptLen)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Corpus{
		samples: make(map[Language]Sample, len(results)),
		order:   langs,
	}
	for _, s := range results {
		c.samples[s.Language] = s
		logger.Debug("sample preprocessed",
			"language", s.Language,
			"total_words", s.Metrics.TotalWords,
			"latin_ratio", s.Metrics.LatinRatio,
		)
	}
	logger.Info("reference samples ready", "count", len(c.samples), "window", window)
	return c, nil
}

func build(lang Language, src source, window, excerptLen int) Sample {
	bounded := tokenizer.LimitWords(src.text, window)
	return Sample{
		Language:    lang,
		Title:       src.title,
		Attribution: src.attribution,
		Text:        src.text,
		Bounded:     bounded,
		Excerpt:     Excerpt(bounded, excerptLen),
		Metrics:     analyzer.Compute(bounded),
	}
}

// Get returns the sample for lang.
func (c *Corpus) Get(lang Language) (Sample, bool) {
	s, ok := c.samples[lang]
	return s, ok
}

// Languages lists the available keys in alphabetical order.
func (c *Corpus) Languages() []Language {
	out := make([]Language, len(c.order))
	copy(out, c.order)
	return out
}

// All returns every sample in the order of Languages.
func (c *Corpus) All() []Sample {
	out := make([]Sample, 0, len(c.order))
	for _, lang := range c.order {
		out = append(out, c.samples[lang])
	}
	return out
}

// Len returns the number of loaded samples.
func (c *Corpus) Len() int {
	return len(c.samples)
}

// ParseLanguage validates a user-supplied language key.
func ParseLanguage(raw string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := sources[lang]; !ok {
		return "", apperrors.Newf(apperrors.ErrUnknownLanguage, http.StatusNotFound,
			"unknown language %q (supported: french, german, italian, spanish)", raw)
	}
	return lang, nil
}

// Excerpt returns the first n characters of text, with "..." appended when
// anything was cut.
func Excerpt(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}
