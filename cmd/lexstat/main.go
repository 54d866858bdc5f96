// Command lexstat prints the lexical metrics of a text file or stdin.
//
// Usage:
//
//	lexstat [-compare french] [-markdown] [-json] [-words] [-window 180] [file]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer"
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/classifier"
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/validator"
	"github.com/ParticlesofMind/english-language-analysis/internal/mdtext"
	"github.com/ParticlesofMind/english-language-analysis/internal/report"
	"github.com/ParticlesofMind/english-language-analysis/internal/samples"
	"github.com/ParticlesofMind/english-language-analysis/pkg/logger"
)

type options struct {
	compare  string
	markdown bool
	json     bool
	words    bool
	window   int
	path     string
}

type output struct {
	Metrics   analyzer.Metrics         `json:"metrics"`
	Breakdown analyzer.OriginBreakdown `json:"breakdown"`
	Warnings  []string                 `json:"warnings,omitempty"`
	Words     []classifier.Word        `json:"words,omitempty"`
	Compare   *comparison              `json:"compare,omitempty"`
}

type comparison struct {
	Language samples.Language `json:"language"`
	Title    string           `json:"title"`
	Metrics  analyzer.Metrics `json:"metrics"`
	Deltas   analyzer.Deltas  `json:"deltas"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lexstat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.compare, "compare", "", "compare against a reference sample (german, french, italian, spanish)")
	fs.BoolVar(&opts.markdown, "markdown", false, "treat the input as Markdown and analyse its prose only")
	fs.BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	fs.BoolVar(&opts.words, "words", false, "include the per-word classification")
	fs.IntVar(&opts.window, "window", samples.DefaultWindow, "word window applied to the reference sample (0 = full text)")
	logLevel := fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "lexstat: at most one file argument")
		return 2
	}
	opts.path = fs.Arg(0)

	logger.SetupWriter(stderr, *logLevel, "text")

	if err := analyze(context.Background(), opts, stdin, stdout); err != nil {
		fmt.Fprintf(stderr, "lexstat: %v\n", err)
		return 1
	}
	return 0
}

func analyze(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer) error {
	raw, err := readInput(opts.path, stdin)
	if err != nil {
		return err
	}
	text := string(raw)
	if opts.markdown {
		text = mdtext.ExtractPlainText(raw)
	}

	assessment, err := validator.Check(text, validator.DefaultPolicy())
	if err != nil {
		return err
	}
	slog.Debug("input accepted", "chars", assessment.Chars, "words", assessment.Words)

	m := analyzer.Compute(text)
	out := output{
		Metrics:   m,
		Breakdown: analyzer.Breakdown(m),
		Warnings:  assessment.Warnings,
	}
	if opts.words {
		out.Words = analyzer.ClassifyText(text)
	}

	if opts.compare != "" {
		lang, err := samples.ParseLanguage(opts.compare)
		if err != nil {
			return err
		}
		corpus, err := samples.Load(ctx, opts.window, samples.DefaultExcerptLength)
		if err != nil {
			return fmt.Errorf("loading samples: %w", err)
		}
		sample, _ := corpus.Get(lang)
		out.Compare = &comparison{
			Language: lang,
			Title:    sample.Title,
			Metrics:  sample.Metrics,
			Deltas:   analyzer.Compare(m, sample.Metrics),
		}
	}

	if opts.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return printTable(stdout, out)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func printTable(w io.Writer, out output) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if out.Compare != nil {
		fmt.Fprintf(tw, "METRIC\tYOURS\t%s\tDELTA\n", out.Compare.Title)
		deltas := out.Compare.Deltas
		for _, meta := range report.Catalogue() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%+.1f\n",
				meta.Label,
				meta.Format(report.Value(meta.Key, out.Metrics)),
				meta.Format(report.Value(meta.Key, out.Compare.Metrics)),
				report.DeltaValue(meta.Key, deltas),
			)
		}
	} else {
		fmt.Fprintln(tw, "METRIC\tVALUE\tSTATUS")
		for _, card := range report.Cards(out.Metrics) {
			status := "-"
			if card.Status != nil {
				status = card.Status.Label
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", card.Label, card.Display, status)
		}
	}
	fmt.Fprintf(tw, "Origins\t%.1f%% Latin / %.1f%% Germanic / %.1f%% neutral\t\n",
		out.Breakdown.LatinPercent, out.Breakdown.GermanicPercent, out.Breakdown.NeutralPercent)
	fmt.Fprintf(tw, "Words\t%d total, %d valid, %d content\t\n",
		out.Metrics.TotalWords, out.Metrics.ValidWordCount, out.Metrics.ContentWordCount)

	if len(out.Words) > 0 {
		fmt.Fprintln(tw, "\nWORD\tORIGIN\tSYLLABLES\tFUNCTION\tIRREGULAR")
		for _, word := range out.Words {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%t\n",
				word.Token, word.Origin, word.Syllables, word.IsFunctionWord, word.Irregular)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, warning := range out.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}
