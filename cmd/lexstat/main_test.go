package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const prose = "The committee considered the proposal carefully and decided that the " +
	"administration of the region required substantial reorganisation before winter came."

func TestRunTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(prose), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	for _, want := range []string{"Lexical Density", "Spelling Predictability", "Origins", "warning: Fewer than 50 words"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunJSONCompare(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-json", "-compare", "French", "-words"}, strings.NewReader(prose), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	var out output
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if out.Compare == nil || out.Compare.Language != "french" {
		t.Fatalf("Compare = %+v, want french", out.Compare)
	}
	if len(out.Words) != out.Metrics.TotalWords {
		t.Errorf("len(Words) = %d, want %d", len(out.Words), out.Metrics.TotalWords)
	}
	want := out.Metrics.LatinRatio - out.Compare.Metrics.LatinRatio
	if out.Compare.Deltas.LatinRatio != want {
		t.Errorf("LatinRatio delta = %v, want %v", out.Compare.Deltas.LatinRatio, want)
	}
}

func TestRunMarkdownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.md")
	doc := "# Notes\n\n" + prose + "\n\n```go\nfunc main() {}\n```\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-markdown", "-json", "-words", path}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	var out output
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	for _, w := range out.Words {
		if w.Token == "func" {
			t.Error("code block content should not be analysed")
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  int
	}{
		{"too short", nil, "Too short.", 1},
		{"unknown language", []string{"-compare", "klingon"}, prose, 1},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.txt")}, "", 1},
		{"bad flag", []string{"-nope"}, prose, 2},
		{"two files", []string{"a", "b"}, prose, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, strings.NewReader(tt.input), &stdout, &stderr); got != tt.want {
				t.Errorf("exit code = %d, want %d (stderr %s)", got, tt.want, stderr.String())
			}
		})
	}
}
