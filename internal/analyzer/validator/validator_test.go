package validator

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/ParticlesofMind/english-language-analysis/pkg/config"
	apperrors "github.com/ParticlesofMind/english-language-analysis/pkg/errors"
)

func TestCheckTooShort(t *testing.T) {
	p := DefaultPolicy()
	text := "  " + strings.Repeat("a", 49) + "   \n"
	a, err := Check(text, p)
	if !errors.Is(err, apperrors.ErrTextTooShort) {
		t.Fatalf("Check error = %v, want ErrTextTooShort", err)
	}
	if got := apperrors.HTTPStatusCode(err); got != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", got)
	}
	if got := apperrors.Message(err); got != "Minimum 50 characters required for reliable metrics." {
		t.Errorf("message = %q", got)
	}
	if a.Chars != 49 {
		t.Errorf("Chars = %d, want 49", a.Chars)
	}
}

func TestCheckCountsRunes(t *testing.T) {
	p := Policy{MinChars: 5, MinWords: 1}
	if _, err := Check("éééé", p); err == nil {
		t.Error("4 runes should fail a 5-character minimum even though they are 8 bytes")
	}
	if _, err := Check("ééééé", p); err != nil {
		t.Errorf("5 runes should pass: %v", err)
	}
}

func TestCheckFewWordsWarns(t *testing.T) {
	text := strings.Repeat("extraordinary ", 10)
	a, err := Check(text, DefaultPolicy())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if a.Words != 10 {
		t.Errorf("Words = %d, want 10", a.Words)
	}
	if len(a.Warnings) != 1 || a.Warnings[0] != "Fewer than 50 words; results may be noisy." {
		t.Errorf("Warnings = %q", a.Warnings)
	}
}

func TestCheckEnoughWords(t *testing.T) {
	text := strings.Repeat("word ", 50)
	a, err := Check(text, DefaultPolicy())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(a.Warnings) != 0 {
		t.Errorf("Warnings = %q, want none", a.Warnings)
	}
}

func TestCheckTooLong(t *testing.T) {
	p := Policy{MinChars: 1, MaxBytes: 10}
	_, err := Check(strings.Repeat("x", 11), p)
	if !errors.Is(err, apperrors.ErrTextTooLong) {
		t.Fatalf("Check error = %v, want ErrTextTooLong", err)
	}
	if got := apperrors.HTTPStatusCode(err); got != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", got)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	p := PolicyFromConfig(config.Default().Analysis)
	if p != DefaultPolicy() {
		t.Errorf("PolicyFromConfig(defaults) = %+v, want %+v", p, DefaultPolicy())
	}
}
