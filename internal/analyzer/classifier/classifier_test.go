package classifier

import "testing"

func TestIsFunctionWord(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"don't", true},
		{"dont", false},
		{"the", true},
		{"yourselves", true},
		{"castle", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsFunctionWord(tt.token); got != tt.want {
			t.Errorf("IsFunctionWord(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestClassifyOrigin(t *testing.T) {
	tests := []struct {
		token string
		want  Origin
	}{
		{"friendly", OriginGermanic},
		{"portly", OriginGermanic}, // -ly beats the Latin root "port"
		{"kingdom", OriginGermanic},
		{"happiness", OriginGermanic},
		{"the", OriginGermanic},
		{"wrote", OriginGermanic},
		{"transportation", OriginLatin},
		{"exit", OriginLatin},
		{"submit", OriginLatin},
		{"important", OriginLatin},
		{"commission", OriginLatin},
		{"cat", OriginNeutral},
		{"", OriginNeutral},
		{"--", OriginNeutral},
	}
	for _, tt := range tests {
		if got := ClassifyOrigin(tt.token); got != tt.want {
			t.Errorf("ClassifyOrigin(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"the", 1},
		{"area", 3},
		{"idea", 3},
		{"real", 2},
		{"make", 1},
		{"table", 2},
		{"little", 2},
		{"whale", 1},
		{"syllable", 3},
		{"beautiful", 3},
		{"rhythm", 1},
		{"be", 1},
		{"queue", 1},
		{"cat", 1},
		{"well-known", 2},
		{"", 0},
		{"--", 0},
	}
	for _, tt := range tests {
		if got := CountSyllables(tt.token); got != tt.want {
			t.Errorf("CountSyllables(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}

func TestIsIrregular(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"knight", true},
		{"write", true},
		{"lamb", true},
		{"honest", true},
		{"could", true},
		{"though", true},
		{"eel", true},
		{"piece", true},
		{"phone", true},
		{"psalm", true},
		{"nation", true},
		{"cow", true},
		{"bowl", true},
		{"bread", true},
		{"make", true},
		{"the", true},
		{"meet", false},
		{"cat", false},
		{"dog", false},
		{"run", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsIrregular(tt.token); got != tt.want {
			t.Errorf("IsIrregular(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	got := Classify("don't")
	want := Word{
		Token:          "don't",
		Letters:        "dont",
		LetterCount:    4,
		IsFunctionWord: true,
		Origin:         OriginNeutral,
		Syllables:      1,
		Irregular:      false,
	}
	if got != want {
		t.Errorf("Classify(%q) = %+v, want %+v", "don't", got, want)
	}

	empty := Classify("--")
	if empty.Valid() {
		t.Error("Classify(\"--\").Valid() = true, want false")
	}
	if empty.LetterCount != 0 || empty.Syllables != 0 || empty.Irregular || empty.Origin != OriginNeutral {
		t.Errorf("Classify(\"--\") = %+v, want zero-valued defaults", empty)
	}
}

func TestCountLetters(t *testing.T) {
	if got := CountLetters("well-known"); got != 9 {
		t.Errorf("CountLetters(%q) = %d, want 9", "well-known", got)
	}
}
