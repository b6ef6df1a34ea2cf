package domain

import "testing"

func TestParseReviewOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   ReviewOutcome
		wantOK bool
	}{
		{in: "remembered", want: ReviewRemembered, wantOK: true},
		{in: "forgotten", want: ReviewForgotten, wantOK: true},
		{in: "good", want: ReviewRemembered, wantOK: true},
		{in: "again", want: ReviewForgotten, wantOK: true},
		{in: " GOOD ", want: ReviewRemembered, wantOK: true},
		{in: "easy", wantOK: false},
		{in: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseReviewOutcome(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseReviewOutcome(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseReviewOutcome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnums_IsValid(t *testing.T) {
	t.Parallel()

	if !FlashcardStatusLearning.IsValid() || FlashcardStatus("mastered").IsValid() {
		t.Error("FlashcardStatus.IsValid mismatch")
	}
	if !FlashcardSourceNotebook.IsValid() || FlashcardSource("import").IsValid() {
		t.Error("FlashcardSource.IsValid mismatch")
	}
	if !DueModeRecent.IsValid() || DueMode("all").IsValid() {
		t.Error("DueMode.IsValid mismatch")
	}
	for _, l := range []ArticleLevel{ArticleLevelPrimary, ArticleLevelHighSchool, ArticleLevelCET4, ArticleLevelCET6} {
		if !l.IsValid() {
			t.Errorf("%s should be valid", l)
		}
	}
	if ArticleLevel("ielts").IsValid() {
		t.Error("ielts should not be valid")
	}
}

func TestShortPartOfSpeech(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"noun":         "n.",
		"Verb":         "v.",
		"ADJECTIVE":    "adj.",
		"adverb":       "adv.",
		"pronoun":      "pron.",
		"preposition":  "prep.",
		"conjunction":  "conj.",
		"interjection": "interj.",
		"n.":           "n.",
		"phrasal verb": "phrasal verb",
	}
	for in, want := range tests {
		if got := ShortPartOfSpeech(in); got != want {
			t.Errorf("ShortPartOfSpeech(%q) = %q, want %q", in, got, want)
		}
	}
}
