package domain

import "strings"

// FlashcardStatus is the learning state of a flashcard.
// A card that reaches the mastery threshold is deleted, so there is no mastered state.
type FlashcardStatus string

const (
	FlashcardStatusNew      FlashcardStatus = "new"
	FlashcardStatusLearning FlashcardStatus = "learning"
)

func (s FlashcardStatus) String() string { return string(s) }

func (s FlashcardStatus) IsValid() bool {
	switch s {
	case FlashcardStatusNew, FlashcardStatusLearning:
		return true
	}
	return false
}

// ReviewOutcome is the user's answer to a flashcard review.
type ReviewOutcome string

const (
	ReviewRemembered ReviewOutcome = "remembered"
	ReviewForgotten  ReviewOutcome = "forgotten"
)

func (o ReviewOutcome) String() string { return string(o) }

func (o ReviewOutcome) IsValid() bool {
	switch o {
	case ReviewRemembered, ReviewForgotten:
		return true
	}
	return false
}

// ParseReviewOutcome accepts both the canonical names and the button labels
// used by the client ("good", "again").
func ParseReviewOutcome(s string) (ReviewOutcome, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "remembered", "good":
		return ReviewRemembered, true
	case "forgotten", "again":
		return ReviewForgotten, true
	}
	return "", false
}

// FlashcardSource tells where the user collected the word from.
type FlashcardSource string

const (
	FlashcardSourceSearch   FlashcardSource = "search"
	FlashcardSourceNotebook FlashcardSource = "notebook"
)

func (s FlashcardSource) String() string { return string(s) }

func (s FlashcardSource) IsValid() bool {
	switch s {
	case FlashcardSourceSearch, FlashcardSourceNotebook:
		return true
	}
	return false
}

// DueMode selects how the due queue is scoped.
type DueMode string

const (
	DueModeRecent   DueMode = "recent"
	DueModeNotebook DueMode = "notebook"
)

func (m DueMode) String() string { return string(m) }

func (m DueMode) IsValid() bool {
	switch m {
	case DueModeRecent, DueModeNotebook:
		return true
	}
	return false
}

// ArticleLevel is the difficulty of a generated practice article.
type ArticleLevel string

const (
	ArticleLevelPrimary    ArticleLevel = "primary"
	ArticleLevelHighSchool ArticleLevel = "highschool"
	ArticleLevelCET4       ArticleLevel = "cet4"
	ArticleLevelCET6       ArticleLevel = "cet6"
)

func (l ArticleLevel) String() string { return string(l) }

func (l ArticleLevel) IsValid() bool {
	switch l {
	case ArticleLevelPrimary, ArticleLevelHighSchool, ArticleLevelCET4, ArticleLevelCET6:
		return true
	}
	return false
}

var posAbbreviations = map[string]string{
	"noun":         "n.",
	"verb":         "v.",
	"adjective":    "adj.",
	"adverb":       "adv.",
	"pronoun":      "pron.",
	"preposition":  "prep.",
	"conjunction":  "conj.",
	"interjection": "interj.",
}

// ShortPartOfSpeech maps a full part-of-speech name to its dictionary abbreviation.
// Unknown tags (including values that are already abbreviated) are returned unchanged.
func ShortPartOfSpeech(pos string) string {
	if short, ok := posAbbreviations[strings.ToLower(strings.TrimSpace(pos))]; ok {
		return short
	}
	return pos
}
