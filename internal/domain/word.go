package domain

import "time"

// Word is a dictionary headword. Spelling is stored normalized and is unique.
type Word struct {
	ID         int64
	Spelling   string
	PhoneticUK *string
	PhoneticUS *string
	AudioUKURL *string
	AudioUSURL *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Senses []Sense
}

// Sense is one meaning of a word. Order is 1-based and contiguous within a word.
type Sense struct {
	ID           int64
	WordID       int64
	Order        int
	PartOfSpeech string
	DefinitionEN string
	DefinitionZH *string

	Examples []Example
}

// Example is a usage sentence attached to a sense.
type Example struct {
	ID         int64
	SenseID    int64
	SentenceEN string
	SentenceZH *string
}

// IsComplete reports whether the stored word can be served without asking
// the completion provider: it has senses, and every sense has a localized
// definition and at least one example.
func (w *Word) IsComplete() bool {
	if w == nil || len(w.Senses) == 0 {
		return false
	}
	for _, s := range w.Senses {
		if s.DefinitionZH == nil || *s.DefinitionZH == "" {
			return false
		}
		if len(s.Examples) == 0 {
			return false
		}
	}
	return true
}

// WordSummary is the short form of a word used in lists.
type WordSummary struct {
	ID       int64
	Spelling string
}
