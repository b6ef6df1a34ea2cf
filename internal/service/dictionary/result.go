package dictionary

// SourceDictionaryLLM tags words served by this engine.
const SourceDictionaryLLM = "dictionary+llm"

// WordDetail is the unified shape of a looked-up word.
type WordDetail struct {
	ID       int64
	Word     string
	Phonetic Phonetic
	Senses   []SenseDetail
	Source   string
	Cached   bool
}

// Phonetic holds transcriptions and audio URLs; absent values are nil.
type Phonetic struct {
	UK      *string
	UKAudio *string
	US      *string
	USAudio *string
}

// SenseDetail is one sense of a WordDetail. ID is the 1-based sense order.
type SenseDetail struct {
	ID           int
	POS          string
	CN           string
	ENDefinition *string
	Examples     []ExampleDetail
}

// ExampleDetail is an example sentence with its translation.
type ExampleDetail struct {
	EN string
	CN string
}

// DailyWord is the word-of-the-day card.
type DailyWord struct {
	WordID          int64
	Word            string
	SimpleChinese   string
	ExampleSentence string
}
