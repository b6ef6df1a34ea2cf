package domain

// Article is a generated practice text and its translation.
type Article struct {
	English    string `json:"english"`
	Translated string `json:"translated"`
}
