package domain

import "time"

// DefaultNotebookName is the name given to a user's auto-created notebook.
const DefaultNotebookName = "默认单词本"

// Notebook is a user-owned collection of words.
type Notebook struct {
	ID          int64
	UserID      int64
	Name        string
	Description *string
	IsDefault   bool
	CreatedAt   time.Time
	WordCount   int
}

// NotebookWord is a word inside a notebook.
type NotebookWord struct {
	WordID     int64
	Spelling   string
	PhoneticUK *string
	PhoneticUS *string
	AddedAt    time.Time
}

// NotebookDetail is a notebook with its words, most recently added first.
type NotebookDetail struct {
	Notebook
	Words []NotebookWord
}
