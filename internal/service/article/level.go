package article

import "github.com/heartmarshall/lexinote-backend/internal/domain"

// levelProfile is the target size and register of one difficulty level.
type levelProfile struct {
	Label        string
	MinWords     int
	MaxWords     int
	MinSentences int
	MaxSentences int
	Style        string
}

var levels = map[domain.ArticleLevel]levelProfile{
	domain.ArticleLevelPrimary: {
		Label:        "primary school",
		MinWords:     80,
		MaxWords:     120,
		MinSentences: 6,
		MaxSentences: 10,
		Style:        "Use very common words and short simple sentences. Tell a light, friendly story about daily life that a young child can follow.",
	},
	domain.ArticleLevelHighSchool: {
		Label:        "high school",
		MinWords:     150,
		MaxWords:     220,
		MinSentences: 8,
		MaxSentences: 14,
		Style:        "Use everyday vocabulary with some compound and complex sentences. Write a short narrative or essay on school, family or hobbies.",
	},
	domain.ArticleLevelCET4: {
		Label:        "CET-4",
		MinWords:     220,
		MaxWords:     300,
		MinSentences: 10,
		MaxSentences: 16,
		Style:        "Mix simple and complex sentences with clear linking words. Choose a topic from campus life, society or technology.",
	},
	domain.ArticleLevelCET6: {
		Label:        "CET-6",
		MinWords:     300,
		MaxWords:     400,
		MinSentences: 12,
		MaxSentences: 20,
		Style:        "Use varied sentence structures and precise academic vocabulary. Write an expository or argumentative passage with a clear line of reasoning.",
	},
}

func profileFor(level domain.ArticleLevel) (levelProfile, bool) {
	p, ok := levels[level]
	return p, ok
}
