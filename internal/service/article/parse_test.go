package article

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

func TestParseArticle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    ParseResult
	}{
		{
			name:    "json in code fence",
			content: "```json\n{\"english\": \"I ate an **apple** by the river.\", \"translated\": \"我在河边吃了一个苹果。\"}\n```",
			want: ParseResult{Kind: ParsedJSON, Article: domain.Article{
				English: "I ate an apple by the river.", Translated: "我在河边吃了一个苹果。",
			}},
		},
		{
			name:    "json with chatter around it",
			content: "Here you go:\n{\"english\": \"A __river__ runs.\", \"translated\": \"\"}\nEnjoy!",
			want:    ParseResult{Kind: ParsedJSON, Article: domain.Article{English: "A river runs."}},
		},
		{
			name:    "split at first CJK character",
			content: "I like the *apple* by the river.\n\n我喜欢河边的苹果。",
			want: ParseResult{Kind: ParsedScriptSplit, Article: domain.Article{
				English: "I like the apple by the river.", Translated: "我喜欢河边的苹果。",
			}},
		},
		{
			name:    "split at blank line",
			content: "The river is long.\n  \nWo xihuan he.",
			want: ParseResult{Kind: ParsedBlankLine, Article: domain.Article{
				English: "The river is long.", Translated: "Wo xihuan he.",
			}},
		},
		{
			name:    "whole text",
			content: "Only one paragraph about an _apple_.",
			want:    ParseResult{Kind: ParsedWholeText, Article: domain.Article{English: "Only one paragraph about an apple."}},
		},
		{
			name:    "json without english falls through",
			content: `{"translated": "只有翻译"}`,
			want: ParseResult{Kind: ParsedScriptSplit, Article: domain.Article{
				English: `{"translated": "`, Translated: `只有翻译"}`,
			}},
		},
		{name: "empty", content: "  \n ", want: ParseResult{Kind: Unparseable}},
		{name: "markup only", content: "** __", want: ParseResult{Kind: Unparseable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseArticle(tt.content))
		})
	}
}

func TestStripEmphasis(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"**bold** and __bold__": "bold and bold",
		"*italic* word":         "italic word",
		"(_italic_) word":       "(italic) word",
		"snake_case_name stays": "snake_case_name stays",
		"stray * star":          "stray * star",
		"counted 3 * 4 apples":  "counted 3 * 4 apples",
		"  plain text  ":        "plain text",
	}
	for in, want := range tests {
		assert.Equal(t, want, stripEmphasis(in), in)
	}
}

func TestParseKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "json", ParsedJSON.String())
	assert.Equal(t, "unparseable", Unparseable.String())
}
