package article

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/lexinote-backend/internal/provider"
)

const (
	articleTemperature = 0.7
	articleMaxTokens   = 2048
)

const systemPrompt = "You write English practice articles for Chinese learners and translate them into Simplified Chinese. " +
	"Output plain text only: no Markdown, no bold or italic markers, no headings, no explanations."

func buildRequest(words []string, p levelProfile) provider.CompletionRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "Write an English article at %s level.\n", p.Label)
	fmt.Fprintf(&b, "%s\n\n", p.Style)
	fmt.Fprintf(&b, "Length: %d-%d words in %d-%d sentences.\n", p.MinWords, p.MaxWords, p.MinSentences, p.MaxSentences)
	fmt.Fprintf(&b, "Required words: %s\n", strings.Join(words, ", "))
	b.WriteString("Every required word must appear at least once, spelled exactly as given.\n\n")
	b.WriteString("Then translate the whole article into natural Simplified Chinese.\n")
	b.WriteString(`Reply with a single JSON object: {"english": "<article>", "translated": "<Chinese translation>"}` + "\n")
	b.WriteString("Keep both fields plain text with paragraphs separated by blank lines.")

	return provider.CompletionRequest{
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: systemPrompt},
			{Role: provider.RoleUser, Content: b.String()},
		},
		Temperature: articleTemperature,
		MaxTokens:   articleMaxTokens,
	}
}
