package provider

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn sent to a language model.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest is a provider-agnostic chat completion call.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// System returns the concatenated system messages of the request.
func (r CompletionRequest) System() string {
	var out string
	for _, m := range r.Messages {
		if m.Role != RoleSystem {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += m.Content
	}
	return out
}

// ImageRequest describes a single text-to-image generation.
type ImageRequest struct {
	Prompt         string
	NegativePrompt string
	Size           string
	BatchSize      int
	Steps          int
	GuidanceScale  float64
}

// Pronunciation is phonetic data for one accent of a word.
type Pronunciation struct {
	Transcription string
	AudioURL      string
}

// PronunciationResult holds the UK and US pronunciations found for a word.
// Either side may be nil when the source has nothing for that accent.
type PronunciationResult struct {
	UK *Pronunciation
	US *Pronunciation
}
