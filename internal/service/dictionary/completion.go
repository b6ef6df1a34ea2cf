package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/provider"
)

const (
	wordTemperature = 0.1
	wordMaxTokens   = 2048

	notFoundSentinel = "not_found"
)

const wordSystemPrompt = `You are a professional English-Chinese dictionary assistant. Given an English word, produce a complete dictionary entry.

Rules:
1. If the input is gibberish, not an English word, or too badly misspelled to recognize, reply with exactly {"error": "not_found"}.
2. Otherwise give British and American IPA transcriptions, e.g. /ˈæpl/.
3. List the main parts of speech, at most 3-4 common ones.
4. For each part of speech give a concise Simplified Chinese definition (5-15 characters), a full English definition, and exactly 2 natural English example sentences with Chinese translations.
5. Output JSON only, with no other text.`

const wordUserPromptTemplate = `Produce the dictionary entry for the English word "%s".

Output format for a valid word:
{
  "word": "%s",
  "phonetic": {"uk": "British IPA", "us": "American IPA", "general": null},
  "senses": [
    {
      "pos": "part of speech abbreviation such as n., v., adj.",
      "cn": "Chinese definition",
      "enDefinition": "English definition",
      "examples": [
        {"en": "English example 1", "cn": "Chinese translation 1"},
        {"en": "English example 2", "cn": "Chinese translation 2"}
      ]
    }
  ]
}`

func buildWordRequest(spelling string) provider.CompletionRequest {
	return provider.CompletionRequest{
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: wordSystemPrompt},
			{Role: provider.RoleUser, Content: fmt.Sprintf(wordUserPromptTemplate, spelling, spelling)},
		},
		Temperature: wordTemperature,
		MaxTokens:   wordMaxTokens,
	}
}

type wordCompletion struct {
	Error    string `json:"error"`
	Word     string `json:"word"`
	Phonetic *struct {
		UK string `json:"uk"`
		US string `json:"us"`
	} `json:"phonetic"`
	Senses []struct {
		POS          string `json:"pos"`
		CN           string `json:"cn"`
		ENDefinition string `json:"enDefinition"`
		Examples     []struct {
			EN string `json:"en"`
			CN string `json:"cn"`
		} `json:"examples"`
	} `json:"senses"`
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)\\s*```")

// stripCodeFence returns the body of the first markdown code block, or the
// trimmed content when there is none.
func stripCodeFence(content string) string {
	if m := codeFenceRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(content)
}

// isNotFound detects the sentinel even when the payload is not valid JSON.
func isNotFound(content string) bool {
	compact := strings.Join(strings.Fields(content), "")
	return strings.Contains(compact, `"error":"`+notFoundSentinel+`"`)
}

// parseWordCompletion decodes the LLM answer into a word ready for Upsert.
// The stored spelling is always the normalized request, whatever the model
// echoed back.
func parseWordCompletion(content, spelling string) (*domain.Word, error) {
	body := stripCodeFence(content)

	var payload wordCompletion
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		if isNotFound(content) {
			return nil, domain.ErrInvalidWord
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if payload.Error == notFoundSentinel {
		return nil, domain.ErrInvalidWord
	}

	if payload.Word == "" {
		return nil, errors.New("missing field: word")
	}
	if len(payload.Senses) == 0 {
		return nil, errors.New("missing field: senses")
	}

	w := &domain.Word{
		Spelling: spelling,
		Senses:   make([]domain.Sense, 0, len(payload.Senses)),
	}
	if payload.Phonetic != nil {
		w.PhoneticUK = optional(payload.Phonetic.UK)
		w.PhoneticUS = optional(payload.Phonetic.US)
	}

	for i, ps := range payload.Senses {
		if ps.POS == "" || ps.CN == "" || ps.ENDefinition == "" {
			return nil, fmt.Errorf("sense %d: missing pos, cn or enDefinition", i+1)
		}
		if len(ps.Examples) == 0 {
			return nil, fmt.Errorf("sense %d: missing examples", i+1)
		}

		sense := domain.Sense{
			Order:        i + 1,
			PartOfSpeech: strings.TrimSpace(ps.POS),
			DefinitionEN: strings.TrimSpace(ps.ENDefinition),
			DefinitionZH: optional(ps.CN),
			Examples:     make([]domain.Example, 0, len(ps.Examples)),
		}
		for j, pe := range ps.Examples {
			if pe.EN == "" || pe.CN == "" {
				return nil, fmt.Errorf("sense %d example %d: missing en or cn", i+1, j+1)
			}
			sense.Examples = append(sense.Examples, domain.Example{
				SentenceEN: strings.TrimSpace(pe.EN),
				SentenceZH: optional(pe.CN),
			})
		}
		w.Senses = append(w.Senses, sense)
	}

	return w, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
