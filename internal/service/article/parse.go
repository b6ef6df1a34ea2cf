package article

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// ParseKind tells which strategy extracted the article.
type ParseKind int

const (
	Unparseable ParseKind = iota
	ParsedJSON
	ParsedScriptSplit
	ParsedBlankLine
	ParsedWholeText
)

func (k ParseKind) String() string {
	switch k {
	case ParsedJSON:
		return "json"
	case ParsedScriptSplit:
		return "script_split"
	case ParsedBlankLine:
		return "blank_line"
	case ParsedWholeText:
		return "whole_text"
	}
	return "unparseable"
}

// ParseResult is the outcome of ParseArticle. Article is meaningful only when
// Kind is not Unparseable; Translated may be empty for ParsedWholeText.
type ParseResult struct {
	Kind    ParseKind
	Article domain.Article
}

type strategy struct {
	kind  ParseKind
	parse func(string) (domain.Article, bool)
}

var strategies = []strategy{
	{kind: ParsedJSON, parse: parseJSON},
	{kind: ParsedScriptSplit, parse: splitAtCJK},
	{kind: ParsedBlankLine, parse: splitAtBlankLine},
}

// ParseArticle extracts the English text and its translation from a model
// reply. Strategies are tried in order: an embedded JSON object, a split at
// the first CJK character, a split at the first blank line, and finally the
// whole reply as English. Markup emphasis is stripped from both fields.
func ParseArticle(content string) ParseResult {
	content = strings.TrimSpace(content)
	if content == "" {
		return ParseResult{Kind: Unparseable}
	}

	for _, st := range strategies {
		if a, ok := st.parse(content); ok {
			a = sanitize(a)
			if a.English != "" {
				return ParseResult{Kind: st.kind, Article: a}
			}
		}
	}

	a := sanitize(domain.Article{English: content})
	if a.English == "" {
		return ParseResult{Kind: Unparseable}
	}
	return ParseResult{Kind: ParsedWholeText, Article: a}
}

func parseJSON(content string) (domain.Article, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return domain.Article{}, false
	}

	var a domain.Article
	if err := json.Unmarshal([]byte(content[start:end+1]), &a); err != nil {
		return domain.Article{}, false
	}
	a.English = strings.TrimSpace(a.English)
	a.Translated = strings.TrimSpace(a.Translated)
	return a, a.English != ""
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		(r >= 0x3000 && r <= 0x303F) || // CJK symbols and punctuation
		(r >= 0xFF00 && r <= 0xFFEF) // full-width forms
}

func splitAtCJK(content string) (domain.Article, bool) {
	idx := strings.IndexFunc(content, isCJK)
	if idx <= 0 {
		return domain.Article{}, false
	}

	english := strings.TrimSpace(content[:idx])
	translated := strings.TrimSpace(content[idx:])
	if english == "" || translated == "" {
		return domain.Article{}, false
	}
	return domain.Article{English: english, Translated: translated}, true
}

var blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)

func splitAtBlankLine(content string) (domain.Article, bool) {
	loc := blankLineRe.FindStringIndex(content)
	if loc == nil {
		return domain.Article{}, false
	}

	english := strings.TrimSpace(content[:loc[0]])
	translated := strings.TrimSpace(content[loc[1]:])
	if english == "" || translated == "" {
		return domain.Article{}, false
	}
	return domain.Article{English: english, Translated: translated}, true
}

var (
	starEmphasisRe       = regexp.MustCompile(`\*([^*\n]+)\*`)
	underscoreEmphasisRe = regexp.MustCompile(`(^|[\s(])_([^_\n]+)_`)
)

// sanitize removes bold and italic delimiters left by the model.
func sanitize(a domain.Article) domain.Article {
	return domain.Article{
		English:    stripEmphasis(a.English),
		Translated: stripEmphasis(a.Translated),
	}
}

func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = starEmphasisRe.ReplaceAllString(s, "$1")
	s = underscoreEmphasisRe.ReplaceAllString(s, "$1$2")
	return strings.TrimSpace(s)
}
