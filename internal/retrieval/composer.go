package retrieval

import (
	"strings"

	"github.com/kotae-ai/kotae/pkg/utils"
)

// NoInformationAnswer is returned when nothing in the knowledge base was
// relevant enough. The composer never fabricates content beyond this and the
// retrieved passages.
const NoInformationAnswer = "I'm not sure about that. I can help you learn more about my background, skills, projects, experience, or how to contact me. What would you like to know?"

var (
	greetingWords = []string{"hi", "hello", "hey", "greetings"}
	projectWords  = []string{"project", "projects", "built", "created"}
	skillWords    = []string{"skill", "skills", "expertise", "know", "experience", "technology", "tech"}
)

// Composer assembles the answer text from retrieved entries. The question is
// only used to pick a phrasing template; every sentence of the answer comes
// from retrieved content verbatim.
type Composer struct {
	owner string
}

// NewComposer creates a composer. ownerName appears in greeting replies and
// may be empty.
func NewComposer(ownerName string) *Composer {
	return &Composer{owner: ownerName}
}

// Compose maps matches (best first) to an answer string plus the matched
// categories in the same order. Deterministic: same input, same output.
func (c *Composer) Compose(question string, matches []Match) (answer string, sources []string) {
	if len(matches) == 0 {
		return NoInformationAnswer, []string{}
	}

	sources = make([]string, len(matches))
	contents := make([]string, len(matches))
	for i, m := range matches {
		sources[i] = m.Entry.Category
		contents[i] = m.Entry.Content
	}
	context := strings.Join(contents, " ")
	words := questionWords(question)

	switch {
	case containsAny(words, greetingWords):
		return "Hi there! I'm " + c.assistantName() + ". " + utils.FirstSentence(context) +
			". How can I help you learn more?", sources
	case containsAny(words, projectWords) && strings.HasPrefix(matches[0].Entry.Category, "project_"):
		name := strings.ToUpper(strings.TrimPrefix(matches[0].Entry.Category, "project_"))
		return "Great question! " + utils.FirstSentence(context) +
			". This project demonstrates my work on " + name + ".", sources
	case containsAny(words, projectWords):
		return "I've worked on several interesting projects: " + context, sources
	case containsAny(words, skillWords):
		return "My key competencies include: " + context, sources
	default:
		return "Based on my portfolio: " + context, sources
	}
}

func (c *Composer) assistantName() string {
	if c.owner == "" {
		return "the portfolio assistant"
	}
	return c.owner + "'s portfolio assistant"
}

// questionWords lowercases the question and splits it into letter/digit runs,
// so "hi!" matches "hi" but "this" does not.
func questionWords(question string) map[string]bool {
	words := make(map[string]bool)
	var b strings.Builder
	for _, r := range strings.ToLower(question) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			words[b.String()] = true
			b.Reset()
		}
	}
	if b.Len() > 0 {
		words[b.String()] = true
	}
	return words
}

func containsAny(words map[string]bool, candidates []string) bool {
	for _, c := range candidates {
		if words[c] {
			return true
		}
	}
	return false
}
