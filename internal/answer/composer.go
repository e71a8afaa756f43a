// Package answer turns retrieved chunks and a question into a grounded
// answer. Every failure on this path degrades to the fixed refusal
// string; the composer never returns an error to its caller. That
// collapse is a deliberate policy and it lives here, in one place.
package answer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"sitechat/internal/domain"
	"sitechat/internal/llm"
)

// historyWindow is how many prior conversation turns are forwarded to
// the model for context.
const historyWindow = 6

// maxContextTokens caps the retrieved context sent to the model, using
// the rough 4-characters-per-token estimate.
const maxContextTokens = 6000

const systemPrompt = `You are a helpful assistant that answers questions based ONLY on the provided website content.
If the answer to a question is not available in the provided context, respond EXACTLY with:
"The answer is not available on the provided website."

Do not use any external knowledge or make assumptions. Base your answer strictly on the information provided in the context.`

// ChatClient is the completion surface the composer depends on.
type ChatClient interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Composer assembles grounding prompts and produces answers. With a
// nil client it always uses the keyword-overlap fallback.
type Composer struct {
	client ChatClient
}

// NewComposer creates a composer around an optional chat client.
func NewComposer(client ChatClient) *Composer {
	return &Composer{client: client}
}

// Compose answers the question from the retrieved chunks. An empty
// retrieval refuses immediately without a model call; a failed model
// call silently routes to the keyword fallback.
func (c *Composer) Compose(ctx context.Context, question string, results []domain.SearchResult, history []domain.Turn) string {
	if len(results) == 0 {
		return domain.Refusal
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Chunk.Text)
	}
	contextText := truncateToTokens(strings.Join(parts, "\n\n"), maxContextTokens)

	if c.client != nil {
		got, err := c.client.Complete(ctx, c.buildMessages(question, contextText, history))
		if err == nil {
			return normalizeModelAnswer(got)
		}
	}
	return simpleAnswer(question, contextText)
}

func (c *Composer) buildMessages(question, contextText string, history []domain.Turn) []llm.Message {
	messages := []llm.Message{{Role: "system", Content: systemPrompt}}
	if n := len(history); n > historyWindow {
		history = history[n-historyWindow:]
	}
	for _, turn := range history {
		if turn.Role != domain.RoleUser && turn.Role != domain.RoleAssistant {
			continue
		}
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{
		Role:    domain.RoleUser,
		Content: fmt.Sprintf("Context from the website:\n%s\n\nQuestion: %s", contextText, question),
	})
	return messages
}

// refusalPhrase is the refusal without its terminal punctuation, so a
// reply embedding it mid-sentence still matches.
var refusalPhrase = strings.TrimSuffix(strings.ToLower(domain.Refusal), ".")

// normalizeModelAnswer forces the exact refusal string whenever the
// model hedges or embeds the refusal phrase anywhere in its reply.
func normalizeModelAnswer(answer string) string {
	answer = strings.TrimSpace(answer)
	lower := strings.ToLower(answer)
	switch {
	case answer == "",
		strings.HasPrefix(lower, "i don't know"),
		strings.HasPrefix(lower, "i'm sorry"),
		strings.Contains(lower, refusalPhrase):
		return domain.Refusal
	}
	return answer
}

// EstimateTokens roughly approximates the token count of English text
// at 4 characters per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}

func truncateToTokens(text string, maxTokens int) string {
	if EstimateTokens(text) <= maxTokens {
		return text
	}
	cut := maxTokens * 4
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
