package summarizer

import (
	"context"
	"strings"
)

// PromptTemplate is the fixed instruction wrapped around the article text.
const PromptTemplate = "Summarize the following news article:\n\n{article}\n\nSummary:"

const articlePlaceholder = "{article}"

// Summarizer produces a single summary for the extracted article text.
type Summarizer interface {
	Summarize(ctx context.Context, article string) (string, error)
}

// BuildPrompt substitutes article into PromptTemplate verbatim.
func BuildPrompt(article string) string {
	return strings.Replace(PromptTemplate, articlePlaceholder, article, 1)
}
