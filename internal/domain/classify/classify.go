package classify

import (
	"context"

	"github.com/bryanwahyu/rivalscan/internal/domain/ai"
)

// Classifier port: maps a startup pitch to up to 3 industry labels,
// in relevance order.
type Classifier interface {
	Industries(ctx context.Context, startupName, pitch string) ([]string, error)
}

// Default is the fallback triad used when nothing matches or the
// model output cannot be parsed.
func Default() []string {
	return []string{"Technology", "Software", "Consumer"}
}

// LLMClassifier delegates classification to a chat-completion provider.
type LLMClassifier struct {
	AI ai.Client
}

func (c LLMClassifier) Industries(ctx context.Context, startupName, pitch string) ([]string, error) {
	return c.AI.Industries(ctx, startupName, pitch)
}
