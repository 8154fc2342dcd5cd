// Package orchestrator resolves free-text queries into service intents.
// The primary resolver asks an LLM; a keyword router covers the case where
// no model is configured or the model misbehaves.
package orchestrator

import (
	"context"
	"strings"

	"github.com/vadiminshakov/centi/internal/domain"
)

// QueryMaxLen caps the accepted query length.
const QueryMaxLen = 500

// Resolver maps a user query to an intent.
type Resolver interface {
	Resolve(ctx context.Context, query string) (domain.Intent, error)
}

// KeywordResolver routes queries by keyword matching, the same heuristics
// the paid services are demoed with.
type KeywordResolver struct{}

// NewKeywordResolver creates the keyword router.
func NewKeywordResolver() *KeywordResolver {
	return &KeywordResolver{}
}

// Resolve inspects the query for service keywords.
func (r *KeywordResolver) Resolve(_ context.Context, query string) (domain.Intent, error) {
	query = clipQuery(query)
	lower := strings.ToLower(query)

	switch {
	case strings.Contains(lower, "weather"):
		return domain.Intent{
			Service: domain.ServiceWeather,
			Params:  map[string]string{"city": extractCity(query)},
		}, nil

	case containsAny(lower, "stock", "price", "ticker"):
		return domain.Intent{
			Service: domain.ServiceStock,
			Params:  map[string]string{"symbol": extractSymbol(query)},
		}, nil

	case strings.Contains(lower, "news"):
		return domain.Intent{
			Service: domain.ServiceNews,
			Params:  map[string]string{"topic": extractTopic(query)},
		}, nil

	case strings.Contains(lower, "balance") || strings.Contains(lower, "wallet"):
		return domain.Intent{Service: domain.ActionBalance}, nil

	case strings.Contains(lower, "history") || strings.Contains(lower, "transactions"):
		return domain.Intent{Service: domain.ActionHistory}, nil
	}

	return domain.Intent{Service: domain.ActionHelp}, nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clipQuery(query string) string {
	query = strings.TrimSpace(query)
	if len(query) > QueryMaxLen {
		query = query[:QueryMaxLen]
	}
	return query
}
