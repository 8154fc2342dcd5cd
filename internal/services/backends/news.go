package backends

import (
	"context"
	"fmt"
)

// News simulates a paid headline feed.
type News struct{}

// NewNews creates the news backend.
func NewNews() *News {
	return &News{}
}

func (n *News) Call(_ context.Context, params map[string]string) (map[string]any, error) {
	topic := params["topic"]
	if topic == "" {
		topic = "technology"
	}

	return map[string]any{
		"topic": topic,
		"headlines": []string{
			fmt.Sprintf("Breaking: major developments in %s sector", topic),
			fmt.Sprintf("Market update: %s sees renewed growth", topic),
			fmt.Sprintf("Experts predict the future of %s", topic),
		},
	}, nil
}
