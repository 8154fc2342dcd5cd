package backends

import (
	"context"
	"fmt"
)

// Translate simulates a paid translation call by tagging the text with the
// target language.
type Translate struct{}

// NewTranslate creates the translation backend.
func NewTranslate() *Translate {
	return &Translate{}
}

func (t *Translate) Call(_ context.Context, params map[string]string) (map[string]any, error) {
	text := params["text"]
	target := params["target_language"]
	if target == "" {
		target = "es"
	}

	return map[string]any{
		"original":      text,
		"translated":    fmt.Sprintf("[%s] %s", target, text),
		"language_pair": "en-" + target,
	}, nil
}
