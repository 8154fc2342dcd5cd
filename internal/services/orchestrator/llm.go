package orchestrator

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/centi/internal/clients"
	"github.com/vadiminshakov/centi/internal/domain"
)

// LLMResolver asks an LLM to map the query to an intent and falls back to
// the keyword router when the model is unavailable or replies with garbage.
type LLMResolver struct {
	client       clients.LLMClient
	systemPrompt string
	fallback     Resolver
	logger       *zap.Logger
}

// NewLLMResolver creates the LLM-backed resolver.
func NewLLMResolver(client clients.LLMClient, systemPrompt string, fallback Resolver, logger *zap.Logger) *LLMResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMResolver{
		client:       client,
		systemPrompt: systemPrompt,
		fallback:     fallback,
		logger:       logger,
	}
}

// Resolve asks the model for an intent. Any failure degrades to the
// keyword router so a broken model never takes the agent down.
func (r *LLMResolver) Resolve(ctx context.Context, query string) (domain.Intent, error) {
	query = clipQuery(query)

	reply, err := r.client.Complete(ctx, r.systemPrompt, query)
	if err != nil {
		r.logger.Warn("LLM intent resolution failed, using keyword router", zap.Error(err))
		return r.fallback.Resolve(ctx, query)
	}

	intent, err := parseIntentReply(reply)
	if err != nil {
		r.logger.Warn("unparsable LLM intent reply, using keyword router",
			zap.String("reply", reply), zap.Error(err))
		return r.fallback.Resolve(ctx, query)
	}

	return intent, nil
}

type intentReply struct {
	Service string            `json:"service"`
	Params  map[string]string `json:"params"`
}

// parseIntentReply extracts the JSON object from the model reply, tolerating
// code fences and surrounding prose.
func parseIntentReply(reply string) (domain.Intent, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return domain.Intent{}, errors.New("no JSON object in reply")
	}

	var parsed intentReply
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return domain.Intent{}, errors.Wrap(err, "decode intent reply")
	}
	if parsed.Service == "" {
		return domain.Intent{}, errors.New("intent reply has no service")
	}

	return domain.Intent{Service: parsed.Service, Params: parsed.Params}, nil
}
