package orchestrator

import (
	"fmt"
	"strings"

	"github.com/vadiminshakov/centi/internal/services/pricing"
)

const systemPromptHeader = `You are the intent resolver of an autonomous agent that pays for API calls
from its own USDC wallet. Map the user query to exactly one service and its
parameters.

Paid services:
`

const systemPromptFooter = `
Free actions: balance (show wallet balance), history (show past charges).

Reply with a single JSON object and nothing else:
{"service": "<service>", "params": {"<name>": "<value>"}}

Parameter names: weather uses "city", stock uses "symbol", news uses
"topic", translation uses "text" and "target_language". If nothing
matches, use {"service": "help", "params": {}}. Always consider the cost:
never pick a paid service the query does not ask for.`

// BuildSystemPrompt renders the resolver instructions with the current
// price table, so the model sees what every call costs.
func BuildSystemPrompt(prices *pricing.PriceBook) string {
	var b strings.Builder
	b.WriteString(systemPromptHeader)
	for _, service := range prices.Services() {
		point, err := prices.Lookup(service)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s. Cost: %s USDC\n", service, point.Description, point.Cost.String())
	}
	b.WriteString(systemPromptFooter)
	return b.String()
}
