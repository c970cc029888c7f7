package openai

import "context"

// Preview is a drop-in generator for zero-cost dry runs: the pipeline still
// extracts, enriches and composes prompts, but nothing is sent to the API.
type Preview struct{}

func (Preview) Generate(_ context.Context, _ string) (string, error) {
	return "[PROMPT PREVIEW MODE] generation skipped", nil
}
