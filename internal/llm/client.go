package llm

import "context"

// CompletionClient is the text-completion capability the agent loop drives.
// Given the accumulated transcript it returns one best-effort free-text
// continuation; there is no guarantee of format compliance.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
