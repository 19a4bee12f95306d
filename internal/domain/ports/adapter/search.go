package adapter

import "context"

// WebSearcher runs a synchronous web search and returns the vendor's result
// object verbatim.
type WebSearcher interface {
	Search(ctx context.Context, query, depth string) (map[string]any, error)
}
