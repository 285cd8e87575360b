package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves a request path and method to its endpoint
// configuration, or nil when nothing applies. Exact matches win over
// prefix matches so "/workflows" (create) and "/workflows/{id}/generate"
// can carry different limits.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health probes are never throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0, Window: 0, Burst: 0}
	}

	for i := range configs {
		c := &configs[i]
		if c.Path == path && c.Method == method {
			return c
		}
	}

	// Entries ending in "/" act as prefixes covering their sub-paths.
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
