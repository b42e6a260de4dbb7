package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the first configuration matching path and method, or nil.
// Pattern segments written as "*" match any single path segment, and a pattern
// ending in "/" matches every path below it. Exact patterns win over prefixes.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: "/health", Method: "GET"}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && !strings.HasSuffix(config.Path, "/") && matchSegments(config.Path, path, false) {
			return config
		}
	}
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && matchSegments(config.Path, path, true) {
			return config
		}
	}
	return nil
}

func matchSegments(pattern, path string, prefix bool) bool {
	pp := strings.Split(strings.Trim(pattern, "/"), "/")
	sp := strings.Split(strings.Trim(path, "/"), "/")
	if len(sp) < len(pp) || (!prefix && len(sp) != len(pp)) {
		return false
	}
	if prefix && len(sp) == len(pp) && !strings.HasSuffix(path, "/") {
		// "/brands/" matches "/brands/x" but not "/brands"
		return false
	}
	for i, seg := range pp {
		if seg != "*" && seg != sp[i] {
			return false
		}
	}
	return true
}

// key is the bucket key for a path matched by ep. The default endpoint keys by path.
func (ep *EndpointConfig) key(path string) string {
	if ep.Path == "" {
		return path
	}
	return ep.Path
}
