package ratelimit

import "testing"

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path, method string
		want         string
	}{
		{"/brands/123/generate/batch", "POST", "/brands/*/generate/batch"},
		{"/brands/123/generate/copy", "POST", "/brands/*/generate/copy"},
		{"/brands/123/assets", "POST", "/brands/"},
		{"/brands", "POST", "/brands"},
		{"/brands/123", "PUT", "/brands/"},
		{"/assets/9", "DELETE", "/assets/"},
		{"/brands", "GET", ""},
		{"/brands/123/generate/batch", "GET", ""},
	}
	for _, tt := range tests {
		got := MatchEndpoint(tt.path, tt.method, configs)
		switch {
		case tt.want == "" && got != nil:
			t.Errorf("%s %s: expected no match, got %q", tt.method, tt.path, got.Path)
		case tt.want != "" && (got == nil || got.Path != tt.want):
			t.Errorf("%s %s: expected %q, got %+v", tt.method, tt.path, tt.want, got)
		}
	}
}

func TestMatchEndpoint_Health(t *testing.T) {
	got := MatchEndpoint("/health", "GET", nil)
	if got == nil || got.Limit != 0 {
		t.Fatalf("health should match an unlimited config, got %+v", got)
	}
}
