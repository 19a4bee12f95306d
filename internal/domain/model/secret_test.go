//go:build !integration

package model

import "testing"

func TestServiceOf(t *testing.T) {
	cases := map[string]string{
		"OPENAI_API_KEY":     "openai",
		"ASSEMBLYAI_API_KEY": "assemblyai",
		"E2B_API_KEY":        "e2b",
		"GROQ_API_KEY":       "groq",
		"NOUNDERSCORE":       "nounderscore",
	}
	for name, want := range cases {
		if got := ServiceOf(name); got != want {
			t.Errorf("ServiceOf(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestGroupByService(t *testing.T) {
	secrets := []SecretStatus{
		{Name: "OPENAI_API_KEY", Available: true, Service: "openai"},
		{Name: "OPENAI_ORG_ID", Available: false, Service: "openai"},
		{Name: "TAVILY_API_KEY", Available: true, Service: "tavily"},
	}
	grouped := GroupByService(secrets)
	if len(grouped) != 2 {
		t.Fatalf("groups = %d, want 2", len(grouped))
	}
	if len(grouped["openai"]) != 2 || len(grouped["tavily"]) != 1 {
		t.Fatalf("unexpected grouping: %v", grouped)
	}
}
