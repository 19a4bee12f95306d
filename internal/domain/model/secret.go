package model

import "strings"

// SecretStatus advertises whether a named external-service credential is
// configured. Only presence is exposed, never the value.
type SecretStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Service   string `json:"service"`
}

// ServiceOf derives the service label from a credential name: the first
// underscore-delimited segment, lower-cased (OPENAI_API_KEY -> "openai").
func ServiceOf(name string) string {
	seg := name
	if i := strings.IndexByte(name, '_'); i > 0 {
		seg = name[:i]
	}
	return strings.ToLower(seg)
}

// GroupByService is the derived view over a secret list; it is computed on
// demand and never stored.
func GroupByService(secrets []SecretStatus) map[string][]SecretStatus {
	grouped := make(map[string][]SecretStatus)
	for _, s := range secrets {
		grouped[s.Service] = append(grouped[s.Service], s)
	}
	return grouped
}
