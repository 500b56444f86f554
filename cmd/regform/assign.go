package main

import (
	"fmt"
	"strings"
)

// parseAssignments turns name=value flags into a map. Later assignments win.
func parseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, want name=value", pair)
		}
		out[name] = value
	}
	return out, nil
}
