// Package prompts holds the German-language LLM prompt templates for style
// analysis and post ghostwriting. The templates live in JSON files embedded
// at build time so a deployment carries no loose prompt assets.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	mu     sync.Mutex
	parsed = map[string]map[string]string{}
)

// Get returns the prompt stored under key in the given embedded file
// (e.g. Get("analysis.json", "style-analysis-system")).
func Get(filename, key string) (string, error) {
	entries, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the program cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(err)
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders in a template. Placeholders
// without a matching entry in data are left as-is.
func Format(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{."+key+"}}", value)
	}
	return out
}

func load(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if entries, ok := parsed[filename]; ok {
		return entries, nil
	}

	raw, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading prompt file %s: %w", filename, err)
	}
	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing prompt file %s: %w", filename, err)
	}
	parsed[filename] = entries
	return entries, nil
}

// ClearCache drops all parsed prompt files. Tests use it to force a reload.
func ClearCache() {
	mu.Lock()
	parsed = map[string]map[string]string{}
	mu.Unlock()
}
