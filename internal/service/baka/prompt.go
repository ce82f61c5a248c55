package baka

import (
	"fmt"
	"os"
	"strings"
)

// DefaultPrompt is a few-shot completion prompt that primes the model to
// continue with more "<label>: ... ." lines.
func DefaultPrompt(label string) string {
	examples := []string{
		"you forgot your lunch",
		"that's not how trains work",
		"the moon is not cheese",
		"you are such a fool",
		"stop looking at me",
	}

	var b strings.Builder
	b.WriteString("The following are short, five-syllable replies from a grumpy anime character.\n")
	b.WriteString("Every reply is a single sentence that ends with a period.\n\n")
	for _, ex := range examples {
		fmt.Fprintf(&b, "%s: %s.\n", label, ex)
	}
	return b.String()
}

// LoadPrompt reads a prompt override from path. An empty path returns "".
func LoadPrompt(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	prompt := strings.TrimRight(string(data), "\n")
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("read prompt: %s is empty", path)
	}
	return prompt, nil
}
