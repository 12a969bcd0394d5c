// Package docs holds the embedded documentation topics served by the
// `cbk topic` command.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var topics embed.FS

// GetTopic returns the content of a documentation topic, or every topic
// concatenated when topic is "*".
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		all, err := AllTopics()
		if err != nil {
			return "", err
		}
		var parts []string
		for _, name := range all {
			content, err := GetTopic(name)
			if err != nil {
				return "", err
			}
			parts = append(parts, content)
		}
		return strings.Join(parts, "\n\n"), nil
	}

	content, err := topics.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// AllTopics lists the available topic names.
func AllTopics() ([]string, error) {
	entries, err := fs.Glob(topics, "*.md")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e, ".md"))
	}
	sort.Strings(names)
	return names, nil
}
