// Package docs holds the documentation topics displayed by the topic command.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Index is the topic listing every other topic.
const Index = "readme"

// GetTopic returns the content of a documentation topic. "*" is every topic.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of topics, one after the other.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for i, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted names of every topic but the index.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, file := range files {
		if topic := strings.TrimSuffix(path.Base(file), ".md"); topic != Index {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics, nil
}
