package docs

import (
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// listedTopics returns the topics listed in the index as "* name: summary".
func listedTopics(t *testing.T) []string {
	t.Helper()
	index, err := GetTopic(Index)
	if err != nil {
		t.Fatalf("GetTopic(%q) error = %v", Index, err)
	}
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	var topics []string
	for _, line := range strings.Split(index, "\n") {
		if m := topicRegex.FindStringSubmatch(line); m != nil {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	return topics
}

func TestTopics(t *testing.T) {
	// The index lists every topic, and only those.
	listed := listedTopics(t)
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	sort.Strings(listed)
	if diff := cmp.Diff(all, listed); diff != "" {
		t.Errorf("topics in readme.md mismatch (-files +readme):\n%s", diff)
	}
}

func TestTopicHeadings(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range append(all, Index) {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatalf("GetTopic(%q) error = %v", topic, err)
			}
			src := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(src))
			var h1 int
			first := true
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering || n.Kind() == ast.KindDocument {
					return ast.WalkContinue, nil
				}
				if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
					h1++
				} else if first {
					t.Errorf("topic %q does not start with a title", topic)
				}
				first = false
				return ast.WalkSkipChildren, nil
			})
			if h1 != 1 {
				t.Errorf("topic %q has %d titles, want 1", topic, h1)
			}
		})
	}
}

func TestGetTopics(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(\"nope\") should fail")
	}

	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(\"*\") error = %v", err)
	}
	metrics, _ := GetTopic("metrics")
	storage, _ := GetTopic("storage")
	if !strings.Contains(all, metrics) || !strings.Contains(all, storage) {
		t.Error("GetTopic(\"*\") does not contain every topic")
	}
	index, _ := GetTopic(Index)
	if strings.Contains(all, index) {
		t.Error("GetTopic(\"*\") contains the index")
	}

	both, err := GetTopics("metrics", "storage")
	if err != nil {
		t.Fatalf("GetTopics() error = %v", err)
	}
	if want := metrics + "\n" + storage; both != want {
		t.Errorf("GetTopics() = %q, want %q", both, want)
	}
}
