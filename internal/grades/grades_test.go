// File path: internal/grades/grades_test.go
package grades

import (
	"strings"
	"testing"
)

func TestCollectRequiresContinueToken(t *testing.T) {
	c := NewCollector("math")
	var p Progress

	p, prompt, done := c.Collect(p, "hello")
	if done {
		t.Fatalf("collection finished before starting")
	}
	if p.Started {
		t.Fatalf("collection started on wrong trigger")
	}
	if !strings.Contains(prompt, ContinueToken) {
		t.Fatalf("expected trigger re-prompt, got %q", prompt)
	}

	p, prompt, done = c.Collect(p, ContinueToken)
	if done || !p.Started {
		t.Fatalf("expected collection to start, done=%v started=%v", done, p.Started)
	}
	if !strings.Contains(prompt, "math") {
		t.Fatalf("expected first category prompt, got %q", prompt)
	}
}

func TestCollectRejectsInvalidScores(t *testing.T) {
	c := NewCollector("math")
	p, _, _ := c.Collect(Progress{}, ContinueToken)

	for _, reply := range []string{"abc", "-1", "101", ""} {
		next, prompt, done := c.Collect(p, reply)
		if done {
			t.Fatalf("collection finished on invalid score %q", reply)
		}
		if next.Index != 0 {
			t.Fatalf("index advanced on invalid score %q", reply)
		}
		if !strings.Contains(prompt, "math") {
			t.Fatalf("expected category re-prompt for %q, got %q", reply, prompt)
		}
	}
}

func TestCollectCompletesWithPayload(t *testing.T) {
	c := NewCollector("math", "drill")
	p, _, _ := c.Collect(Progress{}, ContinueToken)

	p, prompt, done := c.Collect(p, "90")
	if done {
		t.Fatalf("collection finished early")
	}
	if !strings.Contains(prompt, "drill") {
		t.Fatalf("expected second category prompt, got %q", prompt)
	}
	p, _, done = c.Collect(p, " 75 ")
	if !done {
		t.Fatalf("expected collection to finish")
	}
	if p.Scores["math"] != 90 || p.Scores["drill"] != 75 {
		t.Fatalf("unexpected payload: %v", p.Scores)
	}
}

func TestNewCollectorDefaults(t *testing.T) {
	c := NewCollector()
	if got := len(c.Categories()); got != len(DefaultCategories) {
		t.Fatalf("expected %d default categories, got %d", len(DefaultCategories), got)
	}
}
