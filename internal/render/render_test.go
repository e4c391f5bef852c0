package render

import (
	"strings"
	"testing"
)

func TestMarkdownKeepsText(t *testing.T) {
	body := "Ideas compound when they are linked.\n\nA note holds one idea."

	out := Markdown(body, 80)
	if !strings.Contains(out, "Ideas compound") {
		t.Errorf("rendered output lost body text: %q", out)
	}
	if !strings.Contains(out, "one idea") {
		t.Errorf("rendered output lost second paragraph: %q", out)
	}
}

func TestMarkdownCodeBlock(t *testing.T) {
	body := "Before.\n\n```go\nx := 1\n```\n\nAfter."

	out := Markdown(body, 80)
	if !strings.Contains(out, "x := 1") {
		t.Errorf("rendered output lost code: %q", out)
	}
}

func TestMarkdownZeroWidth(t *testing.T) {
	out := Markdown("short note", 0)
	if out == "" {
		t.Fatal("expected non-empty output for zero width")
	}
	if !strings.Contains(out, "short note") {
		t.Errorf("rendered output lost text: %q", out)
	}
}

func TestMarkdownAnnotationLine(t *testing.T) {
	body := "Core claim here.\n\n→second-brain: extends the argument"

	out := Markdown(body, 80)
	if !strings.Contains(out, "second-brain") {
		t.Errorf("rendered output lost annotation target: %q", out)
	}
}
