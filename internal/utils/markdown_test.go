package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	html := string(RenderMarkdown("**bold** and *italic*"))
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %s", html)
	}
	if !strings.Contains(html, "<em>italic</em>") {
		t.Errorf("italic not rendered: %s", html)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	html := string(RenderMarkdown(`hello <script>alert("xss")</script>`))
	if strings.Contains(html, "<script>") {
		t.Errorf("script tag survived sanitization: %s", html)
	}
	if !strings.Contains(html, "hello") {
		t.Errorf("text lost during sanitization: %s", html)
	}
}
