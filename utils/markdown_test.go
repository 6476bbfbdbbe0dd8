package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_Headers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Header 1", "<h1>Header 1</h1>"},
		{"## Header 2", "<h2>Header 2</h2>"},
		{"### Header 3", "<h3>Header 3</h3>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Contains(t, RenderMarkdown(tt.input), tt.expected)
		})
	}
}

func TestRenderMarkdown_InlineAndLinks(t *testing.T) {
	result := RenderMarkdown("This is **bold** and *italic*, see https://example.com")

	assert.Contains(t, result, "<strong>bold</strong>")
	assert.Contains(t, result, "<em>italic</em>")
	assert.Contains(t, result, `<a href="https://example.com">`)
}

func TestRenderMarkdown_EscapesRawHTML(t *testing.T) {
	result := RenderMarkdown("<script>alert(1)</script>")

	assert.NotContains(t, result, "<script>")
}
