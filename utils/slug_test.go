package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]*-[a-z0-9]{8}$`)

func TestGenerateSlug_Shape(t *testing.T) {
	titles := []string{
		"Hello, World!",
		"",
		"!!!???",
		"   leading and trailing   ",
		"Ünïcödé Tïtle",
		"Tabs\tand\nnewlines",
		"2024 in Review: Go 1.22",
		strings.Repeat("long title ", 40),
	}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			slug := GenerateSlug(title)
			assert.NotEmpty(t, slug)
			assert.Regexp(t, slugPattern, slug)
		})
	}
}

func TestGenerateSlug_HelloWorld(t *testing.T) {
	slug := GenerateSlug("Hello, World!")

	assert.True(t, strings.HasPrefix(slug, "hello-world-"), slug)
	assert.Len(t, strings.TrimPrefix(slug, "hello-world-"), 8)
}

func TestGenerateSlug_PunctuationOnlyIsSuffixOnly(t *testing.T) {
	slug := GenerateSlug("?!.,")

	assert.Len(t, slug, 9)
	assert.Equal(t, byte('-'), slug[0])
}

func TestGenerateSlug_DeterministicTitlePortion(t *testing.T) {
	zero := func(int) int { return 0 }

	assert.Equal(t, "my-first-post-00000000", generateSlug("My First   Post", zero))
	assert.Equal(t, "a-b-00000000", generateSlug("A & B", zero))
}

func TestGenerateSlug_SuffixVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[GenerateSlug("same title")] = true
	}

	assert.Greater(t, len(seen), 45)
}
