// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwellhq/inkwell/pkg/slug"
)

/*
TestFrom verifies Unicode normalization and hyphenation rules.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Summer Reading List", "summer-reading-list"},
		{"accents", "Café Société", "cafe-societe"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"collapsed_hyphens", "a -- b", "a-b"},
		{"trimmed_hyphens", "--edge case--", "edge-case"},
		{"digits", "Top 10 Posts", "top-10-posts"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestCandidate verifies the uniqueness suffix sequence.
*/
func TestCandidate(t *testing.T) {
	assert.Equal(t, "news", slug.Candidate("news", 0))
	assert.Equal(t, "news", slug.Candidate("news", 1))
	assert.Equal(t, "news-2", slug.Candidate("news", 2))
	assert.Equal(t, "news-7", slug.Candidate("news", 7))
}
