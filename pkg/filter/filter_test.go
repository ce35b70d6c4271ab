// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/pkg/filter"
)

/*
TestMatcher_Equality covers the basic key:value forms against typed attributes.
*/
func TestMatcher_Equality(t *testing.T) {
	attributes := map[string]any{
		"featured": true,
		"status":   "published",
		"views":    42,
		"tag":      nil,
	}

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{"bool_match", "featured:true", true},
		{"bool_mismatch", "featured:false", false},
		{"string_match", "status:published", true},
		{"string_mismatch", "status:draft", false},
		{"number_match", "views:42", true},
		{"number_mismatch", "views:41", false},
		{"null_on_nil", "tag:null", true},
		{"null_on_missing_key", "category:null", true},
		{"value_on_missing_key", "category:news", false},
		{"quoted_string", "status:'published'", true},
	}

	matcher := filter.Matcher{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matcher.Matches(tt.expression, attributes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestMatcher_Conjunction verifies that '+' requires every term to match.
*/
func TestMatcher_Conjunction(t *testing.T) {
	attributes := map[string]any{"featured": true, "status": "published"}
	matcher := filter.Matcher{}

	got, err := matcher.Matches("featured:true+status:published", attributes)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = matcher.Matches("featured:true+status:draft", attributes)
	require.NoError(t, err)
	assert.False(t, got)
}

/*
TestMatcher_Negation verifies the -value form.
*/
func TestMatcher_Negation(t *testing.T) {
	attributes := map[string]any{"status": "draft"}
	matcher := filter.Matcher{}

	got, err := matcher.Matches("status:-published", attributes)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = matcher.Matches("status:-draft", attributes)
	require.NoError(t, err)
	assert.False(t, got)
}

/*
TestMatcher_Comparisons covers ordered operators over numbers and dates.
*/
func TestMatcher_Comparisons(t *testing.T) {
	publishedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	attributes := map[string]any{
		"views":        100,
		"published_at": publishedAt,
	}

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{"gt_true", "views:>50", true},
		{"gt_false", "views:>100", false},
		{"gte_boundary", "views:>=100", true},
		{"lt_true", "views:<200", true},
		{"lte_false", "views:<=99", false},
		{"date_after", "published_at:>2025-01-01", true},
		{"date_before", "published_at:<2025-01-01", false},
		{"date_rfc3339", "published_at:>=2025-06-01T12:00:00Z", true},
	}

	matcher := filter.Matcher{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matcher.Matches(tt.expression, attributes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestMatcher_ComparisonOnMissingKey never matches and never errors.
*/
func TestMatcher_ComparisonOnMissingKey(t *testing.T) {
	matcher := filter.Matcher{}
	got, err := matcher.Matches("views:>10", map[string]any{})
	require.NoError(t, err)
	assert.False(t, got)
}

/*
TestValidate rejects malformed expressions and accepts well-formed ones.
*/
func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{"valid_simple", "featured:true", false},
		{"valid_conjunction", "featured:true+status:published", false},
		{"valid_comparison", "views:>=10", false},
		{"empty", "", true},
		{"whitespace_only", "   ", true},
		{"missing_value", "featured:", true},
		{"missing_colon", "featured", true},
		{"missing_key", ":true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := filter.Validate(tt.expression)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
