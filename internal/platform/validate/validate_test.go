// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Summer Reading", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Slug tests the slug format rule.
*/
func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_simple", "featured", false},
		{"valid_hyphenated", "summer-reading-list", false},
		{"valid_digits", "top-10", false},
		{"uppercase", "Featured", true},
		{"leading_hyphen", "-featured", true},
		{"trailing_hyphen", "featured-", true},
		{"spaces", "summer reading", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Slug("slug", tt.value)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_ObjectID tests the 24-hex identifier rule.
*/
func TestValidator_ObjectID(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_lower", "64f1c0ffee0ddba11ca7e001", false},
		{"valid_upper", "64F1C0FFEE0DDBA11CA7E001", false},
		{"too_short", "64f1c0ffee0ddba11ca7e0", true},
		{"too_long", "64f1c0ffee0ddba11ca7e00123", true},
		{"non_hex", "zzf1c0ffee0ddba11ca7e001", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.ObjectID("id", tt.value)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Chaining verifies that multiple failures accumulate into one error.
*/
func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").Slug("slug", "Not A Slug").MaxLen("description", "abcdef", 3)

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_URL tests absolute URL validation.
*/
func TestValidator_URL(t *testing.T) {
	valid := &validate.Validator{}
	valid.URL("feature_image", "https://cdn.inkwellhq.com/img/cover.png")
	assert.False(t, valid.HasErrors())

	invalid := &validate.Validator{}
	invalid.URL("feature_image", "not-a-url")
	assert.True(t, invalid.HasErrors())
}
