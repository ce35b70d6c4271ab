// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

package collection

import "github.com/inkwellhq/inkwell/internal/platform/apperr"

// Domain errors for the collection entity.
//
// The message strings (and, for the automatic-filter error, the context
// string) are part of the API contract: admin clients match on them, so they
// must not be reworded.
var (
	// ErrTitleRequired is returned when a collection is created without a title.
	ErrTitleRequired = apperr.ValidationError("Title required", apperr.FieldError{
		Field:   FieldTitle,
		Message: "This field is required",
	})

	// ErrInvalidID is returned when the supplied identifier is not a
	// 24-hex ObjectID in either string or native form.
	ErrInvalidID = apperr.ValidationError("Invalid ID provided for Collection")

	// ErrInvalidType is returned for a type outside {manual, automatic}.
	ErrInvalidType = apperr.ValidationError("Invalid type provided for Collection")

	// ErrInvalidCreatedAt and ErrInvalidUpdatedAt are returned when a
	// supplied timestamp cannot be interpreted as a date.
	ErrInvalidCreatedAt = apperr.ValidationError("Invalid date provided for created_at")
	ErrInvalidUpdatedAt = apperr.ValidationError("Invalid date provided for updated_at")

	// ErrAutomaticNoFilter is returned when a collection is, or would become,
	// automatic without a filter expression.
	ErrAutomaticNoFilter = apperr.ValidationError("Invalid filter provided for automatic Collection").
				WithContext("Automatic type of collection should always have a filter value")

	// ErrSlugNotUnique is returned when the uniqueness checker rejects a slug.
	ErrSlugNotUnique = apperr.Conflict("Slug is already in use")
)
