// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

/*
Package pointer provides generic helpers for creating and dereferencing
pointers, avoiding boilerplate around optional struct fields.
*/
package pointer

// To returns a pointer to the provided value.
// Useful when a struct field or parameter expects a pointer to a literal
// (e.g. pointer.To("draft")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
