// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwellhq.com

/*
Package filter evaluates membership predicates for automatic collections.

A filter expression is a conjunction of key:value terms joined by '+':

	featured:true
	status:published+featured:true
	published_at:>2025-01-01

Supported value forms:

  - true / false / null literals
  - numbers (compared numerically)
  - bare words and 'single quoted strings'
  - -value for negation ("not equal")
  - >value, >=value, <value, <=value comparisons over numbers and
    RFC 3339 / YYYY-MM-DD dates

The grammar is deliberately small. Collections only consume the [Matcher]
through an interface, so a richer language can be swapped in later without
touching the entity.
*/
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Matcher is the built-in evaluator for collection filter expressions.
//
// It is stateless and safe for concurrent use.
type Matcher struct{}

// Matches reports whether the attribute set satisfies the expression.
//
// An empty or syntactically invalid expression returns an error; callers
// validate expressions before persisting them via [Validate].
func (Matcher) Matches(expression string, attributes map[string]any) (bool, error) {
	terms, err := parse(expression)
	if err != nil {
		return false, err
	}

	for _, term := range terms {
		ok, err := term.matches(attributes)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Validate checks an expression for syntax errors without evaluating it.
func Validate(expression string) error {
	_, err := parse(expression)
	return err
}

// # Parsing

// operator identifies how a term compares its value against an attribute.
type operator int

const (
	opEq operator = iota
	opNeq
	opGt
	opGte
	opLt
	opLte
)

// term is a single key:value clause of a conjunction.
type term struct {
	key   string
	op    operator
	value string
}

// parse splits a conjunction into terms, respecting single-quoted values.
func parse(expression string) ([]term, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("filter: empty expression")
	}

	var terms []term
	for _, clause := range splitClauses(expression) {
		key, rawValue, found := strings.Cut(clause, ":")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("filter: malformed clause %q (expected key:value)", clause)
		}

		t := term{key: strings.TrimSpace(key), op: opEq}
		rawValue = strings.TrimSpace(rawValue)

		switch {
		case strings.HasPrefix(rawValue, "-"):
			t.op = opNeq
			rawValue = rawValue[1:]
		case strings.HasPrefix(rawValue, ">="):
			t.op = opGte
			rawValue = rawValue[2:]
		case strings.HasPrefix(rawValue, "<="):
			t.op = opLte
			rawValue = rawValue[2:]
		case strings.HasPrefix(rawValue, ">"):
			t.op = opGt
			rawValue = rawValue[1:]
		case strings.HasPrefix(rawValue, "<"):
			t.op = opLt
			rawValue = rawValue[1:]
		}

		rawValue = strings.Trim(strings.TrimSpace(rawValue), "'")
		if rawValue == "" {
			return nil, fmt.Errorf("filter: clause %q has no value", clause)
		}

		t.value = rawValue
		terms = append(terms, t)
	}

	return terms, nil
}

// splitClauses splits on '+' outside of single quotes.
func splitClauses(expression string) []string {
	var clauses []string
	var current strings.Builder
	inQuote := false

	for _, r := range expression {
		switch {
		case r == '\'':
			inQuote = !inQuote
			current.WriteRune(r)
		case r == '+' && !inQuote:
			clauses = append(clauses, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	clauses = append(clauses, current.String())

	return clauses
}

// # Evaluation

func (t term) matches(attributes map[string]any) (bool, error) {
	attribute, present := attributes[t.key]

	switch t.op {
	case opEq:
		return equals(attribute, present, t.value), nil
	case opNeq:
		return !equals(attribute, present, t.value), nil
	default:
		if !present || attribute == nil {
			return false, nil
		}
		return compare(attribute, t.op, t.value)
	}
}

// equals implements loose equality between an attribute and a literal.
func equals(attribute any, present bool, literal string) bool {
	if literal == "null" {
		return !present || attribute == nil
	}
	if !present || attribute == nil {
		return false
	}

	switch v := attribute.(type) {
	case bool:
		parsed, err := strconv.ParseBool(literal)
		return err == nil && v == parsed
	case string:
		return v == literal
	case time.Time:
		parsed, ok := parseTimeLiteral(literal)
		return ok && v.Equal(parsed)
	default:
		if number, ok := toFloat(attribute); ok {
			parsed, err := strconv.ParseFloat(literal, 64)
			return err == nil && number == parsed
		}
		return fmt.Sprint(attribute) == literal
	}
}

// compare implements the ordered operators over numbers and dates.
func compare(attribute any, op operator, literal string) (bool, error) {
	if number, ok := toFloat(attribute); ok {
		target, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return false, fmt.Errorf("filter: %q is not a number", literal)
		}
		return ordered(op, compareFloats(number, target)), nil
	}

	attributeTime, ok := toTime(attribute)
	if !ok {
		return false, fmt.Errorf("filter: attribute of type %T does not support ordered comparison", attribute)
	}
	target, ok := parseTimeLiteral(literal)
	if !ok {
		return false, fmt.Errorf("filter: %q is not a date", literal)
	}

	return ordered(op, compareTimes(attributeTime, target)), nil
}

func ordered(op operator, sign int) bool {
	switch op {
	case opGt:
		return sign > 0
	case opGte:
		return sign >= 0
	case opLt:
		return sign < 0
	case opLte:
		return sign <= 0
	}
	return false
}

func compareFloats(a, b float64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.After(b):
		return 1
	case a.Before(b):
		return -1
	}
	return 0
}

// # Coercion helpers

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		return parseTimeLiteral(t)
	}
	return time.Time{}, false
}

// parseTimeLiteral accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseTimeLiteral(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
