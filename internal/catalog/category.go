// Package catalog holds the task and affirmation content the ritual draws from.
package catalog

import (
	"fmt"
	"strings"
)

// Category is a mood category. It tags tasks, affirmations and mood records.
type Category string

const (
	Grounded Category = "grounded"
	Driven   Category = "driven"
	Flow     Category = "flow"
)

// Categories lists every category in display order.
var Categories = []Category{Grounded, Driven, Flow}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("unknown mood category %q", s)
}

// Valid reports whether c is one of the three categories.
func (c Category) Valid() bool {
	switch c {
	case Grounded, Driven, Flow:
		return true
	}
	return false
}

// Label is the mood picker caption.
func (c Category) Label() string {
	switch c {
	case Grounded:
		return "Calm & Centered"
	case Driven:
		return "Driven & Focused"
	case Flow:
		return "Emotional & Flowing"
	}
	return string(c)
}

// Short is the one-word name used in statistics.
func (c Category) Short() string {
	switch c {
	case Grounded:
		return "Grounded"
	case Driven:
		return "Driven"
	case Flow:
		return "In Flow"
	}
	return string(c)
}
