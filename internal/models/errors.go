package models

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError is returned by constructors when an input violates an invariant
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

func invalid(entity, field, reason string) error {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

func requireText(entity, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(entity, field, "is required")
	}
	return nil
}

func requirePositive(entity, field string, value int) error {
	if value <= 0 {
		return invalid(entity, field, fmt.Sprintf("must be positive, got %d", value))
	}
	return nil
}

func requireNonNegative(entity, field string, value int) error {
	if value < 0 {
		return invalid(entity, field, fmt.Sprintf("cannot be negative, got %d", value))
	}
	return nil
}

func requireTime(entity, field string, value time.Time) error {
	if value.IsZero() {
		return invalid(entity, field, "must be specified")
	}
	return nil
}

// optionalText returns "" for blank values and the value unchanged otherwise
func optionalText(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return value
}
