// Package model defines the documents persisted by the scrapbook.
//
// Each type maps onto one collection. Field tags carry both the JSON
// projection served to the browser and the BSON layout stored in MongoDB;
// the names match what the existing site writes, so existing collections
// decode without migration.
//
// Validation lives next to the types (Validate methods) and runs in the
// service layer before any repository call, so both storage backends see only
// well-formed documents.
package model

import (
	"fmt"
	"strings"

	"github.com/sakif/scrapbook/internal/apperror"
)

// required reports a validation error when value is empty. Whitespace counts
// as a value.
func required(field, value string) error {
	if value == "" {
		return apperror.ValidationFailed(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// oneOf reports a validation error when value is not in allowed.
func oneOf[T ~string](field string, value T, allowed []T) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return apperror.ValidationFailed(field,
		fmt.Sprintf("%s must be one of %s", field, strings.Join(names, ", ")))
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// cloneTags copies tags so callers never share a backing array with a
// stored document. A nil input becomes an empty list.
func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
