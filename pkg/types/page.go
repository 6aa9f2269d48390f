package types

import (
	"strconv"
	"strings"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

// Page selects a window of rows in insertion order
type Page struct {
	Skip  int
	Limit int
}

// DefaultPage returns skip=0, limit=100
func DefaultPage() Page {
	return Page{Skip: DefaultSkip, Limit: DefaultLimit}
}

// ParsePage reads skip and limit from their raw query-string values. Empty
// values fall back to the defaults.
func ParsePage(skip, limit string) (Page, error) {
	page := DefaultPage()
	var errs ValidationErrors

	if v, ok, verr := parseNonNegative("skip", skip); verr != nil {
		errs = append(errs, *verr)
	} else if ok {
		page.Skip = v
	}
	if v, ok, verr := parseNonNegative("limit", limit); verr != nil {
		errs = append(errs, *verr)
	} else if ok {
		page.Limit = v
	}

	if len(errs) > 0 {
		return Page{}, errs
	}
	return page, nil
}

// Validate checks a page built by hand (not parsed from a query string)
func (p Page) Validate() error {
	var errs ValidationErrors
	if p.Skip < 0 {
		errs = append(errs, ValidationError{Field: "skip", Message: "skip must be non-negative"})
	}
	if p.Limit < 0 {
		errs = append(errs, ValidationError{Field: "limit", Message: "limit must be non-negative"})
	}
	return errs.orNil()
}

// Clamp caps Limit at max. A max of zero or less disables the cap.
func (p Page) Clamp(max int) Page {
	if max > 0 && p.Limit > max {
		p.Limit = max
	}
	return p
}

func parseNonNegative(field, raw string) (int, bool, *ValidationError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, &ValidationError{Field: field, Message: field + " must be an integer"}
	}
	if v < 0 {
		return 0, false, &ValidationError{Field: field, Message: field + " must be non-negative"}
	}
	return v, true, nil
}
