package mnrules

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("mnrules error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// FaultKind identifies a failure that aborts a whole scrape run.
type FaultKind int

// Run-level fault kinds.
const (
	FaultIndexFetch FaultKind = iota + 1
	FaultNoRules
	FaultBrowserInit
)

// String returns a short name for the fault kind.
func (k FaultKind) String() string {
	switch k {
	case FaultIndexFetch:
		return "index_fetch"
	case FaultNoRules:
		return "no_rules"
	case FaultBrowserInit:
		return "browser_init"
	default:
		return "unknown"
	}
}

// Fault is a fatal run error. A document carrying a fault renders as the
// fault's one-line marker and nothing else.
type Fault struct {
	Kind FaultKind
	Err  error
}

// Error returns the one-line marker written in place of rule content.
func (f *Fault) Error() string {
	switch f.Kind {
	case FaultIndexFetch:
		return fmt.Sprintf("Error fetching index page: %v", f.Err)
	case FaultNoRules:
		return "# Error: No rule links found on index page."
	case FaultBrowserInit:
		return fmt.Sprintf("# Error: Could not initialize browser: %v", f.Err)
	default:
		return fmt.Sprintf("# Error: %v", f.Err)
	}
}

// Unwrap returns the underlying cause, if any.
func (f *Fault) Unwrap() error {
	return f.Err
}

// PageError records a failure to fetch or extract one rule page.
// It is recovered locally and rendered inline at the rule's position.
type PageError struct {
	URL string
	Err error
}

// Error returns the inline marker for the failed rule.
func (e *PageError) Error() string {
	return fmt.Sprintf("Error scraping rule %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PageError) Unwrap() error {
	return e.Err
}
