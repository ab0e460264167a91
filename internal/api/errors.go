package api

import "fmt"

// Kind distinguishes where along the fetch path a request failed.
type Kind string

const (
	// KindTransport covers network failures and non-2xx responses.
	KindTransport Kind = "transport"
	// KindParse covers malformed response bodies.
	KindParse Kind = "parse"
	// KindBusiness covers well-formed responses that signal an
	// application-level failure, e.g. resolve-alert success:false.
	KindBusiness Kind = "business"
)

// FetchError is the normalized failure for one backend request.
type FetchError struct {
	Source string
	Kind   Kind
	Cause  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Source, e.Kind, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

func newFetchError(source string, kind Kind, cause error) *FetchError {
	return &FetchError{Source: source, Kind: kind, Cause: cause}
}
