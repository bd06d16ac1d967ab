package gh

import (
	"errors"
	"fmt"
)

// Kind classifies adapter errors for translation at the tool boundary.
type Kind string

const (
	// KindInvalidParams marks caller errors: missing or malformed
	// arguments, unresolvable field/option names, type mismatches.
	// Raised before or during local validation, independent of the network.
	KindInvalidParams Kind = "invalid_params"
	// KindNotFound marks remote entities (owner, repository, project,
	// field, label) that do not exist, detected from null lookup results.
	KindNotFound Kind = "not_found"
	// KindUpstream marks GraphQL or transport failures from the GitHub API.
	KindUpstream Kind = "upstream"
	// KindInternal marks unexpected failures during multi-step
	// orchestration. Already-created remote state is never rolled back;
	// the message carries the partial-completion context.
	KindInternal Kind = "internal"
)

// Error is the adapter's error type. It wraps an optional cause and
// carries a human-readable message that includes any upstream API error
// text, so the calling agent sees failures as data.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidParamsf builds a caller error.
func InvalidParamsf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a missing-remote-entity error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Upstreamf wraps a GitHub API failure with operation context.
func Upstreamf(err error, format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf(format, args...), Err: err}
}

// Internalf builds an orchestration error.
func Internalf(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the classification of err, defaulting to KindInternal
// for errors that did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
