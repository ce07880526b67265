// Package apperr defines the application error taxonomy shared by every feature.
// Handlers translate a Kind into an HTTP status; usecases and adapters only
// pick the Kind and a human-readable message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by who can correct it.
type Kind int

const (
	// KindInternal は保存層や外部依存の失敗。クライアントでは修正できない。
	KindInternal Kind = iota
	// KindValidation は入力の欠落・不正。
	KindValidation
	// KindUnauthorized はセッションが無い・不正・期限切れ。
	KindUnauthorized
	// KindNotFound は対象エンティティが存在しない。
	KindNotFound
	// KindConflict はユニークキーの重複。
	KindConflict
)

// String returns a lower-case name for logging.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is an error carrying a Kind and a message safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New creates an Error without an underlying cause.
// Values created with New are intended to be package-level sentinels compared with errors.Is.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error that keeps cause for operator diagnosis.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of err, or fallback when err
// carries none.
func MessageOf(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
