package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so the HTTP layer can pick a status
// code without string matching.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidArgument
	KindUnknownState
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func UnknownState(state string) error {
	return &Error{Kind: KindUnknownState, Message: fmt.Sprintf("Unknown state: %s", state)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the failure kind, or 0 for errors that did not
// originate in a service.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}
