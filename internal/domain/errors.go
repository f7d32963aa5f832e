package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyQuery   = errors.New("empty search query")
	ErrUpstream     = errors.New("marketplace request failed")
	ErrUploadFailed = errors.New("image upload failed")
)

// RemoteError is an error message reported by the marketplace backend.
// Its message is shown to the user verbatim.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("marketplace: %s (status %d)", e.Message, e.Status)
}

// UserMessage returns the text to show for err: the message of a
// RemoteError or ErrInvalidInput failure, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	if errors.Is(err, ErrInvalidInput) {
		return InputMessage(err)
	}
	return fallback
}

// InputMessage strips the ErrInvalidInput prefix from a validation error.
func InputMessage(err error) string {
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, ErrInvalidInput.Error()+": "); ok {
		return after
	}
	return msg
}
