package core

import "errors"

// Error codes carried on events that surface to the peer.
const (
	ErrCodeRoomNotFound = "room_not_found"
	ErrCodeRoomExists   = "room_exists"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
