package core

// Error codes for domain errors.
const (
	ErrCodeAlreadyIdentified = "already_identified"
	ErrCodeEmptyUsername     = "empty_username"
	ErrCodeUnknownRoom       = "unknown_room"
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

var (
	ErrAlreadyIdentified = &CoreError{Code: ErrCodeAlreadyIdentified, Message: "connection already has an identity"}
	ErrEmptyUsername     = &CoreError{Code: ErrCodeEmptyUsername, Message: "username is required"}
	ErrUnknownRoom       = &CoreError{Code: ErrCodeUnknownRoom, Message: "room is not in the configured set"}
)
