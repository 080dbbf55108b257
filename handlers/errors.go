package handlers

import "fmt"

// MalformedMessageError marks an inbound frame that could not be parsed or
// is missing a required field. The frame is dropped; the connection stays up.
type MalformedMessageError struct {
    Reason string
}

func (e *MalformedMessageError) Error() string {
    return fmt.Sprintf("malformed message: %s", e.Reason)
}

// UnknownEventError marks a frame whose type is outside the recognized
// vocabulary. Logged, otherwise a no-op.
type UnknownEventError struct {
    Type string
}

func (e *UnknownEventError) Error() string {
    return fmt.Sprintf("unknown event type: %q", e.Type)
}

// SendFailureError marks a single peer that could not accept a frame. Only
// that peer is skipped; the broadcast continues.
type SendFailureError struct {
    ConnID string
    Reason string
}

func (e *SendFailureError) Error() string {
    return fmt.Sprintf("send to %s failed: %s", e.ConnID, e.Reason)
}

// PersistenceFailureError wraps a failed durable-store update. Never affects
// relay state or client-visible behavior.
type PersistenceFailureError struct {
    Op  string
    Err error
}

func (e *PersistenceFailureError) Error() string {
    return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceFailureError) Unwrap() error { return e.Err }
