package service

import "errors"

// ErrOperationFailed is returned when a fetch or save against storage fails.
// The cause is logged and not exposed to callers.
var ErrOperationFailed = errors.New("operation failed")
