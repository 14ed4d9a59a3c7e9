package errors

import "errors"

// Custom application errors
var (
	ErrUnparseableTime   = errors.New("time expression could not be parsed") // Unrecognized time/duration expression
	ErrReminderNotFound  = errors.New("reminder not found")                  // Lookup/cancel on an unknown reminder id
	ErrEventNotFound     = errors.New("event not found")                     // Lookup on an unknown event id
	ErrDatabaseOperation = errors.New("database operation failed")           // Generic store failure, fatal for the operation
	ErrScheduling        = errors.New("scheduling failed")                   // Engine refused or could not arm the timer
	ErrDispatchFailed    = errors.New("alert dispatch failed")               // Dispatcher returned an error; the reminder stays completed
	ErrInternalServer    = errors.New("internal server error")               // Generic internal error
)
