package schedule

import "errors"

// Domain-specific errors for the schedule package.
var (
	ErrWidgetNotFound = errors.New("widget not found")
	ErrWidgetExists   = errors.New("widget id already registered")
	ErrWidgetClosed   = errors.New("widget is closed")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidStep    = errors.New("navigation step must be -1 or 1")
	ErrInvalidAction  = errors.New("action must be edit or delete")
)
