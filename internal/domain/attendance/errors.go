package attendance

import "errors"

// Attendance domain errors
var (
	// Transition errors
	ErrAlreadyClockedIn  = errors.New("you are already clocked in")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyOnBreak    = errors.New("you are already on break")
	ErrNotOnBreak        = errors.New("you are not on break")
	ErrInvalidTransition = errors.New("action not allowed in current attendance status")

	// General errors
	ErrLogNotFound     = errors.New("attendance log not found")
	ErrSessionNotFound = errors.New("no open attendance session found")
)
