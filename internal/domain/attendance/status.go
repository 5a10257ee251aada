package attendance

// Status is an employee's current attendance state. Exactly one value holds
// per employee at any instant.
type Status string

const (
	StatusClockedOut Status = "clocked_out"
	StatusClockedIn  Status = "clocked_in"
	StatusOnBreak    Status = "on_break"
)

func (s Status) Valid() bool {
	switch s {
	case StatusClockedOut, StatusClockedIn, StatusOnBreak:
		return true
	}
	return false
}

// Action is a requested attendance transition.
type Action string

const (
	ActionTimeIn      Action = "time_in"
	ActionBreakStart  Action = "break_start"
	ActionBreakEnd    Action = "break_end"
	ActionTimeOut     Action = "time_out"
	ActionForceLogout Action = "force_logout"
)

// transitions is the legal transition table. Guards live here so a
// disallowed action is rejected even when a client enables the wrong button.
var transitions = map[Status]map[Action]Status{
	StatusClockedOut: {
		ActionTimeIn: StatusClockedIn,
	},
	StatusClockedIn: {
		ActionBreakStart:  StatusOnBreak,
		ActionTimeOut:     StatusClockedOut,
		ActionForceLogout: StatusClockedOut,
	},
	StatusOnBreak: {
		ActionBreakEnd:    StatusClockedIn,
		ActionTimeOut:     StatusClockedOut,
		ActionForceLogout: StatusClockedOut,
	},
}

// CanApply reports whether action is legal from status s.
func (s Status) CanApply(action Action) bool {
	_, ok := transitions[s][action]
	return ok
}

// Apply returns the status after action. Illegal actions are no-ops: the
// current status is returned with applied == false.
func Apply(s Status, action Action) (next Status, applied bool) {
	next, applied = transitions[s][action]
	if !applied {
		return s, false
	}
	return next, true
}
