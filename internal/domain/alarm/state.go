package alarm

import "strconv"

// State is a step of the alarm orchestrator.
type State int

const (
	// StateIdle is the initial state before anything is read.
	StateIdle State = iota
	// StateReadingAlarm reads the RTC alarm register.
	StateReadingAlarm
	// StateReadingCurrent reads the live RTC clock.
	StateReadingCurrent
	// StateComputingDelay computes the delay until the alarm fires.
	StateComputingDelay
	// StateWaiting blocks on the wake timer.
	StateWaiting
	// StateConfirmed means the wake was validated and a reboot was requested.
	StateConfirmed
	// StateAborted is the silent terminal failure state.
	StateAborted
)

//nolint:gochecknoglobals // Lookup table for String.
var stateNames = [...]string{
	StateIdle:           "idle",
	StateReadingAlarm:   "reading_alarm",
	StateReadingCurrent: "reading_current",
	StateComputingDelay: "computing_delay",
	StateWaiting:        "waiting",
	StateConfirmed:      "confirmed",
	StateAborted:        "aborted",
}

// String returns the snake_case name of the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}

	return stateNames[s]
}

// IsTerminal reports whether the worker ends in this state.
func (s State) IsTerminal() bool {
	return s == StateConfirmed || s == StateAborted
}

// WaitOutcome classifies a single return from the blocking wake-alarm wait.
type WaitOutcome int

const (
	// OutcomeInterrupted means the wait was interrupted by a signal; wait again.
	OutcomeInterrupted WaitOutcome = iota
	// OutcomeNotYetExpired means the wait returned but the RTC does not match the alarm; wait again.
	OutcomeNotYetExpired
	// OutcomeConfirmed means the wait returned and the RTC matches the alarm.
	OutcomeConfirmed
	// OutcomeHardError means the wait failed; the sequence aborts.
	OutcomeHardError
)

// String returns a short name of the outcome.
func (o WaitOutcome) String() string {
	switch o {
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeNotYetExpired:
		return "not_yet_expired"
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeHardError:
		return "hard_error"
	default:
		return "unknown(" + strconv.Itoa(int(o)) + ")"
	}
}

// Retry reports whether the wait loop must block again.
func (o WaitOutcome) Retry() bool {
	return o == OutcomeInterrupted || o == OutcomeNotYetExpired
}
