// Package alarm contains core domain types for the power-off alarm mechanism.
//
// It defines EpochSeconds and TimeKind (which RTC register to read), the
// orchestrator State machine, the WaitOutcome of a single blocking wait and
// the error taxonomy shared by the device drivers and the orchestrator.
package alarm
