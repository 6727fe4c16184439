// Package logger wraps zap for the poweroff-alarm binary:
//   - a global sugared logger with a console encoder writing to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Every component takes a context and logs through the logger found in it,
// so the device path and the orchestrator state follow each message.
package logger
