// Package version exposes build metadata of poweroff-alarm.
//
// Version, Commit and BuildTime are injected with -ldflags -X at build time.
// Full is logged at startup and printed by the `version` subcommand.
package version
