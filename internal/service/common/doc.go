// Package common holds helpers shared by several services.
//
// It provides a single-instance guard that scans the process table so the
// power-off alarm never runs twice on one device.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
