package bootmode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Source returns configuration strings by key.
type Source interface {
	Get(ctx context.Context, key string) (string, error)
}

// DefaultCmdlinePath is the kernel command line exposed by procfs.
const DefaultCmdlinePath = "/proc/cmdline"

// errUnknownSource is returned by New for an unsupported source name.
var errUnknownSource = errors.New("unknown boot mode source")

// Getprop reads Android system properties with the getprop tool.
type Getprop struct {
	// Binary is the getprop executable, "getprop" when empty.
	Binary string
}

// Get runs `getprop key` and returns the trimmed output. A missing property is "".
func (g Getprop) Get(ctx context.Context, key string) (string, error) {
	binary := g.Binary
	if binary == "" {
		binary = "getprop"
	}

	out, err := exec.CommandContext(ctx, binary, key).Output()
	if err != nil {
		return "", fmt.Errorf("run %s %s: %w", binary, key, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// Cmdline reads androidboot.* parameters from the kernel command line.
type Cmdline struct {
	// Path is the command line file, DefaultCmdlinePath when empty.
	Path string
}

// Get maps the property key to its boot parameter (ro.bootmode is passed
// as androidboot.mode) and returns its value, "" when absent.
func (c Cmdline) Get(_ context.Context, key string) (string, error) {
	path := c.Path
	if path == "" {
		path = DefaultCmdlinePath
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read kernel command line: %w", err)
	}

	value, _ := ParseCmdline(contents, CmdlineParam(key))

	return value, nil
}

// CmdlineParam returns the kernel parameter carrying an Android property.
func CmdlineParam(key string) string {
	if key == "ro.bootmode" {
		return "androidboot.mode"
	}

	return key
}

// ParseCmdline returns the value of the last param=value occurrence.
func ParseCmdline(contents []byte, param string) (string, bool) {
	var (
		value string
		found bool
	)

	for _, field := range bytes.Fields(contents) {
		name, v, ok := strings.Cut(string(field), "=")
		if !ok || name != param {
			continue
		}

		value, found = strings.Trim(v, `"`), true
	}

	return value, found
}

// Static returns the same value for every key.
type Static struct {
	// Value is the boot mode reported.
	Value string
}

// Get returns s.Value.
func (s Static) Get(context.Context, string) (string, error) {
	return s.Value, nil
}

// Source names accepted by New.
const (
	SourceGetprop = "getprop"
	SourceCmdline = "cmdline"
	SourceStatic  = "static"
)

// New returns the Source of the given name; value is used by the static source.
//
//nolint:ireturn // Callers select the implementation by name.
func New(name, value string) (Source, error) {
	switch name {
	case SourceGetprop:
		return Getprop{}, nil
	case SourceCmdline:
		return Cmdline{}, nil
	case SourceStatic:
		return Static{Value: value}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSource, name)
	}
}
