package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWithinTolerance checks the inclusive ±2 second band around the reference.
func TestWithinTolerance(t *testing.T) {
	t.Parallel()

	const reference EpochSeconds = 2000

	cases := map[EpochSeconds]bool{
		reference - 3: false,
		reference - 2: true,
		reference - 1: true,
		reference:     true,
		reference + 1: true,
		reference + 2: true,
		reference + 3: false,
		1990:          false,
	}

	for current, want := range cases {
		require.Equal(t, want, WithinTolerance(reference, current), "current=%d", current)
	}
}

// TestEpochSecondsString renders both the RFC 3339 form and the raw value.
func TestEpochSecondsString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1970-01-01T00:33:20Z (2000)", EpochSeconds(2000).String())
	require.Equal(t, "alarm", KindAlarm.String())
	require.Equal(t, "current", KindCurrent.String())
}
