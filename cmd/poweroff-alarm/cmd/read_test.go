package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/poweroff-alarm/internal/domain/alarm"
)

// TestParseKinds maps register names and defaults to both.
func TestParseKinds(t *testing.T) {
	t.Parallel()

	kinds, err := parseKinds(nil)
	require.NoError(t, err)
	require.Equal(t, []alarm.TimeKind{alarm.KindAlarm, alarm.KindCurrent}, kinds)

	kinds, err = parseKinds([]string{"current"})
	require.NoError(t, err)
	require.Equal(t, []alarm.TimeKind{alarm.KindCurrent}, kinds)

	_, err = parseKinds([]string{"boot"})
	require.Error(t, err)
}
