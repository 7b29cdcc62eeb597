package clockx_test

import (
	"testing"
	"time"

	"github.com/gatekit/gatekit/pkg/clockx"
	"github.com/stretchr/testify/require"
)

func TestSystemReportsUTC(t *testing.T) {
	now := clockx.System{}.Now()
	require.Equal(t, time.UTC, now.Location())
	require.WithinDuration(t, time.Now().UTC(), now, time.Second)
}

func TestFixedNeverMoves(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := clockx.Fixed{At: at}
	require.Equal(t, at, c.Now())
	require.Equal(t, at, c.Now())
}

func TestOffsetShiftsBase(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := clockx.Offset{Base: clockx.Fixed{At: at}, By: 90 * time.Minute}
	require.Equal(t, at.Add(90*time.Minute), c.Now())
}
