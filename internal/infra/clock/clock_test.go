package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSystem_UsesFixedOffset(t *testing.T) {
	c := New(-3 * time.Hour)
	now := c.Now()

	_, offset := now.Zone()
	require.Equal(t, -3*60*60, offset)
	require.Equal(t, "UTC-03:00", c.Location().String())
	require.WithinDuration(t, time.Now(), now, time.Second)
}

func TestZone_Names(t *testing.T) {
	require.Equal(t, "UTC+00:00", Zone(0).String())
	require.Equal(t, "UTC+05:30", Zone(5*time.Hour+30*time.Minute).String())
}

func TestFake(t *testing.T) {
	start := time.Date(2024, 8, 10, 12, 0, 0, 0, Zone(-3*time.Hour))
	f := NewFake(start)
	require.Equal(t, start, f.Now())

	f.Advance(time.Hour)
	require.Equal(t, start.Add(time.Hour), f.Now())

	f.Set(start)
	require.Equal(t, start, f.Now())
}
