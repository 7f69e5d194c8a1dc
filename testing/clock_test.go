package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockDefaultsToReferenceTime(t *testing.T) {
	clock := NewClock(time.Time{})

	require.True(t, clock.Now().Equal(ReferenceTime()))
}

func TestClockAdvanceAndSet(t *testing.T) {
	start := time.Date(2025, time.October, 20, 12, 0, 0, 0, time.UTC)
	clock := NewClock(start)

	updated := clock.Advance(90 * time.Minute)
	require.True(t, updated.Equal(start.Add(90*time.Minute)))
	require.True(t, clock.Now().Equal(updated))

	clock.Set(start)
	require.True(t, clock.Now().Equal(start))
}

func TestClockNowFuncNilFallsBack(t *testing.T) {
	var clock *Clock

	now := clock.NowFunc()
	require.NotNil(t, now)
	require.WithinDuration(t, time.Now(), now(), time.Minute)
}

func TestClockNowFuncTracksClock(t *testing.T) {
	clock := NewClock(time.Time{})
	now := clock.NowFunc()

	before := now()
	clock.Advance(time.Hour)
	require.Equal(t, time.Hour, now().Sub(before))
}
