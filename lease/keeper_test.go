package lease

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/humphreyyy/sitzplatz/types"
)

func TestKeeperLifecycle(t *testing.T) {
	t.Parallel()

	arb, _ := testArbiter(t)
	_, err := arb.Acquire("alice@pc-01")
	require.NoError(t, err)

	keeper := NewKeeper(arb, "alice@pc-01", 50*time.Millisecond)
	require.False(t, keeper.Running())

	require.NoError(t, keeper.Start(context.Background()))
	require.True(t, keeper.Running())
	require.ErrorIs(t, keeper.Start(context.Background()), ErrAlreadyStarted)

	require.NoError(t, keeper.Stop())
	require.False(t, keeper.Running())
	require.ErrorIs(t, keeper.Stop(), ErrNotStarted)
}

func TestKeeperStartRequiresHeldLease(t *testing.T) {
	t.Parallel()

	arb, _ := testArbiter(t)

	keeper := NewKeeper(arb, "alice@pc-01", 50*time.Millisecond)
	err := keeper.Start(context.Background())
	require.ErrorIs(t, err, types.ErrLeaseNotHeld)
	require.False(t, keeper.Running())
}

func TestKeeperRefreshesLease(t *testing.T) {
	t.Parallel()

	// Real clock: the keeper's ticker and the lease timestamps must
	// move together.
	path := t.TempDir() + "/data.lock"
	arb := New(path)

	_, err := arb.Acquire("alice@pc-01")
	require.NoError(t, err)

	info, _, err := arb.Holder()
	require.NoError(t, err)
	initial := info.AcquiredAt

	keeper := NewKeeper(arb, "alice@pc-01", 20*time.Millisecond)
	require.NoError(t, keeper.Start(context.Background()))
	defer func() { _ = keeper.Stop() }()

	require.Eventually(t, func() bool {
		current, held, err := arb.Holder()

		return err == nil && held && current.AcquiredAt.After(initial)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestKeeperStopKeepsLease(t *testing.T) {
	t.Parallel()

	arb, _ := testArbiter(t)
	_, err := arb.Acquire("alice@pc-01")
	require.NoError(t, err)

	keeper := NewKeeper(arb, "alice@pc-01", 50*time.Millisecond)
	require.NoError(t, keeper.Start(context.Background()))
	require.NoError(t, keeper.Stop())

	info, held, err := arb.Holder()
	require.NoError(t, err)
	require.True(t, held)
	require.Equal(t, "alice@pc-01", info.Identity)
}

func TestKeeperContextCancellation(t *testing.T) {
	t.Parallel()

	arb, _ := testArbiter(t)
	_, err := arb.Acquire("alice@pc-01")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	keeper := NewKeeper(arb, "alice@pc-01", 10*time.Millisecond)
	require.NoError(t, keeper.Start(ctx))

	cancel()

	require.Eventually(t, func() bool { return !keeper.Running() }, 2*time.Second, 10*time.Millisecond)
}

func TestKeeperDefaultInterval(t *testing.T) {
	t.Parallel()

	arb, _ := testArbiter(t)
	keeper := NewKeeper(arb, "alice@pc-01", 0)
	require.Equal(t, DefaultRefreshInterval, keeper.interval)
}
