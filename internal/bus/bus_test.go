package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dapview/dapview/pkg/types"
)

func TestRegisterNilHandler(t *testing.T) {
	b := New()

	_, err := b.Register(nil)
	require.ErrorIs(t, err, ErrNilHandler)
	assert.Equal(t, 0, b.Count())
}

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	b := New()

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		_, err := b.Register(func(types.Action) {
			order = append(order, i)
		})
		require.NoError(t, err)
	}

	require.NoError(t, b.Publish(types.ClearInterface{}))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestUnregisteredHandlerIsSkipped(t *testing.T) {
	b := New()

	calls := 0
	tok, err := b.Register(func(types.Action) { calls++ })
	require.NoError(t, err)

	require.NoError(t, b.Publish(types.ClearInterface{}))
	require.Equal(t, 1, calls)

	assert.True(t, b.Unregister(tok))
	assert.False(t, b.Unregister(tok), "second unregister should be a no-op")

	// Publishing after teardown must not error and must not deliver.
	require.NoError(t, b.Publish(types.ClearInterface{}))
	assert.Equal(t, 1, calls)
}

func TestHandlerUnregisteredMidDispatchIsSkipped(t *testing.T) {
	b := New()

	var secondTok Token
	secondCalls := 0

	_, err := b.Register(func(types.Action) {
		b.Unregister(secondTok)
	})
	require.NoError(t, err)

	secondTok, err = b.Register(func(types.Action) { secondCalls++ })
	require.NoError(t, err)

	require.NoError(t, b.Publish(types.ClearInterface{}))
	assert.Equal(t, 0, secondCalls)
}

func TestReentrantPublishFailsFast(t *testing.T) {
	b := New()

	var nestedErr error
	delivered := 0

	_, err := b.Register(func(types.Action) {
		delivered++
		if delivered == 1 {
			nestedErr = b.Publish(types.DebuggerModeChange{Mode: types.ModeRunning})
		}
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(types.ClearInterface{}))
	require.ErrorIs(t, nestedErr, ErrReentrantDispatch)
	assert.Equal(t, 1, delivered, "nested publish must not deliver")

	// The guard is released once the outer dispatch completes.
	require.NoError(t, b.Publish(types.ClearInterface{}))
	assert.Equal(t, 2, delivered)
}

func TestConcurrentPublishersAreSerialized(t *testing.T) {
	b := New()

	entered := make(chan struct{})
	release := make(chan struct{})

	var delivered []types.Action
	_, err := b.Register(func(a types.Action) {
		delivered = append(delivered, a)
		if len(delivered) == 1 {
			close(entered)
			<-release
		}
	})
	require.NoError(t, err)

	first := make(chan error, 1)
	go func() { first <- b.Publish(types.ClearInterface{}) }()
	<-entered

	// A publisher on another goroutine waits out the in-flight dispatch
	// instead of being rejected as reentrant.
	second := make(chan error, 1)
	go func() { second <- b.Publish(types.DebuggerModeChange{Mode: types.ModeRunning}) }()

	select {
	case err := <-second:
		t.Fatalf("publish finished while another dispatch was in flight: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)

	require.Len(t, delivered, 2)
	assert.Equal(t, types.ClearInterface{}, delivered[0])
	assert.Equal(t, types.DebuggerModeChange{Mode: types.ModeRunning}, delivered[1])
}
