package affinity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/fontguard/errors"
)

func TestGoroutineID(t *testing.T) {
	id := goroutineID()
	require.NotZero(t, id)
	assert.Equal(t, id, goroutineID(), "id must be stable within a goroutine")

	const n = 8
	ids := make([]uint64, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = goroutineID()
		}()
	}
	wg.Wait()

	seen := map[uint64]bool{id: true}
	for _, other := range ids {
		require.NotZero(t, other)
		assert.False(t, seen[other], "goroutine id %d reused while alive", other)
		seen[other] = true
	}
}

func TestParseGoroutineID(t *testing.T) {
	assert.Equal(t, uint64(42), parseGoroutineID([]byte("goroutine 42 [running]:\nmain.main()")))
	assert.Equal(t, uint64(7), parseGoroutineID([]byte("goroutine 7")))

	bad := []string{
		"",
		"thread 42 [running]:",
		"goroutine  [running]:",
		"goroutine x1 [running]:",
	}
	for _, header := range bad {
		assert.Panics(t, func() { parseGoroutineID([]byte(header)) }, "header %q", header)
	}
}

func TestOSThreadStableWhilePinned(t *testing.T) {
	defer Pin()()
	first := OSThread.Current()
	for range 100 {
		require.Equal(t, first, OSThread.Current())
	}
}

func TestSourceByName(t *testing.T) {
	tests := []struct {
		name string
		want Source
	}{
		{"", Goroutine},
		{"goroutine", Goroutine},
		{" Goroutine ", Goroutine},
		{"os_thread", OSThread},
		{"os-thread", OSThread},
		{"thread", OSThread},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SourceByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Name(), got.Name())
		})
	}

	_, err := SourceByName("fiber")
	var fe *errors.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errors.KindInvalidInput, fe.Kind)
}
