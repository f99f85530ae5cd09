package resource

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBackend_Basic(t *testing.T) {
	b := newLocalBackend[string]()

	handle, err := b.create("test value")
	require.NoError(t, err)
	require.NotZero(t, handle)

	val, ok := b.get(handle)
	require.True(t, ok)
	assert.Equal(t, "test value", val)

	val, ok = b.drop(handle)
	require.True(t, ok)
	assert.Equal(t, "test value", val)

	_, ok = b.get(handle)
	assert.False(t, ok, "get after drop")
	_, ok = b.drop(handle)
	assert.False(t, ok, "second drop")
}

func TestLocalBackend_HandleReuse(t *testing.T) {
	b := newLocalBackend[int]()

	h1, _ := b.create(1)
	h2, _ := b.create(2)
	b.drop(h1)

	h3, _ := b.create(3)
	assert.Equal(t, h1, h3, "freed handle is reused")

	v, _ := b.get(h3)
	assert.Equal(t, 3, v)
	v, _ = b.get(h2)
	assert.Equal(t, 2, v)
}

func TestLocalBackend_Close(t *testing.T) {
	b := newLocalBackend[string]()
	b.create("a")
	h, _ := b.create("b")
	b.drop(h)

	live := b.close()
	require.Len(t, live, 1)
	assert.Equal(t, "a", live[0].Value)
	assert.Equal(t, EventDropped, live[0].Type)

	_, err := b.create("c")
	assert.ErrorIs(t, err, ErrClosed)
	assert.Nil(t, b.close(), "second close returns nothing")
}

func TestLocalBackend_Concurrent(t *testing.T) {
	b := newLocalBackend[int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			h, _ := b.create(id)
			b.get(h)
			b.drop(h)
		}(i)
	}

	wg.Wait()
	assert.Zero(t, b.len())
}

func TestLocalBackend_InvalidHandle(t *testing.T) {
	b := newLocalBackend[string]()

	_, ok := b.get(0)
	assert.False(t, ok, "handle 0 is invalid")
	_, ok = b.drop(0)
	assert.False(t, ok, "handle 0 cannot be dropped")
	_, ok = b.get(999)
	assert.False(t, ok, "unknown handle")
}
