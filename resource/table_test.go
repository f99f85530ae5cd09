package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObserver struct {
	events []Event[any]
}

func (o *testObserver) OnResourceEvent(e Event[any]) {
	o.events = append(o.events, e)
}

func TestTable_Basic(t *testing.T) {
	table := NewTable[string]()

	h, err := table.Insert("test")
	require.NoError(t, err)
	require.NotZero(t, h)

	val, ok := table.Get(h)
	require.True(t, ok)
	assert.Equal(t, "test", val)

	val, ok = table.Remove(h)
	require.True(t, ok)
	assert.Equal(t, "test", val)

	assert.Zero(t, table.Len())
	_, ok = table.Remove(h)
	assert.False(t, ok, "second Remove")
}

func TestTable_Observer(t *testing.T) {
	table := NewTable[any]()
	obs := &testObserver{}
	table.Subscribe(obs)

	h, _ := table.Insert("test")
	require.Len(t, obs.events, 1)
	assert.Equal(t, EventCreated, obs.events[0].Type)
	assert.Equal(t, h, obs.events[0].Handle)

	table.Remove(h)
	require.Len(t, obs.events, 2)
	assert.Equal(t, EventDropped, obs.events[1].Type)
}

func TestTable_ObserverFunc(t *testing.T) {
	table := NewTable[int]()
	var dropped []int
	table.Subscribe(ObserverFunc[int](func(e Event[int]) {
		if e.Type == EventDropped {
			dropped = append(dropped, e.Value)
		}
	}))

	table.Insert(1)
	h, _ := table.Insert(2)
	table.Remove(h)
	require.NoError(t, table.Close())

	assert.Equal(t, []int{2, 1}, dropped)
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestTable_DropperInterface(t *testing.T) {
	table := NewTable[*dropCounter]()
	d := &dropCounter{}

	h, _ := table.Insert(d)
	table.Remove(h)

	assert.Equal(t, 1, d.count)
}

// reentrantDropper removes itself again from Drop, which must not deadlock.
type reentrantDropper struct {
	table  *Table[*reentrantDropper]
	handle Handle
	drops  int
}

func (r *reentrantDropper) Drop() {
	r.drops++
	r.table.Remove(r.handle)
}

func TestTable_CloseDropsLiveValues(t *testing.T) {
	table := NewTable[*reentrantDropper]()
	r := &reentrantDropper{table: table}
	r.handle, _ = table.Insert(r)
	d := &reentrantDropper{table: table}
	d.handle, _ = table.Insert(d)

	require.NoError(t, table.Close())
	assert.Equal(t, 1, r.drops)
	assert.Equal(t, 1, d.drops)

	_, err := table.Insert(&reentrantDropper{})
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, table.Close(), "second Close")
}
