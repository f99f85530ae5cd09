package affinity

import (
	"bytes"
	"runtime"
	"strconv"
	"strings"

	"github.com/wippyai/fontguard/errors"
)

// ThreadID identifies the thread (goroutine or OS thread) that owns a resource.
type ThreadID uint64

// Source reports the identity of the calling thread.
// Implementations must be safe for concurrent use.
type Source interface {
	Current() ThreadID
	Name() string
}

// Source names accepted by SourceByName.
const (
	SourceGoroutine = "goroutine"
	SourceOSThread  = "os_thread"
)

var (
	// Goroutine identifies callers by goroutine id.
	Goroutine Source = NewSource("goroutine", func() ThreadID { return ThreadID(goroutineID()) })

	// OSThread identifies callers by OS thread id. Owners must call Pin first.
	// On platforms without a thread id syscall it falls back to goroutine ids.
	OSThread Source = NewSource(osThreadName, func() ThreadID { return ThreadID(osThreadID()) })
)

type funcSource struct {
	fn   func() ThreadID
	name string
}

// NewSource wraps fn as a Source. Tests use it to simulate threads.
func NewSource(name string, fn func() ThreadID) Source {
	return funcSource{name: name, fn: fn}
}

func (s funcSource) Current() ThreadID { return s.fn() }
func (s funcSource) Name() string      { return s.name }

// SourceByName resolves a configured identity source.
func SourceByName(name string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SourceGoroutine:
		return Goroutine, nil
	case SourceOSThread, "os-thread", "thread":
		return OSThread, nil
	}
	return nil, errors.InvalidInput(errors.PhaseConfig, "unknown affinity source %q", name)
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID returns the id of the calling goroutine.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGoroutineID(buf[:n])
}

// parseGoroutineID reads the id from a stack header, which always reads
// "goroutine N [state]:". It panics on anything else: a wrong identity would
// let every goroutine pass every guard.
func parseGoroutineID(stack []byte) uint64 {
	b, ok := bytes.CutPrefix(stack, goroutinePrefix)
	if !ok {
		panic("affinity: unexpected stack header " + strconv.Quote(string(stack)))
	}
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("affinity: cannot parse goroutine id: " + err.Error())
	}
	return id
}

// Pin locks the calling goroutine to its current OS thread and returns the
// function that undoes it. Required before constructing a guard with OSThread.
func Pin() (unpin func()) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
