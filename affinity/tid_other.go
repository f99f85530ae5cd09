//go:build !linux && !windows

package affinity

// No portable thread id syscall here; goroutine ids are the closest stable identity.
const osThreadName = "goroutine"

func osThreadID() uint64 {
	return goroutineID()
}
