//go:build linux

package affinity

import "golang.org/x/sys/unix"

const osThreadName = "os thread"

func osThreadID() uint64 {
	return uint64(unix.Gettid())
}
