//go:build windows

package affinity

import "golang.org/x/sys/windows"

const osThreadName = "os thread"

func osThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
