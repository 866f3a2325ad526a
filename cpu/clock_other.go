//go:build !(linux || darwin || freebsd)

package cpu

func monotonicNanos() uint64 {
	return fallbackNanos()
}
