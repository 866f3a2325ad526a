package cpu

import (
	"time"
)

var processStart = time.Now()

// fallbackNanos measures monotonic time since process start.
func fallbackNanos() uint64 {
	return uint64(time.Since(processStart).Nanoseconds())
}
