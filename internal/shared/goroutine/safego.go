// Package goroutine starts background work that must not take the process down.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine and logs a recovered panic with its stack.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover logs a panic raised by the current goroutine. Call it deferred.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
