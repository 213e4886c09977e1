//go:build !windows && !plan9

package rl

import (
	"os"
	"os/signal"
	"syscall"
)

// NotifyResize relays terminal resize signals to sigChan.
func NotifyResize(sigChan chan os.Signal) {
	signal.Notify(sigChan, syscall.SIGWINCH)
}
