//go:build windows || plan9

package rl

import "os"

// NotifyResize does nothing here. The viewport is refreshed on every key
// instead.
func NotifyResize(sigChan chan os.Signal) {}
