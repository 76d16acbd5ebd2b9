//go:build !headless

package gui

// Available reports whether this build carries the desktop window.
func Available() bool {
	return true
}
