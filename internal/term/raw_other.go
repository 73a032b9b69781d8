//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package term

import "errors"

// EnterRaw is not supported on this platform.
func EnterRaw(_ int) (restore func() error, err error) {
	return nil, errors.New("raw terminal mode is not supported on this platform")
}
