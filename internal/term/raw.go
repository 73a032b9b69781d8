//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package term

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// EnterRaw switches the terminal on fd to raw input: no echo, no line
// buffering and reads returning as soon as a single byte is available.
// The returned function restores the previous settings.
func EnterRaw(fd int) (restore func() error, err error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("reading terminal settings: %w", err)
	}

	saved := *termios
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	state.Cc[unix.VMIN] = 1
	state.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &state); err != nil {
		return nil, fmt.Errorf("entering raw terminal mode: %w", err)
	}

	restore = func() error {
		if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &saved); err != nil {
			return fmt.Errorf("restoring terminal settings: %w", err)
		}
		return nil
	}

	return restore, nil
}
