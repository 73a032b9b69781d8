//go:build !statsview

package statsview

import (
	"errors"

	"github.com/retroenv/retrogolib/log"
)

var errNotAvailable = errors.New("stats server not compiled in, rebuild with -tags statsview")

// Launch reports that the server is not available in this build.
func Launch(_ *log.Logger, _ string) error {
	return errNotAvailable
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
