//go:build statsview

package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Launch a new goroutine running the statsview server on address.
func Launch(logger *log.Logger, address string) error {
	if address == "" {
		address = DefaultAddress
	}

	viewer.SetConfiguration(viewer.WithAddr(address))
	mgr := statsview.New()

	go func() {
		if err := mgr.Start(); err != nil {
			logger.Error("Stats server stopped", log.Err(err))
		}
	}()

	logger.Info("Stats server available", log.String("url", "http://"+address+url))
	return nil
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
