// Package statsview serves runtime statistics of the emulator over HTTP.
// The server is only compiled in when the statsview build tag is present:
//
//	go build -tags statsview
//
// After launch, graphs of goroutines, heap and GC activity are viewable at
// <address>/debug/statsview and the standard pprof pages at
// <address>/debug/pprof/.
package statsview

// DefaultAddress is used when Launch is given an empty address.
const DefaultAddress = "localhost:18066"

const url = "/debug/statsview"
