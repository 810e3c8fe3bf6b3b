// Package progress defines the push-based progress sink used by long
// running batch operations. Delivery is fire-and-forget: implementations
// must swallow their own transport errors so a dead observer never aborts
// the work being observed.
package progress

import "github.com/hanatools/hanacli/internal/logger"

// Sink receives progress broadcasts. percent is 0–100.
type Sink interface {
	Broadcast(message string, percent int)
}

// Nop discards all broadcasts. Used when no observer is attached.
type Nop struct{}

func (Nop) Broadcast(string, int) {}

// Log writes broadcasts to the logger. The CLI attaches this sink so
// batch runs show per-object progress on the terminal.
type Log struct {
	Logger *logger.Logger
}

func (l Log) Broadcast(message string, percent int) {
	if l.Logger == nil {
		return
	}
	l.Logger.Infof("%3d%% %s", percent, message)
}
