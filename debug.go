package quill

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "quill",
	Level:  log.InfoLevel,
})

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// SetLogger replaces the package logger. A nil logger restores the default
// stderr logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "quill", Level: log.InfoLevel})
	}
	logger = l
}

// globalDebug mirrors the most recently set debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// SetDebugMode enables or disables debug checks package-wide. When enabled,
// drawing or adopting a disposed node panics, oversized child lists are
// warned about, and per-node pass counts are logged at debug level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// frameStats holds per-frame timing and pass metrics.
// Only populated when debug mode is on.
type frameStats struct {
	frame    uint64
	drawTime time.Duration
	nodes    int
	passes   int
	dirty    int
}

// debugCounters accumulates draw metrics for the frame in progress.
var debugCounters struct {
	nodes  int
	passes int
}

func debugResetCounters() {
	debugCounters.nodes = 0
	debugCounters.passes = 0
}

// debugRecordPasses is called by DrawingNode.Draw in debug mode.
func debugRecordPasses(n *DrawingNode, passes int) {
	debugCounters.nodes++
	debugCounters.passes += passes
	logger.Debug("drew node", "id", n.ID(), "type", n.drawingType, "passes", passes)
}

// debugLog prints frame timing and pass stats.
func debugLog(stats frameStats) {
	logger.Debug("frame",
		"frame", stats.frame,
		"draw", stats.drawTime,
		"nodes", stats.nodes,
		"passes", stats.passes,
		"invalidated", stats.dirty,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used. Callers skip this entirely outside debug mode.
func debugCheckDisposed(t *Tree, op string) {
	if t.disposed {
		panic(fmt.Sprintf("quill debug: %s on disposed node", op))
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(t *Tree) {
	if len(t.children) > debugMaxChildCount {
		logger.Warn("large child list", "id", t.id, "children", len(t.children), "threshold", debugMaxChildCount)
	}
}
