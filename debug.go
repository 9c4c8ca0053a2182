package fgui

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set Runtime debug flag so that object
// operations (which may lack a Runtime pointer) can check it cheaply. Only
// valid with a single Runtime; multiple Runtimes with differing debug modes
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugStats holds per-frame timing and counters.
// Only populated when the runtime is in debug mode.
type debugStats struct {
	tweenTime   time.Duration
	boundsTime  time.Duration
	clipTime    time.Duration
	tweens      int
	boundsCount int
	liveObjects int
}

// debugLog prints timing and counters to stderr.
func (rt *Runtime) debugLog(stats debugStats) {
	if !rt.debug {
		return
	}
	total := stats.tweenTime + stats.boundsTime + stats.clipTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[fgui] tweens: %v | bounds: %v | clips: %v | total: %v\n",
		stats.tweenTime, stats.boundsTime, stats.clipTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[fgui] active tweens: %d | bounds updated: %d | live objects: %d\n",
		stats.tweens, stats.boundsCount, stats.liveObjects)
}

// debugWarn prints a warning line to stderr in debug mode.
func debugWarn(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[fgui] warning: "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed object
// is used in a tree operation. Only called in debug mode; in release mode
// callers skip this entirely.
func debugCheckDisposed(o *Object, op string) {
	if o.disposed {
		panic(fmt.Sprintf("fgui debug: %s on disposed object %q (ID was %s)", op, o.Name, o.id))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(o *Object) {
	depth := 0
	for p := o; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[fgui] warning: tree depth %d exceeds %d (object %q)\n",
			depth, debugMaxTreeDepth, o.Name)
	}
}

// debugCheckChildCount warns on stderr if a container has more than 1000
// children.
const debugMaxChildCount = 1000

func debugCheckChildCount(o *Object) {
	if len(o.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[fgui] warning: object %q has %d children (threshold %d)\n",
			o.Name, len(o.children), debugMaxChildCount)
	}
}
