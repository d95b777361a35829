package thread

import (
	"fmt"
	"runtime"
	"strings"
)

// Info is a best-effort snapshot of a Thread's worker, see [Thread.Info].
type Info struct {
	// Priority is the scheduling priority (nice value) of the worker's OS
	// thread, or nil where unavailable.
	Priority *int
	// GoroutineID is the worker goroutine's id, or 0 if the worker has not
	// started yet.
	GoroutineID int64
	// OSThreadID is the worker's OS thread id (Linux only), or 0 where
	// unavailable.
	OSThreadID int
	// AffinityCPUs is the number of CPUs the worker's OS thread may be
	// scheduled on, or 0 where unavailable.
	AffinityCPUs int
	// Kind is the active lock kind.
	Kind LockKind
	// Running reports the advisory running flag.
	Running bool
}

// Info reports best-effort diagnostics for the Thread. Every field is
// independently optional: a field that cannot be read is left at its zero
// value, never an error, and never affects the other fields. A nil Thread
// yields a zero Info.
func (x *Thread) Info() Info {
	if x == nil {
		return Info{}
	}
	info := Info{
		Kind:        x.kind,
		Running:     x.running.Load(),
		GoroutineID: x.gid.Load(),
		OSThreadID:  int(x.tid.Load()),
	}
	if info.OSThreadID != 0 {
		if prio, err := threadPriority(info.OSThreadID); err == nil {
			info.Priority = &prio
		}
		if n, err := threadAffinityCPUs(info.OSThreadID); err == nil {
			info.AffinityCPUs = n
		}
	}
	return info
}

// String renders the known fields, one per line, omitting anything that
// could not be read.
func (x Info) String() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "kind = %s\n", x.Kind)
	_, _ = fmt.Fprintf(&b, "running = %t\n", x.Running)
	if x.GoroutineID != 0 {
		_, _ = fmt.Fprintf(&b, "goroutine id = %d\n", x.GoroutineID)
	}
	if x.OSThreadID != 0 {
		_, _ = fmt.Fprintf(&b, "os thread id = %d\n", x.OSThreadID)
	}
	if x.Priority != nil {
		_, _ = fmt.Fprintf(&b, "priority = %d\n", *x.Priority)
	}
	if x.AffinityCPUs != 0 {
		_, _ = fmt.Fprintf(&b, "affinity cpus = %d\n", x.AffinityCPUs)
	}
	return b.String()
}

// goroutineID parses the calling goroutine's id from its stack trace header,
// which has the format "goroutine 123 [running]:". Returns 0 if the header
// cannot be parsed.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	const prefix = `goroutine `
	if n <= len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}
	var id int64
	for _, c := range buf[len(prefix):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
