// Package thread implements a minimal worker thread abstraction: each
// [Thread] owns one OS-thread-locked goroutine, running a caller-supplied
// entry function, and exactly one synchronization backend, selected at
// construction via [WithLockKind]. The Lock, Unlock, Wait, Signal, and
// Broadcast methods present a uniform surface over the active backend, and
// operations that do not apply to the active kind fail with an explicit
// error, rather than silently succeeding.
//
// The backend is fixed for the lifetime of the Thread. Pick [LockCond] (the
// default) for wait/notify patterns, [LockSemaphore] for counting semantics
// where signals sent before the wait must not be lost, and [LockMutex] or
// [LockSpin] for plain mutual exclusion.
package thread
