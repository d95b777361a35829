package thread

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/logiface"
)

type (
	// EntryFunc is the function executed on the Thread's worker. The Thread
	// passes itself back, so the entry function can call Lock, Unlock, Wait,
	// Signal, and Broadcast on the handle it runs under, and arg is the
	// opaque value given to [New]. The worker exits when the entry function
	// returns; there is no restart.
	EntryFunc func(t *Thread, arg any)

	// Thread owns one worker goroutine, locked to an OS thread for the
	// duration of the entry function, and exactly one synchronization
	// backend, fixed at construction. Construct with [New], and tear down
	// with [Thread.Close], exactly once, after which the Thread must not be
	// used.
	//
	// All methods are safe for concurrent use, except that the caller must
	// quiesce all users before Close.
	Thread struct {
		entry  EntryFunc
		arg    any
		lock   locker
		logger *logiface.Logger[logiface.Event]
		done   chan struct{}

		running atomic.Bool
		gid     atomic.Int64
		tid     atomic.Int64
		kind    LockKind

		closeOnce sync.Once
	}
)

// New constructs a Thread and starts its worker.
//
// The entry function runs concurrently with the caller as soon as New
// returns. arg is borrowed: the caller must keep it valid until Close
// returns. A nil entry is tolerated, the worker logs the condition and exits
// immediately, leaving the Thread usable as a plain lock holder.
//
// Option errors abort construction with nothing started and nothing leaked.
func New(entry EntryFunc, arg any, opts ...Option) (*Thread, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	t := &Thread{
		entry:  entry,
		arg:    arg,
		kind:   cfg.kind,
		lock:   newLocker(cfg.kind),
		logger: cfg.logger,
		done:   make(chan struct{}),
	}
	t.running.Store(true)
	go t.run()
	return t, nil
}

// run is the trampoline handed to the worker goroutine. It pins the
// goroutine to an OS thread for the lifetime of the entry function, and
// records the worker's identity for diagnostics.
func (x *Thread) run() {
	defer close(x.done)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	x.gid.Store(goroutineID())
	x.tid.Store(int64(osThreadID()))
	if x.entry == nil {
		x.logger.Warning().Log(`thread: nil entry function`)
		return
	}
	x.logger.Debug().
		Stringer(`kind`, x.kind).
		Int64(`gid`, x.gid.Load()).
		Log(`thread: worker started`)
	x.entry(x, x.arg)
	x.logger.Debug().
		Int64(`gid`, x.gid.Load()).
		Log(`thread: worker exited`)
}

// Running reports the advisory running flag, set by [New] and cleared by
// [Thread.Close]. A cooperating entry function should poll it, and return
// once it is false. It is advisory only: clearing it does not preempt the
// worker. A nil Thread is not running.
func (x *Thread) Running() bool {
	return x != nil && x.running.Load()
}

// Kind returns the active lock kind. A nil Thread reports [LockCond].
func (x *Thread) Kind() LockKind {
	if x == nil {
		return LockCond
	}
	return x.kind
}

// Close tears down the Thread: it clears the running flag, wakes any parked
// waiters ([LockCond] broadcasts before its backend is invalidated), then
// joins the worker, blocking until the entry function returns.
//
// Close on a nil Thread is a no-op. Calls after the first return immediately
// without blocking. The caller must quiesce all other users first: no other
// goroutine may still be invoking the Thread's operations, and a looping
// entry function must observe [Thread.Running] and return, or Close will not
// unblock.
func (x *Thread) Close() error {
	if x == nil {
		return nil
	}
	x.closeOnce.Do(func() {
		x.running.Store(false)
		x.lock.close()
		<-x.done
		x.logger.Debug().
			Stringer(`kind`, x.kind).
			Log(`thread: closed`)
	})
	return nil
}

// Lock acquires the lock, blocking until held. Supported by [LockSpin]
// (busy-waits) and [LockMutex]; other kinds fail with an [*OpError] wrapping
// [ErrNotSupported], without blocking.
func (x *Thread) Lock() error {
	if x == nil {
		return &OpError{Op: `lock`, Err: ErrInvalid}
	}
	if err := x.lock.lock(); err != nil {
		return &OpError{Op: `lock`, Kind: x.kind, Err: err}
	}
	return nil
}

// Unlock releases the lock. Supported by [LockSpin] and [LockMutex]; other
// kinds fail with an [*OpError] wrapping [ErrNotSupported].
func (x *Thread) Unlock() error {
	if x == nil {
		return &OpError{Op: `unlock`, Err: ErrInvalid}
	}
	if err := x.lock.unlock(); err != nil {
		return &OpError{Op: `unlock`, Kind: x.kind, Err: err}
	}
	return nil
}

// Wait parks the caller until woken, or until d elapses. A negative d, see
// [NoTimeout], parks without a deadline. Supported by [LockSemaphore] and
// [LockCond]; other kinds fail with an [*OpError] wrapping [ErrNotSupported],
// without blocking.
//
// The three outcomes are distinguishable: [WaitSignaled] on wakeup,
// [WaitTimedOut] (with a nil error) on expiry, and a zero result with a
// non-nil error otherwise. For [LockCond], a wakeup may also be caused by
// Close's broadcast, so a caller that loops must re-check its own condition,
// exactly as with any condition variable.
func (x *Thread) Wait(d time.Duration) (WaitResult, error) {
	if x == nil {
		return 0, &OpError{Op: `wait`, Err: ErrInvalid}
	}
	r, err := x.lock.wait(d)
	if err != nil {
		return 0, &OpError{Op: `wait`, Kind: x.kind, Err: err}
	}
	return r, nil
}

// Signal wakes at most one parked waiter. For [LockSemaphore] the post is
// queued, satisfying a later Wait; for [LockCond] a signal with no parked
// waiter is dropped. Other kinds fail with an [*OpError] wrapping
// [ErrNotSupported].
func (x *Thread) Signal() error {
	if x == nil {
		return &OpError{Op: `signal`, Err: ErrInvalid}
	}
	if err := x.lock.signal(); err != nil {
		return &OpError{Op: `signal`, Kind: x.kind, Err: err}
	}
	return nil
}

// Broadcast wakes every parked waiter. Supported by [LockCond] only; other
// kinds fail with an [*OpError] wrapping [ErrNotSupported].
func (x *Thread) Broadcast() error {
	if x == nil {
		return &OpError{Op: `broadcast`, Err: ErrInvalid}
	}
	if err := x.lock.broadcast(); err != nil {
		return &OpError{Op: `broadcast`, Kind: x.kind, Err: err}
	}
	return nil
}
