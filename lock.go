package thread

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/semaphore"
)

// WaitResult distinguishes the two successful outcomes of [Thread.Wait].
type WaitResult int32

const (
	// WaitSignaled indicates the waiter was woken by a signal or broadcast.
	WaitSignaled WaitResult = iota + 1

	// WaitTimedOut indicates the timeout elapsed before any wakeup. It is a
	// first-class result, not an error.
	WaitTimedOut
)

// String implements [fmt.Stringer].
func (x WaitResult) String() string {
	switch x {
	case WaitSignaled:
		return `signaled`
	case WaitTimedOut:
		return `timed out`
	default:
		return `invalid`
	}
}

// NoTimeout may be passed to [Thread.Wait] to park without a deadline. Any
// negative duration behaves the same way.
const NoTimeout time.Duration = -1

// locker is the dispatch seam between the Thread and its synchronization
// backend. Exactly one implementation backs a given Thread, selected at
// construction and fixed for its lifetime. Operations a backend cannot serve
// return ErrNotSupported.
type locker interface {
	lock() error
	unlock() error
	wait(d time.Duration) (WaitResult, error)
	signal() error
	broadcast() error
	// close tears down the backend, waking any parked waiters first.
	close()
}

// newLocker constructs the backend for the given (normalized) kind.
func newLocker(kind LockKind) locker {
	switch kind {
	case LockSpin:
		return new(spinLock)
	case LockMutex:
		return new(mutexLock)
	case LockSemaphore:
		return newSemLock()
	default:
		return new(condLock)
	}
}

// spinLock is a test-and-set lock. Gosched while spinning keeps the scheduler
// responsive, but the lock still burns cycles until acquired.
type spinLock struct {
	flag atomic.Bool
}

func (x *spinLock) lock() error {
	for !x.flag.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
	return nil
}

func (x *spinLock) unlock() error {
	x.flag.Store(false)
	return nil
}

func (x *spinLock) wait(time.Duration) (WaitResult, error) { return 0, ErrNotSupported }

func (x *spinLock) signal() error { return ErrNotSupported }

func (x *spinLock) broadcast() error { return ErrNotSupported }

func (x *spinLock) close() {}

// mutexLock wraps a mutex. It deliberately does not support wait/signal: a
// wait/notify pattern needs LockCond, which pairs the mutex with a condition
// variable.
type mutexLock struct {
	mu sync.Mutex
}

func (x *mutexLock) lock() error {
	x.mu.Lock()
	return nil
}

func (x *mutexLock) unlock() error {
	x.mu.Unlock()
	return nil
}

func (x *mutexLock) wait(time.Duration) (WaitResult, error) { return 0, ErrNotSupported }

func (x *mutexLock) signal() error { return ErrNotSupported }

func (x *mutexLock) broadcast() error { return ErrNotSupported }

func (x *mutexLock) close() {}

// semPermits bounds the number of pending (unconsumed) posts. Exceeding it is
// a caller error.
const semPermits = math.MaxInt32

// semLock is a counting semaphore that starts at zero permits: the weighted
// semaphore is created at full capacity and immediately drained, so signal
// releases one permit (post) and wait performs a timed acquire. Posts are
// queued, satisfying a later wait.
type semLock struct {
	sem *semaphore.Weighted
}

func newSemLock() *semLock {
	sem := semaphore.NewWeighted(semPermits)
	// cannot block, every permit is free
	if err := sem.Acquire(context.Background(), semPermits); err != nil {
		panic(err)
	}
	return &semLock{sem: sem}
}

func (x *semLock) lock() error { return ErrNotSupported }

func (x *semLock) unlock() error { return ErrNotSupported }

func (x *semLock) broadcast() error { return ErrNotSupported }

func (x *semLock) wait(d time.Duration) (WaitResult, error) {
	ctx := context.Background()
	if d >= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	if err := x.sem.Acquire(ctx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return WaitTimedOut, nil
		}
		return 0, err
	}
	return WaitSignaled, nil
}

func (x *semLock) signal() error {
	x.sem.Release(1)
	return nil
}

func (x *semLock) close() {}

// condLock pairs a mutex with an explicit queue of parked waiters, standing
// in for a mutex + condition variable pair. Each registered waiter owns a
// channel closed to wake it, so a signal issued after registration is never
// lost, while a signal with no registered waiter is dropped (the standard
// condition variable contract).
type condLock struct {
	mu      sync.Mutex
	waiters []chan struct{}
	closed  bool
}

func (x *condLock) lock() error { return ErrNotSupported }

func (x *condLock) unlock() error { return ErrNotSupported }

func (x *condLock) wait(d time.Duration) (WaitResult, error) {
	w := make(chan struct{})

	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return 0, ErrInvalid
	}
	x.waiters = append(x.waiters, w)
	x.mu.Unlock()

	var timeout <-chan time.Time
	if d >= 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-w:
		return WaitSignaled, nil
	case <-timeout:
	}

	// Timed out, unless a concurrent wakeup already claimed this waiter.
	x.mu.Lock()
	if i := slices.Index(x.waiters, w); i >= 0 {
		x.waiters = slices.Delete(x.waiters, i, i+1)
		x.mu.Unlock()
		return WaitTimedOut, nil
	}
	x.mu.Unlock()
	<-w
	return WaitSignaled, nil
}

// signal wakes the longest-parked waiter, if any.
func (x *condLock) signal() error {
	x.mu.Lock()
	if len(x.waiters) != 0 {
		close(x.waiters[0])
		x.waiters = x.waiters[1:]
	}
	x.mu.Unlock()
	return nil
}

// broadcast wakes every parked waiter.
func (x *condLock) broadcast() error {
	x.mu.Lock()
	x.wakeAllLocked()
	x.mu.Unlock()
	return nil
}

// close broadcasts before invalidating the backend, so no waiter is left
// parked on a primitive about to vanish.
func (x *condLock) close() {
	x.mu.Lock()
	x.closed = true
	x.wakeAllLocked()
	x.mu.Unlock()
}

func (x *condLock) wakeAllLocked() {
	for _, w := range x.waiters {
		close(w)
	}
	x.waiters = nil
}
