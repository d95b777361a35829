package thread

import (
	"errors"
	"testing"
	"time"
)

func TestNewLocker_kinds(t *testing.T) {
	if _, ok := newLocker(LockSpin).(*spinLock); !ok {
		t.Error(`expected spinLock for LockSpin`)
	}
	if _, ok := newLocker(LockMutex).(*mutexLock); !ok {
		t.Error(`expected mutexLock for LockMutex`)
	}
	if _, ok := newLocker(LockSemaphore).(*semLock); !ok {
		t.Error(`expected semLock for LockSemaphore`)
	}
	if _, ok := newLocker(LockCond).(*condLock); !ok {
		t.Error(`expected condLock for LockCond`)
	}
}

func TestSpinLock_reentry(t *testing.T) {
	var l spinLock

	if err := l.lock(); err != nil {
		t.Fatal(err)
	}
	if err := l.unlock(); err != nil {
		t.Fatal(err)
	}
	if err := l.lock(); err != nil {
		t.Fatal(err)
	}
	if err := l.unlock(); err != nil {
		t.Fatal(err)
	}

	if _, err := l.wait(NoTimeout); !errors.Is(err, ErrNotSupported) {
		t.Errorf(`expected ErrNotSupported, got %v`, err)
	}
	if err := l.signal(); !errors.Is(err, ErrNotSupported) {
		t.Errorf(`expected ErrNotSupported, got %v`, err)
	}
	if err := l.broadcast(); !errors.Is(err, ErrNotSupported) {
		t.Errorf(`expected ErrNotSupported, got %v`, err)
	}
}

func TestMutexLock_unsupportedOps(t *testing.T) {
	var l mutexLock

	if _, err := l.wait(time.Millisecond); !errors.Is(err, ErrNotSupported) {
		t.Errorf(`expected ErrNotSupported, got %v`, err)
	}
	if err := l.signal(); !errors.Is(err, ErrNotSupported) {
		t.Errorf(`expected ErrNotSupported, got %v`, err)
	}
	if err := l.broadcast(); !errors.Is(err, ErrNotSupported) {
		t.Errorf(`expected ErrNotSupported, got %v`, err)
	}
}

func TestSemLock_postSatisfiesLaterWait(t *testing.T) {
	l := newSemLock()

	if err := l.signal(); err != nil {
		t.Fatal(err)
	}

	r, err := l.wait(time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if r != WaitSignaled {
		t.Errorf(`expected WaitSignaled, got %v`, r)
	}

	// permit consumed, the next wait must time out
	r, err = l.wait(20 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if r != WaitTimedOut {
		t.Errorf(`expected WaitTimedOut, got %v`, r)
	}
}

func TestCondLock_signalWithoutWaiterIsDropped(t *testing.T) {
	l := new(condLock)

	if err := l.signal(); err != nil {
		t.Fatal(err)
	}

	r, err := l.wait(30 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if r != WaitTimedOut {
		t.Errorf(`expected WaitTimedOut (signals must not queue), got %v`, r)
	}
}

func TestCondLock_timeoutRemovesWaiter(t *testing.T) {
	l := new(condLock)

	r, err := l.wait(20 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if r != WaitTimedOut {
		t.Fatalf(`expected WaitTimedOut, got %v`, r)
	}

	l.mu.Lock()
	n := len(l.waiters)
	l.mu.Unlock()
	if n != 0 {
		t.Errorf(`expected waiter queue drained after timeout, got %d`, n)
	}
}

func TestCondLock_broadcastWakesAll(t *testing.T) {
	l := new(condLock)

	const n = 3
	results := make(chan WaitResult, n)
	for i := 0; i < n; i++ {
		go func() {
			r, err := l.wait(NoTimeout)
			if err != nil {
				t.Error(err)
				return
			}
			results <- r
		}()
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		l.mu.Lock()
		parked := len(l.waiters)
		l.mu.Unlock()
		if parked == n {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal(`waiters never parked`)
		}
		time.Sleep(time.Millisecond)
	}

	if err := l.broadcast(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < n; i++ {
		select {
		case r := <-results:
			if r != WaitSignaled {
				t.Errorf(`expected WaitSignaled, got %v`, r)
			}
		case <-time.After(5 * time.Second):
			t.Fatal(`broadcast did not wake all waiters`)
		}
	}
}

func TestCondLock_waitAfterCloseFails(t *testing.T) {
	l := new(condLock)
	l.close()

	if _, err := l.wait(NoTimeout); !errors.Is(err, ErrInvalid) {
		t.Errorf(`expected ErrInvalid, got %v`, err)
	}
}

func TestWaitResult_String(t *testing.T) {
	for _, tc := range []struct {
		result   WaitResult
		expected string
	}{
		{WaitSignaled, `signaled`},
		{WaitTimedOut, `timed out`},
		{WaitResult(0), `invalid`},
	} {
		if s := tc.result.String(); s != tc.expected {
			t.Errorf(`WaitResult(%d).String() = %q, expected %q`, tc.result, s, tc.expected)
		}
	}
}
