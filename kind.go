package thread

// LockKind selects the synchronization backend owned by a [Thread]. The zero
// value is [LockCond], the default.
type LockKind int32

const (
	// LockCond is a condition variable paired with a mutex. It supports Wait,
	// Signal, and Broadcast; a signal sent while no waiter is parked is not
	// queued.
	LockCond LockKind = iota

	// LockSpin is a test-and-set spinlock supporting Lock and Unlock. It
	// busy-waits, and is only appropriate for short critical sections.
	LockSpin

	// LockMutex is a mutex supporting Lock and Unlock.
	LockMutex

	// LockSemaphore is a counting semaphore supporting Wait and Signal.
	// Unlike LockCond, signals (posts) are queued, and will satisfy a later
	// Wait.
	LockSemaphore
)

// valid indicates whether the value is one of the defined kinds.
func (x LockKind) valid() bool {
	return x >= LockCond && x <= LockSemaphore
}

// normalize coerces values outside the defined set to LockCond.
func (x LockKind) normalize() LockKind {
	if !x.valid() {
		return LockCond
	}
	return x
}

// String implements [fmt.Stringer].
func (x LockKind) String() string {
	switch x {
	case LockCond:
		return `cond`
	case LockSpin:
		return `spin`
	case LockMutex:
		return `mutex`
	case LockSemaphore:
		return `semaphore`
	default:
		return `invalid`
	}
}
