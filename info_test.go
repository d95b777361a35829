package thread

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThread_Info(t *testing.T) {
	th, err := New(func(th *Thread, _ any) {
		for th.Running() {
			time.Sleep(time.Millisecond)
		}
	}, nil, WithLockKind(LockMutex))
	require.NoError(t, err)
	defer func() { _ = th.Close() }()

	waitFor(t, func() bool { return th.Info().GoroutineID != 0 })

	info := th.Info()
	assert.Equal(t, LockMutex, info.Kind)
	assert.True(t, info.Running)
	assert.Positive(t, info.GoroutineID)

	if runtime.GOOS == `linux` {
		assert.Positive(t, info.OSThreadID)
		assert.Positive(t, info.AffinityCPUs)
	} else {
		assert.Zero(t, info.OSThreadID)
	}

	s := info.String()
	assert.Contains(t, s, `kind = mutex`)
	assert.Contains(t, s, `running = true`)
	assert.Contains(t, s, `goroutine id = `)
}

func TestInfo_nilThread(t *testing.T) {
	var th *Thread
	info := th.Info()

	assert.Equal(t, Info{}, info)

	s := info.String()
	assert.Contains(t, s, `kind = cond`)
	assert.Contains(t, s, `running = false`)
	assert.NotContains(t, s, `goroutine id`)
	assert.NotContains(t, s, `priority`)
}

func TestInfo_afterClose(t *testing.T) {
	th, err := New(nil, nil)
	require.NoError(t, err)
	require.NoError(t, th.Close())

	info := th.Info()
	assert.False(t, info.Running)
	assert.Equal(t, LockCond, info.Kind)
}

func TestGoroutineID(t *testing.T) {
	main := goroutineID()
	if main <= 0 {
		t.Fatalf(`goroutineID() = %d, expected positive`, main)
	}

	other := make(chan int64, 1)
	go func() { other <- goroutineID() }()

	select {
	case id := <-other:
		if id <= 0 {
			t.Fatalf(`goroutineID() = %d, expected positive`, id)
		}
		if id == main {
			t.Error(`distinct goroutines reported the same id`)
		}
	case <-time.After(5 * time.Second):
		t.Fatal(`timed out`)
	}
}

func TestInfo_stringOmitsUnknownFields(t *testing.T) {
	info := Info{Kind: LockSemaphore, Running: true}
	s := info.String()

	if !strings.Contains(s, "kind = semaphore\n") {
		t.Errorf(`missing kind line: %q`, s)
	}
	for _, absent := range []string{`goroutine id`, `os thread id`, `priority`, `affinity cpus`} {
		if strings.Contains(s, absent) {
			t.Errorf(`unexpected %q in %q`, absent, s)
		}
	}
}
