//go:build linux

package thread

import (
	"golang.org/x/sys/unix"
)

// osThreadID reports the calling thread's kernel task id.
func osThreadID() int {
	return unix.Gettid()
}

// threadPriority reads the nice value of the given kernel task.
func threadPriority(tid int) (int, error) {
	return unix.Getpriority(unix.PRIO_PROCESS, tid)
}

// threadAffinityCPUs counts the CPUs in the given task's affinity mask.
func threadAffinityCPUs(tid int) (int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(tid, &set); err != nil {
		return 0, err
	}
	return set.Count(), nil
}
