//go:build !linux

package thread

import (
	"errors"
)

var errInfoUnsupported = errors.New(`thread: not available on this platform`)

func osThreadID() int { return 0 }

func threadPriority(int) (int, error) { return 0, errInfoUnsupported }

func threadAffinityCPUs(int) (int, error) { return 0, errInfoUnsupported }
