package thread

import (
	"github.com/joeycumines/logiface"
)

// threadOptions holds configuration resolved from Option values.
type threadOptions struct {
	logger *logiface.Logger[logiface.Event]
	kind   LockKind
}

// Option configures a [Thread], see [New].
type Option interface {
	applyThread(*threadOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyThreadFunc func(*threadOptions) error
}

func (x *optionImpl) applyThread(opts *threadOptions) error {
	return x.applyThreadFunc(opts)
}

// WithLockKind selects the synchronization backend for the Thread. Any value
// outside the defined [LockKind] set is coerced to [LockCond], which is also
// the default when this option is omitted.
func WithLockKind(kind LockKind) Option {
	return &optionImpl{func(opts *threadOptions) error {
		opts.kind = kind.normalize()
		return nil
	}}
}

// WithLogger attaches a structured logger, used for worker lifecycle events
// (at debug level) and the nil entry function guard. A nil logger is valid,
// and disables logging, which is also the default.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *threadOptions) error {
		opts.logger = logger
		return nil
	}}
}

// resolveOptions applies Option values, skipping nil options gracefully.
func resolveOptions(opts []Option) (*threadOptions, error) {
	cfg := &threadOptions{
		kind: LockCond, // default
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyThread(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
