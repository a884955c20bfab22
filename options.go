package htable

import (
	"log/slog"

	"github.com/pkg/errors"
)

// DefaultCapacity is the bucket count of a freshly initialized table.
const DefaultCapacity = 17

// Allocator accounts for the memory a table takes. Reserve may refuse a
// request, in which case the operation needing it fails with ErrAllocation
// and leaves the table as it was. Every successful Reserve is matched by a
// Release of the same size.
type Allocator interface {
	Reserve(n int) error
	Release(n int)
}

type unlimited struct{}

func (unlimited) Reserve(int) error { return nil }
func (unlimited) Release(int)       {}

type options struct {
	hasher   Hasher
	log      *slog.Logger
	alloc    Allocator
	capacity int
}

// Option configures a Table at Init time.
type Option func(o *options) error

// WithHasher replaces the default XXHash32 digest.
func WithHasher(h Hasher) Option {
	return func(o *options) error {
		if h == nil {
			return errors.Wrap(ErrInvalidArgument, "nil hasher")
		}
		o.hasher = h
		return nil
	}
}

// WithLogger sets where diagnostics go. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return errors.Wrap(ErrInvalidArgument, "nil logger")
		}
		o.log = l
		return nil
	}
}

// WithAllocator sets the allocator charged for buckets and nodes.
func WithAllocator(a Allocator) Option {
	return func(o *options) error {
		if a == nil {
			return errors.Wrap(ErrInvalidArgument, "nil allocator")
		}
		o.alloc = a
		return nil
	}
}

// WithInitialCapacity sets the starting bucket count, rounded up to a prime.
// It must be between 1 and MaxCapacity.
func WithInitialCapacity(n int) Option {
	return func(o *options) error {
		if n < 1 || int64(n) > MaxCapacity {
			return errors.Wrapf(ErrInvalidArgument, "initial capacity %d", n)
		}
		o.capacity = NextPrime(n)
		return nil
	}
}

func defaultOptions() options {
	return options{
		hasher:   XXHash32,
		log:      slog.New(slog.DiscardHandler),
		alloc:    unlimited{},
		capacity: DefaultCapacity,
	}
}
