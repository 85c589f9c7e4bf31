package usecase

import "fmt"

type matchOptions struct {
	limit int
}

type MatchOption func(*matchOptions)

// WithLimit caps the number of results. Zero is valid and yields no results;
// negative limits are rejected with ErrInvalidArgument.
func WithLimit(n int) MatchOption {
	return func(o *matchOptions) {
		o.limit = n
	}
}

// ResolveLimit applies opts over def and validates the result.
func ResolveLimit(opts []MatchOption, def int) (int, error) {
	o := matchOptions{limit: def}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.limit < 0 {
		return 0, fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidArgument, o.limit)
	}
	return o.limit, nil
}
