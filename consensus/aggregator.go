package consensus

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/izouxv/goShamir/shamir"
)

var (
	// ErrDuplicateShare is returned when the same share is added twice.
	ErrDuplicateShare = errors.New("duplicate share")
	// ErrConflictingShare is returned when a share reuses the x-coordinate of
	// an earlier share with a different value.
	ErrConflictingShare = errors.New("conflicting share")
)

// Aggregator collects shares as they arrive and resolves the secret once all
// expected shares are in. It is safe for concurrent use.
type Aggregator struct {
	threshold int
	total     int
	opts      []Option

	mu     sync.Mutex
	shares []shamir.Share
	// fingerprint of each collected point, keyed by its x-coordinate
	seen map[string]string
}

// NewAggregator creates an aggregator expecting total shares of a secret
// split with the given threshold.
func NewAggregator(total, threshold int, opts ...Option) (*Aggregator, error) {
	if threshold < 2 {
		return nil, errors.Wrapf(ErrInvalidThreshold, "got %d", threshold)
	}
	if total < threshold {
		return nil, errors.Errorf("total %d is below threshold %d", total, threshold)
	}
	return &Aggregator{
		threshold: threshold,
		total:     total,
		opts:      opts,
		seen:      make(map[string]string),
	}, nil
}

// Add adds a share. When it completes the expected set the secret is
// resolved, the aggregator is reset and the result returned. Otherwise it
// returns a nil result and no error, indicating more shares are needed.
func (a *Aggregator) Add(share shamir.Share) (*Result, error) {
	p, err := share.Point()
	if err != nil {
		return nil, err
	}
	x, fp := p.X.String(), p.Fingerprint()

	a.mu.Lock()
	defer a.mu.Unlock()

	if prev, ok := a.seen[x]; ok {
		if prev == fp {
			return nil, errors.Wrapf(ErrDuplicateShare, "x=%s", x)
		}
		return nil, errors.Wrapf(ErrConflictingShare, "x=%s", x)
	}
	a.seen[x] = fp
	a.shares = append(a.shares, share)
	if len(a.shares) < a.total {
		return nil, nil
	}
	return a.resolveLocked()
}

// Flush resolves the secret from the shares collected so far, provided there
// are at least threshold of them.
func (a *Aggregator) Flush() (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.shares) < a.threshold {
		return nil, errors.Wrapf(ErrInsufficientShares, "got %d shares, need %d", len(a.shares), a.threshold)
	}
	return a.resolveLocked()
}

// Len returns the number of shares waiting.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.shares)
}

func (a *Aggregator) resolveLocked() (*Result, error) {
	res, err := Resolve(a.shares, a.threshold, a.opts...)
	if err != nil {
		return nil, err
	}
	a.shares = nil
	a.seen = make(map[string]string)
	return res, nil
}
