// Package consensus reconstructs a secret from more shares than the threshold
// requires and singles out the shares that disagree with the majority.
//
// Every threshold-sized subset of the shares is interpolated. The secret
// produced by most subsets wins, and a share is good when at least one subset
// that produced the winning secret contains it.
package consensus

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/izouxv/goShamir/bigint"
	"github.com/izouxv/goShamir/combination"
	"github.com/izouxv/goShamir/log"
	"github.com/izouxv/goShamir/shamir"
)

var (
	// ErrInvalidThreshold is returned for a threshold below 2.
	ErrInvalidThreshold = errors.New("threshold must be at least 2")
	// ErrInsufficientShares is returned when fewer shares than the threshold are given.
	ErrInsufficientShares = errors.New("insufficient shares")
	// ErrNoCandidates is returned when every subset failed to reconstruct.
	ErrNoCandidates = errors.New("no subset produced a candidate")
)

// Candidate is the secret reconstructed from one subset.
type Candidate struct {
	Secret   bigint.Int
	ShareIDs []string
}

// Result is the outcome of a resolution.
type Result struct {
	ID string

	Secret bigint.Int
	// Votes is the number of subsets that reconstructed Secret.
	Votes int
	// Subsets is the number of subsets evaluated, Failed the number that
	// could not be reconstructed and were skipped.
	Subsets int
	Failed  int
	// Tied reports that another candidate received as many votes as Secret.
	Tied bool

	// Candidates holds one entry per reconstructed subset in enumeration order.
	Candidates []Candidate
	// Distinct lists every distinct candidate secret in first-seen order.
	Distinct []bigint.Int

	// Good and Bad partition the share ids, in input order.
	Good []string
	Bad  []string
}

type options struct {
	logger      log.Logger
	workers     int
	skipFailed  bool
	reconstruct []shamir.Option
}

// Option configures Resolve.
type Option func(*options)

// WithLogger sets the logger. The default is a child of log.Shared.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithWorkers evaluates subsets on n goroutines. The result does not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithSkipFailed keeps going when a subset cannot be reconstructed, for
// example under shamir.WithExact. Such subsets cast no vote.
func WithSkipFailed() Option {
	return func(o *options) {
		o.skipFailed = true
	}
}

// WithReconstructOptions passes options to every subset reconstruction.
func WithReconstructOptions(opts ...shamir.Option) Option {
	return func(o *options) {
		o.reconstruct = append(o.reconstruct, opts...)
	}
}

func applyOptions(opts []Option) *options {
	o := &options{workers: 1}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.Shared.Named("consensus")
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

type outcome struct {
	secret bigint.Int
	err    error
}

// Resolve reconstructs the secret shared among shares with threshold k.
func Resolve(shares []shamir.Share, k int, opts ...Option) (*Result, error) {
	if k < 2 {
		return nil, errors.Wrapf(ErrInvalidThreshold, "got %d", k)
	}
	if len(shares) < k {
		return nil, errors.Wrapf(ErrInsufficientShares, "got %d shares, need %d", len(shares), k)
	}
	o := applyOptions(opts)
	logger := o.logger.With(zap.Int("shares", len(shares)), zap.Int("threshold", k))

	// each share is decoded once, a share that fails to decode fails every
	// subset containing it
	points := make([]shamir.Point, len(shares))
	decodeErrs := make([]error, len(shares))
	for i, s := range shares {
		points[i], decodeErrs[i] = s.Point()
		if decodeErrs[i] != nil && !o.skipFailed {
			return nil, decodeErrs[i]
		}
	}

	var subsets [][]int
	for idx := range combination.Indices(len(shares), k) {
		subsets = append(subsets, idx)
	}

	evaluate := func(idx []int) outcome {
		subset := make([]shamir.Point, len(idx))
		for i, j := range idx {
			if decodeErrs[j] != nil {
				return outcome{err: decodeErrs[j]}
			}
			subset[i] = points[j]
		}
		secret, err := shamir.Interpolate(subset, o.reconstruct...)
		return outcome{secret: secret, err: err}
	}

	outcomes, err := evaluateAll(subsets, evaluate, o)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ID:      uuid.NewString(),
		Subsets: len(subsets),
	}
	tally := NewTally()
	ids := func(idx []int) []string {
		out := make([]string, len(idx))
		for i, j := range idx {
			out[i] = shares[j].ID
		}
		return out
	}
	for i, oc := range outcomes {
		subset := ids(subsets[i])
		if oc.err != nil {
			res.Failed++
			logger.Debug("skip subset", zap.Strings("ids", subset), zap.Error(oc.err))
			continue
		}
		logger.Debug("candidate", zap.Strings("ids", subset), zap.Stringer("secret", oc.secret))
		tally.Add(oc.secret)
		res.Candidates = append(res.Candidates, Candidate{Secret: oc.secret, ShareIDs: subset})
	}
	if tally.Len() == 0 {
		return nil, errors.Wrapf(ErrNoCandidates, "%d subsets failed", res.Failed)
	}

	res.Secret, res.Votes, res.Tied = tally.Leader()
	res.Distinct = tally.Values()

	good := make([]bool, len(shares))
	for i, oc := range outcomes {
		if oc.err != nil || !oc.secret.Equal(res.Secret) {
			continue
		}
		for _, j := range subsets[i] {
			good[j] = true
		}
	}
	for i, s := range shares {
		if good[i] {
			res.Good = append(res.Good, s.ID)
		} else {
			res.Bad = append(res.Bad, s.ID)
		}
	}

	if res.Tied {
		logger.Warn("majority is tied, keeping the first candidate", zap.Int("votes", res.Votes))
	}
	logger.Info("resolved secret",
		zap.String("id", res.ID),
		zap.Int("votes", res.Votes),
		zap.Int("subsets", res.Subsets),
		zap.Int("failed", res.Failed),
		zap.Int("distinct", len(res.Distinct)),
		zap.Strings("bad", res.Bad))
	return res, nil
}

// evaluateAll runs evaluate on every subset and returns the outcomes in
// subset order. Unless failures are skipped the first error aborts.
func evaluateAll(subsets [][]int, evaluate func([]int) outcome, o *options) ([]outcome, error) {
	outcomes := make([]outcome, len(subsets))

	if o.workers == 1 {
		for i, idx := range subsets {
			outcomes[i] = evaluate(idx)
			if outcomes[i].err != nil && !o.skipFailed {
				return nil, errors.Wrapf(outcomes[i].err, "subset %d", i)
			}
		}
		return outcomes, nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(o.workers)
	for i, idx := range subsets {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[i] = evaluate(idx)
			if outcomes[i].err != nil && !o.skipFailed {
				return errors.Wrapf(outcomes[i].err, "subset %d", i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
