package consensus

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izouxv/goShamir/bigint"
	"github.com/izouxv/goShamir/log"
	"github.com/izouxv/goShamir/shamir"
)

// points of f(x) = x^2 + 3
func scenarioA() []shamir.Share {
	return []shamir.Share{
		{ID: "1", Base: 10, Value: "4"},
		{ID: "2", Base: 2, Value: "111"},
		{ID: "3", Base: 10, Value: "12"},
		{ID: "6", Base: 4, Value: "213"},
	}
}

// ten shares of a degree 6 polynomial, two of them corrupted
func scenarioB() []shamir.Share {
	return []shamir.Share{
		{ID: "1", Base: 6, Value: "13444211440455345511"},
		{ID: "2", Base: 15, Value: "aed7015a346d635"},
		{ID: "3", Base: 15, Value: "6aeeb69631c227c"},
		{ID: "4", Base: 16, Value: "e1b5e05623d881f"},
		{ID: "5", Base: 8, Value: "316034514573652620673"},
		{ID: "6", Base: 3, Value: "2122212201122002221120200210011020220200"},
		{ID: "7", Base: 3, Value: "20120221122211000100210021102001201112121"},
		{ID: "8", Base: 6, Value: "20220554335330240002224253"},
		{ID: "9", Base: 12, Value: "45153788322a1255483"},
		{ID: "10", Base: 7, Value: "1101613130313526312514143"},
	}
}

func quiet() Option {
	return WithLogger(log.NewNop())
}

func TestResolveConsistentShares(t *testing.T) {
	res, err := Resolve(scenarioA(), 3, quiet())
	require.NoError(t, err)

	assert.Equal(t, "3", res.Secret.String())
	assert.Equal(t, 4, res.Votes)
	assert.Equal(t, 4, res.Subsets)
	assert.Zero(t, res.Failed)
	assert.False(t, res.Tied)
	assert.Equal(t, []string{"1", "2", "3", "6"}, res.Good)
	assert.Empty(t, res.Bad)
	assert.Len(t, res.Distinct, 1)
	assert.NotEmpty(t, res.ID)

	require.Len(t, res.Candidates, 4)
	assert.Equal(t, []string{"1", "2", "3"}, res.Candidates[0].ShareIDs)
	assert.Equal(t, []string{"2", "3", "6"}, res.Candidates[3].ShareIDs)
}

func TestResolvePerTermTruncation(t *testing.T) {
	res, err := Resolve(scenarioA(), 3, quiet(),
		WithReconstructOptions(shamir.WithDivision(shamir.DividePerTerm)))
	require.NoError(t, err)

	assert.Equal(t, "2", res.Secret.String())
	assert.Equal(t, 3, res.Votes)
	assert.False(t, res.Tied)
	assert.Len(t, res.Distinct, 2)
}

func TestResolveCorruptedShares(t *testing.T) {
	res, err := Resolve(scenarioB(), 7, quiet())
	require.NoError(t, err)

	assert.Equal(t, "79836264049851", res.Secret.String())
	assert.Equal(t, 8, res.Votes)
	assert.Equal(t, 120, res.Subsets)
	assert.Len(t, res.Distinct, 110)
	assert.False(t, res.Tied)
	assert.Equal(t, []string{"2", "8"}, res.Bad)
	assert.Equal(t, []string{"1", "3", "4", "5", "6", "7", "9", "10"}, res.Good)

	for _, c := range res.Candidates {
		if c.Secret.Equal(res.Secret) {
			assert.NotContains(t, c.ShareIDs, "2")
			assert.NotContains(t, c.ShareIDs, "8")
		}
	}
}

func TestResolveExactSkipsInexactSubsets(t *testing.T) {
	_, err := Resolve(scenarioB(), 7, quiet(), WithReconstructOptions(shamir.WithExact()))
	assert.ErrorIs(t, err, bigint.ErrInexactDivision)

	res, err := Resolve(scenarioB(), 7, quiet(),
		WithReconstructOptions(shamir.WithExact()), WithSkipFailed())
	require.NoError(t, err)
	assert.Equal(t, "79836264049851", res.Secret.String())
	assert.Equal(t, 8, res.Votes)
	assert.Equal(t, 65, res.Failed)
	assert.Len(t, res.Candidates, 120-65)
	assert.Equal(t, []string{"2", "8"}, res.Bad)
}

func TestResolveTieKeepsFirstCandidate(t *testing.T) {
	res, err := Resolve(scenarioB(), 7, quiet(),
		WithReconstructOptions(shamir.WithDivision(shamir.DividePerTerm)))
	require.NoError(t, err)

	assert.Equal(t, "79836264049850", res.Secret.String())
	assert.Equal(t, 3, res.Votes)
	assert.True(t, res.Tied)

	// the winner is the first candidate to reach the top count
	tally := NewTally()
	for _, c := range res.Candidates {
		tally.Add(c.Secret)
	}
	for _, v := range tally.Values() {
		if tally.Count(v) == res.Votes {
			assert.True(t, v.Equal(res.Secret))
			break
		}
	}
}

func TestResolveParallelMatchesSequential(t *testing.T) {
	seq, err := Resolve(scenarioB(), 7, quiet())
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		par, err := Resolve(scenarioB(), 7, quiet(), WithWorkers(workers))
		require.NoError(t, err)

		assert.Equal(t, seq.Secret, par.Secret)
		assert.Equal(t, seq.Votes, par.Votes)
		assert.Equal(t, seq.Candidates, par.Candidates)
		assert.Equal(t, seq.Distinct, par.Distinct)
		assert.Equal(t, seq.Good, par.Good)
		assert.Equal(t, seq.Bad, par.Bad)
		assert.NotEqual(t, seq.ID, par.ID)
	}
}

func TestResolveParallelAbortsOnError(t *testing.T) {
	_, err := Resolve(scenarioB(), 7, quiet(), WithWorkers(4), WithReconstructOptions(shamir.WithExact()))
	assert.ErrorIs(t, err, bigint.ErrInexactDivision)
}

func TestResolveUndecodableShare(t *testing.T) {
	shares := append(scenarioA(), shamir.Share{ID: "7", Base: 10, Value: "x1"})

	_, err := Resolve(shares, 3, quiet())
	assert.ErrorIs(t, err, bigint.ErrInvalidDigit)

	res, err := Resolve(shares, 3, quiet(), WithSkipFailed())
	require.NoError(t, err)
	assert.Equal(t, "3", res.Secret.String())
	assert.Equal(t, 10, res.Subsets)
	assert.Equal(t, 6, res.Failed)
	assert.Equal(t, []string{"7"}, res.Bad)
}

func TestResolveDetectsTamperedSplit(t *testing.T) {
	secret := bigint.MustParse("987654321987654321")
	shares, err := shamir.SplitWithReader(rand.Reader, secret, 6, 3, 16)
	require.NoError(t, err)

	p, err := shares[2].Point()
	require.NoError(t, err)
	shares[2].Value = p.Y.Add(bigint.New(12345)).Text(16)

	res, err := Resolve(shares, 3, quiet(), WithWorkers(3))
	require.NoError(t, err)
	assert.True(t, res.Secret.Equal(secret))
	assert.Equal(t, 10, res.Votes)
	assert.Equal(t, []string{shares[2].ID}, res.Bad)
	assert.Len(t, res.Good, 5)
}

func TestResolveInvalidInput(t *testing.T) {
	_, err := Resolve(scenarioA(), 1, quiet())
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = Resolve(scenarioA(), 5, quiet())
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = Resolve(nil, 2, quiet())
	assert.ErrorIs(t, err, ErrInsufficientShares)

	dup := []shamir.Share{{ID: "1", Base: 10, Value: "4"}, {ID: "1", Base: 10, Value: "5"}}
	_, err = Resolve(dup, 2, quiet())
	assert.ErrorIs(t, err, bigint.ErrDivisionByZero)

	_, err = Resolve(dup, 2, quiet(), WithSkipFailed())
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestResolveDeterministic(t *testing.T) {
	a, err := Resolve(scenarioB(), 7, quiet())
	require.NoError(t, err)
	b, err := Resolve(scenarioB(), 7, quiet())
	require.NoError(t, err)
	assert.Equal(t, a.Candidates, b.Candidates)
	assert.Equal(t, a.Bad, b.Bad)
}
