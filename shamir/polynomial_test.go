package shamir

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izouxv/goShamir/bigint"
)

func ints(vs ...int64) []bigint.Int {
	out := make([]bigint.Int, len(vs))
	for i, v := range vs {
		out[i] = bigint.New(v)
	}
	return out
}

func TestNewPolynomial(t *testing.T) {
	t.Run("with provided secret", func(t *testing.T) {
		secret := bigint.New(12345)
		poly, err := NewPolynomial(rand.Reader, 2, secret, 8)
		require.NoError(t, err)
		require.Len(t, poly.Coefficients, 3)
		assert.True(t, poly.Coefficients[0].Equal(secret))
		for _, c := range poly.Coefficients[1:] {
			assert.True(t, c.Sign() >= 0)
			assert.LessOrEqual(t, len(c.String()), 8)
		}
	})

	t.Run("degree 0", func(t *testing.T) {
		poly, err := NewPolynomial(rand.Reader, 0, bigint.New(999), 8)
		require.NoError(t, err)
		assert.Len(t, poly.Coefficients, 1)
	})

	t.Run("negative degree", func(t *testing.T) {
		_, err := NewPolynomial(rand.Reader, -1, bigint.New(1), 8)
		assert.Error(t, err)
	})

	t.Run("exhausted reader", func(t *testing.T) {
		_, err := NewPolynomial(bytes.NewReader(nil), 2, bigint.New(1), 8)
		assert.Error(t, err)
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("constant polynomial", func(t *testing.T) {
		poly := &Polynomial{Coefficients: ints(5)}
		assert.Equal(t, "5", poly.Evaluate(bigint.New(0)).String())
		assert.Equal(t, "5", poly.Evaluate(bigint.New(100)).String())
	})

	t.Run("quadratic polynomial", func(t *testing.T) {
		// f(x) = 1 + 2x + 3x^2
		poly := &Polynomial{Coefficients: ints(1, 2, 3)}
		for x, want := range map[int64]string{0: "1", 1: "6", 2: "17", 3: "34", -2: "9"} {
			assert.Equal(t, want, poly.Evaluate(bigint.New(x)).String(), "f(%d)", x)
		}
	})

	t.Run("empty polynomial", func(t *testing.T) {
		poly := &Polynomial{}
		assert.True(t, poly.Evaluate(bigint.New(7)).IsZero())
	})
}

func TestInterpolateRecoversPolynomial(t *testing.T) {
	// f(x) = -17 + 4x - 9x^2 + x^3
	poly := &Polynomial{Coefficients: ints(-17, 4, -9, 1)}
	points := make([]Point, 0, 4)
	for _, x := range []int64{-3, 2, 5, 11} {
		points = append(points, Point{X: bigint.New(x), Y: poly.Evaluate(bigint.New(x))})
	}

	secret, err := Interpolate(points, WithExact())
	require.NoError(t, err)
	assert.Equal(t, "-17", secret.String())
}
