// Package shamir reconstructs Shamir secrets over the integers.
//
// A secret is the constant term of a polynomial with integer coefficients.
// Each share is one point of that polynomial, and any threshold-sized set of
// shares recovers the secret by Lagrange interpolation at x = 0. No modulus is
// involved: every intermediate value is an exact bigint.Int.
package shamir

import (
	"crypto/rand"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/izouxv/goShamir/bigint"
)

// CoefficientDigits is the decimal length of the random coefficients drawn by Split.
const CoefficientDigits = 16

// Polynomial represents f(x) = a_0 + a_1*x + ... + a_t*x^t over the integers.
type Polynomial struct {
	Coefficients []bigint.Int
}

// NewPolynomial draws a polynomial of the given degree whose constant term
// is secret. The other coefficients are non-negative with at most digits
// decimal digits.
func NewPolynomial(r io.Reader, degree int, secret bigint.Int, digits int) (*Polynomial, error) {
	if degree < 0 {
		return nil, errors.Errorf("degree should not be negative, got %d", degree)
	}

	coeffs := make([]bigint.Int, degree+1)
	coeffs[0] = secret
	for i := 1; i <= degree; i++ {
		c, err := bigint.Random(r, digits)
		if err != nil {
			return nil, errors.Wrapf(err, "coefficient %d", i)
		}
		coeffs[i] = c
	}

	return &Polynomial{Coefficients: coeffs}, nil
}

// Evaluate calculates f(x) with Horner's method.
func (p *Polynomial) Evaluate(x bigint.Int) bigint.Int {
	if len(p.Coefficients) == 0 {
		return bigint.Int{}
	}

	degree := len(p.Coefficients) - 1
	result := p.Coefficients[degree]
	for i := degree - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.Coefficients[i])
	}
	return result
}

// Split takes a non-negative secret and splits it into n shares with a
// threshold of t. Share i (1-based) is f(i) written in the given base.
func Split(secret bigint.Int, n, t, base int) ([]Share, error) {
	return SplitWithReader(rand.Reader, secret, n, t, base)
}

// SplitWithReader is Split with an explicit randomness source.
func SplitWithReader(r io.Reader, secret bigint.Int, n, t, base int) ([]Share, error) {
	switch {
	case t <= 1 || n < t:
		return nil, errors.Errorf("invalid parameters: n must be >= t and t must be > 1, got n=%d t=%d", n, t)
	case secret.Sign() < 0:
		return nil, errors.Errorf("secret should not be negative, got %s", secret)
	case base < bigint.MinBase || base > bigint.MaxBase:
		return nil, errors.Wrapf(bigint.ErrInvalidBase, "base %d", base)
	}

	poly, err := NewPolynomial(r, t-1, secret, CoefficientDigits)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, n)
	for i := 1; i <= n; i++ {
		y := poly.Evaluate(bigint.New(int64(i)))
		shares[i-1] = Share{
			ID:    strconv.Itoa(i),
			Value: y.Text(base),
			Base:  base,
		}
	}

	return shares, nil
}
