package shamir

import (
	"github.com/pkg/errors"

	"github.com/izouxv/goShamir/bigint"
)

var (
	// ErrNoShares is returned when a reconstruction is given no shares.
	ErrNoShares = errors.New("no shares provided")
	// ErrInvalidShare is returned when a share cannot be decoded.
	ErrInvalidShare = errors.New("invalid share")
)

// Share is one encoded point of the secret polynomial as handed over by a
// participant. ID is the decimal x-coordinate, Value the y-coordinate written
// in Base.
type Share struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Base  int    `json:"base"`
}

// Point is a decoded share.
type Point struct {
	X bigint.Int
	Y bigint.Int
}

// Point decodes the share into its (x, y) coordinates.
func (s Share) Point() (Point, error) {
	x, err := bigint.Parse(s.ID)
	if err != nil {
		return Point{}, errors.Wrapf(ErrInvalidShare, "share %q: x: %v", s.ID, err)
	}
	y, err := bigint.FromBase(s.Value, s.Base)
	if err != nil {
		return Point{}, errors.Wrapf(err, "share %q: y", s.ID)
	}

	return Point{X: x, Y: y}, nil
}

// Division selects where the truncating division of the Lagrange form runs.
type Division int

const (
	// DivideDeferred sums all terms over a common denominator and divides once.
	// Shares that lie on an integer polynomial always divide exactly.
	DivideDeferred Division = iota
	// DividePerTerm divides every term y_j * num_j / den_j on its own and
	// truncates each quotient. Consistent subsets may still lose precision.
	DividePerTerm
)

func (d Division) String() string {
	switch d {
	case DivideDeferred:
		return "deferred"
	case DividePerTerm:
		return "per-term"
	default:
		return "unknown"
	}
}

type options struct {
	division Division
	exact    bool
}

// Option configures a reconstruction.
type Option func(*options)

// WithDivision selects the division strategy. The default is DivideDeferred.
func WithDivision(d Division) Option {
	return func(o *options) {
		o.division = d
	}
}

// WithExact makes every division check its remainder and fail with
// bigint.ErrInexactDivision instead of truncating.
func WithExact() Option {
	return func(o *options) {
		o.exact = true
	}
}

func applyOptions(opts []Option) *options {
	o := &options{division: DivideDeferred}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Combine decodes the shares and reconstructs the secret they determine.
// All shares are used, so the caller picks the subset of threshold size.
func Combine(shares []Share, opts ...Option) (bigint.Int, error) {
	if len(shares) == 0 {
		return bigint.Int{}, ErrNoShares
	}

	points := make([]Point, len(shares))
	for i, s := range shares {
		p, err := s.Point()
		if err != nil {
			return bigint.Int{}, err
		}
		points[i] = p
	}

	return Interpolate(points, opts...)
}

// Interpolate returns f(0) for the unique polynomial of degree len(points)-1
// passing through points, using the Lagrange form
//
//	f(0) = sum_j y_j * prod_{i != j} (0 - x_i) / (x_j - x_i)
//
// Terms are visited in the order of points.
func Interpolate(points []Point, opts ...Option) (bigint.Int, error) {
	if len(points) == 0 {
		return bigint.Int{}, ErrNoShares
	}
	o := applyOptions(opts)

	divide := func(num, den bigint.Int) (bigint.Int, error) {
		if o.exact {
			return num.ExactQuo(den)
		}
		return num.Quo(den)
	}

	one := bigint.New(1)
	sum := bigint.Int{}
	sumDen := one
	for j, pj := range points {
		num, den := pj.Y, one
		for i, pi := range points {
			if i == j {
				continue
			}
			num = num.Mul(pi.X.Neg())
			den = den.Mul(pj.X.Sub(pi.X))
		}
		if den.IsZero() {
			return bigint.Int{}, errors.Wrapf(bigint.ErrDivisionByZero, "duplicate x-coordinate %s", pj.X)
		}

		switch o.division {
		case DividePerTerm:
			term, err := divide(num, den)
			if err != nil {
				return bigint.Int{}, errors.Wrapf(err, "term %d", j)
			}
			sum = sum.Add(term)
		default:
			// sum/sumDen + num/den
			sum = sum.Mul(den).Add(num.Mul(sumDen))
			sumDen = sumDen.Mul(den)
		}
	}

	if o.division == DividePerTerm {
		return sum, nil
	}

	secret, err := divide(sum, sumDen)
	if err != nil {
		return bigint.Int{}, errors.Wrap(err, "constant term")
	}
	return secret, nil
}
