// Package bigint implements arbitrary-precision signed integers kept as
// canonical decimal digit strings.
//
// Int is a value type: every operation returns a new Int and never mutates
// its operands, so values can be shared freely between goroutines. The zero
// value is the canonical 0.
package bigint

import (
	"strconv"

	"github.com/pkg/errors"
)

// Int is an arbitrary-precision signed integer.
type Int struct {
	// digits is the magnitude without leading zeros. The empty string stands
	// for 0, which keeps the zero value usable and == comparable.
	digits string
	neg    bool
}

var (
	zero = Int{}
	one  = Int{digits: "1"}
)

// New returns the Int holding v.
func New(v int64) Int {
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	return newInt(strconv.FormatUint(u, 10), v < 0)
}

// Parse decodes a base-10 string with an optional leading sign.
func Parse(s string) (Int, error) {
	neg := false
	body := s
	if body != "" && (body[0] == '-' || body[0] == '+') {
		neg = body[0] == '-'
		body = body[1:]
	}
	if body == "" {
		return zero, errors.Wrapf(ErrInvalidDigit, "parse %q: no digits", s)
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return zero, errors.Wrapf(ErrInvalidDigit, "parse %q: %q is not a decimal digit", s, body[i])
		}
	}

	return newInt(body, neg), nil
}

// MustParse is like Parse but panics on malformed input.
// It is meant for constants and tests.
func MustParse(s string) Int {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// newInt normalizes a magnitude and sign into canonical form.
func newInt(mag string, neg bool) Int {
	mag = trimZeros(mag)
	if mag == "0" {
		return zero
	}
	return Int{digits: mag, neg: neg}
}

func (x Int) mag() string {
	if x.digits == "" {
		return "0"
	}
	return x.digits
}

// Sign returns -1, 0 or +1.
func (x Int) Sign() int {
	switch {
	case x.digits == "":
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool {
	return x.digits == ""
}

// Neg returns -x.
func (x Int) Neg() Int {
	if x.IsZero() {
		return zero
	}
	return Int{digits: x.digits, neg: !x.neg}
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{digits: x.digits}
}

// Cmp compares x and y and returns -1, 0 or +1.
//
// Negative values order before non-negative ones. Values of the same sign
// are ordered by magnitude, reversed for negatives.
func (x Int) Cmp(y Int) int {
	if x.neg != y.neg {
		if x.neg {
			return -1
		}
		return 1
	}

	c := cmpMag(x.mag(), y.mag())
	if x.neg {
		return -c
	}
	return c
}

// Equal reports whether x and y hold the same value.
func (x Int) Equal(y Int) bool {
	return x == y
}

// String returns the canonical base-10 representation of x.
func (x Int) String() string {
	if x.neg {
		return "-" + x.digits
	}
	return x.mag()
}

// MarshalText implements encoding.TextMarshaler.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}

	*x = v
	return nil
}
