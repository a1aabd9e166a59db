package bigint

import "github.com/pkg/errors"

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return newInt(addMag(x.mag(), y.mag()), x.neg)
	}

	switch c := cmpMag(x.mag(), y.mag()); {
	case c == 0:
		return zero
	case c > 0:
		return newInt(subMag(x.mag(), y.mag()), x.neg)
	default:
		return newInt(subMag(y.mag(), x.mag()), y.neg)
	}
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	if x.IsZero() || y.IsZero() {
		return zero
	}
	return newInt(mulMag(x.mag(), y.mag()), x.neg != y.neg)
}

// Quo returns x / y truncated toward zero. Any remainder is discarded.
func (x Int) Quo(y Int) (Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// QuoRem returns the truncated quotient and the remainder of x / y.
// The remainder carries the sign of x, so x == q*y + r.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	if y.IsZero() {
		return zero, zero, errors.Wrapf(ErrDivisionByZero, "%s / 0", x)
	}

	qm, rm := quoRemMag(x.mag(), y.mag())
	return newInt(qm, x.neg != y.neg), newInt(rm, x.neg), nil
}

// ExactQuo returns x / y and fails with ErrInexactDivision when y does not
// divide x.
func (x Int) ExactQuo(y Int) (Int, error) {
	q, r, err := x.QuoRem(y)
	if err != nil {
		return zero, err
	}
	if !r.IsZero() {
		return zero, errors.Wrapf(ErrInexactDivision, "%s / %s leaves remainder %s", x, y, r)
	}

	return q, nil
}

// trimZeros strips leading zeros, keeping a single "0" for zero.
func trimZeros(s string) string {
	i := 0
	for i < len(s) && s[i] == '0' {
		i++
	}
	if i == len(s) {
		return "0"
	}
	return s[i:]
}

// cmpMag compares two canonical magnitudes.
func cmpMag(a, b string) int {
	switch {
	case len(a) != len(b):
		if len(a) < len(b) {
			return -1
		}
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func addMag(a, b string) string {
	if len(a) < len(b) {
		a, b = b, a
	}

	out := make([]byte, len(a)+1)
	carry := byte(0)
	for i, j := len(a)-1, len(b)-1; i >= 0; i, j = i-1, j-1 {
		sum := a[i] - '0' + carry
		if j >= 0 {
			sum += b[j] - '0'
		}
		carry = sum / 10
		out[i+1] = '0' + sum%10
	}
	out[0] = '0' + carry

	return trimZeros(string(out))
}

// subMag returns a - b. It requires a >= b.
func subMag(a, b string) string {
	out := make([]byte, len(a))
	borrow := 0
	for i, j := len(a)-1, len(b)-1; i >= 0; i, j = i-1, j-1 {
		d := int(a[i]-'0') - borrow
		if j >= 0 {
			d -= int(b[j] - '0')
		}
		if d < 0 {
			d += 10
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = byte('0' + d)
	}

	return trimZeros(string(out))
}

// mulMag is schoolbook long multiplication with per-row carry propagation.
func mulMag(a, b string) string {
	res := make([]int, len(a)+len(b))
	for i := len(a) - 1; i >= 0; i-- {
		da := int(a[i] - '0')
		carry := 0
		for j := len(b) - 1; j >= 0; j-- {
			p := res[i+j+1] + da*int(b[j]-'0') + carry
			res[i+j+1] = p % 10
			carry = p / 10
		}
		res[i] += carry
	}

	out := make([]byte, len(res))
	for i, d := range res {
		out[i] = byte('0' + d)
	}
	return trimZeros(string(out))
}

// quoRemMag is long division: the dividend is consumed one digit at a time and
// each quotient digit counts how often the divisor fits into the running remainder.
func quoRemMag(a, b string) (q, r string) {
	if cmpMag(a, b) < 0 {
		return "0", a
	}

	quo := make([]byte, 0, len(a))
	rem := "0"
	for i := 0; i < len(a); i++ {
		rem = trimZeros(rem + a[i:i+1])
		d := byte('0')
		for cmpMag(rem, b) >= 0 {
			rem = subMag(rem, b)
			d++
		}
		quo = append(quo, d)
	}

	return trimZeros(string(quo)), rem
}

// divSmall divides a magnitude by a machine-sized divisor in one pass.
func divSmall(a string, d int) (q string, r int) {
	quo := make([]byte, len(a))
	for i := 0; i < len(a); i++ {
		r = r*10 + int(a[i]-'0')
		quo[i] = byte('0' + r/d)
		r %= d
	}
	return trimZeros(string(quo)), r
}
