package bigint

import (
	"io"

	"github.com/pkg/errors"
)

const (
	// MinBase and MaxBase bound the bases accepted by FromBase and Text.
	MinBase = 2
	MaxBase = 36

	digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// smallInts caches the digit values 0..MaxBase.
var smallInts = func() []Int {
	v := make([]Int, MaxBase+1)
	for i := range v {
		v[i] = New(int64(i))
	}
	return v
}()

func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// FromBase decodes text, most significant digit first, as a non-negative
// integer in the given base. Digits above 9 are the letters a-z in either case.
//
// Decoding runs Horner's method in the Int domain, so neither the base nor
// the length of text is limited by machine integers.
func FromBase(text string, base int) (Int, error) {
	if base < MinBase || base > MaxBase {
		return zero, errors.Wrapf(ErrInvalidBase, "base %d not in [%d, %d]", base, MinBase, MaxBase)
	}
	if text == "" {
		return zero, errors.Wrap(ErrInvalidDigit, "empty digit string")
	}

	b := smallInts[base]
	acc := zero
	for i := 0; i < len(text); i++ {
		d, ok := digitValue(text[i])
		if !ok || d >= base {
			return zero, errors.Wrapf(ErrInvalidDigit, "%q at offset %d is not a base %d digit", text[i], i, base)
		}
		acc = acc.Mul(b).Add(smallInts[d])
	}

	return acc, nil
}

// Text returns x in the given base using lowercase letters for digits above 9.
// It is the inverse of FromBase for non-negative values.
// Text panics if base is outside [MinBase, MaxBase].
func (x Int) Text(base int) string {
	if base < MinBase || base > MaxBase {
		panic("bigint: illegal base")
	}
	if base == 10 {
		return x.String()
	}
	if x.IsZero() {
		return "0"
	}

	var out []byte
	for m := x.mag(); m != "0"; {
		var r int
		m, r = divSmall(m, base)
		out = append(out, digitChars[r])
	}
	if x.neg {
		out = append(out, '-')
	}
	reverse(out)

	return string(out)
}

// Bytes returns the magnitude of x as a big-endian byte slice.
// Zero yields an empty slice.
func (x Int) Bytes() []byte {
	var out []byte
	for m := x.mag(); m != "0"; {
		var r int
		m, r = divSmall(m, 256)
		out = append(out, byte(r))
	}
	reverse(out)

	return out
}

// Random returns a non-negative Int of at most digits decimal digits read
// uniformly from r.
func Random(r io.Reader, digits int) (Int, error) {
	if digits <= 0 {
		return zero, errors.Errorf("digits should be positive, got %d", digits)
	}

	out := make([]byte, 0, digits)
	buf := make([]byte, digits)
	for len(out) < digits {
		if _, err := io.ReadFull(r, buf); err != nil {
			return zero, errors.Wrap(err, "read random bytes")
		}
		for _, b := range buf {
			// 250 is the largest multiple of 10 below 256
			if b >= 250 || len(out) == digits {
				continue
			}
			out = append(out, '0'+b%10)
		}
	}

	return newInt(string(out), false), nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
