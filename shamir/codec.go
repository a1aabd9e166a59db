package shamir

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/izouxv/goShamir/utils"
)

// MarshalShare serializes a Share into a byte slice.
func MarshalShare(share Share) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := utils.WriteVarBytes(buf, []byte(share.ID)); err != nil {
		return nil, err
	}
	if err := utils.WriteVarInt(buf, int64(share.Base)); err != nil {
		return nil, err
	}
	if err := utils.WriteVarBytes(buf, []byte(share.Value)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalShare deserializes a byte slice into a Share.
func UnmarshalShare(data []byte) (Share, error) {
	buf := bytes.NewBuffer(data)

	id, _, err := utils.ReadVarBytes(buf)
	if err != nil {
		return Share{}, errors.Wrap(err, "failed to read id")
	}
	base, _, err := utils.ReadVarInt(buf)
	if err != nil {
		return Share{}, errors.Wrap(err, "failed to read base")
	}
	value, _, err := utils.ReadVarBytes(buf)
	if err != nil {
		return Share{}, errors.Wrap(err, "failed to read value")
	}
	if buf.Len() != 0 {
		return Share{}, errors.Errorf("%d trailing bytes", buf.Len())
	}

	return Share{ID: string(id), Value: string(value), Base: int(base)}, nil
}

// Fingerprint identifies a decoded point independently of how its share was
// encoded, so "7" in base 10 and "111" in base 2 at the same x collide.
func (p Point) Fingerprint() string {
	return utils.Fingerprint([]byte(p.X.String()), []byte(p.Y.String()))
}
