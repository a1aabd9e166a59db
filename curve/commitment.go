// Package curve publishes a secp256k1 commitment to a recovered secret, so a
// secret can be checked against a known public key without revealing it.
package curve

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/izouxv/goShamir/bigint"
)

var (
	// ErrInvalidSecret is returned for a secret outside [1, N-1] of secp256k1.
	ErrInvalidSecret = errors.New("secret is not a valid secp256k1 scalar")
	// ErrCommitmentMismatch is returned when a secret does not open a commitment.
	ErrCommitmentMismatch = errors.New("secret does not match commitment")
)

// PrivateKey interprets secret as a secp256k1 private key.
func PrivateKey(secret bigint.Int) (*secp256k1.PrivateKey, error) {
	if secret.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidSecret, "got %s", secret)
	}
	// PrivKeyFromBytes reduces modulo N silently
	if new(big.Int).SetBytes(secret.Bytes()).Cmp(secp256k1.S256().N) >= 0 {
		return nil, errors.Wrap(ErrInvalidSecret, "secret exceeds curve order")
	}
	return secp256k1.PrivKeyFromBytes(secret.Bytes()), nil
}

// Commitment returns the compressed public key secret*G as 0x-prefixed hex.
func Commitment(secret bigint.Int) (string, error) {
	priv, err := PrivateKey(secret)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(priv.PubKey().SerializeCompressed()), nil
}

// ParseCommitment decodes a commitment in compressed or uncompressed form.
func ParseCommitment(commitment string) (*secp256k1.PublicKey, error) {
	raw, err := hexutil.Decode(commitment)
	if err != nil {
		return nil, errors.Wrap(err, "decode commitment")
	}
	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parse secp256k1 public key")
	}
	return pub, nil
}

// VerifyCommitment checks that secret*G equals the committed public key.
func VerifyCommitment(secret bigint.Int, commitment string) error {
	pub, err := ParseCommitment(commitment)
	if err != nil {
		return err
	}
	priv, err := PrivateKey(secret)
	if err != nil {
		return err
	}
	if !priv.PubKey().IsEqual(pub) {
		return ErrCommitmentMismatch
	}
	return nil
}

// Address returns the Ethereum address controlled by secret.
func Address(secret bigint.Int) (common.Address, error) {
	priv, err := PrivateKey(secret)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*priv.PubKey().ToECDSA()), nil
}
