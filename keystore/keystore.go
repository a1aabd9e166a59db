// Package keystore seals a recovered secret under a password, so it can be
// kept on disk after the shares have been discarded.
package keystore

import (
	"crypto/rand"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"

	"github.com/izouxv/goShamir/bigint"
)

const (
	keyHeaderKDF = "scrypt"
	cipherName   = "aes-256-gcm"
	version      = 1
	dklen        = 32
)

// ScryptN is the N parameter of scrypt, 2^18 for standard security.
// Tests lower it to speed things up.
var ScryptN = 1 << 18

// ScryptP is the P parameter of scrypt.
var ScryptP = 1

var (
	// ErrInvalidPassword is returned when the password for decryption is incorrect.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrUnsupported is returned for a keystore written with unknown parameters.
	ErrUnsupported = errors.New("unsupported keystore")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Key is the top-level structure for a keystore file.
type Key struct {
	ID      string     `json:"id"`
	Version int        `json:"version"`
	Crypto  CryptoJSON `json:"crypto"`
	// Commitment optionally records the public commitment of the sealed secret.
	Commitment string `json:"commitment,omitempty"`
}

// CryptoJSON contains the cryptographic parameters.
type CryptoJSON struct {
	Cipher     string           `json:"cipher"`
	CipherText []byte           `json:"ciphertext"`
	KDF        string           `json:"kdf"`
	KDFParams  ScryptParamsJSON `json:"kdfparams"`
}

// ScryptParamsJSON contains the parameters for the scrypt KDF.
type ScryptParamsJSON struct {
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
	Dklen int    `json:"dklen"`
	Salt  []byte `json:"salt"`
}

// Seal encrypts secret with a key derived from password and returns the
// JSON keystore. The keystore id is bound to the ciphertext as additional data.
func Seal(secret bigint.Int, password, commitment string) ([]byte, error) {
	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "read salt")
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, ScryptN, 8, ScryptP, dklen)
	if err != nil {
		return nil, errors.Wrap(err, "derive key")
	}

	id := uuid.NewString()
	cipherText, err := gcmEncrypt([]byte(secret.String()), derivedKey, []byte(id))
	if err != nil {
		return nil, err
	}

	key := &Key{
		ID:         id,
		Version:    version,
		Commitment: commitment,
		Crypto: CryptoJSON{
			Cipher:     cipherName,
			CipherText: cipherText,
			KDF:        keyHeaderKDF,
			KDFParams: ScryptParamsJSON{
				N:     ScryptN,
				R:     8,
				P:     ScryptP,
				Dklen: dklen,
				Salt:  salt,
			},
		},
	}
	return json.MarshalIndent(key, "", "  ")
}

// Open decrypts a keystore produced by Seal.
func Open(keystoreBytes []byte, password string) (bigint.Int, *Key, error) {
	var key Key
	if err := json.Unmarshal(keystoreBytes, &key); err != nil {
		return bigint.Int{}, nil, errors.Wrap(err, "unmarshal keystore")
	}

	if key.Version != version {
		return bigint.Int{}, nil, errors.Wrapf(ErrUnsupported, "version %d", key.Version)
	}
	if key.Crypto.KDF != keyHeaderKDF {
		return bigint.Int{}, nil, errors.Wrapf(ErrUnsupported, "kdf %s", key.Crypto.KDF)
	}
	if key.Crypto.Cipher != cipherName {
		return bigint.Int{}, nil, errors.Wrapf(ErrUnsupported, "cipher %s", key.Crypto.Cipher)
	}

	p := key.Crypto.KDFParams
	derivedKey, err := scrypt.Key([]byte(password), p.Salt, p.N, p.R, p.P, p.Dklen)
	if err != nil {
		return bigint.Int{}, nil, errors.Wrap(err, "derive key")
	}

	// a wrong password derives a wrong key and GCM authentication fails
	plain, err := gcmDecrypt(key.Crypto.CipherText, derivedKey, []byte(key.ID))
	if err != nil {
		return bigint.Int{}, nil, ErrInvalidPassword
	}

	secret, err := bigint.Parse(string(plain))
	if err != nil {
		return bigint.Int{}, nil, errors.Wrap(err, "parse sealed secret")
	}
	return secret, &key, nil
}
