package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// gcmEncrypt seals plaintext with AES-GCM and prepends the random nonce.
func gcmEncrypt(plaintext, key, additionalData []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	// never use more than 2^32 random nonces with a given key
	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Wrap(err, "read nonce")
	}
	return aesgcm.Seal(nonce, nonce, plaintext, additionalData), nil
}

func gcmDecrypt(cipherText, key, additionalData []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := aesgcm.NonceSize()
	if len(cipherText) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}
	nonce, body := cipherText[:nonceSize], cipherText[nonceSize:]
	return aesgcm.Open(nil, nonce, body, additionalData)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "new aes cipher")
	}
	return cipher.NewGCM(block)
}
