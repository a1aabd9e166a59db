package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izouxv/goShamir/bigint"
)

func TestSealOpen(t *testing.T) {
	// lower N for faster testing
	originalScryptN := ScryptN
	ScryptN = 2
	defer func() { ScryptN = originalScryptN }()

	secret := bigint.MustParse("-79836264049851")
	password := "my-secret-password"

	sealed, err := Seal(secret, password, "0x02aa")
	require.NoError(t, err)
	require.NotEmpty(t, sealed)
	assert.NotContains(t, string(sealed), "79836264049851")

	got, key, err := Open(sealed, password)
	require.NoError(t, err)
	assert.True(t, got.Equal(secret))
	assert.Equal(t, "0x02aa", key.Commitment)
	assert.Equal(t, 2, key.Crypto.KDFParams.N)

	_, _, err = Open(sealed, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestOpenRejectsTampering(t *testing.T) {
	originalScryptN := ScryptN
	ScryptN = 2
	defer func() { ScryptN = originalScryptN }()

	sealed, err := Seal(bigint.New(42), "pw", "")
	require.NoError(t, err)

	var key Key
	require.NoError(t, json.Unmarshal(sealed, &key))

	t.Run("id is authenticated", func(t *testing.T) {
		k := key
		k.ID = "00000000-0000-0000-0000-000000000000"
		raw, err := json.Marshal(k)
		require.NoError(t, err)
		_, _, err = Open(raw, "pw")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown cipher", func(t *testing.T) {
		k := key
		k.Crypto.Cipher = "aes-128-ctr"
		raw, err := json.Marshal(k)
		require.NoError(t, err)
		_, _, err = Open(raw, "pw")
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("not json", func(t *testing.T) {
		_, _, err := Open([]byte("{"), "pw")
		assert.Error(t, err)
	})
}
