package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	sealer, err := NewBucketSealer(key)
	require.NoError(t, err)

	plaintext := []byte("eight by")
	sealed, err := sealer.Seal(7, 3, plaintext)
	require.NoError(t, err)
	assert.Len(t, sealed, len(plaintext)+sealer.Overhead())

	opened, err := sealer.Open(7, 3, sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestSealIsRerandomized(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	sealer, err := NewBucketSealer(key)
	require.NoError(t, err)

	a, err := sealer.Seal(1, 0, []byte("same dat"))
	require.NoError(t, err)
	b, err := sealer.Seal(1, 0, []byte("same dat"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "identical plaintexts must seal to distinct ciphertexts")
}

func TestOpenBindsIDAndLeaf(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	sealer, err := NewBucketSealer(key)
	require.NoError(t, err)

	sealed, err := sealer.Seal(1, 2, []byte("payload!"))
	require.NoError(t, err)

	_, err = sealer.Open(2, 2, sealed)
	require.ErrorIs(t, err, ErrOpenFailed)
	_, err = sealer.Open(1, 3, sealed)
	require.ErrorIs(t, err, ErrOpenFailed)

	_, err = sealer.Open(1, 2, sealed[:4])
	require.ErrorIs(t, err, ErrOpenFailed)
}

func TestNewBucketSealerRejectsShortKey(t *testing.T) {
	_, err := NewBucketSealer([]byte("short"))
	require.Error(t, err)
}
