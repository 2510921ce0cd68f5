package c32

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Known vector from the reference c32check implementation.
func TestAddress(t *testing.T) {
	hash160, _ := hex.DecodeString("a46ff88886c2ef9762d970b4d2c63678835bd39d")

	addr, err := Address(VersionMainnetP2PKH, hash160)
	require.NoError(t, err)
	assert.Equal(t, "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", addr)

	_, err = Address(32, hash160)
	assert.Equal(t, ErrInvalidVersion, err)
}

func TestAddressRoundTrip(t *testing.T) {
	hashes := []string{
		"a46ff88886c2ef9762d970b4d2c63678835bd39d",
		"0000000000000000000000000000000000000000",
		"00ff00ff00ff00ff00ff00ff00ff00ff00ff00ff",
	}
	versions := []byte{VersionMainnetP2PKH, VersionTestnetP2PKH, 0, 31}

	for _, h := range hashes {
		hash160, _ := hex.DecodeString(h)
		for _, version := range versions {
			addr, err := Address(version, hash160)
			require.NoError(t, err)

			gotVersion, gotHash, err := DecodeAddress(addr)
			require.NoError(t, err, addr)
			assert.Equal(t, version, gotVersion)
			assert.Equal(t, hash160, gotHash)
		}
	}
}

func TestDecodeAddressIsCaseInsensitive(t *testing.T) {
	addr := "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"

	_, upper, err := DecodeAddress(addr)
	require.NoError(t, err)
	_, lower, err := DecodeAddress(strings.ToLower(addr))
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
}

func TestDecodeAddressRejectsBadInput(t *testing.T) {
	tests := []struct {
		address string
		err     error
	}{
		{"", ErrInvalidAddress},
		{"XP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", ErrInvalidAddress},
		{"SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ8", ErrInvalidChecksum},
		{"SP2J6ZY48GV&EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", ErrInvalidAddress},
	}
	for _, tt := range tests {
		_, _, err := DecodeAddress(tt.address)
		assert.Equal(t, tt.err, err, tt.address)
	}
}

func TestEncodePreservesLeadingZeroBytes(t *testing.T) {
	assert.Equal(t, "00", Encode([]byte{0x00, 0x00}))
	assert.Equal(t, "", Encode(nil))

	decoded, err := Decode("00")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00}, decoded)
}
