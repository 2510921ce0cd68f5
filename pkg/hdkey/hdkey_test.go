package hdkey

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		mnemonic string
		err      error
	}{
		{testMnemonic, nil},
		{"", ErrNullMnemonic},
		{"not a real seed phrase at all", ErrInvalidMnemonic},
		// bad checksum on valid wordlist words
		{"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", ErrInvalidMnemonic},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.err, ValidateMnemonic(tt.mnemonic))
	}
}

func TestNewMnemonic(t *testing.T) {
	mnemonic, err := NewMnemonic(0)
	require.NoError(t, err)
	assert.NoError(t, ValidateMnemonic(mnemonic))

	mnemonic, err = NewMnemonic(256)
	require.NoError(t, err)
	assert.NoError(t, ValidateMnemonic(mnemonic))

	_, err = NewMnemonic(100)
	assert.Equal(t, ErrInvalidEntropySize, err)
}

// BIP39 test vector: the "abandon ... about" phrase with an empty
// passphrase expands to a fixed seed.
func TestNewSeed(t *testing.T) {
	seed, err := NewSeed(testMnemonic)
	require.NoError(t, err)
	assert.Equal(
		t,
		"5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc1"+
			"9a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		hex.EncodeToString(seed),
	)

	_, err = NewSeed("definitely wrong")
	assert.Equal(t, ErrInvalidMnemonic, err)
}

func TestDerivePrivateKeyIsDeterministic(t *testing.T) {
	seed, err := NewSeed(testMnemonic)
	require.NoError(t, err)

	path := Bip44Path(60, 0, 0, 5)
	first, err := DerivePrivateKey(seed, path)
	require.NoError(t, err)
	second, err := DerivePrivateKey(seed, path)
	require.NoError(t, err)

	assert.Equal(t, first.Serialize(), second.Serialize())

	other, err := DerivePrivateKey(seed, Bip44Path(60, 0, 0, 6))
	require.NoError(t, err)
	assert.NotEqual(t, first.Serialize(), other.Serialize())
}

func TestBip44Path(t *testing.T) {
	assert.Equal(t, "m/44'/60'/0'/0/3", Bip44Path(60, 0, 0, 3).String())
	assert.Equal(t, "m/44'/5757'/0'", Bip44Path(5757, 0).String())
}

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		input  string
		output string
		err    error
	}{
		{"m/44'/60'/0'/0/0", "m/44'/60'/0'/0/0", nil},
		{"m/44'/501'/7'/0'", "m/44'/501'/7'/0'", nil},
		{"", "", ErrNullDerivationPath},
		{"m", "", ErrMalformedDerivationPath},
		{"m/", "", ErrMalformedDerivationPath},
		{"44'/60'/0'", "", ErrMalformedDerivationPath},
		{"m/44'/x'", "", ErrMalformedDerivationPath},
	}
	for _, tt := range tests {
		path, err := ParseDerivationPath(tt.input)
		assert.Equal(t, tt.err, err, tt.input)
		if tt.err == nil {
			assert.Equal(t, tt.output, path.String())
		}
	}
}
