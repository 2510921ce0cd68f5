// Package hdkey wraps BIP39 mnemonic handling and BIP44 hierarchical
// derivation on the secp256k1 curve.
package hdkey

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

var (
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is not a valid BIP39 phrase")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
)

// NewMnemonic returns a freshly generated BIP39 phrase with the given
// entropy size in bits. A zero size defaults to 128 (12 words).
func NewMnemonic(entropySize int) (string, error) {
	if entropySize == 0 {
		entropySize = 128
	}
	if entropySize < 128 || entropySize > 256 || entropySize%32 != 0 {
		return "", ErrInvalidEntropySize
	}

	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic checks the phrase against the BIP39 wordlist and
// checksum.
func ValidateMnemonic(mnemonic string) error {
	if mnemonic == "" {
		return ErrNullMnemonic
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewSeed expands a validated mnemonic to its 64-byte BIP39 seed with an
// empty passphrase.
func NewSeed(mnemonic string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return bip39.NewSeed(mnemonic, ""), nil
}

// DerivePrivateKey walks the given absolute path from the seed's master
// key and returns the private key at its end.
func DerivePrivateKey(seed []byte, path DerivationPath) (*btcec.PrivateKey, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}

	key := master
	for _, index := range path {
		if key, err = key.Derive(index); err != nil {
			return nil, err
		}
	}
	return key.ECPrivKey()
}
