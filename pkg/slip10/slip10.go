package slip10

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"strconv"
	"strings"
)

const (
	// HardenedOffset is the index offset marking a hardened child.
	HardenedOffset = 0x80000000

	masterKey = "ed25519 seed"
)

var (
	// ErrNullSeed ...
	ErrNullSeed = errors.New("seed must not be null")
	// ErrMalformedPath ...
	ErrMalformedPath = errors.New("derivation path must be in the form m/44'/501'/0'/0'")
	// ErrNotHardened ...
	ErrNotHardened = errors.New("ed25519 derivation supports hardened indexes only")
)

// Key is the result of a SLIP-0010 child derivation: 32 bytes of private
// key material plus the chain code used to derive further children.
type Key struct {
	PrivateKey []byte
	ChainCode  []byte
}

// MasterKey computes the ed25519 master key from a BIP39 seed as defined
// by SLIP-0010: HMAC-SHA512 keyed with "ed25519 seed".
func MasterKey(seed []byte) (*Key, error) {
	if len(seed) == 0 {
		return nil, ErrNullSeed
	}

	mac := hmac.New(sha512.New, []byte(masterKey))
	mac.Write(seed)
	sum := mac.Sum(nil)

	return &Key{PrivateKey: sum[:32], ChainCode: sum[32:]}, nil
}

// Derive returns the hardened child of k at the given index. The index is
// offset by HardenedOffset internally, ed25519 keys have no non-hardened
// children.
func (k *Key) Derive(index uint32) *Key {
	data := make([]byte, 0, 37)
	data = append(data, 0x00)
	data = append(data, k.PrivateKey...)
	data = binary.BigEndian.AppendUint32(data, index+HardenedOffset)

	mac := hmac.New(sha512.New, k.ChainCode)
	mac.Write(data)
	sum := mac.Sum(nil)

	return &Key{PrivateKey: sum[:32], ChainCode: sum[32:]}
}

// DerivePath walks an absolute derivation path like m/44'/501'/0'/0' from
// the given BIP39 seed and returns the final key. Every path element must
// be hardened.
func DerivePath(seed []byte, path string) (*Key, error) {
	indexes, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	key, err := MasterKey(seed)
	if err != nil {
		return nil, err
	}
	for _, index := range indexes {
		key = key.Derive(index)
	}
	return key, nil
}

func parsePath(path string) ([]uint32, error) {
	if !strings.HasPrefix(path, "m/") {
		return nil, ErrMalformedPath
	}

	elems := strings.Split(path[2:], "/")
	indexes := make([]uint32, 0, len(elems))
	for _, elem := range elems {
		if !strings.HasSuffix(elem, "'") {
			return nil, ErrNotHardened
		}
		value, err := strconv.ParseUint(strings.TrimSuffix(elem, "'"), 10, 32)
		if err != nil || value >= HardenedOffset {
			return nil, ErrMalformedPath
		}
		indexes = append(indexes, uint32(value))
	}
	if len(indexes) == 0 {
		return nil, ErrMalformedPath
	}
	return indexes, nil
}
