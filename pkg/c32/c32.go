// Package c32 implements the Crockford base32 variant with checksum
// (c32check) used to encode principal addresses on the Stacks chain.
package c32

import (
	"crypto/sha256"
	"errors"
	"math/big"
	"strings"
)

const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	// VersionMainnetP2PKH yields addresses with the "SP" prefix.
	VersionMainnetP2PKH = 22
	// VersionTestnetP2PKH yields addresses with the "ST" prefix.
	VersionTestnetP2PKH = 26
)

var (
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("invalid c32check address")
	// ErrInvalidChecksum ...
	ErrInvalidChecksum = errors.New("invalid c32check checksum")
	// ErrInvalidVersion ...
	ErrInvalidVersion = errors.New("version must be in range [0, 31]")

	bigZero      = big.NewInt(0)
	bigThirtyTwo = big.NewInt(32)
)

// Encode converts a byte string to its c32 representation. Leading zero
// bytes are preserved as leading '0' digits, mirroring the reference
// implementation.
func Encode(data []byte) string {
	value := new(big.Int).SetBytes(data)
	mod := new(big.Int)
	encoded := make([]byte, 0, len(data)*2)

	for value.Cmp(bigZero) > 0 {
		value.DivMod(value, bigThirtyTwo, mod)
		encoded = append([]byte{alphabet[mod.Int64()]}, encoded...)
	}

	for _, b := range data {
		if b != 0x00 {
			break
		}
		encoded = append([]byte{alphabet[0]}, encoded...)
	}

	return string(encoded)
}

// Decode converts a c32 string back to bytes. Homoglyphs accepted by the
// Crockford alphabet (O, L, I) are normalized before decoding.
func Decode(input string) ([]byte, error) {
	input = normalize(input)

	value := big.NewInt(0)
	for i := 0; i < len(input); i++ {
		index := strings.IndexByte(alphabet, input[i])
		if index < 0 {
			return nil, ErrInvalidAddress
		}
		value.Mul(value, bigThirtyTwo)
		value.Add(value, big.NewInt(int64(index)))
	}

	decoded := value.Bytes()
	leadingZeroes := 0
	for leadingZeroes < len(input) && input[leadingZeroes] == '0' {
		leadingZeroes++
	}

	out := make([]byte, leadingZeroes+len(decoded))
	copy(out[leadingZeroes:], decoded)
	return out, nil
}

// Address encodes a 20-byte public key hash as a Stacks address: the "S"
// prefix, the c32 digit of the version and the c32check payload.
func Address(version byte, hash160 []byte) (string, error) {
	if version > 31 {
		return "", ErrInvalidVersion
	}

	payload := make([]byte, 0, len(hash160)+4)
	payload = append(payload, hash160...)
	payload = append(payload, checksum(version, hash160)...)

	return "S" + string(alphabet[version]) + Encode(payload), nil
}

// DecodeAddress parses and checksum-verifies a Stacks address, returning
// its version and 20-byte public key hash.
func DecodeAddress(address string) (byte, []byte, error) {
	address = normalize(address)
	if len(address) < 7 || address[0] != 'S' {
		return 0, nil, ErrInvalidAddress
	}

	version := strings.IndexByte(alphabet, address[1])
	if version < 0 {
		return 0, nil, ErrInvalidAddress
	}

	payload, err := Decode(address[2:])
	if err != nil {
		return 0, nil, err
	}
	if len(payload) < 5 {
		return 0, nil, ErrInvalidAddress
	}

	hash160 := payload[:len(payload)-4]
	sum := payload[len(payload)-4:]
	if string(sum) != string(checksum(byte(version), hash160)) {
		return 0, nil, ErrInvalidChecksum
	}

	return byte(version), hash160, nil
}

// checksum is the first 4 bytes of sha256d(version || hash160).
func checksum(version byte, hash160 []byte) []byte {
	first := sha256.Sum256(append([]byte{version}, hash160...))
	second := sha256.Sum256(first[:])
	return second[:4]
}

func normalize(input string) string {
	input = strings.ToUpper(input)
	input = strings.ReplaceAll(input, "O", "0")
	input = strings.ReplaceAll(input, "L", "1")
	input = strings.ReplaceAll(input, "I", "1")
	return input
}
