package hdkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is the internal representation of a hierarchical
// deterministic wallet path.
type DerivationPath []uint32

var (
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"derivation path must be an absolute path in the form m/44'/<coin>'/...",
	)
)

// Bip44Path builds the canonical m/44'/<coinType>'/<account>' prefix
// followed by the given relative elements.
func Bip44Path(coinType, account uint32, elems ...uint32) DerivationPath {
	path := DerivationPath{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart + account,
	}
	return append(path, elems...)
}

// ParseDerivationPath converts a derivation path string to the internal
// binary representation.
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	if strPath == "" {
		return nil, ErrNullDerivationPath
	}
	if !strings.HasPrefix(strPath, "m/") {
		return nil, ErrMalformedDerivationPath
	}

	var path DerivationPath
	for _, elem := range strings.Split(strPath[2:], "/") {
		elem = strings.TrimSpace(elem)
		var value uint32
		if strings.HasSuffix(elem, "'") {
			value = hdkeychain.HardenedKeyStart
			elem = strings.TrimSuffix(elem, "'")
		}

		parsed, err := strconv.ParseUint(elem, 10, 32)
		if err != nil || parsed >= hdkeychain.HardenedKeyStart {
			return nil, ErrMalformedDerivationPath
		}
		path = append(path, value+uint32(parsed))
	}
	if len(path) == 0 {
		return nil, ErrMalformedDerivationPath
	}
	return path, nil
}

// String converts a binary derivation path to its canonical
// representation.
func (path DerivationPath) String() string {
	if len(path) == 0 {
		return ""
	}

	result := "m"
	for _, component := range path {
		var hardened bool
		if component >= hdkeychain.HardenedKeyStart {
			component -= hdkeychain.HardenedKeyStart
			hardened = true
		}
		result = fmt.Sprintf("%s/%d", result, component)
		if hardened {
			result += "'"
		}
	}
	return result
}
