package stacks

import (
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/seedscan/seedscan/pkg/c32"
)

// Wire-format constants for a single-signature STX token transfer.
const (
	versionMainnet = byte(0x00)
	versionTestnet = byte(0x80)

	chainIDMainnet = uint32(0x00000001)
	chainIDTestnet = uint32(0x80000000)

	authTypeStandard       = byte(0x04)
	hashModeP2PKH          = byte(0x00)
	keyEncodingCompressed  = byte(0x00)
	anchorModeAny          = byte(0x03)
	postConditionModeAllow = byte(0x02)

	payloadTypeTokenTransfer = byte(0x00)
	clarityTypePrincipal     = byte(0x05)

	memoLength      = 34
	signatureLength = 65
)

// ErrMemoTooLong is returned when a transfer memo exceeds the fixed
// on-chain memo field.
var ErrMemoTooLong = errors.New("memo exceeds 34 bytes")

// tokenTransfer is an unsigned STX transfer. All amounts are microSTX.
type tokenTransfer struct {
	mainnet   bool
	signer    [20]byte // hash160 of the sender's compressed public key
	nonce     uint64
	fee       uint64
	recipient string
	amount    uint64
	memo      string
	signature [signatureLength]byte
}

// serialize renders the full transaction wire format. With a zero
// signature, nonce and fee this is also the pre-sign form the sighash
// is computed over.
func (t *tokenTransfer) serialize() ([]byte, error) {
	version, chainID := versionMainnet, chainIDMainnet
	if !t.mainnet {
		version, chainID = versionTestnet, chainIDTestnet
	}

	recipientVersion, recipientHash, err := c32.DecodeAddress(t.recipient)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient %s: %w", t.recipient, err)
	}
	if len(t.memo) > memoLength {
		return nil, ErrMemoTooLong
	}

	buf := make([]byte, 0, 128)
	buf = append(buf, version)
	buf = binary.BigEndian.AppendUint32(buf, chainID)

	// Standard single-signature spending condition.
	buf = append(buf, authTypeStandard, hashModeP2PKH)
	buf = append(buf, t.signer[:]...)
	buf = binary.BigEndian.AppendUint64(buf, t.nonce)
	buf = binary.BigEndian.AppendUint64(buf, t.fee)
	buf = append(buf, keyEncodingCompressed)
	buf = append(buf, t.signature[:]...)

	buf = append(buf, anchorModeAny, postConditionModeAllow)
	buf = binary.BigEndian.AppendUint32(buf, 0) // no post conditions

	// Token transfer payload: standard principal, amount, padded memo.
	buf = append(buf, payloadTypeTokenTransfer, clarityTypePrincipal, recipientVersion)
	buf = append(buf, recipientHash...)
	buf = binary.BigEndian.AppendUint64(buf, t.amount)
	memo := make([]byte, memoLength)
	copy(memo, t.memo)
	buf = append(buf, memo...)

	return buf, nil
}

// sign computes the recoverable signature over the sighash chain and
// fills in the spending condition. The presign hash covers the
// transaction with cleared fee, nonce and signature; the final hash
// commits to the actual fee and nonce.
func (t *tokenTransfer) sign(key *btcec.PrivateKey) error {
	cleared := *t
	cleared.fee = 0
	cleared.nonce = 0
	cleared.signature = [signatureLength]byte{}

	serialized, err := cleared.serialize()
	if err != nil {
		return err
	}
	sighash := sha512_256(serialized)

	presign := make([]byte, 0, 32+1+8+8)
	presign = append(presign, sighash...)
	presign = append(presign, authTypeStandard)
	presign = binary.BigEndian.AppendUint64(presign, t.fee)
	presign = binary.BigEndian.AppendUint64(presign, t.nonce)
	digest := sha512_256(presign)

	compact := btcecdsa.SignCompact(key, digest, true)
	// SignCompact prepends a 27+recid(+4 compressed) header byte; the
	// wire format wants the bare recovery id first.
	t.signature[0] = compact[0] - 27 - 4
	copy(t.signature[1:], compact[1:])
	return nil
}

// txid is the hex-encoded sha512/256 of the serialized transaction.
func (t *tokenTransfer) txid() (string, error) {
	serialized, err := t.serialize()
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(sha512_256(serialized)), nil
}

// signerHash derives the spending-condition signer from a compressed
// public key.
func signerHash(key *btcec.PrivateKey) [20]byte {
	var hash [20]byte
	copy(hash[:], btcutil.Hash160(key.PubKey().SerializeCompressed()))
	return hash
}

func sha512_256(data []byte) []byte {
	digest := sha512.Sum512_256(data)
	return digest[:]
}
