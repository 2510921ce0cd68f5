// Package stacks implements the default chain backend. Accounts follow
// the Stacks wallet convention of growing one at a time from a root
// key, so derivation replays the whole prefix instead of jumping to an
// index directly.
package stacks

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/shopspring/decimal"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
	"github.com/seedscan/seedscan/pkg/c32"
	"github.com/seedscan/seedscan/pkg/hdkey"
)

const (
	coinType = 5757
	decimals = 6

	networkMainnet = "mainnet"
	networkTestnet = "testnet"
)

// Config parameterizes the Stacks adapter. APIURLs is keyed by network
// name.
type Config struct {
	DefaultNetwork string
	APIURLs        map[string]string
	// ScanRate and TransferRate are requests per second, zero falls back
	// to the orchestrator's default. The public API enforces tight
	// limits, so both default low.
	ScanRate     int
	TransferRate int
}

type adapter struct {
	cfg Config
	api *apiClient
}

// interface guards
var (
	_ ports.ChainAdapter         = (*adapter)(nil)
	_ ports.Transferrer          = (*adapter)(nil)
	_ ports.TransactionInspector = (*adapter)(nil)
)

// NewAdapter returns the Stacks chain backend.
func NewAdapter(cfg Config) ports.ChainAdapter {
	return &adapter{cfg: cfg, api: newAPIClient(cfg.APIURLs)}
}

func (a *adapter) Info() domain.ChainInfo {
	networks := make([]string, 0, len(a.cfg.APIURLs))
	for network := range a.cfg.APIURLs {
		networks = append(networks, network)
	}
	return domain.ChainInfo{
		Name:           "stacks",
		Symbol:         "STX",
		CoinType:       coinType,
		Networks:       networks,
		DefaultNetwork: a.cfg.DefaultNetwork,
		Decimals:       decimals,
		Strategy:       domain.SequentialReplay,
		ScanRate:       a.cfg.ScanRate,
		TransferRate:   a.cfg.TransferRate,
	}
}

func (a *adapter) ValidateMnemonic(mnemonic string) error {
	switch err := hdkey.ValidateMnemonic(mnemonic); err {
	case nil:
		return nil
	case hdkey.ErrNullMnemonic:
		return domain.ErrEmptyMnemonic
	default:
		return domain.ErrInvalidMnemonic
	}
}

// DeriveAccounts materializes accounts 0..count-1 in order by stepping
// the m/44'/5757'/0'/0 branch one child at a time. The branch node is
// kept only for the duration of the call.
func (a *adapter) DeriveAccounts(
	_ context.Context, mnemonic string, count int, network string,
) ([]domain.Account, error) {
	seed, err := hdkey.NewSeed(mnemonic)
	if err != nil {
		return nil, domain.ErrInvalidMnemonic
	}

	branch, err := deriveBranch(seed)
	if err != nil {
		return nil, err
	}

	version := addressVersion(network)
	accounts := make([]domain.Account, 0, count)
	for i := 0; i < count; i++ {
		child, err := branch.Derive(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("deriving index %d: %w", i, err)
		}
		privKey, err := child.ECPrivKey()
		if err != nil {
			return nil, fmt.Errorf("deriving index %d: %w", i, err)
		}

		pubKey := privKey.PubKey().SerializeCompressed()
		address, err := c32.Address(version, btcutil.Hash160(pubKey))
		if err != nil {
			return nil, fmt.Errorf("encoding address for index %d: %w", i, err)
		}

		accounts = append(accounts, domain.Account{
			Index:          i,
			Address:        address,
			PrivateKey:     hex.EncodeToString(privKey.Serialize()),
			PublicKey:      hex.EncodeToString(pubKey),
			DerivationPath: hdkey.Bip44Path(coinType, 0, 0, uint32(i)).String(),
		})
	}
	return accounts, nil
}

// Balance reads the account document. Total includes locked STX, the
// spendable portion is the difference. The nonce counts sent
// transactions, which keeps a receive-only address at zero but with a
// positive balance.
func (a *adapter) Balance(
	ctx context.Context, address, network string,
) (domain.Balance, error) {
	info, err := a.api.account(ctx, network, address)
	if err != nil {
		return domain.Balance{}, err
	}

	total := parseHexAmount(info.Balance)
	locked := parseHexAmount(info.Locked)
	return domain.Balance{
		Total:     total,
		Spendable: total - locked,
		Locked:    locked,
		TxCount:   int(info.Nonce),
	}, nil
}

func (a *adapter) Transactions(
	ctx context.Context, address, network string, limit, offset int,
) ([]domain.TransactionRecord, error) {
	list, err := a.api.transactions(ctx, network, address, limit, offset)
	if err != nil {
		return nil, err
	}

	records := make([]domain.TransactionRecord, 0, len(list.Results))
	for i := range list.Results {
		records = append(records, classify(&list.Results[i], nil))
	}
	return records, nil
}

// Transaction fetches one transaction and, for recognized bulk-payout
// contract calls, extracts its recipient list.
func (a *adapter) Transaction(
	ctx context.Context, txid, network string,
) (domain.TransactionRecord, error) {
	tx, raw, err := a.api.transaction(ctx, network, txid)
	if err != nil {
		return domain.TransactionRecord{}, err
	}
	return classify(tx, raw), nil
}

func (a *adapter) CSVHeader() []string {
	return []string{
		"index", "address", "derivation_path", "private_key",
		"balance_stx", "spendable_stx", "locked_stx", "tx_count", "has_activity",
	}
}

func (a *adapter) CSVRecord(entry domain.WalletEntry) []string {
	stx := func(microSTX uint64) string {
		return decimal.NewFromBigInt(
			new(big.Int).SetUint64(microSTX), -decimals,
		).String()
	}
	return []string{
		strconv.Itoa(entry.Index),
		entry.Address,
		entry.DerivationPath,
		entry.PrivateKey,
		stx(entry.Total),
		stx(entry.Spendable),
		stx(entry.Locked),
		strconv.Itoa(entry.TxCount),
		strconv.FormatBool(entry.HasActivity()),
	}
}

// SequenceNumber returns the account's next nonce.
func (a *adapter) SequenceNumber(
	ctx context.Context, address, network string,
) (uint64, error) {
	info, err := a.api.account(ctx, network, address)
	if err != nil {
		return 0, err
	}
	return info.Nonce, nil
}

// Transfer signs a token transfer with the account's key and broadcasts
// it. The fee budget is spent as the transaction fee in full.
func (a *adapter) Transfer(
	ctx context.Context, req domain.TransferRequest, network string,
) (string, error) {
	keyBytes, err := hex.DecodeString(req.Account.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("decoding private key: %w", err)
	}
	key, _ := btcec.PrivKeyFromBytes(keyBytes)

	tx := &tokenTransfer{
		mainnet:   network == networkMainnet,
		signer:    signerHash(key),
		nonce:     req.Sequence,
		fee:       req.FeeBudget,
		recipient: req.Recipient,
		amount:    req.Amount,
		memo:      req.Memo,
	}
	if err := tx.sign(key); err != nil {
		return "", fmt.Errorf("signing transfer: %w", err)
	}

	rawTx, err := tx.serialize()
	if err != nil {
		return "", err
	}
	return a.api.broadcast(ctx, network, rawTx)
}

// classify maps an API transaction onto the parsed record shape.
func classify(tx *apiTx, raw []byte) domain.TransactionRecord {
	record := domain.TransactionRecord{
		TxID:   tx.TxID,
		Status: tx.TxStatus,
		Sender: tx.SenderAddress,
		Raw:    raw,
	}
	if fee, err := strconv.ParseUint(tx.FeeRate, 10, 64); err == nil {
		record.Fee = fee
	}

	switch tx.TxType {
	case "token_transfer":
		record.Type = domain.TxTypeTransfer
		amount, _ := strconv.ParseUint(tx.TokenTransfer.Amount, 10, 64)
		record.Recipients = []domain.Recipient{{
			Address: tx.TokenTransfer.RecipientAddress,
			Amount:  amount,
		}}
	case "contract_call":
		record.Type = domain.TxTypeContractCall
		record.Function = tx.ContractCall.FunctionName
		record.Recipients = parseSendMany(tx)
	case "smart_contract":
		record.Type = domain.TxTypeDeployment
	case "coinbase":
		record.Type = domain.TxTypeCoinbase
	default:
		record.Type = domain.TxTypeOther
	}
	return record
}

// deriveBranch walks the hardened part of the path down to the external
// branch node the account children hang off of.
func deriveBranch(seed []byte) (*hdkeychain.ExtendedKey, error) {
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	for _, index := range []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart, // account 0
		0,                           // external branch
	} {
		if key, err = key.Derive(index); err != nil {
			return nil, err
		}
	}
	return key, nil
}

// addressVersion maps a network name to its c32 address version byte.
func addressVersion(network string) byte {
	if network == networkTestnet {
		return c32.VersionTestnetP2PKH
	}
	return c32.VersionMainnetP2PKH
}
