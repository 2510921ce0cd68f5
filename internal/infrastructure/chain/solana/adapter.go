// Package solana implements the chain backend for Solana. Key material
// follows the ed25519-hd-key scheme (SLIP-0010) so addresses line up
// with the common wallet apps.
package solana

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/shopspring/decimal"
	"github.com/tyler-smith/go-bip39"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
	"github.com/seedscan/seedscan/pkg/slip10"
)

const (
	coinType = 501
	decimals = 9
)

// Config parameterizes the Solana adapter with its RPC set.
type Config struct {
	DefaultNetwork string
	RPCURLs        map[string]string
	// ScanRate and TransferRate are requests per second, zero falls back
	// to the orchestrator's default.
	ScanRate     int
	TransferRate int
}

type adapter struct {
	cfg     Config
	clients map[string]*client.Client
}

// interface guards: transaction inspection is deliberately absent, the
// caller degrades through the capability probe.
var (
	_ ports.ChainAdapter = (*adapter)(nil)
	_ ports.Transferrer  = (*adapter)(nil)
)

// NewAdapter returns the Solana chain backend.
func NewAdapter(cfg Config) ports.ChainAdapter {
	return &adapter{cfg: cfg, clients: make(map[string]*client.Client)}
}

func (a *adapter) Info() domain.ChainInfo {
	networks := make([]string, 0, len(a.cfg.RPCURLs))
	for network := range a.cfg.RPCURLs {
		networks = append(networks, network)
	}
	return domain.ChainInfo{
		Name:           "solana",
		Symbol:         "SOL",
		CoinType:       coinType,
		Networks:       networks,
		DefaultNetwork: a.cfg.DefaultNetwork,
		Decimals:       decimals,
		Strategy:       domain.DirectIndex,
		ScanRate:       a.cfg.ScanRate,
		TransferRate:   a.cfg.TransferRate,
	}
}

// ValidateMnemonic performs a non-empty check only: key expansion is
// delegated to the BIP39 seed derivation, which accepts any phrase, so
// full checksum validation is not claimed here.
func (a *adapter) ValidateMnemonic(mnemonic string) error {
	if strings.TrimSpace(mnemonic) == "" {
		return domain.ErrEmptyMnemonic
	}
	return nil
}

// DeriveAccounts derives m/44'/501'/i'/0' for i in [0, count) via
// SLIP-0010 hardened derivation. The stored private key is the 32-byte
// ed25519 seed in hex.
func (a *adapter) DeriveAccounts(
	_ context.Context, mnemonic string, count int, _ string,
) ([]domain.Account, error) {
	seed := bip39.NewSeed(strings.TrimSpace(mnemonic), "")

	accounts := make([]domain.Account, 0, count)
	for i := 0; i < count; i++ {
		path := fmt.Sprintf("m/44'/%d'/%d'/0'", coinType, i)
		key, err := slip10.DerivePath(seed, path)
		if err != nil {
			return nil, fmt.Errorf("deriving index %d: %w", i, err)
		}

		account, err := types.AccountFromSeed(key.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("building keypair for index %d: %w", i, err)
		}
		accounts = append(accounts, domain.Account{
			Index:          i,
			Address:        account.PublicKey.ToBase58(),
			PrivateKey:     hex.EncodeToString(key.PrivateKey),
			PublicKey:      account.PublicKey.ToBase58(),
			DerivationPath: path,
		})
	}
	return accounts, nil
}

// Balance returns the lamport balance plus a shallow activity probe via
// the most recent signatures.
func (a *adapter) Balance(
	ctx context.Context, address, network string,
) (domain.Balance, error) {
	cli, err := a.rpc(network)
	if err != nil {
		return domain.Balance{}, err
	}

	lamports, err := cli.GetBalance(ctx, address)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("fetching balance: %w", err)
	}

	txCount := 0
	sigs, err := cli.GetSignaturesForAddressWithConfig(
		ctx, address, client.GetSignaturesForAddressConfig{Limit: 1},
	)
	if err == nil {
		txCount = len(sigs)
	}

	return domain.Balance{
		Total:     lamports,
		Spendable: lamports,
		TxCount:   txCount,
	}, nil
}

// Transactions lists the latest signatures involving the address. The
// signature listing carries no parsed instruction data, entries are
// classified by their on-chain error state only.
func (a *adapter) Transactions(
	ctx context.Context, address, network string, limit, offset int,
) ([]domain.TransactionRecord, error) {
	cli, err := a.rpc(network)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 20
	}
	sigs, err := cli.GetSignaturesForAddressWithConfig(
		ctx, address, client.GetSignaturesForAddressConfig{Limit: limit + offset},
	)
	if err != nil {
		return nil, fmt.Errorf("fetching signatures: %w", err)
	}
	if offset >= len(sigs) {
		return nil, nil
	}
	sigs = sigs[offset:]

	records := make([]domain.TransactionRecord, 0, len(sigs))
	for _, sig := range sigs {
		status := "success"
		if sig.Err != nil {
			status = "failed"
		}
		records = append(records, domain.TransactionRecord{
			TxID:   sig.Signature,
			Type:   domain.TxTypeOther,
			Status: status,
			Sender: address,
		})
	}
	return records, nil
}

func (a *adapter) CSVHeader() []string {
	return []string{
		"index", "address", "derivation_path", "private_key",
		"balance_SOL", "tx_count", "has_activity",
	}
}

func (a *adapter) CSVRecord(entry domain.WalletEntry) []string {
	balance := decimal.NewFromBigInt(
		new(big.Int).SetUint64(entry.Total), -decimals,
	)
	return []string{
		strconv.Itoa(entry.Index),
		entry.Address,
		entry.DerivationPath,
		entry.PrivateKey,
		balance.String(),
		strconv.Itoa(entry.TxCount),
		strconv.FormatBool(entry.HasActivity()),
	}
}

func (a *adapter) rpc(network string) (*client.Client, error) {
	if cli, ok := a.clients[network]; ok {
		return cli, nil
	}
	url, ok := a.cfg.RPCURLs[network]
	if !ok {
		return nil, fmt.Errorf("no rpc endpoint configured for network %s", network)
	}
	cli := client.NewClient(url)
	a.clients[network] = cli
	return cli, nil
}
