// Package evm implements the chain backend for EVM-family networks. The
// adapter is parameterized by chain id and RPC set and is registered
// once per network family (eth, bsc, ...), all sharing the ethereum
// coin type for derivation compatibility with existing wallets.
package evm

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
	"github.com/seedscan/seedscan/pkg/hdkey"
)

const (
	coinType = 60
	decimals = 18
	// gasLimitTransfer is the fixed cost of a native value transfer.
	gasLimitTransfer = 21000
)

// ErrUnknownNetwork ...
var ErrUnknownNetwork = errors.New("no rpc endpoint configured for network")

// Config parameterizes one EVM-family adapter.
type Config struct {
	Name           string
	Symbol         string
	DefaultNetwork string
	// ChainIDs, RPCURLs and ExplorerURLs are keyed by network name.
	ChainIDs     map[string]int64
	RPCURLs      map[string]string
	ExplorerURLs map[string]string
	// ScanRate and TransferRate are requests per second, zero falls back
	// to the orchestrator's default.
	ScanRate     int
	TransferRate int
}

type adapter struct {
	cfg     Config
	clients map[string]*ethclient.Client
}

// interface guards
var (
	_ ports.ChainAdapter         = (*adapter)(nil)
	_ ports.Transferrer          = (*adapter)(nil)
	_ ports.TransactionInspector = (*adapter)(nil)
)

// NewAdapter returns the chain backend for the configured EVM network
// family.
func NewAdapter(cfg Config) ports.ChainAdapter {
	return &adapter{cfg: cfg, clients: make(map[string]*ethclient.Client)}
}

func (a *adapter) Info() domain.ChainInfo {
	networks := make([]string, 0, len(a.cfg.RPCURLs))
	for network := range a.cfg.RPCURLs {
		networks = append(networks, network)
	}
	return domain.ChainInfo{
		Name:           a.cfg.Name,
		Symbol:         a.cfg.Symbol,
		CoinType:       coinType,
		Networks:       networks,
		DefaultNetwork: a.cfg.DefaultNetwork,
		Decimals:       decimals,
		Strategy:       domain.DirectIndex,
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

// DeriveAccounts derives m/44'/60'/0'/0/i for i in [0, count). Every
// index is an O(1) function of the seed.
func (a *adapter) DeriveAccounts(
	_ context.Context, mnemonic string, count int, _ string,
) ([]domain.Account, error) {
	seed, err := hdkey.NewSeed(mnemonic)
	if err != nil {
		return nil, domain.ErrInvalidMnemonic
	}

	accounts := make([]domain.Account, 0, count)
	for i := 0; i < count; i++ {
		path := hdkey.Bip44Path(coinType, 0, 0, uint32(i))
		privKey, err := hdkey.DerivePrivateKey(seed, path)
		if err != nil {
			return nil, fmt.Errorf("deriving index %d: %w", i, err)
		}

		ecdsaKey := privKey.ToECDSA()
		accounts = append(accounts, domain.Account{
			Index:          i,
			Address:        crypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex(),
			PrivateKey:     hex.EncodeToString(crypto.FromECDSA(ecdsaKey)),
			DerivationPath: path.String(),
		})
	}
	return accounts, nil
}

func (a *adapter) CSVHeader() []string {
	return []string{
		"index", "address", "derivation_path", "private_key",
		"balance_" + a.cfg.Symbol, "tx_count", "has_activity",
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

// dial returns a cached RPC client for the network. Calls are strictly
// sequential so the cache needs no locking.
func (a *adapter) dial(network string) (*ethclient.Client, error) {
	if client, ok := a.clients[network]; ok {
		return client, nil
	}

	url, ok := a.cfg.RPCURLs[network]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, network)
	}
	client, err := ethclient.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s rpc: %w", network, err)
	}
	a.clients[network] = client
	return client, nil
}

func (a *adapter) chainID(network string) *big.Int {
	return big.NewInt(a.cfg.ChainIDs[network])
}
