package evm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon about"

func newTestAdapter() ports.ChainAdapter {
	return NewAdapter(Config{
		Name:           "eth",
		Symbol:         "ETH",
		DefaultNetwork: "mainnet",
		ChainIDs:       map[string]int64{"mainnet": 1, "sepolia": 11155111},
		RPCURLs: map[string]string{
			"mainnet": "https://rpc.invalid",
			"sepolia": "https://rpc-sepolia.invalid",
		},
	})
}

func TestDeriveAccounts(t *testing.T) {
	adapter := newTestAdapter()

	accounts, err := adapter.DeriveAccounts(context.Background(), testMnemonic, 2, "mainnet")
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	// Reference addresses of the canonical test phrase on the standard
	// ethereum derivation path.
	require.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", accounts[0].Address)
	require.Equal(t, "m/44'/60'/0'/0/0", accounts[0].DerivationPath)
	require.Equal(
		t,
		"1837c1be8e2995ec11cda2b066151be2cfb48adf9e47b151d46adab3a21cdf67",
		accounts[0].PrivateKey,
	)

	require.Equal(t, "0x6Fac4D18c912343BF86fa7049364Dd4E424Ab9C0", accounts[1].Address)
	require.Equal(t, "m/44'/60'/0'/0/1", accounts[1].DerivationPath)
}

func TestDeriveAccountsDeterministic(t *testing.T) {
	adapter := newTestAdapter()
	ctx := context.Background()

	first, err := adapter.DeriveAccounts(ctx, testMnemonic, 4, "mainnet")
	require.NoError(t, err)
	second, err := adapter.DeriveAccounts(ctx, testMnemonic, 4, "mainnet")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestValidateMnemonic(t *testing.T) {
	adapter := newTestAdapter()

	require.NoError(t, adapter.ValidateMnemonic(testMnemonic))
	require.ErrorIs(t, adapter.ValidateMnemonic(""), domain.ErrEmptyMnemonic)
	require.ErrorIs(
		t, adapter.ValidateMnemonic("not a real phrase"), domain.ErrInvalidMnemonic,
	)
}

func TestInfo(t *testing.T) {
	info := newTestAdapter().Info()

	require.Equal(t, "eth", info.Name)
	require.Equal(t, uint32(60), info.CoinType)
	require.Equal(t, 18, info.Decimals)
	require.Equal(t, domain.DirectIndex, info.Strategy)
	require.Equal(t, "mainnet", info.DefaultNetwork)
	require.ElementsMatch(t, []string{"mainnet", "sepolia"}, info.Networks)

	// The adapter carries both optional capabilities.
	_, ok := ports.AsTransferrer(newTestAdapter())
	require.True(t, ok)
	_, ok = ports.AsInspector(newTestAdapter())
	require.True(t, ok)
}

func TestCSVRecord(t *testing.T) {
	adapter := newTestAdapter()

	entry := domain.WalletEntry{
		Account: domain.Account{
			Index:          0,
			Address:        "0xabc",
			DerivationPath: "m/44'/60'/0'/0/0",
			PrivateKey:     "dd",
		},
		// 1.5 ETH in wei.
		Balance: domain.Balance{Total: 1500000000000000000, TxCount: 3},
	}
	require.Equal(t, []string{
		"0", "0xabc", "m/44'/60'/0'/0/0", "dd", "1.5", "3", "true",
	}, adapter.CSVRecord(entry))
	require.Len(t, adapter.CSVHeader(), 7)
}
