package walletstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seedscan/seedscan/internal/core/domain"
)

func testWallet(count int) *domain.WalletFile {
	wallet := &domain.WalletFile{
		Blockchain: "stacks",
		WalletName: "payouts",
		Network:    "mainnet",
	}
	for i := 0; i < count; i++ {
		wallet.Addresses = append(wallet.Addresses, domain.WalletEntry{
			Account: domain.Account{
				Index:          i,
				Address:        fmt.Sprintf("SPADDR%04d", i),
				PrivateKey:     fmt.Sprintf("%064d", i),
				DerivationPath: fmt.Sprintf("m/44'/5757'/0'/0/%d", i),
			},
			Balance: domain.Balance{Total: uint64(i) * 10},
		})
	}
	return wallet
}

func TestWriteLoadRoundTrip(t *testing.T) {
	store := NewStore()
	path := filepath.Join(t.TempDir(), "wallets", "stacks.json")

	written := testWallet(3)
	require.NoError(t, store.Write(path, written))
	require.Equal(t, 3, written.TotalAddresses)
	require.False(t, written.GeneratedAt.IsZero())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := store.Load(path)
	require.NoError(t, err)
	require.Equal(t, written.Blockchain, loaded.Blockchain)
	require.Equal(t, written.WalletName, loaded.WalletName)
	require.Equal(t, written.Addresses, loaded.Addresses)
}

func TestLoadErrors(t *testing.T) {
	store := NewStore()
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Load(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
		_, err := store.Load(path)
		require.Error(t, err)
	})

	t.Run("empty wallet", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"addresses":[]}`), 0600))
		_, err := store.Load(path)
		require.ErrorIs(t, err, ErrEmptyWallet)
	})
}

func TestFindAddressInLargeWallet(t *testing.T) {
	store := NewStore()
	path := filepath.Join(t.TempDir(), "large.json")

	require.NoError(t, store.Write(path, testWallet(500)))
	loaded, err := store.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Addresses, 500)

	entry, ok := loaded.FindAddress("spaddr0123")
	require.True(t, ok)
	require.Equal(t, 123, entry.Index)
	require.Equal(t, "m/44'/5757'/0'/0/123", entry.DerivationPath)

	_, ok = loaded.FindAddress("SPADDR9999")
	require.False(t, ok)
}

type csvAdapter struct{}

func (csvAdapter) Info() domain.ChainInfo            { return domain.ChainInfo{Name: "fakechain"} }
func (csvAdapter) ValidateMnemonic(string) error     { return nil }
func (csvAdapter) DeriveAccounts(
	context.Context, string, int, string,
) ([]domain.Account, error) {
	return nil, nil
}
func (csvAdapter) Balance(context.Context, string, string) (domain.Balance, error) {
	return domain.Balance{}, nil
}
func (csvAdapter) Transactions(
	context.Context, string, string, int, int,
) ([]domain.TransactionRecord, error) {
	return nil, nil
}
func (csvAdapter) CSVHeader() []string { return []string{"index", "address"} }
func (csvAdapter) CSVRecord(entry domain.WalletEntry) []string {
	return []string{strconv.Itoa(entry.Index), entry.Address}
}

func TestWriteCSV(t *testing.T) {
	store := NewStore()
	path := filepath.Join(t.TempDir(), "export.csv")

	require.NoError(t, store.WriteCSV(path, testWallet(2), csvAdapter{}))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"index,address\n0,SPADDR0000\n1,SPADDR0001\n",
		string(buf),
	)
}
