package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seedscan/seedscan/internal/core/domain"
)

func TestGenerate(t *testing.T) {
	scanner := NewScannerService(10)

	entries, err := scanner.Generate(
		context.Background(), &fakeAdapter{}, "valid phrase", 3, "",
	)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, entry := range entries {
		require.Equal(t, i, entry.Index)
		require.NotEmpty(t, entry.Address)
		// No network lookups during generation.
		require.Zero(t, entry.Total)
		require.Zero(t, entry.TxCount)
	}
}

func TestGenerateValidation(t *testing.T) {
	scanner := NewScannerService(10)
	ctx := context.Background()
	adapter := &fakeAdapter{}

	tests := []struct {
		name     string
		mnemonic string
		count    int
		network  string
		expected error
	}{
		{"zero count", "valid phrase", 0, "", domain.ErrInvalidCount},
		{"negative count", "valid phrase", -4, "", domain.ErrInvalidCount},
		{"empty mnemonic", "", 1, "", domain.ErrEmptyMnemonic},
		{"invalid mnemonic", "garbage", 1, "", domain.ErrInvalidMnemonic},
		{"unknown network", "valid phrase", 1, "devnet", domain.ErrUnsupportedNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanner.Generate(ctx, adapter, tt.mnemonic, tt.count, tt.network)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestScan(t *testing.T) {
	adapter := &fakeAdapter{
		balances: map[string]domain.Balance{
			"FAKE1": {Total: 5000000, Spendable: 4000000, Locked: 1000000, TxCount: 2},
		},
	}
	scanner := NewScannerService(100)

	entries, summary, err := scanner.Scan(
		context.Background(), adapter, "valid phrase", 3, "mainnet",
	)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.Zero(t, entries[0].Total)
	require.Equal(t, uint64(5000000), entries[1].Total)
	require.True(t, entries[1].HasActivity())
	require.False(t, entries[2].HasActivity())

	require.Equal(t, "fakechain", summary.Chain)
	require.Equal(t, "mainnet", summary.Network)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, 1, summary.WithBalance)
	require.Equal(t, 1, summary.WithActivity)
	require.Equal(t, uint64(5000000), summary.Sum)
	require.Equal(t, uint64(4000000), summary.SumSpendable)
	require.Equal(t, uint64(1000000), summary.SumLocked)
}

func TestScanDegradesOnLookupFailure(t *testing.T) {
	adapter := &fakeAdapter{
		balances: map[string]domain.Balance{
			"FAKE0": {Total: 100, Spendable: 100, TxCount: 1},
		},
		balanceErrs: map[string]error{
			"FAKE1": errors.New("rate limited"),
		},
	}
	scanner := NewScannerService(100)

	entries, summary, err := scanner.Scan(
		context.Background(), adapter, "valid phrase", 2, "",
	)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The failing account is reported with zero values and the error
	// annotation instead of aborting the scan.
	require.Equal(t, uint64(100), entries[0].Total)
	require.Zero(t, entries[1].Total)
	require.Equal(t, "rate limited", entries[1].Err)
	require.Equal(t, 1, summary.WithBalance)
}
