package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seedscan/seedscan/internal/core/domain"
)

func TestInspectTransaction(t *testing.T) {
	record := domain.TransactionRecord{
		TxID: "0xdd",
		Type: domain.TxTypeContractCall,
		Recipients: []domain.Recipient{
			{Address: "FAKE1", Amount: 100},
		},
	}

	got, err := InspectTransaction(
		context.Background(), &fakeTransferAdapter{record: record}, "0xdd", "",
	)
	require.NoError(t, err)
	require.Equal(t, record, got)
}

func TestInspectTransactionNotSupported(t *testing.T) {
	_, err := InspectTransaction(context.Background(), &fakeAdapter{}, "0xdd", "")
	require.ErrorIs(t, err, domain.ErrNotSupported)
	require.Contains(t, err.Error(), "fakechain")
}

func TestListTransactions(t *testing.T) {
	adapter := &fakeAdapter{
		txs: []domain.TransactionRecord{
			{TxID: "0xaa", Type: domain.TxTypeTransfer},
		},
	}

	records, err := ListTransactions(
		context.Background(), adapter, "FAKE0", "", 0, 0,
	)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "0xaa", records[0].TxID)
}
