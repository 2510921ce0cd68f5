package ports

import (
	"context"

	"github.com/seedscan/seedscan/internal/core/domain"
)

// ChainAdapter is the contract every chain backend must satisfy. The
// compiler enforces the required surface; the optional capabilities
// below are probed at runtime with a type assertion and degrade
// gracefully when absent.
type ChainAdapter interface {
	// Info returns the adapter's static metadata.
	Info() domain.ChainInfo
	// ValidateMnemonic rejects non-BIP39-conformant input before any
	// derivation is attempted. Backends that delegate validation to an
	// opaque SDK perform a non-empty check only.
	ValidateMnemonic(mnemonic string) error
	// DeriveAccounts deterministically derives count accounts with
	// indices 0..count-1. Pure derivation, no network calls.
	DeriveAccounts(
		ctx context.Context, mnemonic string, count int, network string,
	) ([]domain.Account, error)
	// Balance fetches the current balance snapshot of an address.
	Balance(
		ctx context.Context, address, network string,
	) (domain.Balance, error)
	// Transactions lists transactions involving the address, newest
	// first.
	Transactions(
		ctx context.Context, address, network string, limit, offset int,
	) ([]domain.TransactionRecord, error)
	// CSVHeader and CSVRecord render the chain-specific export columns.
	CSVHeader() []string
	CSVRecord(entry domain.WalletEntry) []string
}

// Transferrer is the optional capability of signing and broadcasting
// outbound transfers.
type Transferrer interface {
	// SequenceNumber fetches the account's current nonce or equivalent
	// from the network.
	SequenceNumber(ctx context.Context, address, network string) (uint64, error)
	// Transfer signs and broadcasts a single transfer. A chain-side
	// rejection is reported as *domain.BroadcastError.
	Transfer(
		ctx context.Context, req domain.TransferRequest, network string,
	) (txid string, err error)
}

// TransactionInspector is the optional capability of fetching a single
// transaction by id and extracting structured recipient data from
// multi-recipient disbursement calls.
type TransactionInspector interface {
	Transaction(
		ctx context.Context, txid, network string,
	) (domain.TransactionRecord, error)
}

// AsTransferrer probes the adapter for the transfer capability.
func AsTransferrer(a ChainAdapter) (Transferrer, bool) {
	t, ok := a.(Transferrer)
	return t, ok
}

// AsInspector probes the adapter for the transaction inspection
// capability.
func AsInspector(a ChainAdapter) (TransactionInspector, bool) {
	i, ok := a.(TransactionInspector)
	return i, ok
}
