package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
)

var (
	// ErrNullRecipient ...
	ErrNullRecipient = errors.New("recipient address must not be null")
	// ErrNullAmount ...
	ErrNullAmount = errors.New("either a transfer amount or send-all must be given")
)

// InspectTransaction fetches a transaction by id through the adapter's
// optional inspection capability and returns its parsed view, including
// any recipients extracted from a multi-recipient disbursement call.
func InspectTransaction(
	ctx context.Context,
	adapter ports.ChainAdapter,
	txid, network string,
) (domain.TransactionRecord, error) {
	inspector, ok := ports.AsInspector(adapter)
	if !ok {
		return domain.TransactionRecord{}, fmt.Errorf(
			"%w: transaction inspection is not available on %s",
			domain.ErrNotSupported, adapter.Info().Name,
		)
	}
	if network == "" {
		network = adapter.Info().DefaultNetwork
	}
	return inspector.Transaction(ctx, txid, network)
}

// ListTransactions pages through the address's transaction history via
// the required adapter surface.
func ListTransactions(
	ctx context.Context,
	adapter ports.ChainAdapter,
	address, network string,
	limit, offset int,
) ([]domain.TransactionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if network == "" {
		network = adapter.Info().DefaultNetwork
	}
	return adapter.Transactions(ctx, address, network, limit, offset)
}
