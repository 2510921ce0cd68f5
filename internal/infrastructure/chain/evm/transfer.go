package evm

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	log "github.com/sirupsen/logrus"

	"github.com/seedscan/seedscan/internal/core/domain"
)

// SequenceNumber returns the pending nonce so queued transactions from
// previous batch entries are accounted for.
func (a *adapter) SequenceNumber(
	ctx context.Context, address, network string,
) (uint64, error) {
	client, err := a.dial(network)
	if err != nil {
		return 0, err
	}
	return client.PendingNonceAt(ctx, common.HexToAddress(address))
}

// Transfer signs and broadcasts a native value transfer as an EIP-155
// legacy transaction with the fixed 21000 gas limit.
func (a *adapter) Transfer(
	ctx context.Context, req domain.TransferRequest, network string,
) (string, error) {
	client, err := a.dial(network)
	if err != nil {
		return "", err
	}

	privKey, err := crypto.HexToECDSA(strings.TrimPrefix(req.Account.PrivateKey, "0x"))
	if err != nil {
		return "", fmt.Errorf("parsing private key: %w", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching gas price: %w", err)
	}

	recipient := common.HexToAddress(req.Recipient)
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    req.Sequence,
		To:       &recipient,
		Value:    new(big.Int).SetUint64(req.Amount),
		Gas:      gasLimitTransfer,
		GasPrice: gasPrice,
	})

	signedTx, err := types.SignTx(
		tx, types.NewEIP155Signer(a.chainID(network)), privKey,
	)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	log.Debugf(
		"broadcasting %s transfer of %d wei with nonce %d, gas price %s",
		a.cfg.Name, req.Amount, req.Sequence, gasPrice,
	)
	if err := client.SendTransaction(ctx, signedTx); err != nil {
		// the node accepted the connection but rejected the transaction
		return "", &domain.BroadcastError{Reason: err.Error()}
	}
	return signedTx.Hash().Hex(), nil
}
