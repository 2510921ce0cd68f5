package solana

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/types"
	log "github.com/sirupsen/logrus"

	"github.com/seedscan/seedscan/internal/core/domain"
)

// SequenceNumber is a no-op for Solana: ordering comes from the recent
// blockhash attached to each transaction, not a per-account counter.
func (a *adapter) SequenceNumber(
	_ context.Context, _, _ string,
) (uint64, error) {
	return 0, nil
}

// Transfer signs and broadcasts a system-program lamport transfer.
func (a *adapter) Transfer(
	ctx context.Context, req domain.TransferRequest, network string,
) (string, error) {
	cli, err := a.rpc(network)
	if err != nil {
		return "", err
	}

	seed, err := hex.DecodeString(req.Account.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("parsing private key: %w", err)
	}
	sender, err := types.AccountFromSeed(seed)
	if err != nil {
		return "", fmt.Errorf("building keypair: %w", err)
	}

	blockhash, err := cli.GetLatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching recent blockhash: %w", err)
	}

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        sender.PublicKey,
			RecentBlockhash: blockhash.Blockhash,
			Instructions: []types.Instruction{
				system.Transfer(system.TransferParam{
					From:   sender.PublicKey,
					To:     common.PublicKeyFromString(req.Recipient),
					Amount: req.Amount,
				}),
			},
		}),
		Signers: []types.Account{sender},
	})
	if err != nil {
		return "", fmt.Errorf("building transaction: %w", err)
	}

	log.Debugf("broadcasting solana transfer of %d lamports", req.Amount)
	sig, err := cli.SendTransaction(ctx, tx)
	if err != nil {
		return "", &domain.BroadcastError{Reason: err.Error()}
	}
	return sig, nil
}
