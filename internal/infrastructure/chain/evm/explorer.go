package evm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/pkg/httputil"
)

// Balance queries the node for the address's current balance and its
// confirmed transaction count. EVM chains have no locked-balance
// concept, so the whole balance is spendable.
func (a *adapter) Balance(
	ctx context.Context, address, network string,
) (domain.Balance, error) {
	client, err := a.dial(network)
	if err != nil {
		return domain.Balance{}, err
	}

	account := common.HexToAddress(address)
	wei, err := client.BalanceAt(ctx, account, nil)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("fetching balance: %w", err)
	}
	// big.Int.Uint64 wraps modulo 2^64 instead of capping, which would
	// corrupt the amount a send-all sweep is computed from.
	if !wei.IsUint64() {
		return domain.Balance{}, fmt.Errorf(
			"balance of %s wei exceeds the representable range", wei,
		)
	}
	nonce, err := client.NonceAt(ctx, account, nil)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("fetching nonce: %w", err)
	}

	total := wei.Uint64()
	return domain.Balance{
		Total:     total,
		Spendable: total,
		TxCount:   int(nonce),
	}, nil
}

// explorerTx is the transaction shape of etherscan-compatible explorer
// APIs.
type explorerTx struct {
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	Input           string `json:"input"`
	IsError         string `json:"isError"`
	ReceiptStatus   string `json:"txreceipt_status"`
	ContractAddress string `json:"contractAddress"`
}

type explorerTxList struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Result  []explorerTx `json:"result"`
}

// Transactions lists the address's history through an
// etherscan-compatible explorer API. Plain JSON-RPC nodes cannot serve
// per-address history, which is why this goes through the shared public
// explorer and scans against it are paced more conservatively.
func (a *adapter) Transactions(
	ctx context.Context, address, network string, limit, offset int,
) ([]domain.TransactionRecord, error) {
	explorerURL, ok := a.cfg.ExplorerURLs[network]
	if !ok {
		return nil, fmt.Errorf("no explorer endpoint configured for network %s", network)
	}

	if limit <= 0 {
		limit = 20
	}
	page := offset/limit + 1
	url := fmt.Sprintf(
		"%s/api?module=account&action=txlist&address=%s&page=%d&offset=%d&sort=desc",
		explorerURL, address, page, limit,
	)
	status, body, err := httputil.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("explorer responded with status %d", status)
	}

	list := explorerTxList{}
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parsing explorer response: %w", err)
	}

	records := make([]domain.TransactionRecord, 0, len(list.Result))
	for _, tx := range list.Result {
		records = append(records, parseExplorerTx(tx))
	}
	return records, nil
}

// Transaction fetches a single transaction by hash from the node and
// classifies it.
func (a *adapter) Transaction(
	ctx context.Context, txid, network string,
) (domain.TransactionRecord, error) {
	client, err := a.dial(network)
	if err != nil {
		return domain.TransactionRecord{}, err
	}

	tx, pending, err := client.TransactionByHash(ctx, common.HexToHash(txid))
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("fetching transaction: %w", err)
	}

	record := domain.TransactionRecord{
		TxID:   tx.Hash().Hex(),
		Status: "confirmed",
	}
	if pending {
		record.Status = "pending"
	}

	switch {
	case tx.To() == nil:
		record.Type = domain.TxTypeDeployment
	case len(tx.Data()) > 0:
		record.Type = domain.TxTypeContractCall
	default:
		record.Type = domain.TxTypeTransfer
		record.Recipients = []domain.Recipient{{
			Address: tx.To().Hex(),
			Amount:  tx.Value().Uint64(),
		}}
	}

	signer := types.LatestSignerForChainID(a.chainID(network))
	if sender, err := types.Sender(signer, tx); err == nil {
		record.Sender = sender.Hex()
	}
	return record, nil
}

func parseExplorerTx(tx explorerTx) domain.TransactionRecord {
	record := domain.TransactionRecord{
		TxID:   tx.Hash,
		Sender: tx.From,
		Status: "success",
	}
	if tx.IsError == "1" || tx.ReceiptStatus == "0" {
		record.Status = "failed"
	}

	switch {
	case tx.To == "" || tx.ContractAddress != "":
		record.Type = domain.TxTypeDeployment
	case len(tx.Input) > 2: // beyond the bare "0x"
		record.Type = domain.TxTypeContractCall
	default:
		record.Type = domain.TxTypeTransfer
		amount, _ := strconv.ParseUint(tx.Value, 10, 64)
		record.Recipients = []domain.Recipient{{
			Address: tx.To,
			Amount:  amount,
		}}
	}
	return record
}
