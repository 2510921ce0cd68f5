package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
)

// BatchOptions selects the accounts of a transfer batch and fixes its
// recipient, amount and fee budget. Either Indices selects an explicit
// subset, or every entry with a nonzero spendable balance is taken.
type BatchOptions struct {
	Entries   []domain.WalletEntry
	Indices   []int
	Recipient string
	Amount    uint64
	SendAll   bool
	FeeBudget uint64
	Memo      string
	Network   string
}

func (o BatchOptions) validate() error {
	if o.Recipient == "" {
		return ErrNullRecipient
	}
	if !o.SendAll && o.Amount == 0 {
		return ErrNullAmount
	}
	return nil
}

// selected returns the accounts the batch operates on, in index order.
func (o BatchOptions) selected() []domain.WalletEntry {
	if len(o.Indices) == 0 {
		selected := make([]domain.WalletEntry, 0, len(o.Entries))
		for _, entry := range o.Entries {
			if entry.Spendable > 0 {
				selected = append(selected, entry)
			}
		}
		return selected
	}

	wanted := make(map[int]struct{}, len(o.Indices))
	for _, index := range o.Indices {
		wanted[index] = struct{}{}
	}
	selected := make([]domain.WalletEntry, 0, len(o.Indices))
	for _, entry := range o.Entries {
		if _, ok := wanted[entry.Index]; ok {
			selected = append(selected, entry)
		}
	}
	return selected
}

// TransferService drives batch transfers through a chain backend:
// sequential signing and broadcast, per-account outcome classification
// and a final tally. One account's failure never aborts processing of
// the remaining accounts.
type TransferService struct {
	defaultRate int
	limiters    map[string]ratelimit.Limiter
}

// NewTransferService returns a transfer orchestrator pacing successive
// broadcasts at each chain's declared transfer rate, falling back to
// requestsPerSecond for backends that declare none.
func NewTransferService(requestsPerSecond int) *TransferService {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &TransferService{
		defaultRate: requestsPerSecond,
		limiters:    make(map[string]ratelimit.Limiter),
	}
}

// limiter returns the chain's pacer, building it on first use. Calls are
// strictly sequential so the map needs no locking.
func (s *TransferService) limiter(info domain.ChainInfo) ratelimit.Limiter {
	if limiter, ok := s.limiters[info.Name]; ok {
		return limiter
	}
	rate := info.TransferRate
	if rate <= 0 {
		rate = s.defaultRate
	}
	limiter := ratelimit.New(rate)
	s.limiters[info.Name] = limiter
	return limiter
}

// Execute runs the batch to completion over its account list. Outgoing
// sequence values are read and consumed strictly in order per account,
// which is why accounts are processed one at a time.
func (s *TransferService) Execute(
	ctx context.Context,
	adapter ports.ChainAdapter,
	opts BatchOptions,
) (*domain.TransferSummary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	transferrer, ok := ports.AsTransferrer(adapter)
	if !ok {
		return nil, fmt.Errorf(
			"%w: transfers are not available on %s",
			domain.ErrNotSupported, adapter.Info().Name,
		)
	}

	info := adapter.Info()
	network := opts.Network
	if network == "" {
		network = info.DefaultNetwork
	}

	summary := &domain.TransferSummary{
		BatchID: uuid.NewString(),
		Chain:   info.Name,
		Network: network,
	}

	limiter := s.limiter(info)
	for _, entry := range opts.selected() {
		summary.Results = append(
			summary.Results,
			s.transferOne(ctx, limiter, transferrer, info, network, entry, opts),
		)
	}

	summary.Tally()
	log.Infof(
		"transfer batch %s done: %d success, %d failed, %d skipped, %d errors, %d %s sent",
		summary.BatchID, summary.Success, summary.Failed, summary.Skipped,
		summary.Errors, summary.TotalSent, info.Symbol,
	)
	return summary, nil
}

func (s *TransferService) transferOne(
	ctx context.Context,
	limiter ratelimit.Limiter,
	transferrer ports.Transferrer,
	info domain.ChainInfo,
	network string,
	entry domain.WalletEntry,
	opts BatchOptions,
) domain.TransferResult {
	result := domain.TransferResult{Index: entry.Index, Address: entry.Address}

	amount := opts.Amount
	if opts.SendAll {
		if entry.Spendable <= opts.FeeBudget {
			result.Status = domain.TransferSkipped
			result.Reason = domain.ReasonInsufficientAfterFee
			log.Infof(
				"account %d skipped: %d %s does not cover the %d fee budget",
				entry.Index, entry.Spendable, info.Symbol, opts.FeeBudget,
			)
			return result
		}
		amount = entry.Spendable - opts.FeeBudget
	}
	if amount == 0 {
		result.Status = domain.TransferSkipped
		result.Reason = domain.ReasonInsufficientAfterFee
		return result
	}

	limiter.Take()

	sequence, err := transferrer.SequenceNumber(ctx, entry.Address, network)
	if err != nil {
		result.Status = domain.TransferError
		result.Reason = fmt.Sprintf("fetching sequence number: %s", err)
		return result
	}

	txid, err := transferrer.Transfer(ctx, domain.TransferRequest{
		Account:   entry.Account,
		Recipient: opts.Recipient,
		Amount:    amount,
		FeeBudget: opts.FeeBudget,
		Sequence:  sequence,
		Memo:      opts.Memo,
	}, network)
	if err != nil {
		if domain.IsBroadcastRejected(err) {
			result.Status = domain.TransferFailed
		} else {
			result.Status = domain.TransferError
		}
		result.Reason = err.Error()
		log.WithError(err).Warnf("transfer from account %d did not go through", entry.Index)
		return result
	}

	result.Status = domain.TransferSuccess
	result.TxID = txid
	result.Amount = amount
	log.Infof("account %d sent %d %s, txid %s", entry.Index, amount, info.Symbol, txid)
	return result
}
