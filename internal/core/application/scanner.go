package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
)

// ScannerService derives accounts and, optionally, walks them with
// balance lookups. All network calls run sequentially: per-account
// checks are paced per chain at the rate its backend declares, shorter
// for self-hosted RPC and longer for shared public explorers.
type ScannerService struct {
	defaultRate int
	limiters    map[string]ratelimit.Limiter
}

// NewScannerService returns a scanner pacing balance checks at each
// chain's declared scan rate, falling back to requestsPerSecond for
// backends that declare none.
func NewScannerService(requestsPerSecond int) *ScannerService {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &ScannerService{
		defaultRate: requestsPerSecond,
		limiters:    make(map[string]ratelimit.Limiter),
	}
}

// limiter returns the chain's pacer, building it on first use. Calls are
// strictly sequential so the map needs no locking.
func (s *ScannerService) limiter(info domain.ChainInfo) ratelimit.Limiter {
	if limiter, ok := s.limiters[info.Name]; ok {
		return limiter
	}
	rate := info.ScanRate
	if rate <= 0 {
		rate = s.defaultRate
	}
	limiter := ratelimit.New(rate)
	s.limiters[info.Name] = limiter
	return limiter
}

// Generate derives count accounts without touching the network.
func (s *ScannerService) Generate(
	ctx context.Context,
	adapter ports.ChainAdapter,
	mnemonic string, count int, network string,
) ([]domain.WalletEntry, error) {
	accounts, err := s.derive(ctx, adapter, mnemonic, count, network)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.WalletEntry, 0, len(accounts))
	for _, account := range accounts {
		entries = append(entries, domain.WalletEntry{Account: account})
	}
	return entries, nil
}

// Scan derives count accounts and performs one paced balance query per
// account. A failing lookup degrades to a zero-value snapshot annotated
// with the error and never aborts the batch.
func (s *ScannerService) Scan(
	ctx context.Context,
	adapter ports.ChainAdapter,
	mnemonic string, count int, network string,
) ([]domain.WalletEntry, *domain.ScanSummary, error) {
	accounts, err := s.derive(ctx, adapter, mnemonic, count, network)
	if err != nil {
		return nil, nil, err
	}

	info := adapter.Info()
	limiter := s.limiter(info)
	entries := make([]domain.WalletEntry, 0, len(accounts))
	for _, account := range accounts {
		limiter.Take()

		balance, err := adapter.Balance(ctx, account.Address, network)
		if err != nil {
			log.WithError(err).Warnf(
				"balance lookup failed for %s account %d", info.Name, account.Index,
			)
			balance = domain.Balance{Err: err.Error()}
		}
		log.Debugf(
			"account %d %s: %d %s (locked %d)",
			account.Index, account.Address, balance.Total, info.Symbol, balance.Locked,
		)
		entries = append(entries, domain.WalletEntry{Account: account, Balance: balance})
	}

	summary := summarize(info, network, entries)
	log.Infof(
		"scanned %d %s accounts: %d with balance, total %d %s",
		summary.Total, info.Name, summary.WithBalance, summary.Sum, info.Symbol,
	)
	return entries, summary, nil
}

func (s *ScannerService) derive(
	ctx context.Context,
	adapter ports.ChainAdapter,
	mnemonic string, count int, network string,
) ([]domain.Account, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidCount
	}
	if network == "" {
		network = adapter.Info().DefaultNetwork
	}
	if !adapter.Info().SupportsNetwork(network) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedNetwork, network)
	}
	if err := adapter.ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}

	accounts, err := adapter.DeriveAccounts(ctx, mnemonic, count, network)
	if err != nil {
		return nil, err
	}
	if len(accounts) != count {
		return nil, fmt.Errorf(
			"adapter returned %d accounts, expected %d", len(accounts), count,
		)
	}
	return accounts, nil
}

func summarize(
	info domain.ChainInfo, network string, entries []domain.WalletEntry,
) *domain.ScanSummary {
	summary := &domain.ScanSummary{
		Chain:   info.Name,
		Network: network,
		Total:   len(entries),
	}
	for _, entry := range entries {
		if entry.Total > 0 {
			summary.WithBalance++
		}
		if entry.HasActivity() {
			summary.WithActivity++
		}
		summary.Sum += entry.Total
		summary.SumSpendable += entry.Spendable
		summary.SumLocked += entry.Locked
	}
	return summary
}
