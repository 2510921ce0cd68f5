package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seedscan/seedscan/internal/core/domain"
)

func TestScannerPacesAtChainRate(t *testing.T) {
	scanner := NewScannerService(1)
	adapter := &fakeAdapter{
		scanRate: 200,
		balances: map[string]domain.Balance{},
	}

	// At the 1 rps service default five lookups would take around four
	// seconds. The chain declares 200 rps, which must win.
	start := time.Now()
	entries, _, err := scanner.Scan(context.Background(), adapter, "phrase", 5, "")
	require.NoError(t, err)
	require.Len(t, entries, 5)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestScannerLimiterFallsBackToDefault(t *testing.T) {
	scanner := NewScannerService(200)

	limiter := scanner.limiter(domain.ChainInfo{Name: "quiet"})
	start := time.Now()
	for i := 0; i < 5; i++ {
		limiter.Take()
	}
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestScannerLimiterCachedPerChain(t *testing.T) {
	scanner := NewScannerService(1)

	fast := domain.ChainInfo{Name: "fast", ScanRate: 100}
	slow := domain.ChainInfo{Name: "slow", ScanRate: 1}
	require.Same(t, scanner.limiter(fast), scanner.limiter(fast))
	require.NotSame(t, scanner.limiter(fast), scanner.limiter(slow))
}

func TestTransferLimiterUsesChainRate(t *testing.T) {
	transfer := NewTransferService(1)

	limiter := transfer.limiter(domain.ChainInfo{Name: "fast", TransferRate: 200})
	start := time.Now()
	for i := 0; i < 5; i++ {
		limiter.Take()
	}
	require.Less(t, time.Since(start), 2*time.Second)

	require.Same(
		t,
		transfer.limiter(domain.ChainInfo{Name: "fast"}),
		transfer.limiter(domain.ChainInfo{Name: "fast"}),
	)
}
