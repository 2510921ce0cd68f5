package domain

// DerivationStrategy describes how an adapter materializes accounts from
// a seed.
type DerivationStrategy int

const (
	// DirectIndex means the account at index i is a pure O(1) function of
	// (seed, i).
	DirectIndex DerivationStrategy = iota
	// SequentialReplay means deriving index i requires materializing
	// accounts 0..i in order, an O(i) operation. Adapters using it may
	// cache the materialized prefix only within a single call.
	SequentialReplay
)

func (s DerivationStrategy) String() string {
	if s == SequentialReplay {
		return "sequential-replay"
	}
	return "direct-index"
}

// ChainInfo is the static metadata every chain backend declares.
// ScanRate and TransferRate pace network calls per chain, in requests
// per second: shared public APIs declare lower rates than self-hosted
// RPC. Zero means the caller's default.
type ChainInfo struct {
	Name           string
	Symbol         string
	CoinType       uint32
	Networks       []string
	DefaultNetwork string
	Decimals       int
	Strategy       DerivationStrategy
	ScanRate       int
	TransferRate   int
}

// SupportsNetwork reports whether the given network name is one of the
// declared ones.
func (i ChainInfo) SupportsNetwork(network string) bool {
	for _, n := range i.Networks {
		if n == network {
			return true
		}
	}
	return false
}

// Account is a single derived account. Same (seed, chain, index) always
// yields the same account.
type Account struct {
	Index          int    `json:"index"`
	Address        string `json:"address"`
	PrivateKey     string `json:"privateKey"`
	PublicKey      string `json:"publicKey,omitempty"`
	DerivationPath string `json:"derivationPath"`
	Imported       bool   `json:"imported,omitempty"`
}

// Balance is a chain-specific snapshot of an account's funds, expressed
// in the chain's base units. Locked is zero on chains without a staking
// or lockup concept. Err annotates a degraded network lookup, such a
// snapshot reports zero values instead of aborting a scan.
type Balance struct {
	Total     uint64 `json:"balance"`
	Spendable uint64 `json:"spendable"`
	Locked    uint64 `json:"locked,omitempty"`
	TxCount   int    `json:"txCount"`
	Err       string `json:"error,omitempty"`
}

// HasActivity reports whether the account ever touched the chain. This
// is a heuristic: a positive balance or at least one recorded
// transaction.
func (b Balance) HasActivity() bool {
	return b.Total > 0 || b.TxCount > 0
}

// ScanSummary aggregates a balance scan over a contiguous range of
// derived accounts.
type ScanSummary struct {
	Chain        string
	Network      string
	Total        int
	WithBalance  int
	WithActivity int
	Sum          uint64
	SumSpendable uint64
	SumLocked    uint64
}
