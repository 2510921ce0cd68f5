package domain

import (
	"strings"
	"time"
)

// WalletEntry is one derived account together with the balance snapshot
// taken at generation time. The snapshot fields are flattened so the
// JSON shape matches what downstream tooling expects.
type WalletEntry struct {
	Account
	Balance
}

// WalletFile is the JSON document produced by the generate and scan
// commands and consumed by lookup and transfer tooling. Immutable once
// written except by explicit regeneration.
type WalletFile struct {
	Blockchain     string        `json:"blockchain"`
	WalletName     string        `json:"walletName"`
	Network        string        `json:"network"`
	TotalAddresses int           `json:"totalAddresses"`
	GeneratedAt    time.Time     `json:"generatedAt"`
	Addresses      []WalletEntry `json:"addresses"`
}

// FindAddress looks an address up case-insensitively and returns the
// matching entry.
func (w *WalletFile) FindAddress(address string) (WalletEntry, bool) {
	needle := NormalizeAddress(address)
	for _, entry := range w.Addresses {
		if NormalizeAddress(entry.Address) == needle {
			return entry, true
		}
	}
	return WalletEntry{}, false
}

// NormalizeAddress trims and case-folds an address for comparison
// purposes only, the original casing is preserved everywhere else.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
