package application

import (
	"github.com/seedscan/seedscan/internal/core/domain"
)

// CrossReference intersects a parsed recipient list with a previously
// generated wallet file. Addresses are compared normalized (trimmed,
// case-insensitive); each match carries its originating derivation index
// and the amount attributed to it. Read-only.
func CrossReference(
	recipients []domain.Recipient, wallet *domain.WalletFile,
) domain.CrossRefReport {
	byAddress := make(map[string]domain.WalletEntry, len(wallet.Addresses))
	for _, entry := range wallet.Addresses {
		byAddress[domain.NormalizeAddress(entry.Address)] = entry
	}

	report := domain.CrossRefReport{}
	for _, recipient := range recipients {
		entry, ok := byAddress[domain.NormalizeAddress(recipient.Address)]
		if !ok {
			continue
		}
		report.Matches = append(report.Matches, domain.CrossRefMatch{
			Index:          entry.Index,
			Address:        entry.Address,
			DerivationPath: entry.DerivationPath,
			Amount:         recipient.Amount,
		})
		report.TotalAmount += recipient.Amount
	}
	return report
}
