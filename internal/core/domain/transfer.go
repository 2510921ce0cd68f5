package domain

// TransferStatus is the per-account outcome taxonomy of a transfer
// batch. The same values are exposed to the surrounding tooling and must
// not change.
type TransferStatus string

const (
	TransferSuccess TransferStatus = "success"
	TransferFailed  TransferStatus = "failed"
	TransferSkipped TransferStatus = "skipped"
	TransferError   TransferStatus = "error"
)

// ReasonInsufficientAfterFee marks accounts whose spendable balance does
// not cover the fee budget. Such accounts are skipped before any
// broadcast attempt.
const ReasonInsufficientAfterFee = "insufficient-after-fee"

// TransferRequest describes one signed-and-broadcast attempt for a
// single account. Amount is in base units; SendAll means "maximum
// available minus the fee budget" computed against the live balance.
type TransferRequest struct {
	Account   Account
	Recipient string
	Amount    uint64
	SendAll   bool
	FeeBudget uint64
	Sequence  uint64
	Memo      string
}

// TransferResult is the classified outcome for one account.
type TransferResult struct {
	Index   int            `json:"index"`
	Address string         `json:"address"`
	Status  TransferStatus `json:"status"`
	TxID    string         `json:"txid,omitempty"`
	Amount  uint64         `json:"amount,omitempty"`
	Reason  string         `json:"reason,omitempty"`
}

// TransferSummary is the final tally over a transfer batch.
type TransferSummary struct {
	BatchID   string           `json:"batchId"`
	Chain     string           `json:"chain"`
	Network   string           `json:"network"`
	Success   int              `json:"success"`
	Failed    int              `json:"failed"`
	Skipped   int              `json:"skipped"`
	Errors    int              `json:"errors"`
	TotalSent uint64           `json:"totalSent"`
	Results   []TransferResult `json:"results"`
}

// Tally recomputes the counters from the collected results.
func (s *TransferSummary) Tally() {
	s.Success, s.Failed, s.Skipped, s.Errors, s.TotalSent = 0, 0, 0, 0, 0
	for _, r := range s.Results {
		switch r.Status {
		case TransferSuccess:
			s.Success++
			s.TotalSent += r.Amount
		case TransferFailed:
			s.Failed++
		case TransferSkipped:
			s.Skipped++
		case TransferError:
			s.Errors++
		}
	}
}
