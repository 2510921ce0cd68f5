package domain

import "encoding/json"

// TxType classifies a fetched transaction.
type TxType string

const (
	TxTypeTransfer     TxType = "transfer"
	TxTypeContractCall TxType = "contract-call"
	TxTypeDeployment   TxType = "contract-deployment"
	TxTypeCoinbase     TxType = "coinbase"
	TxTypeOther        TxType = "other"
)

// TransactionRecord is the parsed view of a chain-native transaction.
// Raw carries the untouched upstream document for callers that need
// fields the parsed view drops.
type TransactionRecord struct {
	TxID       string          `json:"txid"`
	Type       TxType          `json:"type"`
	Status     string          `json:"status"`
	Sender     string          `json:"sender"`
	Function   string          `json:"function,omitempty"`
	Recipients []Recipient     `json:"recipients,omitempty"`
	Fee        uint64          `json:"fee,omitempty"`
	Raw        json.RawMessage `json:"-"`
}

// Recipient is one (address, amount) tuple extracted from a transaction,
// typically from a multi-recipient disbursement call. Amounts are in
// base units.
type Recipient struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

// CrossRefMatch ties a parsed recipient back to an entry of a generated
// wallet file.
type CrossRefMatch struct {
	Index          int    `json:"index"`
	Address        string `json:"address"`
	DerivationPath string `json:"derivationPath"`
	Amount         uint64 `json:"amount"`
}

// CrossRefReport is the outcome of intersecting a recipient list with a
// wallet file.
type CrossRefReport struct {
	Matches     []CrossRefMatch `json:"matches"`
	TotalAmount uint64          `json:"totalAmount"`
}
