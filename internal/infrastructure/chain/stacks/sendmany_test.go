package stacks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seedscan/seedscan/internal/core/domain"
)

func TestParseSendMany(t *testing.T) {
	tests := []struct {
		name     string
		tx       apiTx
		expected []domain.Recipient
	}{
		{
			name: "two recipients",
			tx: sendManyTx("send-many",
				"(list (tuple (memo 0x) (to 'SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7) (ustx u1000000)) "+
					"(tuple (memo 0x) (to 'SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY7RX8QJ5SVTE) (ustx u2500000)))",
			),
			expected: []domain.Recipient{
				{Address: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", Amount: 1000000},
				{Address: "SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY7RX8QJ5SVTE", Amount: 2500000},
			},
		},
		{
			name: "single recipient variant",
			tx: sendManyTx("send-stx",
				"(tuple (to 'SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7) (ustx u42))",
			),
			expected: []domain.Recipient{
				{Address: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", Amount: 42},
			},
		},
		{
			name:     "unrelated contract call",
			tx:       sendManyTx("swap-exact-tokens", "(uint u100) (uint u99)"),
			expected: nil,
		},
		{
			name: "mismatched pairs",
			tx: sendManyTx("send-many",
				"(tuple (to 'SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7)) (tuple (ustx u1) (ustx u2))",
			),
			expected: nil,
		},
		{
			name:     "no arguments",
			tx:       sendManyTx("send-many", ""),
			expected: nil,
		},
		{
			name:     "not a contract call",
			tx:       apiTx{TxType: "token_transfer"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSendMany(&tt.tx)
			require.Equal(t, tt.expected, got)
		})
	}
}

func sendManyTx(function, repr string) apiTx {
	tx := apiTx{TxType: "contract_call"}
	tx.ContractCall.FunctionName = function
	tx.ContractCall.FunctionArgs = []struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Repr string `json:"repr"`
	}{
		{Name: "recipients", Type: "(list ...)", Repr: repr},
	}
	return tx
}
