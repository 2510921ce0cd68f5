package stacks

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/seedscan/seedscan/internal/core/domain"
)

// Bulk-payout contracts take a list of tuples like
// (tuple (to 'SP2...) (ustx u1000)). The extended API renders the
// arguments as Clarity source in the repr field, so recipients are
// recovered by scanning that text rather than decoding Clarity values.
var (
	sendManyRecipientRE = regexp.MustCompile(`\(to '(S[0-9A-Z]+)\)`)
	sendManyAmountRE    = regexp.MustCompile(`\(ustx u(\d+)\)`)
)

// sendManyFunctions are the contract entry points treated as bulk
// payouts.
var sendManyFunctions = map[string]bool{
	"send-many": true,
	"send-stx":  true,
}

// parseSendMany extracts (recipient, amount) pairs from a contract
// call's rendered arguments. Recipients and amounts appear in matching
// order inside each tuple; a count mismatch means the call is not a
// recognizable payout and yields nothing. Non-payout calls also yield
// nothing, never an error.
func parseSendMany(tx *apiTx) []domain.Recipient {
	if tx.TxType != "contract_call" || !sendManyFunctions[tx.ContractCall.FunctionName] {
		return nil
	}

	var reprs strings.Builder
	for _, arg := range tx.ContractCall.FunctionArgs {
		reprs.WriteString(arg.Repr)
		reprs.WriteByte('\n')
	}
	source := reprs.String()

	addresses := sendManyRecipientRE.FindAllStringSubmatch(source, -1)
	amounts := sendManyAmountRE.FindAllStringSubmatch(source, -1)
	if len(addresses) == 0 || len(addresses) != len(amounts) {
		return nil
	}

	recipients := make([]domain.Recipient, 0, len(addresses))
	for i, match := range addresses {
		amount, err := strconv.ParseUint(amounts[i][1], 10, 64)
		if err != nil {
			return nil
		}
		recipients = append(recipients, domain.Recipient{
			Address: match[1],
			Amount:  amount,
		})
	}
	return recipients
}
