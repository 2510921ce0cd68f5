package stacks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/pkg/circuitbreaker"
	"github.com/seedscan/seedscan/pkg/httputil"
)

// apiClient talks to a Stacks blockchain API (Hiro-compatible). All
// calls go through a circuit breaker: the public API is shared
// infrastructure and keeps rate limits tight.
type apiClient struct {
	urls    map[string]string
	breaker *gobreaker.CircuitBreaker
}

func newAPIClient(urls map[string]string) *apiClient {
	return &apiClient{
		urls:    urls,
		breaker: circuitbreaker.NewCircuitBreaker("stacks-api"),
	}
}

// accountInfo is the /v2/accounts document. Balances come back as hex
// quantities of microSTX.
type accountInfo struct {
	Balance string `json:"balance"`
	Locked  string `json:"locked"`
	Nonce   uint64 `json:"nonce"`
}

// apiTx is the transaction shape of the extended API, reduced to the
// fields the inspector consumes.
type apiTx struct {
	TxID          string `json:"tx_id"`
	TxType        string `json:"tx_type"`
	TxStatus      string `json:"tx_status"`
	SenderAddress string `json:"sender_address"`
	FeeRate       string `json:"fee_rate"`
	TokenTransfer struct {
		RecipientAddress string `json:"recipient_address"`
		Amount           string `json:"amount"`
	} `json:"token_transfer"`
	ContractCall struct {
		ContractID   string `json:"contract_id"`
		FunctionName string `json:"function_name"`
		FunctionArgs []struct {
			Name string `json:"name"`
			Type string `json:"type"`
			Repr string `json:"repr"`
		} `json:"function_args"`
	} `json:"contract_call"`
}

type apiTxList struct {
	Total   int    `json:"total"`
	Results []apiTx `json:"results"`
}

func (c *apiClient) baseURL(network string) (string, error) {
	url, ok := c.urls[network]
	if !ok {
		return "", fmt.Errorf("no api endpoint configured for network %s", network)
	}
	return url, nil
}

func (c *apiClient) get(ctx context.Context, url string, out interface{}) error {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		status, body, err := httputil.Get(ctx, url, nil)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("api responded with status %d: %s", status, body)
		}
		return body, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(body.([]byte), out)
}

// account fetches balance, locked amount and nonce of an address.
func (c *apiClient) account(
	ctx context.Context, network, address string,
) (*accountInfo, error) {
	base, err := c.baseURL(network)
	if err != nil {
		return nil, err
	}

	info := &accountInfo{}
	url := fmt.Sprintf("%s/v2/accounts/%s?proof=0", base, address)
	if err := c.get(ctx, url, info); err != nil {
		return nil, err
	}
	return info, nil
}

// transactions pages through an address's history, newest first.
func (c *apiClient) transactions(
	ctx context.Context, network, address string, limit, offset int,
) (*apiTxList, error) {
	base, err := c.baseURL(network)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	list := &apiTxList{}
	url := fmt.Sprintf(
		"%s/extended/v1/address/%s/transactions?limit=%d&offset=%d",
		base, address, limit, offset,
	)
	if err := c.get(ctx, url, list); err != nil {
		return nil, err
	}
	return list, nil
}

// transaction fetches one transaction by id.
func (c *apiClient) transaction(
	ctx context.Context, network, txid string,
) (*apiTx, json.RawMessage, error) {
	base, err := c.baseURL(network)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasPrefix(txid, "0x") {
		txid = "0x" + txid
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		status, body, err := httputil.Get(
			ctx, fmt.Sprintf("%s/extended/v1/tx/%s", base, txid), nil,
		)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("api responded with status %d: %s", status, body)
		}
		return body, nil
	})
	if err != nil {
		return nil, nil, err
	}

	raw := body.([]byte)
	tx := &apiTx{}
	if err := json.Unmarshal(raw, tx); err != nil {
		return nil, nil, fmt.Errorf("parsing transaction: %w", err)
	}
	return tx, raw, nil
}

// broadcast submits a signed raw transaction. A non-OK response is a
// chain-side rejection and carries the node's reason.
func (c *apiClient) broadcast(
	ctx context.Context, network string, rawTx []byte,
) (string, error) {
	base, err := c.baseURL(network)
	if err != nil {
		return "", err
	}

	status, body, err := httputil.Post(
		ctx,
		base+"/v2/transactions",
		rawTx,
		map[string]string{"Content-Type": "application/octet-stream"},
	)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		reject := struct {
			Error  string `json:"error"`
			Reason string `json:"reason"`
		}{}
		if err := json.Unmarshal(body, &reject); err == nil && reject.Error != "" {
			reason := reject.Error
			if reject.Reason != "" {
				reason = fmt.Sprintf("%s (%s)", reason, reject.Reason)
			}
			return "", &domain.BroadcastError{Reason: reason}
		}
		return "", &domain.BroadcastError{Reason: string(body)}
	}

	txid := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if !strings.HasPrefix(txid, "0x") {
		txid = "0x" + txid
	}
	return txid, nil
}

// parseHexAmount converts the API's "0x..." microSTX quantities.
func parseHexAmount(value string) uint64 {
	value = strings.TrimPrefix(value, "0x")
	amount, err := strconv.ParseUint(value, 16, 64)
	if err != nil {
		return 0
	}
	return amount
}
