package application

import (
	"context"
	"fmt"
	"strconv"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
)

// fakeAdapter implements only the required backend surface, so probing
// it for optional capabilities fails.
type fakeAdapter struct {
	balances    map[string]domain.Balance
	balanceErrs map[string]error
	txs         []domain.TransactionRecord
	scanRate    int
}

var _ ports.ChainAdapter = (*fakeAdapter)(nil)

func (f *fakeAdapter) Info() domain.ChainInfo {
	return domain.ChainInfo{
		Name:           "fakechain",
		Symbol:         "FAK",
		CoinType:       1,
		Networks:       []string{"mainnet", "testnet"},
		DefaultNetwork: "mainnet",
		Decimals:       6,
		ScanRate:       f.scanRate,
	}
}

func (f *fakeAdapter) ValidateMnemonic(mnemonic string) error {
	if mnemonic == "" {
		return domain.ErrEmptyMnemonic
	}
	if mnemonic == "garbage" {
		return domain.ErrInvalidMnemonic
	}
	return nil
}

func (f *fakeAdapter) DeriveAccounts(
	_ context.Context, _ string, count int, _ string,
) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, count)
	for i := 0; i < count; i++ {
		accounts = append(accounts, domain.Account{
			Index:          i,
			Address:        "FAKE" + strconv.Itoa(i),
			PrivateKey:     "aa" + strconv.Itoa(i),
			DerivationPath: fmt.Sprintf("m/44'/1'/0'/0/%d", i),
		})
	}
	return accounts, nil
}

func (f *fakeAdapter) Balance(
	_ context.Context, address, _ string,
) (domain.Balance, error) {
	if err, ok := f.balanceErrs[address]; ok {
		return domain.Balance{}, err
	}
	return f.balances[address], nil
}

func (f *fakeAdapter) Transactions(
	_ context.Context, _, _ string, _, _ int,
) ([]domain.TransactionRecord, error) {
	return f.txs, nil
}

func (f *fakeAdapter) CSVHeader() []string {
	return []string{"index", "address"}
}

func (f *fakeAdapter) CSVRecord(entry domain.WalletEntry) []string {
	return []string{strconv.Itoa(entry.Index), entry.Address}
}

// fakeTransferAdapter adds the transfer and inspection capabilities on
// top of the required surface.
type fakeTransferAdapter struct {
	fakeAdapter

	sequences    map[string]uint64
	sequenceErrs map[string]error
	transferErrs map[string]error
	record       domain.TransactionRecord

	broadcasts []domain.TransferRequest
}

var (
	_ ports.ChainAdapter         = (*fakeTransferAdapter)(nil)
	_ ports.Transferrer          = (*fakeTransferAdapter)(nil)
	_ ports.TransactionInspector = (*fakeTransferAdapter)(nil)
)

func (f *fakeTransferAdapter) SequenceNumber(
	_ context.Context, address, _ string,
) (uint64, error) {
	if err, ok := f.sequenceErrs[address]; ok {
		return 0, err
	}
	return f.sequences[address], nil
}

func (f *fakeTransferAdapter) Transfer(
	_ context.Context, req domain.TransferRequest, _ string,
) (string, error) {
	f.broadcasts = append(f.broadcasts, req)
	if err, ok := f.transferErrs[req.Account.Address]; ok {
		return "", err
	}
	return "0xtx" + strconv.Itoa(req.Account.Index), nil
}

func (f *fakeTransferAdapter) Transaction(
	_ context.Context, _, _ string,
) (domain.TransactionRecord, error) {
	return f.record, nil
}
