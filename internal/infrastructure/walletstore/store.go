// Package walletstore persists generated address sets to structured
// JSON files and loads them back for lookup and transfer tooling.
package walletstore

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
)

var (
	// ErrEmptyWallet ...
	ErrEmptyWallet = errors.New("wallet file contains no addresses")
)

// Store reads and writes wallet files. Concurrent writers from multiple
// processes are not coordinated, single-writer discipline is the
// caller's responsibility.
type Store struct{}

// NewStore ...
func NewStore() *Store {
	return &Store{}
}

// Write serializes the wallet to path. The file contains private keys,
// so it is created owner-readable only.
func (s *Store) Write(path string, wallet *domain.WalletFile) error {
	wallet.TotalAddresses = len(wallet.Addresses)
	if wallet.GeneratedAt.IsZero() {
		wallet.GeneratedAt = time.Now().UTC()
	}

	buf, err := json.MarshalIndent(wallet, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing wallet file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating wallet directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf, 0600); err != nil {
		return fmt.Errorf("writing wallet file: %w", err)
	}

	log.Infof("wrote %d addresses to %s", wallet.TotalAddresses, path)
	return nil
}

// Load reads and validates a wallet file. A missing or corrupt file is
// reported as an error, never a panic.
func (s *Store) Load(path string) (*domain.WalletFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading wallet file: %w", err)
	}

	wallet := &domain.WalletFile{}
	if err := json.Unmarshal(buf, wallet); err != nil {
		return nil, fmt.Errorf("parsing wallet file %s: %w", path, err)
	}
	if len(wallet.Addresses) == 0 {
		return nil, ErrEmptyWallet
	}
	return wallet, nil
}

// WriteCSV exports the wallet through the adapter's chain-specific
// column layout, one data row per account.
func (s *Store) WriteCSV(
	path string, wallet *domain.WalletFile, adapter ports.ChainAdapter,
) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(adapter.CSVHeader()); err != nil {
		return err
	}
	for _, entry := range wallet.Addresses {
		if err := writer.Write(adapter.CSVRecord(entry)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
