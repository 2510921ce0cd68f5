package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/spf13/viper"
)

const (
	// MnemonicKey is the BIP39 seed phrase every derivation starts from. It is
	// read from the environment only and never from flags, so it does not end
	// up in shell history or process listings
	MnemonicKey = "MNEMONIC"
	// DatadirKey is the local data directory where wallet files and exports are stored
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DefaultChainKey is the chain served by the suffix-less commands
	DefaultChainKey = "DEFAULT_CHAIN"
	// ScanRateKey is the fallback number of balance lookups per second for
	// chains without a dedicated rate key
	ScanRateKey = "SCAN_RATE"
	// TransferRateKey is the fallback number of broadcasts per second for
	// chains without a dedicated rate key
	TransferRateKey = "TRANSFER_RATE"

	// StacksAPIMainnetKey and StacksAPITestnetKey are the Stacks API base urls per network
	StacksAPIMainnetKey = "STACKS_API_MAINNET"
	StacksAPITestnetKey = "STACKS_API_TESTNET"
	// StacksFeeKey is the flat fee in microSTX attached to every Stacks transfer
	StacksFeeKey = "STACKS_FEE"
	// StacksScanRateKey and StacksTransferRateKey pace calls against the shared
	// public Stacks API, which rate-limits aggressively
	StacksScanRateKey     = "STACKS_SCAN_RATE"
	StacksTransferRateKey = "STACKS_TRANSFER_RATE"

	// EthRPCMainnetKey and EthRPCSepoliaKey are the ethereum JSON-RPC urls per network
	EthRPCMainnetKey = "ETH_RPC_MAINNET"
	EthRPCSepoliaKey = "ETH_RPC_SEPOLIA"
	// EthExplorerMainnetKey and EthExplorerSepoliaKey are etherscan-compatible API urls
	// used for transaction listings, which the JSON-RPC surface cannot serve
	EthExplorerMainnetKey = "ETH_EXPLORER_MAINNET"
	EthExplorerSepoliaKey = "ETH_EXPLORER_SEPOLIA"
	// EthFeeKey is the gas budget in wei attached to every ethereum transfer
	EthFeeKey = "ETH_FEE"
	// EthScanRateKey and EthTransferRateKey pace calls against the ethereum backends
	EthScanRateKey     = "ETH_SCAN_RATE"
	EthTransferRateKey = "ETH_TRANSFER_RATE"

	// BscRPCMainnetKey and BscExplorerMainnetKey configure the BNB Smart Chain backend
	BscRPCMainnetKey      = "BSC_RPC_MAINNET"
	BscExplorerMainnetKey = "BSC_EXPLORER_MAINNET"
	// BscFeeKey is the gas budget in wei attached to every BNB Smart Chain transfer
	BscFeeKey = "BSC_FEE"
	// BscScanRateKey and BscTransferRateKey pace calls against the BNB Smart Chain backends
	BscScanRateKey     = "BSC_SCAN_RATE"
	BscTransferRateKey = "BSC_TRANSFER_RATE"

	// SolanaRPCMainnetKey and SolanaRPCDevnetKey are the solana RPC urls per network
	SolanaRPCMainnetKey = "SOLANA_RPC_MAINNET"
	SolanaRPCDevnetKey  = "SOLANA_RPC_DEVNET"
	// SolanaFeeKey is the fee in lamports attached to every solana transfer
	SolanaFeeKey = "SOLANA_FEE"
	// SolanaScanRateKey and SolanaTransferRateKey pace calls against the solana RPC nodes
	SolanaScanRateKey     = "SOLANA_SCAN_RATE"
	SolanaTransferRateKey = "SOLANA_TRANSFER_RATE"

	WalletsLocation = "wallets"
	ExportsLocation = "exports"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("seedscan", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("SEEDSCAN")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DefaultChainKey, "stacks")
	vip.SetDefault(ScanRateKey, 2)
	vip.SetDefault(TransferRateKey, 1)

	vip.SetDefault(StacksAPIMainnetKey, "https://api.hiro.so")
	vip.SetDefault(StacksAPITestnetKey, "https://api.testnet.hiro.so")
	vip.SetDefault(StacksFeeKey, 3000)

	vip.SetDefault(EthRPCMainnetKey, "https://eth.llamarpc.com")
	vip.SetDefault(EthRPCSepoliaKey, "https://rpc.sepolia.org")
	vip.SetDefault(EthExplorerMainnetKey, "https://api.etherscan.io")
	vip.SetDefault(EthExplorerSepoliaKey, "https://api-sepolia.etherscan.io")
	vip.SetDefault(EthFeeKey, 1000000000000000)

	vip.SetDefault(BscRPCMainnetKey, "https://bsc-dataseed.binance.org")
	vip.SetDefault(BscExplorerMainnetKey, "https://api.bscscan.com")
	vip.SetDefault(BscFeeKey, 1000000000000000)

	vip.SetDefault(SolanaRPCMainnetKey, "https://api.mainnet-beta.solana.com")
	vip.SetDefault(SolanaRPCDevnetKey, "https://api.devnet.solana.com")
	vip.SetDefault(SolanaFeeKey, 5000)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetMnemonic returns the seed phrase from the environment.
func GetMnemonic() string {
	return vip.GetString(MnemonicKey)
}

var feeKeyByChain = map[string]string{
	"stacks": StacksFeeKey,
	"eth":    EthFeeKey,
	"bsc":    BscFeeKey,
	"solana": SolanaFeeKey,
}

// GetFeeBudget returns the default fee budget for the given chain, in the
// chain's base unit. Chains without a dedicated fee key get zero.
func GetFeeBudget(chain string) uint64 {
	key, ok := feeKeyByChain[chain]
	if !ok {
		return 0
	}
	return vip.GetUint64(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if level := GetInt(LogLevelKey); level < 0 || level > 6 {
		return fmt.Errorf("%s must be in the range [0, 6]", LogLevelKey)
	}

	if GetInt(ScanRateKey) <= 0 {
		return fmt.Errorf("%s must be a positive number of requests per second", ScanRateKey)
	}
	if GetInt(TransferRateKey) <= 0 {
		return fmt.Errorf("%s must be a positive number of requests per second", TransferRateKey)
	}

	for _, key := range []string{StacksFeeKey, EthFeeKey, BscFeeKey, SolanaFeeKey} {
		if GetUint64(key) == 0 {
			return fmt.Errorf("%s must be a positive fee in the chain's base unit", key)
		}
	}

	for _, key := range []string{
		StacksScanRateKey, StacksTransferRateKey,
		EthScanRateKey, EthTransferRateKey,
		BscScanRateKey, BscTransferRateKey,
		SolanaScanRateKey, SolanaTransferRateKey,
	} {
		if GetInt(key) < 0 {
			return fmt.Errorf("%s must be a non-negative number of requests per second", key)
		}
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, WalletsLocation)); err != nil {
		return err
	}
	return makeDirectoryIfNotExists(filepath.Join(datadir, ExportsLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
