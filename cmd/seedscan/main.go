package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/seedscan/seedscan/internal/config"
	"github.com/seedscan/seedscan/internal/core/application"
	"github.com/seedscan/seedscan/internal/core/registry"
	"github.com/seedscan/seedscan/internal/infrastructure/chain/evm"
	"github.com/seedscan/seedscan/internal/infrastructure/chain/solana"
	"github.com/seedscan/seedscan/internal/infrastructure/chain/stacks"
	"github.com/seedscan/seedscan/internal/infrastructure/walletstore"
)

var (
	chains   *registry.Registry
	scanner  *application.ScannerService
	transfer *application.TransferService
	store    *walletstore.Store
)

func main() {
	if err := config.InitConfig(); err != nil {
		fatal(err)
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	chains = buildRegistry()
	scanner = application.NewScannerService(config.GetInt(config.ScanRateKey))
	transfer = application.NewTransferService(config.GetInt(config.TransferRateKey))
	store = walletstore.NewStore()

	app := cli.NewApp()
	app.Version = "0.3.0"
	app.Name = "seedscan"
	app.Usage = "derive, scan and sweep HD wallet accounts across chains"
	app.Commands = withChainVariants(
		&generate,
		&scan,
		&transferCmd,
		&find,
		&tx,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// buildRegistry wires every chain backend from config. The default
// chain serves the suffix-less commands.
func buildRegistry() *registry.Registry {
	r := registry.New(config.GetString(config.DefaultChainKey))

	r.Register("stacks", stacks.NewAdapter(stacks.Config{
		DefaultNetwork: "mainnet",
		APIURLs: map[string]string{
			"mainnet": config.GetString(config.StacksAPIMainnetKey),
			"testnet": config.GetString(config.StacksAPITestnetKey),
		},
		ScanRate:     config.GetInt(config.StacksScanRateKey),
		TransferRate: config.GetInt(config.StacksTransferRateKey),
	}))

	r.Register("eth", evm.NewAdapter(evm.Config{
		Name:           "eth",
		Symbol:         "ETH",
		DefaultNetwork: "mainnet",
		ChainIDs:       map[string]int64{"mainnet": 1, "sepolia": 11155111},
		RPCURLs: map[string]string{
			"mainnet": config.GetString(config.EthRPCMainnetKey),
			"sepolia": config.GetString(config.EthRPCSepoliaKey),
		},
		ExplorerURLs: map[string]string{
			"mainnet": config.GetString(config.EthExplorerMainnetKey),
			"sepolia": config.GetString(config.EthExplorerSepoliaKey),
		},
		ScanRate:     config.GetInt(config.EthScanRateKey),
		TransferRate: config.GetInt(config.EthTransferRateKey),
	}))

	r.Register("bsc", evm.NewAdapter(evm.Config{
		Name:           "bsc",
		Symbol:         "BNB",
		DefaultNetwork: "mainnet",
		ChainIDs:       map[string]int64{"mainnet": 56},
		RPCURLs: map[string]string{
			"mainnet": config.GetString(config.BscRPCMainnetKey),
		},
		ExplorerURLs: map[string]string{
			"mainnet": config.GetString(config.BscExplorerMainnetKey),
		},
		ScanRate:     config.GetInt(config.BscScanRateKey),
		TransferRate: config.GetInt(config.BscTransferRateKey),
	}))

	r.Register("solana", solana.NewAdapter(solana.Config{
		DefaultNetwork: "mainnet-beta",
		RPCURLs: map[string]string{
			"mainnet-beta": config.GetString(config.SolanaRPCMainnetKey),
			"devnet":       config.GetString(config.SolanaRPCDevnetKey),
		},
		ScanRate:     config.GetInt(config.SolanaScanRateKey),
		TransferRate: config.GetInt(config.SolanaTransferRateKey),
	}))

	return r
}

// withChainVariants expands every verb with one <verb>-<chain> alias per
// registered non-default chain. All variants share flags and action, the
// serving adapter is resolved from the invoked name.
func withChainVariants(commands ...*cli.Command) []*cli.Command {
	defaultChain := config.GetString(config.DefaultChainKey)

	expanded := make([]*cli.Command, 0, len(commands)*len(chains.Chains()))
	for _, command := range commands {
		expanded = append(expanded, command)
		for _, chain := range chains.Chains() {
			if chain == defaultChain {
				continue
			}
			variant := *command
			variant.Name = fmt.Sprintf("%s-%s", command.Name, chain)
			variant.Usage = fmt.Sprintf("%s (%s)", command.Usage, chain)
			expanded = append(expanded, &variant)
		}
	}
	return expanded
}

// readMnemonic resolves the seed phrase from the env var named by the
// first positional argument, falling back to SEEDSCAN_MNEMONIC. The
// phrase itself never travels through argv.
func readMnemonic(ctx *cli.Context) (string, error) {
	if name := ctx.Args().First(); name != "" {
		mnemonic := os.Getenv(name)
		if mnemonic == "" {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
		return mnemonic, nil
	}
	if mnemonic := config.GetMnemonic(); mnemonic != "" {
		return mnemonic, nil
	}
	return "", fmt.Errorf(
		"pass the name of the env var holding the mnemonic, or set SEEDSCAN_%s",
		config.MnemonicKey,
	)
}

// walletPath places unqualified output names inside the datadir.
func walletPath(name string) string {
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(config.GetDatadir(), config.WalletsLocation, name)
}

func printJSON(v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[seedscan] %v\n", err)
	os.Exit(1)
}
