package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/seedscan/seedscan/internal/core/domain"
	"github.com/seedscan/seedscan/internal/core/ports"
)

var generate = cli.Command{
	Name:      "generate",
	Usage:     "derive addresses from a mnemonic without any network lookups",
	ArgsUsage: "MNEMONIC_ENV_VAR",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "number of accounts to derive",
			Value:   10,
		},
		&cli.StringFlag{
			Name:    "network",
			Aliases: []string{"n"},
			Usage:   "network to derive addresses for (chain default when empty)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "wallet file to write, printed to stdout when empty",
		},
		&cli.BoolFlag{
			Name:  "csv",
			Usage: "additionally export the wallet as csv next to the json file",
		},
	},
	Action: generateAction,
}

func generateAction(ctx *cli.Context) error {
	adapter, err := chains.DetectChain(ctx.Command.Name)
	if err != nil {
		return err
	}
	mnemonic, err := readMnemonic(ctx)
	if err != nil {
		return err
	}

	entries, err := scanner.Generate(
		ctx.Context, adapter, mnemonic, ctx.Int("count"), ctx.String("network"),
	)
	if err != nil {
		return err
	}

	wallet := newWalletFile(adapter.Info(), ctx.String("network"), entries)
	return writeWallet(ctx, adapter, wallet)
}

func newWalletFile(
	info domain.ChainInfo, network string, entries []domain.WalletEntry,
) *domain.WalletFile {
	if network == "" {
		network = info.DefaultNetwork
	}
	return &domain.WalletFile{
		Blockchain: info.Name,
		WalletName: info.Name + "-" + network,
		Network:    network,
		Addresses:  entries,
	}
}

func writeWallet(
	ctx *cli.Context, adapter ports.ChainAdapter, wallet *domain.WalletFile,
) error {
	output := ctx.String("output")
	if output == "" {
		return printJSON(wallet)
	}

	path := walletPath(output)
	if err := store.Write(path, wallet); err != nil {
		return err
	}
	if ctx.Bool("csv") {
		csvPath := strings.TrimSuffix(path, ".json") + ".csv"
		return store.WriteCSV(csvPath, wallet, adapter)
	}
	return nil
}
