package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var scan = cli.Command{
	Name:      "scan",
	Usage:     "derive addresses and check every one of them for funds",
	ArgsUsage: "MNEMONIC_ENV_VAR",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "number of accounts to derive and check",
			Value:   10,
		},
		&cli.StringFlag{
			Name:    "network",
			Aliases: []string{"n"},
			Usage:   "network to scan (chain default when empty)",
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
	Action: scanAction,
}

func scanAction(ctx *cli.Context) error {
	adapter, err := chains.DetectChain(ctx.Command.Name)
	if err != nil {
		return err
	}
	mnemonic, err := readMnemonic(ctx)
	if err != nil {
		return err
	}

	entries, summary, err := scanner.Scan(
		ctx.Context, adapter, mnemonic, ctx.Int("count"), ctx.String("network"),
	)
	if err != nil {
		return err
	}

	info := adapter.Info()
	log.Infof(
		"%s %s: %d/%d accounts hold %d %s in total (%d spendable, %d locked)",
		info.Name, summary.Network, summary.WithBalance, summary.Total,
		summary.Sum, info.Symbol, summary.SumSpendable, summary.SumLocked,
	)

	wallet := newWalletFile(info, ctx.String("network"), entries)
	return writeWallet(ctx, adapter, wallet)
}
