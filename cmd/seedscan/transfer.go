package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/seedscan/seedscan/internal/config"
	"github.com/seedscan/seedscan/internal/core/application"
	"github.com/seedscan/seedscan/internal/core/domain"
)

var transferCmd = cli.Command{
	Name:      "transfer",
	Usage:     "sweep funds from derived accounts to a single recipient",
	ArgsUsage: "MNEMONIC_ENV_VAR",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "wallet",
			Aliases: []string{"w"},
			Usage:   "wallet file holding the scanned accounts, re-scans when empty",
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "number of accounts to scan when no wallet file is given",
			Value:   10,
		},
		&cli.StringFlag{
			Name:     "address",
			Aliases:  []string{"a"},
			Usage:    "recipient address",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "amount",
			Usage: "amount to send per account in base units",
		},
		&cli.BoolFlag{
			Name:  "send-all",
			Usage: "send everything above the fee budget from each account",
		},
		&cli.Uint64Flag{
			Name:  "fee",
			Usage: "fee budget per transfer in base units (config default when zero)",
		},
		&cli.IntSliceFlag{
			Name:    "index",
			Aliases: []string{"i"},
			Usage:   "restrict the batch to these derivation indices",
		},
		&cli.StringFlag{
			Name:  "memo",
			Usage: "memo to attach where the chain supports one",
		},
		&cli.StringFlag{
			Name:    "network",
			Aliases: []string{"n"},
			Usage:   "network to broadcast on (chain default when empty)",
		},
	},
	Action: transferAction,
}

func transferAction(ctx *cli.Context) error {
	adapter, err := chains.DetectChain(ctx.Command.Name)
	if err != nil {
		return err
	}

	entries, err := batchEntries(ctx)
	if err != nil {
		return err
	}

	fee := ctx.Uint64("fee")
	if fee == 0 {
		fee = config.GetFeeBudget(adapter.Info().Name)
	}

	summary, err := transfer.Execute(ctx.Context, adapter, application.BatchOptions{
		Entries:   entries,
		Indices:   ctx.IntSlice("index"),
		Recipient: ctx.String("address"),
		Amount:    ctx.Uint64("amount"),
		SendAll:   ctx.Bool("send-all"),
		FeeBudget: fee,
		Memo:      ctx.String("memo"),
		Network:   ctx.String("network"),
	})
	if err != nil {
		return err
	}
	if err := printJSON(summary); err != nil {
		return err
	}
	if summary.Errors > 0 {
		return fmt.Errorf("%d transfers did not reach the network", summary.Errors)
	}
	return nil
}

// batchEntries loads the account set either from a previously written
// wallet file or from a fresh scan of the mnemonic.
func batchEntries(ctx *cli.Context) ([]domain.WalletEntry, error) {
	if path := ctx.String("wallet"); path != "" {
		wallet, err := store.Load(walletPath(path))
		if err != nil {
			return nil, err
		}
		return wallet.Addresses, nil
	}

	adapter, err := chains.DetectChain(ctx.Command.Name)
	if err != nil {
		return nil, err
	}
	mnemonic, err := readMnemonic(ctx)
	if err != nil {
		return nil, err
	}
	entries, _, err := scanner.Scan(
		ctx.Context, adapter, mnemonic, ctx.Int("count"), ctx.String("network"),
	)
	return entries, err
}
