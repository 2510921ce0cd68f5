package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/seedscan/seedscan/internal/core/application"
)

var tx = cli.Command{
	Name:      "tx",
	Usage:     "inspect a transaction or list an address's history",
	ArgsUsage: "[TXID]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "address",
			Aliases: []string{"a"},
			Usage:   "list transactions of this address instead of inspecting a txid",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "number of transactions to list",
			Value:   20,
		},
		&cli.IntFlag{
			Name:  "offset",
			Usage: "number of transactions to skip",
		},
		&cli.StringFlag{
			Name:    "network",
			Aliases: []string{"n"},
			Usage:   "network to query (chain default when empty)",
		},
		&cli.StringFlag{
			Name:    "wallet",
			Aliases: []string{"w"},
			Usage:   "wallet file to cross-reference extracted recipients against",
		},
	},
	Action: txAction,
}

func txAction(ctx *cli.Context) error {
	adapter, err := chains.DetectChain(ctx.Command.Name)
	if err != nil {
		return err
	}

	if address := ctx.String("address"); address != "" {
		records, err := application.ListTransactions(
			ctx.Context, adapter, address, ctx.String("network"),
			ctx.Int("limit"), ctx.Int("offset"),
		)
		if err != nil {
			return err
		}
		return printJSON(records)
	}

	txid := ctx.Args().First()
	if txid == "" {
		return fmt.Errorf("pass a txid, or --address to list a history")
	}

	record, err := application.InspectTransaction(
		ctx.Context, adapter, txid, ctx.String("network"),
	)
	if err != nil {
		return err
	}
	if err := printJSON(record); err != nil {
		return err
	}

	if path := ctx.String("wallet"); path != "" && len(record.Recipients) > 0 {
		wallet, err := store.Load(walletPath(path))
		if err != nil {
			return err
		}
		report := application.CrossReference(record.Recipients, wallet)
		fmt.Printf(
			"%d of %d recipients are ours, %d base units attributable\n",
			len(report.Matches), len(record.Recipients), report.TotalAmount,
		)
		return printJSON(report)
	}
	return nil
}
