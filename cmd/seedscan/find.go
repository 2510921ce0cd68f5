package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var find = cli.Command{
	Name:      "find",
	Usage:     "look an address up in a previously generated wallet file",
	ArgsUsage: "ADDRESS",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "wallet",
			Aliases:  []string{"w"},
			Usage:    "wallet file to search",
			Required: true,
		},
	},
	Action: findAction,
}

func findAction(ctx *cli.Context) error {
	address := ctx.Args().First()
	if address == "" {
		return fmt.Errorf("pass the address to look up")
	}

	wallet, err := store.Load(walletPath(ctx.String("wallet")))
	if err != nil {
		return err
	}

	entry, ok := wallet.FindAddress(address)
	if !ok {
		return fmt.Errorf(
			"address %s not found among the %d entries of %s",
			address, wallet.TotalAddresses, wallet.WalletName,
		)
	}
	return printJSON(entry)
}
