package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/Mohsinsiddi/tragcli/internal/token"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
	"github.com/Mohsinsiddi/tragcli/internal/units"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show token name, symbol, decimals and total supply",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.ReadTimeout)
		defer cancel()

		client, err := newTokenClient(ctx, false)
		if err != nil {
			return err
		}
		defer client.Close()

		spin := ui.NewSpinner("Fetching token info...")
		spin.Start()
		info, err := client.TokenInfo(ctx)
		spin.Stop()
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(cmd.OutOrStdout(), info)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Token", [][2]string{
			{"Name", info.Name},
			{"Symbol", info.Symbol},
			{"Decimals", strconv.Itoa(int(info.Decimals))},
			{"Total Supply", info.TotalSupply.Formatted + " " + info.Symbol},
			{"Contract", ui.Addr(info.Contract)},
			{"Network", ui.ChainName(cfg.Network)},
		}))
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show the token balance of an address",
	Example: `  tragcli balance 0x70997970C51812dc3A010C7d01b50e0d17dc79C8
  tragcli balance 0x7099...79C8 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.ReadTimeout)
		defer cancel()

		client, err := newTokenClient(ctx, false, args[0])
		if err != nil {
			return err
		}
		defer client.Close()

		bal, err := client.Balance(ctx, args[0])
		if err != nil {
			return err
		}
		return printAmount(cmd, client, "Balance", bal, [][2]string{
			{"Address", ui.Addr(args[0])},
		})
	},
}

var allowanceCmd = &cobra.Command{
	Use:   "allowance <owner> <spender>",
	Short: "Show how much spender may transfer from owner",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.ReadTimeout)
		defer cancel()

		client, err := newTokenClient(ctx, false, args[0], args[1])
		if err != nil {
			return err
		}
		defer client.Close()

		allowance, err := client.Allowance(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return printAmount(cmd, client, "Allowance", allowance, [][2]string{
			{"Owner", ui.Addr(args[0])},
			{"Spender", ui.Addr(args[1])},
		})
	},
}

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Show the token contract owner",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.ReadTimeout)
		defer cancel()

		client, err := newTokenClient(ctx, false)
		if err != nil {
			return err
		}
		defer client.Close()

		owner, err := client.Owner(ctx)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), map[string]string{"owner": owner.Hex()})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Addr(owner.Hex()))
		return nil
	},
}

type amountResult struct {
	Amount   units.Amount `json:"amount"`
	Contract string       `json:"contractAddress"`
}

func printAmount(cmd *cobra.Command, client *token.Client, title string, a units.Amount, pairs [][2]string) error {
	if jsonOut {
		return printJSON(cmd.OutOrStdout(), amountResult{Amount: a, Contract: client.Contract().Hex()})
	}
	pairs = append(pairs,
		[2]string{title, ui.Val(a.Formatted)},
		[2]string{"Raw", ui.Meta(a.Raw.String())},
	)
	fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("", pairs))
	return nil
}

// checkedAmount validates an amount argument at the configured precision.
func checkedAmount(s string) (units.Amount, error) {
	raw, err := units.ToRawUnits(s, cfg.Decimals)
	if err != nil {
		return units.Amount{}, err
	}
	return units.NewAmount(raw, cfg.Decimals), nil
}
