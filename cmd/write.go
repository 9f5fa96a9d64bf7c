package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/tragcli/internal/token"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
)

// writeCall describes one state-changing command. addrs are validated before
// the client is built; amount is the last positional argument.
type writeCall struct {
	method string
	title  string
	labels []string // one per address argument
	send   func(ctx context.Context, c *token.Client, args []string) (*types.Receipt, error)
}

func newWriteCmd(use, short string, w writeCall) *cobra.Command {
	nargs := len(w.labels) + 1
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, w, args)
		},
	}
}

func runWrite(cmd *cobra.Command, w writeCall, args []string) error {
	addrs := args[:len(w.labels)]
	amount, err := checkedAmount(args[len(args)-1])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newTokenClient(ctx, true, addrs...)
	if err != nil {
		return err
	}
	defer client.Close()

	from, _ := client.Address()
	pairs := [][2]string{
		{"Method", w.method},
		{"From", ui.Addr(from.Hex())},
	}
	for i, label := range w.labels {
		pairs = append(pairs, [2]string{label, ui.Addr(addrs[i])})
	}
	pairs = append(pairs,
		[2]string{"Amount", ui.Val(amount.Formatted)},
		[2]string{"Raw", ui.Meta(amount.Raw.String())},
		[2]string{"Contract", ui.Addr(client.Contract().Hex())},
		[2]string{"Network", ui.ChainName(cfg.Network) + ui.Meta(" (chain "+client.ChainID().String()+")")},
	)

	// Keep stdout clean for --json.
	prompt := cmd.OutOrStdout()
	if jsonOut {
		prompt = cmd.ErrOrStderr()
	}
	fmt.Fprintln(prompt, ui.KeyValueBlock(w.title, pairs))
	if !assumeYes && !ui.Confirm(cmd.InOrStdin(), prompt, "Broadcast this transaction?") {
		fmt.Fprintln(prompt, ui.Meta("Cancelled."))
		return nil
	}

	spin := ui.NewSpinner("Sending " + w.method + " and waiting for confirmation...")
	spin.Start()
	receipt, err := w.send(ctx, client, args)
	spin.Stop()

	if receipt != nil {
		if perr := printReceipt(cmd, w.method, receipt); perr != nil {
			return perr
		}
	}
	return err
}

type txResult struct {
	Method   string         `json:"method"`
	TxHash   string         `json:"transactionHash"`
	Status   string         `json:"status"`
	Explorer string         `json:"explorer,omitempty"`
	Receipt  *types.Receipt `json:"receipt"`
}

func printReceipt(cmd *cobra.Command, method string, r *types.Receipt) error {
	status := "success"
	if r.Status == types.ReceiptStatusFailed {
		status = "reverted"
	}
	hash := r.TxHash.Hex()
	link := cfg.TxURL(hash)

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), txResult{
			Method:   method,
			TxHash:   hash,
			Status:   status,
			Explorer: link,
			Receipt:  r,
		})
	}

	out := cmd.OutOrStdout()
	if status == "success" {
		fmt.Fprintln(out, ui.Success("Transaction mined!"))
	} else {
		fmt.Fprintln(out, ui.Warn("Transaction reverted."))
	}
	block := ""
	if r.BlockNumber != nil {
		block = r.BlockNumber.String()
	}
	fmt.Fprintln(out, ui.KeyValueBlock("", [][2]string{
		{"Hash", ui.Addr(hash)},
		{"Block", block},
		{"Gas Used", strconv.FormatUint(r.GasUsed, 10)},
	}))
	if link != "" {
		fmt.Fprintln(out, ui.Meta(link))
	}
	return nil
}

var transferCmd = newWriteCmd("transfer <to> <amount>", "Transfer tokens from the signing wallet", writeCall{
	method: "transfer",
	title:  "Transfer Preview",
	labels: []string{"To"},
	send: func(ctx context.Context, c *token.Client, args []string) (*types.Receipt, error) {
		return c.Transfer(ctx, args[0], args[1])
	},
})

var transferFromCmd = newWriteCmd("transfer-from <from> <to> <amount>", "Transfer tokens on behalf of an owner, using an allowance", writeCall{
	method: "transferFrom",
	title:  "Transfer From Preview",
	labels: []string{"Owner", "To"},
	send: func(ctx context.Context, c *token.Client, args []string) (*types.Receipt, error) {
		return c.TransferFrom(ctx, args[0], args[1], args[2])
	},
})

var approveCmd = newWriteCmd("approve <spender> <amount>", "Set the allowance of spender", writeCall{
	method: "approve",
	title:  "Approve Preview",
	labels: []string{"Spender"},
	send: func(ctx context.Context, c *token.Client, args []string) (*types.Receipt, error) {
		return c.Approve(ctx, args[0], args[1])
	},
})

var increaseAllowanceCmd = newWriteCmd("increase-allowance <spender> <amount>", "Raise the allowance of spender", writeCall{
	method: "increaseAllowance",
	title:  "Increase Allowance Preview",
	labels: []string{"Spender"},
	send: func(ctx context.Context, c *token.Client, args []string) (*types.Receipt, error) {
		return c.IncreaseAllowance(ctx, args[0], args[1])
	},
})

var decreaseAllowanceCmd = newWriteCmd("decrease-allowance <spender> <amount>", "Lower the allowance of spender", writeCall{
	method: "decreaseAllowance",
	title:  "Decrease Allowance Preview",
	labels: []string{"Spender"},
	send: func(ctx context.Context, c *token.Client, args []string) (*types.Receipt, error) {
		return c.DecreaseAllowance(ctx, args[0], args[1])
	},
})

var burnCmd = newWriteCmd("burn <amount>", "Destroy tokens held by the signing wallet", writeCall{
	method: "burn",
	title:  "Burn Preview",
	send: func(ctx context.Context, c *token.Client, args []string) (*types.Receipt, error) {
		return c.Burn(ctx, args[0])
	},
})
