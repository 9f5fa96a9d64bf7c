package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/Mohsinsiddi/tragcli/internal/rpc"
	"github.com/Mohsinsiddi/tragcli/internal/token"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
	"github.com/Mohsinsiddi/tragcli/internal/wallet"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// errorLine renders a command error, with a follow-up hint for the errors a
// user can fix themselves.
func errorLine(err error) string {
	line := ui.Err(err.Error())
	var hint string
	switch {
	case errors.Is(err, token.ErrNoCredential):
		hint = "Import a key with: tragcli wallet import <name>, or set $" + config.EnvPrivateKey
	case errors.Is(err, wallet.ErrWalletNotFound):
		hint = "List wallets with: tragcli wallet list"
	case errors.Is(err, rpc.ErrNoHealthyRPC):
		hint = "Check rpc_urls with: tragcli config show, or force one with --rpc"
	case errors.Is(err, config.ErrInvalidConfig):
		hint = "Restore defaults with: tragcli config reset"
	}
	if hint != "" {
		line += "\n" + ui.Hint(hint)
	}
	return line
}
