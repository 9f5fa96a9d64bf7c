package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup wizard",
	Long:  "Launch the interactive setup wizard to pick a network, RPC strategy and signing wallet.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Banner(Version))

		result, err := ui.RunWizard(config.PresetNames())
		if err != nil {
			return err
		}
		if result.Aborted {
			fmt.Fprintln(out, ui.Meta("Setup aborted, nothing saved."))
			return nil
		}
		return applyWizard(cmd, result)
	},
}

// applyWizard saves the wizard answers and, when a wallet name was given,
// imports a key under it.
func applyWizard(cmd *cobra.Command, result *ui.WizardResult) error {
	out := cmd.OutOrStdout()

	if result.Network != "" {
		if err := cfg.ApplyPreset(result.Network); err != nil {
			return err
		}
	}
	if result.RPCStrategy != "" {
		if err := cfg.Set("rpc_strategy", result.RPCStrategy); err != nil {
			return err
		}
	}
	if result.RPCURL != "" {
		if err := cfg.Set("rpc_urls", result.RPCURL); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if result.WalletName != "" {
		key, err := readKey(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		mgr, err := newWalletManager()
		if err != nil {
			return err
		}
		w, err := mgr.Import(result.WalletName, key)
		if err != nil {
			fmt.Fprintln(out, ui.Warn(fmt.Sprintf("Could not import wallet: %v", err)))
		} else {
			cfg.DefaultWallet = w.Name
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintln(out, ui.Success(fmt.Sprintf("Wallet %q imported: %s", w.Name, ui.Addr(w.Address))))
		}
	}

	fmt.Fprintln(out, ui.Success("tragcli configured for "+ui.ChainName(cfg.Network)+". Try: tragcli info"))
	return nil
}
