package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), cfg)
		}
		pairs := make([][2]string, 0, len(config.Keys()))
		for _, k := range config.Keys() {
			v, err := cfg.Get(k)
			if err != nil {
				return err
			}
			pairs = append(pairs, [2]string{k, v})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Current Configuration", pairs))
		fmt.Fprintln(cmd.OutOrStdout(), ui.Meta("Config directory: "+cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

Setting network applies that preset's chain id, RPC URLs and contract.
Known networks: bsc, bsc-testnet.`,
	Example: `  tragcli config set network bsc-testnet
  tragcli config set rpc_urls https://a.example,https://b.example
  tragcli config set rpc_strategy failover
  tragcli config set abi_file ./artifacts/Token.json`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveDefault
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		v, _ := cfg.Get(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("%s set to %q", args[0], v)))
		return nil
	},
}

var configAddRPCCmd = &cobra.Command{
	Use:   "add-rpc <url>",
	Short: "Append an RPC URL to rpc_urls",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.AddRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("RPC added: "+args[0]))
		return nil
	},
}

var configRemoveRPCCmd = &cobra.Command{
	Use:   "remove-rpc <url>",
	Short: "Remove an RPC URL from rpc_urls",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("RPC removed: "+args[0]))
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !assumeYes && !ui.Confirm(cmd.InOrStdin(), out, "Reset all settings to defaults?") {
			fmt.Fprintln(out, ui.Meta("Cancelled."))
			return nil
		}
		cfg.Reset()
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success("Configuration reset."))
		fmt.Fprintln(out, ui.Hint("Wallets and keys are kept. Remove them with: tragcli wallet remove <name>"))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configAddRPCCmd, configRemoveRPCCmd, configResetCmd)
}
