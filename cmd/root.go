package cmd

import (
	"fmt"
	"os"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/tragcli/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir     string
	cfg        *config.Config
	rpcFlag    string
	walletFlag string
	verbose    bool
	jsonOut    bool
	assumeYes  bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "tragcli",
	Short: "TRAG token client for BNB Smart Chain",
	Long: `tragcli reads and writes the TRAG ERC-20 token on BNB Smart Chain.

  Query token info, balances and allowances without a key. Transfer,
  approve and burn with a key imported into the OS keychain, or given in
  $TRAG_PRIVATE_KEY for a single invocation.

Amounts are decimal strings at the configured precision (default 6).
The RPC endpoint is picked from rpc_urls with the configured strategy,
or forced with --rpc / $TRAG_RPC_URL.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd.ErrOrStderr(), verbose)

		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: $TRAG_CONFIG_DIR or ~/.tragcli)")
	rootCmd.PersistentFlags().StringVar(&rpcFlag, "rpc", "", "RPC URL, skips endpoint selection")
	rootCmd.PersistentFlags().StringVarP(&walletFlag, "wallet", "w", "", "signing wallet name (default: config default_wallet)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "skip transaction confirmation")

	rootCmd.AddCommand(
		initCmd,
		infoCmd,
		balanceCmd,
		allowanceCmd,
		ownerCmd,
		transferCmd,
		transferFromCmd,
		approveCmd,
		increaseAllowanceCmd,
		decreaseAllowanceCmd,
		burnCmd,
		convertCmd,
		abiCmd,
		walletCmd,
		configCmd,
	)
}
