package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
	"github.com/Mohsinsiddi/tragcli/internal/wallet"
)

var (
	walletFromEnv    bool
	walletSetDefault bool
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage signing wallets",
	Long: `Manage signing wallets.

Private keys are kept in the OS keychain, or in an encrypted file keyring
under the config directory when no keychain is available. The file keyring
password is read from $` + wallet.PasswordEnv + ` or prompted for.`,
}

var walletImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a private key",
	Long: `Import a private key under a name.

The key is read from the terminal without echo, from stdin when it is not a
terminal, or from $` + config.EnvPrivateKey + ` with --from-env.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		var key string
		if walletFromEnv {
			key = strings.TrimSpace(os.Getenv(config.EnvPrivateKey))
			if key == "" {
				return fmt.Errorf("$%s is not set", config.EnvPrivateKey)
			}
		} else {
			var err error
			if key, err = readKey(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
				return err
			}
		}

		mgr, err := newWalletManager()
		if err != nil {
			return err
		}
		w, err := mgr.Import(name, key)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if walletSetDefault || cfg.DefaultWallet == "" {
			cfg.DefaultWallet = name
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
		}
		if jsonOut {
			return printJSON(out, w)
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Wallet %q imported: %s", name, ui.Addr(w.Address))))
		if cfg.DefaultWallet == name {
			fmt.Fprintln(out, ui.Info("Default wallet for writes."))
		} else {
			fmt.Fprintln(out, ui.Hint("Set as default with: tragcli wallet use "+name))
		}
		return nil
	},
}

var walletAddressCmd = &cobra.Command{
	Use:   "address [name]",
	Short: "Print a wallet's address (default: the default wallet)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.DefaultWallet
		if walletFlag != "" {
			name = walletFlag
		}
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			return fmt.Errorf("no wallet given and no default_wallet configured")
		}

		mgr, err := newWalletManager()
		if err != nil {
			return err
		}
		w, err := mgr.Get(name)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), map[string]string{"name": w.Name, "address": w.Address})
		}
		fmt.Fprintln(cmd.OutOrStdout(), w.Address)
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported wallets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newWalletManager()
		if err != nil {
			return err
		}
		wallets, err := mgr.List()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return printJSON(out, wallets)
		}
		if len(wallets) == 0 {
			fmt.Fprintln(out, ui.Info("No wallets imported yet."))
			fmt.Fprintln(out, ui.Hint("Import one with: tragcli wallet import <name>"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 42},
			{Title: "Created", Width: 20},
			{Title: "Default", Width: 7},
		})
		for _, w := range wallets {
			def := ""
			if w.Name == cfg.DefaultWallet {
				def = "✓"
			}
			t.AddRow(ui.Row{w.Name, w.Address, w.CreatedAt, def})
		}
		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("%d wallet(s)", len(wallets))))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default signing wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newWalletManager()
		if err != nil {
			return err
		}
		if _, err := mgr.Get(args[0]); err != nil {
			return err
		}
		cfg.DefaultWallet = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Default wallet set to %q.", args[0])))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and delete its key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := cmd.OutOrStdout()
		if !assumeYes && !ui.Confirm(cmd.InOrStdin(), out, fmt.Sprintf("Remove wallet %q and delete its key?", name)) {
			fmt.Fprintln(out, ui.Meta("Cancelled."))
			return nil
		}

		mgr, err := newWalletManager()
		if err != nil {
			return err
		}
		if err := mgr.Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

// readKey reads a private key without echo from a terminal, or one line
// from in otherwise.
func readKey(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Private key (hex, hidden): ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("reading key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading key from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	walletImportCmd.Flags().BoolVar(&walletFromEnv, "from-env", false, "read the key from $"+config.EnvPrivateKey)
	walletImportCmd.Flags().BoolVar(&walletSetDefault, "default", false, "make this the default wallet")

	walletCmd.AddCommand(walletImportCmd, walletAddressCmd, walletListCmd, walletUseCmd, walletRemoveCmd)
}
