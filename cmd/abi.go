package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/tragcli/internal/contract"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
)

var abiCmd = &cobra.Command{
	Use:   "abi",
	Short: "Inspect builtin and artifact ABIs",
}

var abiListCmd = &cobra.Command{
	Use:   "list",
	Short: "List builtin ABIs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		builtins := contract.AllBuiltins()
		if jsonOut {
			type row struct {
				ID          string `json:"id"`
				Name        string `json:"name"`
				Description string `json:"description"`
				Version     string `json:"version"`
			}
			rows := make([]row, 0, len(builtins))
			for _, b := range builtins {
				rows = append(rows, row{b.ID, b.Name, b.Description, b.Version})
			}
			return printJSON(cmd.OutOrStdout(), rows)
		}

		t := ui.NewTable([]ui.Column{
			{Title: "ID", Width: 8},
			{Title: "Name", Width: 16},
			{Title: "Version", Width: 8},
			{Title: "Description", Width: 48},
		})
		for i, b := range builtins {
			if b.ID == cfg.ABI && cfg.ABIFile == "" {
				t.SelIdx = i
			}
			t.AddRow(ui.Row{b.ID, b.Name, b.Version, b.Description})
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var abiShowCmd = &cobra.Command{
	Use:   "show [builtin-id | artifact.json]",
	Short: "Show the methods and errors of an ABI (default: the configured one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			parsed abi.ABI
			source string
			err    error
		)
		switch {
		case len(args) == 0:
			parsed, err = loadABI()
			source = cfg.ABI
			if cfg.ABIFile != "" {
				source = cfg.ABIFile
			}
		case isFile(args[0]):
			parsed, err = contract.LoadFromArtifact(args[0])
			source = args[0]
		default:
			parsed, err = contract.BuiltinABI(args[0])
			source = args[0]
		}
		if err != nil {
			return err
		}

		compatErr := contract.Validate(parsed, contract.ReadMethods, contract.WriteMethods)
		methods := contract.MethodSignatures(parsed)
		errs := errorSignatures(parsed)

		if jsonOut {
			out := map[string]any{
				"source":     source,
				"methods":    pairsToMap(methods),
				"errors":     pairsToMap(errs),
				"compatible": compatErr == nil,
			}
			return printJSON(cmd.OutOrStdout(), out)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, ui.KeyValueBlock("Methods of "+source, methods))
		if len(errs) > 0 {
			fmt.Fprintln(w, ui.KeyValueBlock("Custom errors", errs))
		}
		if compatErr != nil {
			fmt.Fprintln(w, ui.Warn("Not usable as a token ABI: "+compatErr.Error()))
		} else {
			fmt.Fprintln(w, ui.Success("Usable as a token ABI"))
		}
		return nil
	},
}

func errorSignatures(parsed abi.ABI) [][2]string {
	out := make([][2]string, 0, len(parsed.Errors))
	for _, e := range parsed.Errors {
		out = append(out, [2]string{e.Sig, fmt.Sprintf("0x%x", e.ID[:4])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func pairsToMap(pairs [][2]string) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p[0]] = p[1]
	}
	return m
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func init() {
	abiCmd.AddCommand(abiListCmd, abiShowCmd)
}
