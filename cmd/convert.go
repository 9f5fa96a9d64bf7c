package cmd

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/Mohsinsiddi/tragcli/internal/ui"
	"github.com/Mohsinsiddi/tragcli/internal/units"
	"github.com/spf13/cobra"
)

var convertDecimals int

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between token amounts and raw units",
	Long: `Convert between decimal token amounts and on-chain raw units.

The configured precision is used unless --decimals is given.

Examples:
  tragcli convert to-raw 123.456789     # → 123456789
  tragcli convert from-raw 1000000      # → 1.000000
  tragcli convert to-raw 1.5 --decimals 18`,
}

var convertToRawCmd = &cobra.Command{
	Use:   "to-raw <amount>",
	Short: "Decimal amount to raw units",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		precision, err := convertPrecision()
		if err != nil {
			return err
		}
		raw, err := units.ToRawUnits(args[0], precision)
		if err != nil {
			return err
		}
		return printConversion(cmd, args[0], units.NewAmount(raw, precision), precision)
	},
}

var convertFromRawCmd = &cobra.Command{
	Use:   "from-raw <raw>",
	Short: "Raw units to decimal amount",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		precision, err := convertPrecision()
		if err != nil {
			return err
		}
		raw, err := parseRaw(args[0])
		if err != nil {
			return err
		}
		return printConversion(cmd, args[0], units.NewAmount(raw, precision), precision)
	},
}

// parseRaw accepts a non-negative decimal or 0x-prefixed hex integer.
func parseRaw(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	digits := s
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		base, digits = 16, s[2:]
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%w: raw value %q", units.ErrInvalidAmount, s)
	}
	return n, nil
}

func convertPrecision() (uint8, error) {
	if convertDecimals < 0 {
		return cfg.Decimals, nil
	}
	if convertDecimals > 255 {
		return 0, fmt.Errorf("--decimals %d out of range (0-255)", convertDecimals)
	}
	return uint8(convertDecimals), nil
}

type conversionResult struct {
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
	Decimals  uint8  `json:"decimals"`
}

func printConversion(cmd *cobra.Command, input string, a units.Amount, precision uint8) error {
	if jsonOut {
		return printJSON(cmd.OutOrStdout(), conversionResult{
			Raw:       a.Raw.String(),
			Formatted: a.Formatted,
			Decimals:  precision,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Unit Conversion", [][2]string{
		{"Input", input},
		{"Formatted", ui.Val(a.Formatted)},
		{"Raw", ui.Val(a.Raw.String())},
		{"Hex", ui.Meta("0x" + a.Raw.Text(16))},
		{"Decimals", fmt.Sprintf("%d", precision)},
	}))
	return nil
}

func init() {
	convertCmd.PersistentFlags().IntVar(&convertDecimals, "decimals", -1, "precision override (default: config decimals)")
	convertCmd.AddCommand(convertToRawCmd, convertFromRawCmd)
}
