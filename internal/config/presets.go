package config

import (
	"fmt"
	"sort"
)

// TRAG token on BNB Smart Chain.
const TragContract = "0x7Cc723dE7fBDb6B06d6628E259e6B8c62673BF1C"

var presets = map[string]Preset{
	"bsc": {
		Name:        "bsc",
		DisplayName: "BNB Smart Chain",
		ChainID:     56,
		RPCURLs: []string{
			"https://bsc-dataseed1.binance.org/",
			"https://bsc-dataseed2.binance.org/",
			"https://bsc-dataseed.bnbchain.org/",
			"https://bsc-dataseed1.defibit.io/",
		},
		ContractAddress: TragContract,
		Explorer:        "https://bscscan.com",
	},
	"bsc-testnet": {
		Name:        "bsc-testnet",
		DisplayName: "BNB Smart Chain Testnet",
		ChainID:     97,
		RPCURLs: []string{
			"https://data-seed-prebsc-1-s1.bnbchain.org:8545/",
			"https://data-seed-prebsc-2-s1.bnbchain.org:8545/",
		},
		Explorer: "https://testnet.bscscan.com",
	},
}

// GetPreset returns a preset by name.
func GetPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown network %q (known: %v)", name, PresetNames())
	}
	return p, nil
}

// PresetNames returns all preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset points the config at the named network. The contract address
// is replaced only when the preset knows one.
func (c *Config) ApplyPreset(name string) error {
	p, err := GetPreset(name)
	if err != nil {
		return err
	}
	c.Network = p.Name
	c.ChainID = p.ChainID
	c.RPCURLs = append([]string(nil), p.RPCURLs...)
	if p.ContractAddress != "" {
		c.ContractAddress = p.ContractAddress
	}
	return nil
}

// TxURL links a transaction hash on the network's block explorer, or
// returns "" for a network without one.
func (c *Config) TxURL(hash string) string {
	p, ok := presets[c.Network]
	if !ok || p.Explorer == "" {
		return ""
	}
	return p.Explorer + "/tx/" + hash
}
