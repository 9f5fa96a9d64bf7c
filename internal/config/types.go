package config

// Config holds all tragcli configuration.
type Config struct {
	Network         string   `json:"network"`
	RPCURLs         []string `json:"rpc_urls"`
	RPCStrategy     string   `json:"rpc_strategy"` // "fastest" | "failover"
	ContractAddress string   `json:"contract_address"`
	ChainID         int64    `json:"chain_id"`
	Decimals        uint8    `json:"decimals"`
	ABI             string   `json:"abi"`                // builtin ABI id
	ABIFile         string   `json:"abi_file,omitempty"` // overrides ABI when set
	DefaultWallet   string   `json:"default_wallet,omitempty"`
	ConfirmTimeout  int      `json:"confirm_timeout"` // seconds

	// internal: config dir path used for Save()
	configDir string
}

// Preset is a named bundle of chain settings.
type Preset struct {
	Name            string
	DisplayName     string
	ChainID         int64
	RPCURLs         []string
	ContractAddress string // empty when the token is not deployed there
	Explorer        string
}
