package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultNetwork  = "bsc"
	defaultStrategy = "fastest"
	defaultABI      = "trag"
	defaultDecimals = 6

	configFile  = "config.json"
	walletsFile = "wallets.json"
	keyringDir  = "keyring"
)

// Strategies accepted for rpc_strategy.
var Strategies = []string{"fastest", "failover"}

// ErrInvalidConfig is returned by Validate and Set.
var ErrInvalidConfig = errors.New("invalid config")

// Load reads config from dir (or creates defaults). An empty dir falls back
// to $TRAG_CONFIG_DIR, then ~/.tragcli.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = os.Getenv(EnvConfigDir)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".tragcli")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.configDir = dir
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Reset restores every field to its default, keeping the config dir.
func (c *Config) Reset() {
	*c = *defaults(c.configDir)
}

// Validate checks the fields a token client needs.
func (c *Config) Validate() error {
	if len(c.RPCURLs) == 0 {
		return fmt.Errorf("%w: rpc_urls is empty", ErrInvalidConfig)
	}
	for _, u := range c.RPCURLs {
		if err := validateURL(u); err != nil {
			return err
		}
	}
	if !slices.Contains(Strategies, c.RPCStrategy) {
		return fmt.Errorf("%w: rpc_strategy %q (want one of %v)", ErrInvalidConfig, c.RPCStrategy, Strategies)
	}
	if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("%w: contract_address %q", ErrInvalidConfig, c.ContractAddress)
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("%w: chain_id must be positive", ErrInvalidConfig)
	}
	if c.ABI == "" && c.ABIFile == "" {
		return fmt.Errorf("%w: abi or abi_file required", ErrInvalidConfig)
	}
	if c.ConfirmTimeout < 0 {
		return fmt.Errorf("%w: confirm_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// RPCEndpoints returns $TRAG_RPC_URL when set, otherwise rpc_urls.
func (c *Config) RPCEndpoints() []string {
	if u := strings.TrimSpace(os.Getenv(EnvRPCURL)); u != "" {
		return []string{u}
	}
	return c.RPCURLs
}

// ConfirmWait returns confirm_timeout as a duration, defaulting to TxConfirmTimeout.
func (c *Config) ConfirmWait() time.Duration {
	if c.ConfirmTimeout <= 0 {
		return TxConfirmTimeout
	}
	return time.Duration(c.ConfirmTimeout) * time.Second
}

// AddRPC appends an RPC URL.
func (c *Config) AddRPC(u string) error {
	if err := validateURL(u); err != nil {
		return err
	}
	if slices.Contains(c.RPCURLs, u) {
		return fmt.Errorf("RPC %s already configured", u)
	}
	c.RPCURLs = append(c.RPCURLs, u)
	return nil
}

// RemoveRPC removes an RPC URL.
func (c *Config) RemoveRPC(u string) error {
	idx := slices.Index(c.RPCURLs, u)
	if idx == -1 {
		return fmt.Errorf("RPC %s not configured", u)
	}
	c.RPCURLs = slices.Delete(c.RPCURLs, idx, idx+1)
	return nil
}

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{"network", "rpc_urls", "rpc_strategy", "contract_address", "chain_id", "decimals", "abi", "abi_file", "default_wallet", "confirm_timeout"}
}

// Get returns a field's display value.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "network":
		return c.Network, nil
	case "rpc_urls":
		return strings.Join(c.RPCURLs, ","), nil
	case "rpc_strategy":
		return c.RPCStrategy, nil
	case "contract_address":
		return c.ContractAddress, nil
	case "chain_id":
		return strconv.FormatInt(c.ChainID, 10), nil
	case "decimals":
		return strconv.Itoa(int(c.Decimals)), nil
	case "abi":
		return c.ABI, nil
	case "abi_file":
		return c.ABIFile, nil
	case "default_wallet":
		return c.DefaultWallet, nil
	case "confirm_timeout":
		return strconv.Itoa(c.ConfirmTimeout), nil
	}
	return "", fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
}

// Set parses and assigns a field. Setting network applies that preset.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "network":
		return c.ApplyPreset(value)
	case "rpc_urls":
		var urls []string
		for _, u := range strings.Split(value, ",") {
			if u = strings.TrimSpace(u); u == "" {
				continue
			}
			if err := validateURL(u); err != nil {
				return err
			}
			urls = append(urls, u)
		}
		if len(urls) == 0 {
			return fmt.Errorf("%w: rpc_urls is empty", ErrInvalidConfig)
		}
		c.RPCURLs = urls
	case "rpc_strategy":
		if !slices.Contains(Strategies, value) {
			return fmt.Errorf("%w: rpc_strategy %q (want one of %v)", ErrInvalidConfig, value, Strategies)
		}
		c.RPCStrategy = value
	case "contract_address":
		if !common.IsHexAddress(value) {
			return fmt.Errorf("%w: contract_address %q", ErrInvalidConfig, value)
		}
		c.ContractAddress = common.HexToAddress(value).Hex()
	case "chain_id":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: chain_id %q", ErrInvalidConfig, value)
		}
		c.ChainID = n
	case "decimals":
		n, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return fmt.Errorf("%w: decimals %q", ErrInvalidConfig, value)
		}
		c.Decimals = uint8(n)
	case "abi":
		c.ABI = value
	case "abi_file":
		c.ABIFile = value
	case "default_wallet":
		c.DefaultWallet = value
	case "confirm_timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: confirm_timeout %q", ErrInvalidConfig, value)
		}
		c.ConfirmTimeout = n
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
	}
	return nil
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath is the wallet record file.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// KeyringDir holds the encrypted file keyring when no OS keychain is available.
func (c *Config) KeyringDir() string {
	return filepath.Join(c.configDir, keyringDir)
}

// --- helpers ---

func defaults(dir string) *Config {
	p := presets[defaultNetwork]
	return &Config{
		Network:         p.Name,
		RPCURLs:         append([]string(nil), p.RPCURLs...),
		RPCStrategy:     defaultStrategy,
		ContractAddress: p.ContractAddress,
		ChainID:         p.ChainID,
		Decimals:        defaultDecimals,
		ABI:             defaultABI,
		ConfirmTimeout:  int(TxConfirmTimeout / time.Second),
		configDir:       dir,
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: RPC URL %q", ErrInvalidConfig, raw)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
		return nil
	}
	return fmt.Errorf("%w: RPC URL %q must be http(s) or ws(s)", ErrInvalidConfig, raw)
}
