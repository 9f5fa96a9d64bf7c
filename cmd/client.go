package cmd

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/Mohsinsiddi/tragcli/internal/contract"
	"github.com/Mohsinsiddi/tragcli/internal/rpc"
	"github.com/Mohsinsiddi/tragcli/internal/token"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
	"github.com/Mohsinsiddi/tragcli/internal/wallet"
)

// newTokenClient validates addrs, resolves the signer when signing is set,
// picks an RPC endpoint and dials the token contract. Address and key errors
// surface before any endpoint is probed.
func newTokenClient(ctx context.Context, signing bool, addrs ...string) (*token.Client, error) {
	for _, a := range addrs {
		if _, err := token.ParseAddress(a); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parsed, err := loadABI()
	if err != nil {
		return nil, err
	}

	var mode token.Mode = token.ReadOnly{}
	if signing {
		s, err := resolveSigner()
		if err != nil {
			return nil, err
		}
		mode = token.Signing{Signer: s}
	}

	url, err := pickRPC(ctx)
	if err != nil {
		return nil, err
	}

	return token.Dial(ctx, token.Config{
		RPCURL:         url,
		Contract:       common.HexToAddress(cfg.ContractAddress),
		ChainID:        big.NewInt(cfg.ChainID),
		Precision:      cfg.Decimals,
		ABI:            parsed,
		ConfirmTimeout: cfg.ConfirmWait(),
		PollInterval:   config.TxPollInterval,
		Logger:         log.Root(),
	}, mode)
}

// loadABI returns abi_file when set, otherwise the builtin named by abi.
func loadABI() (abi.ABI, error) {
	if cfg.ABIFile != "" {
		return contract.LoadFromArtifact(cfg.ABIFile)
	}
	return contract.BuiltinABI(cfg.ABI)
}

// resolveSigner picks the key for a write: --wallet first, then
// $TRAG_PRIVATE_KEY, then the configured default wallet.
func resolveSigner() (*wallet.Signer, error) {
	if walletFlag != "" {
		return walletSigner(walletFlag)
	}
	if key := strings.TrimSpace(os.Getenv(config.EnvPrivateKey)); key != "" {
		s, err := wallet.NewSigner(key)
		if err != nil {
			return nil, fmt.Errorf("$%s: %w", config.EnvPrivateKey, err)
		}
		return s, nil
	}
	if cfg.DefaultWallet != "" {
		return walletSigner(cfg.DefaultWallet)
	}
	return nil, token.ErrNoCredential
}

func walletSigner(name string) (*wallet.Signer, error) {
	mgr, err := newWalletManager()
	if err != nil {
		return nil, err
	}
	return mgr.Signer(name)
}

func newWalletManager() (*wallet.Manager, error) {
	ks, err := wallet.OpenKeystore(cfg.KeyringDir())
	if err != nil {
		return nil, err
	}
	return wallet.NewManager(ks, wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath()))), nil
}

// pickRPC returns --rpc when given, otherwise selects from the configured
// endpoints with rpc_strategy.
func pickRPC(ctx context.Context) (string, error) {
	if rpcFlag != "" {
		return rpcFlag, nil
	}
	urls := cfg.RPCEndpoints()
	if len(urls) == 1 {
		return urls[0], nil
	}

	ctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()

	spin := ui.NewSpinner(fmt.Sprintf("Selecting RPC (%s of %d)...", cfg.RPCStrategy, len(urls)))
	spin.Start()
	url, err := rpc.Select(ctx, urls, rpc.Strategy(cfg.RPCStrategy), nil)
	spin.Stop()
	if err != nil {
		return "", err
	}
	log.Debug("Selected RPC endpoint", "url", url, "strategy", cfg.RPCStrategy)
	return url, nil
}
