// Package token is a client for the TRAG ERC-20 token contract.
//
// A Client is built from an immutable Config and a Mode. ReadOnly clients
// expose the contract's view methods; Signing clients can also submit
// transfer, approve and the other state-changing calls. Amounts cross the
// API as decimal strings and come back as units.Amount pairs.
package token

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"

	"github.com/Mohsinsiddi/tragcli/internal/contract"
	"github.com/Mohsinsiddi/tragcli/internal/wallet"
)

// Defaults for the deployed TRAG contract on BNB Smart Chain.
const (
	DefaultContract       = "0x7Cc723dE7fBDb6B06d6628E259e6B8c62673BF1C"
	DefaultChainID        = 56
	DefaultPrecision      = 6
	DefaultConfirmTimeout = 2 * time.Minute
	DefaultPollInterval   = 2 * time.Second
)

// Backend is the part of *ethclient.Client the token client uses.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Config is fixed at construction.
type Config struct {
	RPCURL   string
	Contract common.Address
	ChainID  *big.Int // required for Signing; Dial fills it from the node when nil

	// Precision scales every amount. The contract's decimals() is reported
	// by TokenInfo but never used for scaling.
	Precision uint8

	// ABI defaults to the builtin "trag" table when it has no methods.
	ABI abi.ABI

	ConfirmTimeout time.Duration
	PollInterval   time.Duration

	Logger log.Logger
}

// DefaultConfig returns the configuration of the deployed TRAG token.
func DefaultConfig(rpcURL string) Config {
	return Config{
		RPCURL:         rpcURL,
		Contract:       common.HexToAddress(DefaultContract),
		ChainID:        big.NewInt(DefaultChainID),
		Precision:      DefaultPrecision,
		ConfirmTimeout: DefaultConfirmTimeout,
		PollInterval:   DefaultPollInterval,
	}
}

// Client talks to one token contract through one backend. It holds no
// mutable state and is safe for concurrent use.
type Client struct {
	backend Backend
	cfg     Config
	abi     abi.ABI
	signer  *wallet.Signer
	log     log.Logger
	closer  func()
}

// New builds a client over an existing backend.
func New(backend Backend, cfg Config, mode Mode) (*Client, error) {
	if backend == nil {
		return nil, fmt.Errorf("token: nil backend")
	}
	if mode == nil {
		mode = ReadOnly{}
	}
	if cfg.Contract == (common.Address{}) {
		return nil, fmt.Errorf("token: contract address required")
	}

	parsed := cfg.ABI
	if len(parsed.Methods) == 0 {
		var err error
		if parsed, err = contract.BuiltinABI("trag"); err != nil {
			return nil, err
		}
	}
	if err := contract.Validate(parsed, contract.ReadMethods, contract.WriteMethods); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	cfg.ABI = parsed

	signer := signerOf(mode)
	if signer != nil && (cfg.ChainID == nil || cfg.ChainID.Sign() <= 0) {
		return nil, fmt.Errorf("token: chain id required for signing")
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = DefaultConfirmTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Root()
	}
	logger = logger.With("contract", cfg.Contract.Hex())

	return &Client{
		backend: backend,
		cfg:     cfg,
		abi:     parsed,
		signer:  signer,
		log:     logger,
	}, nil
}

// Dial connects to cfg.RPCURL and builds a client. A Signing client checks
// that the node serves cfg.ChainID, or adopts the node's chain id when
// cfg.ChainID is nil.
func Dial(ctx context.Context, cfg Config, mode Mode) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, &RPCError{Op: "dial", Err: err}
	}

	if signerOf(mode) != nil {
		id, err := ec.ChainID(ctx)
		if err != nil {
			ec.Close()
			return nil, &RPCError{Op: "eth_chainId", Err: err}
		}
		switch {
		case cfg.ChainID == nil:
			cfg.ChainID = id
		case cfg.ChainID.Cmp(id) != 0:
			ec.Close()
			return nil, &RPCError{Op: "eth_chainId", Reason: fmt.Sprintf("node serves chain %s, configured %s", id, cfg.ChainID)}
		}
	}

	c, err := New(ec, cfg, mode)
	if err != nil {
		ec.Close()
		return nil, err
	}
	c.closer = ec.Close
	return c, nil
}

// Close releases the dialed connection. It is a no-op for clients built with New.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Address returns the signing address, if the client has one.
func (c *Client) Address() (common.Address, bool) {
	if c.signer == nil {
		return common.Address{}, false
	}
	return c.signer.Address(), true
}

// Contract returns the token contract address.
func (c *Client) Contract() common.Address { return c.cfg.Contract }

// Precision returns the decimal precision amounts are scaled by.
func (c *Client) Precision() uint8 { return c.cfg.Precision }

// ChainID returns the configured chain id, or nil for a read-only client
// that never learned it.
func (c *Client) ChainID() *big.Int {
	if c.cfg.ChainID == nil {
		return nil
	}
	return new(big.Int).Set(c.cfg.ChainID)
}
