package token

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/tragcli/internal/contract"
	"github.com/Mohsinsiddi/tragcli/internal/units"
)

// Info is the token's metadata.
type Info struct {
	Name        string       `json:"name"`
	Symbol      string       `json:"symbol"`
	Decimals    uint8        `json:"decimals"`
	TotalSupply units.Amount `json:"totalSupply"`
	Contract    string       `json:"contractAddress"`
}

// ParseAddress validates a hex address. Mixed-case input must carry a valid
// EIP-55 checksum; all-lower and all-upper input is accepted as is.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	addr := common.HexToAddress(s)
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if digits != strings.ToLower(digits) && digits != strings.ToUpper(digits) {
		if addr.Hex()[2:] != digits {
			return common.Address{}, fmt.Errorf("%w: bad checksum %q", ErrInvalidAddress, s)
		}
	}
	return addr, nil
}

// TokenInfo reads name, symbol, decimals and totalSupply concurrently. Any
// failure fails the whole call.
func (c *Client) TokenInfo(ctx context.Context) (Info, error) {
	var (
		name, symbol string
		decimals     uint8
		supply       *big.Int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		name, err = callOne[string](gctx, c, "name")
		return err
	})
	g.Go(func() (err error) {
		symbol, err = callOne[string](gctx, c, "symbol")
		return err
	})
	g.Go(func() (err error) {
		decimals, err = callOne[uint8](gctx, c, "decimals")
		return err
	})
	g.Go(func() (err error) {
		supply, err = callOne[*big.Int](gctx, c, "totalSupply")
		return err
	})
	if err := g.Wait(); err != nil {
		return Info{}, err
	}

	if decimals != c.cfg.Precision {
		c.log.Warn("Contract decimals differ from configured precision", "decimals", decimals, "precision", c.cfg.Precision)
	}

	return Info{
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: units.NewAmount(supply, c.cfg.Precision),
		Contract:    c.cfg.Contract.Hex(),
	}, nil
}

// Balance returns the token balance of address.
func (c *Client) Balance(ctx context.Context, address string) (units.Amount, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return units.Amount{}, err
	}
	raw, err := callOne[*big.Int](ctx, c, "balanceOf", addr)
	if err != nil {
		return units.Amount{}, err
	}
	return units.NewAmount(raw, c.cfg.Precision), nil
}

// Allowance returns how much spender may move out of owner's balance.
func (c *Client) Allowance(ctx context.Context, owner, spender string) (units.Amount, error) {
	ownerAddr, err := ParseAddress(owner)
	if err != nil {
		return units.Amount{}, err
	}
	spenderAddr, err := ParseAddress(spender)
	if err != nil {
		return units.Amount{}, err
	}
	raw, err := callOne[*big.Int](ctx, c, "allowance", ownerAddr, spenderAddr)
	if err != nil {
		return units.Amount{}, err
	}
	return units.NewAmount(raw, c.cfg.Precision), nil
}

// Owner returns the contract owner.
func (c *Client) Owner(ctx context.Context) (common.Address, error) {
	return callOne[common.Address](ctx, c, "owner")
}

// call packs and executes a view method at the latest block.
func (c *Client) call(ctx context.Context, method string, args ...any) ([]any, error) {
	if _, ok := c.abi.Methods[method]; !ok {
		return nil, fmt.Errorf("%w: %s", contract.ErrMissingMethod, method)
	}
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", method, err)
	}

	c.log.Debug("Calling contract", "method", method)
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.cfg.Contract, Data: data}, nil)
	if err != nil {
		return nil, c.rpcError(method, err)
	}
	vals, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, &RPCError{Op: method, Reason: "malformed response", Err: err}
	}
	return vals, nil
}

func callOne[T any](ctx context.Context, c *Client, method string, args ...any) (T, error) {
	var zero T
	vals, err := c.call(ctx, method, args...)
	if err != nil {
		return zero, err
	}
	if len(vals) != 1 {
		return zero, &RPCError{Op: method, Reason: fmt.Sprintf("malformed response: %d values", len(vals))}
	}
	v, ok := vals[0].(T)
	if !ok {
		return zero, &RPCError{Op: method, Reason: fmt.Sprintf("malformed response: unexpected %T", vals[0])}
	}
	return v, nil
}
