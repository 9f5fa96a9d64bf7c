package token

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"github.com/Mohsinsiddi/tragcli/internal/contract"
	"github.com/Mohsinsiddi/tragcli/internal/units"
	"github.com/Mohsinsiddi/tragcli/internal/wallet"
)

// Transfer sends amount tokens to to and waits for the receipt.
func (c *Client) Transfer(ctx context.Context, to, amount string) (*types.Receipt, error) {
	return c.transfer(ctx, to, c.decimalString(amount))
}

// TransferAmount is Transfer for an amount already held as a decimal.
func (c *Client) TransferAmount(ctx context.Context, to string, amount decimal.Decimal) (*types.Receipt, error) {
	return c.transfer(ctx, to, c.decimalValue(amount))
}

func (c *Client) transfer(ctx context.Context, to string, amount rawAmount) (*types.Receipt, error) {
	signer, err := c.requireSigner()
	if err != nil {
		return nil, err
	}
	toAddr, err := ParseAddress(to)
	if err != nil {
		return nil, err
	}
	raw, err := amount()
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, signer, "transfer", toAddr, raw)
}

// Approve sets spender's allowance over the signer's balance to amount.
func (c *Client) Approve(ctx context.Context, spender, amount string) (*types.Receipt, error) {
	return c.spenderWrite(ctx, "approve", spender, c.decimalString(amount))
}

// ApproveAmount is Approve for an amount already held as a decimal.
func (c *Client) ApproveAmount(ctx context.Context, spender string, amount decimal.Decimal) (*types.Receipt, error) {
	return c.spenderWrite(ctx, "approve", spender, c.decimalValue(amount))
}

// IncreaseAllowance raises spender's allowance by amount.
func (c *Client) IncreaseAllowance(ctx context.Context, spender, amount string) (*types.Receipt, error) {
	return c.spenderWrite(ctx, "increaseAllowance", spender, c.decimalString(amount))
}

// DecreaseAllowance lowers spender's allowance by amount.
func (c *Client) DecreaseAllowance(ctx context.Context, spender, amount string) (*types.Receipt, error) {
	return c.spenderWrite(ctx, "decreaseAllowance", spender, c.decimalString(amount))
}

// TransferFrom moves amount from from to to out of the signer's allowance.
func (c *Client) TransferFrom(ctx context.Context, from, to, amount string) (*types.Receipt, error) {
	signer, err := c.requireSigner()
	if err != nil {
		return nil, err
	}
	fromAddr, err := ParseAddress(from)
	if err != nil {
		return nil, err
	}
	toAddr, err := ParseAddress(to)
	if err != nil {
		return nil, err
	}
	raw, err := c.parseAmount(amount)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, signer, "transferFrom", fromAddr, toAddr, raw)
}

// Burn destroys amount of the signer's tokens.
func (c *Client) Burn(ctx context.Context, amount string) (*types.Receipt, error) {
	signer, err := c.requireSigner()
	if err != nil {
		return nil, err
	}
	raw, err := c.parseAmount(amount)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, signer, "burn", raw)
}

func (c *Client) spenderWrite(ctx context.Context, method, spender string, amount rawAmount) (*types.Receipt, error) {
	signer, err := c.requireSigner()
	if err != nil {
		return nil, err
	}
	spenderAddr, err := ParseAddress(spender)
	if err != nil {
		return nil, err
	}
	raw, err := amount()
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, signer, method, spenderAddr, raw)
}

func (c *Client) requireSigner() (*wallet.Signer, error) {
	if c.signer == nil {
		return nil, ErrNoCredential
	}
	return c.signer, nil
}

// rawAmount defers amount parsing until the signer and addresses are checked.
type rawAmount func() (*big.Int, error)

func (c *Client) parseAmount(amount string) (*big.Int, error) {
	return units.ToRawUnits(amount, c.cfg.Precision)
}

func (c *Client) decimalString(amount string) rawAmount {
	return func() (*big.Int, error) { return c.parseAmount(amount) }
}

func (c *Client) decimalValue(amount decimal.Decimal) rawAmount {
	return func() (*big.Int, error) { return units.FromDecimal(amount, c.cfg.Precision) }
}

// transact estimates, signs, submits and waits for a call to method.
// Steps run in order and the first failure ends the call; nothing is retried.
func (c *Client) transact(ctx context.Context, signer *wallet.Signer, method string, args ...any) (*types.Receipt, error) {
	if _, ok := c.abi.Methods[method]; !ok {
		return nil, fmt.Errorf("%w: %s", contract.ErrMissingMethod, method)
	}
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", method, err)
	}
	from := signer.Address()

	estimate, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &c.cfg.Contract, Data: data})
	if err != nil {
		return nil, c.rpcError("estimateGas "+method, err)
	}
	gasLimit := GasWithMargin(estimate)

	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, c.rpcError("gasPrice", err)
	}
	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, c.rpcError("nonce", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.cfg.Contract,
		Value:    new(big.Int),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := signer.SignTx(tx, c.cfg.ChainID)
	if err != nil {
		return nil, err
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, c.rpcError("sendTransaction "+method, err)
	}
	c.log.Info("Submitted transaction", "method", method, "hash", signed.Hash(),
		"from", from, "nonce", nonce, "gas", gasLimit, "gasPrice", gasPrice)

	return c.waitMined(ctx, signed.Hash())
}

// waitMined polls for the receipt every PollInterval until ConfirmTimeout.
// A receipt with failed status is returned along with ErrReverted.
func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.Status == types.ReceiptStatusFailed {
				c.log.Warn("Transaction reverted", "hash", hash, "block", receipt.BlockNumber)
				return receipt, &RPCError{Op: "receipt", Reason: hash.Hex(), Err: ErrReverted}
			}
			c.log.Info("Transaction mined", "hash", hash, "block", receipt.BlockNumber, "gasUsed", receipt.GasUsed)
			return receipt, nil
		case err != nil && !errors.Is(err, ethereum.NotFound):
			if ctx.Err() == nil {
				return nil, c.rpcError("receipt", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil, &RPCError{Op: "receipt", Reason: fmt.Sprintf("transaction %s not mined", hash.Hex()), Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}
