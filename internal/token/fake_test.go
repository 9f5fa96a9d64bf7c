package token

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/tragcli/internal/contract"
	"github.com/Mohsinsiddi/tragcli/internal/wallet"
)

// Well-known Hardhat/Anvil test account #0, never fund on mainnet.
const (
	testPrivKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSignerAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

	aliceAddr = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	bobAddr   = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
)

// fakeBackend answers contract calls from canned outputs and records every
// invocation in order.
type fakeBackend struct {
	mu  sync.Mutex
	abi abi.ABI

	outputs map[string][]any
	callErr map[string]error

	estimate    uint64
	estimateErr error
	gasPrice    *big.Int
	priceErr    error
	nonce       uint64
	sendErr     error

	receiptStatus uint64
	receiptMisses int // NotFound answers before the receipt appears
	noReceipt     bool

	calls    []string
	callData map[string][]byte
	estMsg   *ethereum.CallMsg
	sent     []*types.Transaction
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	parsed, err := contract.BuiltinABI("trag")
	require.NoError(t, err)
	return &fakeBackend{
		abi: parsed,
		outputs: map[string][]any{
			"name":        {"TRAG"},
			"symbol":      {"TRAG"},
			"decimals":    {uint8(6)},
			"totalSupply": {big.NewInt(1_000_000_000_000_000)},
			"balanceOf":   {big.NewInt(0)},
			"allowance":   {big.NewInt(0)},
			"owner":       {common.HexToAddress(testSignerAddr)},
		},
		callErr:       map[string]error{},
		callData:      map[string][]byte{},
		estimate:      100000,
		gasPrice:      big.NewInt(3_000_000_000),
		nonce:         7,
		receiptStatus: types.ReceiptStatusSuccessful,
	}
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) methodBySelector(data []byte) (abi.Method, error) {
	if len(data) < 4 {
		return abi.Method{}, fmt.Errorf("short calldata")
	}
	for _, m := range f.abi.Methods {
		if bytes.Equal(m.ID, data[:4]) {
			return m, nil
		}
	}
	return abi.Method{}, fmt.Errorf("unknown selector 0x%x", data[:4])
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	m, err := f.methodBySelector(msg.Data)
	if err != nil {
		return nil, err
	}
	f.record("call:" + m.Name)

	f.mu.Lock()
	f.callData[m.Name] = msg.Data
	callErr := f.callErr[m.Name]
	out := f.outputs[m.Name]
	f.mu.Unlock()

	if callErr != nil {
		return nil, callErr
	}
	if out == nil {
		return nil, nil
	}
	return m.Outputs.Pack(out...)
}

func (f *fakeBackend) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	f.record("estimateGas")
	f.mu.Lock()
	f.estMsg = &msg
	f.mu.Unlock()
	return f.estimate, f.estimateErr
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	f.record("gasPrice")
	return f.gasPrice, f.priceErr
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.record("nonce")
	return f.nonce, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.record("send")
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	f.sent = append(f.sent, tx)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	f.record("receipt")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.noReceipt || f.receiptMisses > 0 {
		f.receiptMisses--
		return nil, ethereum.NotFound
	}
	return &types.Receipt{
		Status:      f.receiptStatus,
		TxHash:      hash,
		BlockNumber: big.NewInt(42),
		GasUsed:     51000,
	}, nil
}

// revertError mimics a JSON-RPC error carrying revert data.
type revertError struct{ data string }

func (e revertError) Error() string          { return "execution reverted" }
func (e revertError) ErrorCode() int         { return 3 }
func (e revertError) ErrorData() interface{} { return e.data }

func testConfig() Config {
	cfg := DefaultConfig("http://unused")
	cfg.PollInterval = time.Millisecond
	cfg.ConfirmTimeout = time.Second
	return cfg
}

func readOnlyClient(t *testing.T, f *fakeBackend) *Client {
	t.Helper()
	c, err := New(f, testConfig(), ReadOnly{})
	require.NoError(t, err)
	return c
}

func signingClient(t *testing.T, f *fakeBackend) *Client {
	t.Helper()
	s, err := wallet.NewSigner(testPrivKeyHex)
	require.NoError(t, err)
	c, err := New(f, testConfig(), Signing{Signer: s})
	require.NoError(t, err)
	return c
}

// decodeSent unpacks the calldata of the n-th submitted transaction.
func decodeSent(t *testing.T, f *fakeBackend, n int) (string, []any) {
	t.Helper()
	require.Greater(t, len(f.sent), n)
	data := f.sent[n].Data()
	m, err := f.methodBySelector(data)
	require.NoError(t, err)
	args, err := m.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	return m.Name, args
}
