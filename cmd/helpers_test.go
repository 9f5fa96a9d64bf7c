package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/99designs/keyring"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/Mohsinsiddi/tragcli/internal/contract"
	"github.com/Mohsinsiddi/tragcli/internal/wallet"
)

// Well-known Hardhat/Anvil accounts, never fund on mainnet.
const (
	hardhatKey0  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	hardhatAddr0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	hardhatAddr1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	hardhatAddr2 = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
)

// run executes tragcli with args against a fresh config dir and returns
// stdout. Package flag vars are reset first since cobra keeps them
// between executions.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgDir, rpcFlag, walletFlag = "", "", ""
	verbose, jsonOut, assumeYes = false, false, false
	convertDecimals = -1
	walletFromEnv, walletSetDefault = false, false
	resetContexts(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

// resetContexts clears the context cobra stores on each command during
// ExecuteContext, which would otherwise outlive the test that set it.
func resetContexts(c *cobra.Command) {
	c.SetContext(nil) //nolint:staticcheck
	for _, sub := range c.Commands() {
		resetContexts(sub)
	}
}

// isolate points config and the keyring at temp dirs and clears key env vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)
	t.Setenv(config.EnvRPCURL, "")
	t.Setenv(config.EnvPrivateKey, "")
	t.Setenv(wallet.BackendEnv, string(keyring.FileBackend))
	t.Setenv(wallet.PasswordEnv, "testpass")
	return dir
}

// node is a JSON-RPC mock. eth_call is answered from outputs by method
// name; other methods from results. Every method hit is recorded.
type node struct {
	*httptest.Server
	mu    sync.Mutex
	calls []string
}

func (n *node) methods() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

func newNode(t *testing.T, results map[string]any, outputs map[string][]any) *node {
	t.Helper()
	parsed, err := contract.BuiltinABI("trag")
	require.NoError(t, err)

	n := &node{}
	n.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		n.mu.Lock()
		n.calls = append(n.calls, req.Method)
		n.mu.Unlock()

		reply := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		result, ok := results[req.Method]
		if req.Method == "eth_call" && len(req.Params) > 0 {
			var msg struct {
				Input hexutil.Bytes `json:"input"`
				Data  hexutil.Bytes `json:"data"`
			}
			json.Unmarshal(req.Params[0], &msg) //nolint:errcheck
			data := msg.Input
			if len(data) == 0 {
				data = msg.Data
			}
			if m, err := parsed.MethodById(data); err == nil {
				if out, found := outputs[m.Name]; found {
					packed, _ := m.Outputs.Pack(out...)
					result, ok = hexutil.Encode(packed), true
				}
			}
		}
		if ok {
			reply["result"] = result
		} else {
			reply["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reply) //nolint:errcheck
	}))
	t.Cleanup(n.Close)
	return n
}

// minedReceipt is an eth_getTransactionReceipt result with the given status.
func minedReceipt(status string) map[string]any {
	return map[string]any{
		"type":              "0x0",
		"status":            status,
		"cumulativeGasUsed": "0xc350",
		"gasUsed":           "0xc350",
		"logsBloom":         "0x" + strings.Repeat("00", 256),
		"logs":              []any{},
		"transactionHash":   "0x" + strings.Repeat("ab", 32),
		"blockHash":         "0x" + strings.Repeat("cd", 32),
		"blockNumber":       "0x10",
		"transactionIndex":  "0x0",
	}
}

// writeNode answers everything a signed write needs on chain 56.
func writeNode(t *testing.T, status string) *node {
	return newNode(t, map[string]any{
		"eth_chainId":               "0x38",
		"eth_estimateGas":           "0x186a0",
		"eth_gasPrice":              "0x3b9aca00",
		"eth_getTransactionCount":   "0x7",
		"eth_sendRawTransaction":    "0x" + strings.Repeat("ab", 32),
		"eth_getTransactionReceipt": minedReceipt(status),
	}, nil)
}

func mustAddr(s string) common.Address {
	return common.HexToAddress(s)
}
