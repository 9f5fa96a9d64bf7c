// Package fixtures loads test data shared by the integration tests.
package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixturesDir returns the absolute path to the fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}

// ABIPath returns the absolute path of a fixture ABI or artifact file.
func ABIPath(filename string) string {
	return filepath.Join(fixturesDir(), "abis", filename)
}

// LoadABI loads a fixture ABI JSON file and returns its raw bytes.
func LoadABI(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(ABIPath(filename))
	require.NoError(t, err, "failed to load fixture ABI: %s", filename)
	return data
}

// LoadRPCResponse loads a fixture JSON-RPC result keyed by method name.
func LoadRPCResponse(t *testing.T, filename string) map[string]any {
	t.Helper()
	path := filepath.Join(fixturesDir(), "rpc", filename)
	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to load fixture RPC response: %s", filename)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}
