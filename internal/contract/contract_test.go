package contract

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Builtin registry
// ---------------------------------------------------------------------------

func TestBuiltinsRegistered(t *testing.T) {
	all := AllBuiltins()
	require.Len(t, all, 2)
	assert.Equal(t, "erc20", all[0].ID)
	assert.Equal(t, "trag", all[1].ID)
}

func TestGetBuiltinUnknown(t *testing.T) {
	_, ok := GetBuiltin("nope")
	assert.False(t, ok)

	_, err := BuiltinABI("nope")
	assert.ErrorIs(t, err, ErrUnknownABI)
}

func TestTragABIParses(t *testing.T) {
	parsed, err := BuiltinABI("trag")
	require.NoError(t, err)

	for _, name := range append(append(ReadMethods, WriteMethods...), append(OptionalReadMethods, OptionalWriteMethods...)...) {
		_, ok := parsed.Methods[name]
		assert.True(t, ok, "missing method %s", name)
	}
	assert.Contains(t, parsed.Events, "Transfer")
	assert.Contains(t, parsed.Events, "Approval")
	assert.Contains(t, parsed.Errors, "InsufficientAllowance")
	assert.Contains(t, parsed.Errors, "ZeroAddress")
}

func TestTragABISelectors(t *testing.T) {
	parsed, err := BuiltinABI("trag")
	require.NoError(t, err)

	want := map[string]string{
		"balanceOf":    "70a08231",
		"allowance":    "dd62ed3e",
		"transfer":     "a9059cbb",
		"approve":      "095ea7b3",
		"transferFrom": "23b872dd",
		"decimals":     "313ce567",
	}
	for name, sel := range want {
		assert.Equal(t, sel, hex.EncodeToString(parsed.Methods[name].ID), name)
	}
}

func TestValidateBuiltins(t *testing.T) {
	for _, id := range []string{"trag", "erc20"} {
		parsed, err := BuiltinABI(id)
		require.NoError(t, err)
		assert.NoError(t, Validate(parsed, ReadMethods, WriteMethods), id)
	}
}

func TestValidateMissingMethod(t *testing.T) {
	parsed, err := BuiltinABI("erc20")
	require.NoError(t, err)

	err = Validate(parsed, nil, []string{"burn"})
	assert.ErrorIs(t, err, ErrMissingMethod)
}

func TestValidateWrongMutability(t *testing.T) {
	parsed, err := BuiltinABI("trag")
	require.NoError(t, err)

	err = Validate(parsed, []string{"transfer"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a read method")

	err = Validate(parsed, nil, []string{"balanceOf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a write method")
}

func TestMethodSignaturesSorted(t *testing.T) {
	parsed, err := BuiltinABI("erc20")
	require.NoError(t, err)

	sigs := MethodSignatures(parsed)
	require.NotEmpty(t, sigs)
	assert.Equal(t, "allowance(address,address)", sigs[0][0])
	assert.Equal(t, "0xdd62ed3e", sigs[0][1])
}

// ---------------------------------------------------------------------------
// LoadFromArtifact
// ---------------------------------------------------------------------------

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromArtifactRawArray(t *testing.T) {
	path := writeFile(t, "erc20.json", erc20ABI)
	parsed, err := LoadFromArtifact(path)
	require.NoError(t, err)
	assert.Contains(t, parsed.Methods, "balanceOf")
}

func TestLoadFromArtifactHardhat(t *testing.T) {
	path := writeFile(t, "Token.json", `{"contractName":"Token","abi":`+erc20ABI+`,"bytecode":"0x6080"}`)
	parsed, err := LoadFromArtifact(path)
	require.NoError(t, err)
	assert.Contains(t, parsed.Methods, "transfer")
}

func TestLoadFromArtifactObjectWithoutABI(t *testing.T) {
	path := writeFile(t, "bad.json", `{"bytecode":"0x6080"}`)
	_, err := LoadFromArtifact(path)
	assert.ErrorIs(t, err, ErrUnknownABI)
}

func TestLoadFromArtifactEmpty(t *testing.T) {
	path := writeFile(t, "empty.json", "   ")
	_, err := LoadFromArtifact(path)
	assert.ErrorIs(t, err, ErrUnknownABI)
}

func TestLoadFromArtifactEmptyArray(t *testing.T) {
	path := writeFile(t, "none.json", "[]")
	_, err := LoadFromArtifact(path)
	assert.ErrorIs(t, err, ErrUnknownABI)
}

func TestLoadFromArtifactMissingFile(t *testing.T) {
	_, err := LoadFromArtifact(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read ABI file")
}

func TestLoadFromArtifactInvalidJSON(t *testing.T) {
	path := writeFile(t, "broken.json", `[{"type":`)
	_, err := LoadFromArtifact(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ABI JSON")
}
