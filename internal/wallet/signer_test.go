package wallet

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known Hardhat/Anvil test account #0, never fund on mainnet.
const (
	testPrivKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSignerAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func testTx() *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    0,
		To:       &common.Address{1},
		Value:    big.NewInt(0),
		Gas:      21000,
		GasPrice: big.NewInt(1e9),
	})
}

// ---------------------------------------------------------------------------
// NewSigner
// ---------------------------------------------------------------------------

func TestNewSignerDerivesAddress(t *testing.T) {
	s, err := NewSigner(testPrivKeyHex)
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, s.Address().Hex())
}

func TestNewSignerAcceptsPrefix(t *testing.T) {
	for _, in := range []string{"0x" + testPrivKeyHex, "0X" + testPrivKeyHex, "  0x" + testPrivKeyHex + "\n"} {
		s, err := NewSigner(in)
		require.NoError(t, err)
		assert.Equal(t, testSignerAddr, s.Address().Hex())
	}
}

func TestNewSignerInvalidKey(t *testing.T) {
	for _, in := range []string{"", "0x", "zz", testPrivKeyHex[:40], "0x" + testPrivKeyHex + "00"} {
		_, err := NewSigner(in)
		assert.ErrorIs(t, err, ErrInvalidKey, "input %q", in)
	}
}

func TestNewSignerErrorDoesNotEchoKey(t *testing.T) {
	bad := testPrivKeyHex[:60] + "zzzz"
	_, err := NewSigner(bad)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testPrivKeyHex[:20])
}

func TestSignerStringHidesKey(t *testing.T) {
	s, err := NewSigner(testPrivKeyHex)
	require.NoError(t, err)

	for _, out := range []string{s.String(), fmt.Sprintf("%v", s), fmt.Sprintf("%+v", s), fmt.Sprintf("%#v", s)} {
		assert.NotContains(t, out, testPrivKeyHex)
		assert.Contains(t, out, testSignerAddr)
	}
}

// ---------------------------------------------------------------------------
// Signer.SignTx
// ---------------------------------------------------------------------------

func TestSignTxRecoversSender(t *testing.T) {
	s, err := NewSigner(testPrivKeyHex)
	require.NoError(t, err)

	chainID := big.NewInt(56)
	signed, err := s.SignTx(testTx(), chainID)
	require.NoError(t, err)

	from, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), from)
	assert.Equal(t, chainID, signed.ChainId())
}

func TestSignTxDifferentChainIDs(t *testing.T) {
	s, err := NewSigner(testPrivKeyHex)
	require.NoError(t, err)

	bsc, err := s.SignTx(testTx(), big.NewInt(56))
	require.NoError(t, err)
	testnet, err := s.SignTx(testTx(), big.NewInt(97))
	require.NoError(t, err)

	assert.NotEqual(t, bsc.Hash(), testnet.Hash(), "same tx signed on different chains must differ")
}

func TestSignTxRequiresChainID(t *testing.T) {
	s, err := NewSigner(testPrivKeyHex)
	require.NoError(t, err)

	_, err = s.SignTx(testTx(), nil)
	assert.Error(t, err)
	_, err = s.SignTx(testTx(), big.NewInt(0))
	assert.Error(t, err)
}
