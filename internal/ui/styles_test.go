package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoContainsPrefixAndMessage(t *testing.T) {
	result := Info("test message")
	assert.Contains(t, result, "ℹ")
	assert.Contains(t, result, "test message")
}

func TestHintContainsPrefixAndMessage(t *testing.T) {
	result := Hint("run tragcli init")
	assert.Contains(t, result, "→")
	assert.Contains(t, result, "run tragcli init")
}

func TestStatusPrefixes(t *testing.T) {
	assert.Contains(t, Success("done"), "✓ done")
	assert.Contains(t, Warn("careful"), "⚠ careful")
	assert.Contains(t, Err("failed"), "✗ failed")
}

func TestTruncateAddr(t *testing.T) {
	assert.Equal(t, "0x1234", TruncateAddr("0x1234"))
	assert.Equal(t, "0x12345678", TruncateAddr("0x12345678"))
	assert.Equal(t, "", TruncateAddr(""))

	addr := "0x7Cc723dE7fBDb6B06d6628E259e6B8c62673BF1C"
	assert.Equal(t, "0x7Cc7…BF1C", TruncateAddr(addr))
}

func TestInfoDifferentFromHint(t *testing.T) {
	assert.NotEqual(t, Info("message"), Hint("message"))
}

func TestAllFormattersKeepInput(t *testing.T) {
	formatters := map[string]func(string) string{
		"Success":   Success,
		"Warn":      Warn,
		"Err":       Err,
		"Info":      Info,
		"Hint":      Hint,
		"Addr":      Addr,
		"Val":       Val,
		"Meta":      Meta,
		"ChainName": ChainName,
	}
	for name, fn := range formatters {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, fn("test"), "test")
		})
	}
}

func TestBannerShowsVersion(t *testing.T) {
	b := Banner("1.2.3")
	assert.Contains(t, b, "v1.2.3")
	assert.Contains(t, b, "TRAG")
}
