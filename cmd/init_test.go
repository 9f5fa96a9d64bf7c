package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
)

func wizardCmd(t *testing.T, stdin string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	dir := isolate(t)
	var err error
	cfg, err = config.Load(dir)
	require.NoError(t, err)

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetIn(strings.NewReader(stdin))
	c.SetOut(&out)
	c.SetErr(&bytes.Buffer{})
	return c, &out
}

func TestApplyWizardNetworkAndStrategy(t *testing.T) {
	c, out := wizardCmd(t, "")
	require.NoError(t, applyWizard(c, &ui.WizardResult{Network: "bsc-testnet", RPCStrategy: "failover"}))

	saved, err := config.Load(cfg.Dir())
	require.NoError(t, err)
	assert.Equal(t, int64(97), saved.ChainID)
	assert.Equal(t, "failover", saved.RPCStrategy)
	assert.Contains(t, out.String(), "bsc-testnet")
}

func TestApplyWizardCustomRPC(t *testing.T) {
	c, _ := wizardCmd(t, "")
	require.NoError(t, applyWizard(c, &ui.WizardResult{Network: "bsc", RPCURL: "https://my.node.example"}))

	saved, err := config.Load(cfg.Dir())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://my.node.example"}, saved.RPCURLs)
}

func TestApplyWizardBadRPCSavesNothing(t *testing.T) {
	c, _ := wizardCmd(t, "")
	err := applyWizard(c, &ui.WizardResult{Network: "bsc", RPCURL: "not a url"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestApplyWizardImportsWallet(t *testing.T) {
	c, out := wizardCmd(t, hardhatKey0+"\n")
	require.NoError(t, applyWizard(c, &ui.WizardResult{Network: "bsc", WalletName: "main"}))
	assert.Contains(t, out.String(), hardhatAddr0)

	saved, err := config.Load(cfg.Dir())
	require.NoError(t, err)
	assert.Equal(t, "main", saved.DefaultWallet)
}

func TestApplyWizardBadKeyWarns(t *testing.T) {
	c, out := wizardCmd(t, "garbage\n")
	require.NoError(t, applyWizard(c, &ui.WizardResult{Network: "bsc", WalletName: "main"}))
	assert.Contains(t, out.String(), "Could not import wallet")
}
