package cli

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/prompt"
)

func TestSettableHyperparams(t *testing.T) {
	names := settableHyperparams()

	assert.True(t, sort.StringsAreSorted(names))
	for _, want := range []string{"tempo", "max_weight_limit", "immunity_period", "registration_allowed"} {
		assert.Contains(t, names, want)
	}
}

func TestSudoSetRejectsUnknownParam(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/sudo-set-hyperparam")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"sudo", "set", "--netuid", "4", "--param", "bogus", "--value", "1", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown hyperparameter "bogus"`)
	assert.Equal(t, 0, gw.postCount("/chain/sudo-set-hyperparam"))
}

func TestSudoSetRequiresParamWhenNonInteractive(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/sudo-set-hyperparam")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"sudo", "set", "--netuid", "4", "--value", "360", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass --param")
	assert.Equal(t, 0, gw.postCount("/chain/sudo-set-hyperparam"))
}

func TestSudoSetShowsCurrentAndSubmits(t *testing.T) {
	dir := newTestWalletDir(t)

	gw := newScriptedGateway().
		respondData("/chain/subnet-hyperparameters/4", `{"tempo":99}`).
		respondHash("/chain/sudo-set-hyperparam")

	out, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"sudo", "set", "--netuid", "4", "--param", "tempo", "--value", "360", "--no-prompt")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "tempo is currently 99")

	var params subtensor.SudoSetHyperparamParams
	gw.lastPost(t, "/chain/sudo-set-hyperparam", &params)
	assert.Equal(t, 4, params.Netuid)
	assert.Equal(t, "tempo", params.Param)
	assert.Equal(t, "360", params.Value)
	assert.Equal(t, "alice", params.Signer.Coldkey)
	assert.Empty(t, params.Signer.Hotkey)
}

func TestSudoSetDeclinedDoesNotSubmit(t *testing.T) {
	dir := newTestWalletDir(t)

	gw := newScriptedGateway().
		respondData("/chain/subnet-hyperparameters/4", `{"tempo":99}`).
		respondHash("/chain/sudo-set-hyperparam")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{Answers: []bool{false}},
		"sudo", "set", "--netuid", "4", "--param", "tempo", "--value", "360", "--prompt")

	require.ErrorIs(t, err, prompt.ErrAborted)
	assert.Equal(t, 0, gw.postCount("/chain/sudo-set-hyperparam"))
}

func TestSudoGetRendersHyperparamTable(t *testing.T) {
	dir := newTestWalletDir(t)

	gw := newScriptedGateway().
		respondData("/chain/subnet-hyperparameters/4",
			`{"tempo":360,"maxWeightsLimit":65535,"registrationAllowed":true}`)

	out, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"sudo", "get", "--netuid", "4", "--no-prompt")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "tempo")
	assert.Contains(t, out.String(), "360")
	assert.Contains(t, out.String(), "max_weight_limit")
	assert.Contains(t, out.String(), "65535")
	assert.Contains(t, out.String(), "registration_allowed")
}
