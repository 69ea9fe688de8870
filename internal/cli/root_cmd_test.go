package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/prompt"
)

func TestRootSetWeightsEmitsU16Normalized(t *testing.T) {
	dir := newTestWalletDir(t)

	gw := newScriptedGateway().
		respondData("/chain/subnet-hyperparameters/0", `{"maxWeightsLimit":65535}`).
		respondHash("/chain/set-root-weights")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "set-weights", "--netuids", "1,2,3", "--weights", "0.2,0.3,0.5",
		"--version-key", "9", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.SetRootWeightsParams
	gw.lastPost(t, "/chain/set-root-weights", &params)
	assert.Equal(t, []int{1, 2, 3}, params.Netuids)
	assert.Equal(t, []int{26214, 39321, 65535}, params.Weights)
	assert.Equal(t, 9, params.VersionKey)
	assert.Equal(t, "alice", params.Signer.Coldkey)
	assert.Equal(t, "orig", params.Signer.Hotkey)
}

func TestRootSetWeightsCapsAtMaxWeightLimit(t *testing.T) {
	dir := newTestWalletDir(t)

	// 26214/65535 caps any single subnet at 40% of the vector.
	gw := newScriptedGateway().
		respondData("/chain/subnet-hyperparameters/0", `{"maxWeightsLimit":26214}`).
		respondHash("/chain/set-root-weights")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "set-weights", "--netuids", "1,2,3", "--weights", "0.5,0.25,0.25", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.SetRootWeightsParams
	gw.lastPost(t, "/chain/set-root-weights", &params)
	assert.Equal(t, []int{1, 2, 3}, params.Netuids)
	// Subnet 1 is clipped to the cap and the excess spreads over the rest:
	// capped 40% : 30% : 30% scales to 65535 : 49151 : 49151.
	assert.Equal(t, []int{65535, 49151, 49151}, params.Weights)
}

func TestRootSetWeightsRejectsLengthMismatch(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/set-root-weights")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "set-weights", "--netuids", "1,2", "--weights", "0.5", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 netuids but 1 weights")
	assert.Equal(t, 0, gw.postCount("/chain/set-root-weights"))
}

func TestRootSetWeightsDeclinedDoesNotSubmit(t *testing.T) {
	dir := newTestWalletDir(t)

	gw := newScriptedGateway().
		respondData("/chain/subnet-hyperparameters/0", `{"maxWeightsLimit":65535}`).
		respondHash("/chain/set-root-weights")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{Answers: []bool{false}},
		"root", "set-weights", "--netuids", "1", "--weights", "1", "--prompt")

	require.ErrorIs(t, err, prompt.ErrAborted)
	assert.Equal(t, 0, gw.postCount("/chain/set-root-weights"))
}

func TestRootBoostAddsDeltaAndRenormalizes(t *testing.T) {
	dir := newTestWalletDir(t)
	_, hotkey := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/root-weights",
			`[{"uid":5,"hotkeySs58":"`+hotkey+`","netuids":[1,2],"weights":[0.5,0.5]}]`).
		respondData("/chain/subnet-hyperparameters/0", `{"maxWeightsLimit":65535}`).
		respondHash("/chain/set-root-weights")

	out, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "boost", "--netuid", "2", "--amount", "0.5", "--no-prompt")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Boost netuid 2")

	var params subtensor.SetRootWeightsParams
	gw.lastPost(t, "/chain/set-root-weights", &params)
	assert.Equal(t, []int{1, 2}, params.Netuids)
	// 0.5 : 1.0 after the boost, max-normalized to u16.
	assert.Equal(t, []int{32768, 65535}, params.Weights)
}

func TestRootSlashDropsZeroedSubnet(t *testing.T) {
	dir := newTestWalletDir(t)
	_, hotkey := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/root-weights",
			`[{"uid":5,"hotkeySs58":"`+hotkey+`","netuids":[1,2],"weights":[0.8,0.2]}]`).
		respondData("/chain/subnet-hyperparameters/0", `{"maxWeightsLimit":65535}`).
		respondHash("/chain/set-root-weights")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "slash", "--netuid", "2", "--amount", "0.5", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.SetRootWeightsParams
	gw.lastPost(t, "/chain/set-root-weights", &params)
	// The slash clamps netuid 2 at zero; zero weights are not emitted.
	assert.Equal(t, []int{1}, params.Netuids)
	assert.Equal(t, []int{65535}, params.Weights)
}

func TestRootBoostWithoutExistingWeights(t *testing.T) {
	dir := newTestWalletDir(t)

	gw := newScriptedGateway().
		respondData("/chain/root-weights", `[]`).
		respondData("/chain/subnet-hyperparameters/0", `{"maxWeightsLimit":65535}`).
		respondHash("/chain/set-root-weights")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "boost", "--netuid", "3", "--amount", "0.1", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.SetRootWeightsParams
	gw.lastPost(t, "/chain/set-root-weights", &params)
	assert.Equal(t, []int{3}, params.Netuids)
	assert.Equal(t, []int{65535}, params.Weights)
}

func TestRootBoostRejectsNonPositiveAmount(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/set-root-weights")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "boost", "--netuid", "3", "--amount", "-0.1", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boost amount must be positive")
	assert.Equal(t, 0, gw.postCount("/chain/set-root-weights"))
}

func TestRootSetTakeRejectsAboveCap(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/set-delegate-take")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "set-take", "--take", "0.2", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "take must be between 0 and 0.18")
	assert.Equal(t, 0, gw.postCount("/chain/set-delegate-take"))
}

func TestRootSetTakeSubmitsU16(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/set-delegate-take")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "set-take", "--take", "0.18", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.SetDelegateTakeParams
	gw.lastPost(t, "/chain/set-delegate-take", &params)
	assert.Equal(t, 11796, params.Take)
	assert.Equal(t, "alice", params.Signer.Coldkey)
}

func TestSenateVoteResolvesIndexByHash(t *testing.T) {
	dir := newTestWalletDir(t)

	gw := newScriptedGateway().
		respondData("/chain/proposals",
			`[{"hash":"0xabc123","index":4,"threshold":7,"ayes":["m1"],"nays":[],"end":100,"callData":"0xdead"}]`).
		respondHash("/chain/senate-vote")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "senate-vote", "--proposal", "0xABC123", "--aye", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.VoteSenateParams
	gw.lastPost(t, "/chain/senate-vote", &params)
	// The chain's casing wins over the user's.
	assert.Equal(t, "0xabc123", params.ProposalHash)
	assert.Equal(t, 4, params.Index)
	assert.True(t, params.Approve)
}

func TestSenateVoteUnknownHash(t *testing.T) {
	dir := newTestWalletDir(t)

	gw := newScriptedGateway().
		respondData("/chain/proposals", `[]`).
		respondHash("/chain/senate-vote")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "senate-vote", "--proposal", "0xmissing", "--nay", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no open proposal with hash")
	assert.Equal(t, 0, gw.postCount("/chain/senate-vote"))
}

func TestSenateVoteRequiresExactlyOneChoice(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/senate-vote")
	url := gw.serve(t)

	for name, flags := range map[string][]string{
		"both":    {"--aye", "--nay"},
		"neither": {},
	} {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"root", "senate-vote", "--proposal", "0xabc", "--no-prompt"}, flags...)
			_, err := execCommand(t, url, dir, &prompt.Scripted{}, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly one of --aye and --nay")
		})
	}
	assert.Equal(t, 0, gw.postCount("/chain/senate-vote"))
}

func TestRootDelegateStakeChecksBalance(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, _ := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/balance/"+coldkey, `{"free":1000000000,"reserved":0,"frozen":0}`).
		respondHash("/chain/delegate-stake")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "delegate-stake", "--delegate", ss58Alice, "--amount", "5", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough balance")
	assert.Equal(t, 0, gw.postCount("/chain/delegate-stake"))
}

func TestRootDelegateStakeSubmits(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, _ := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/balance/"+coldkey, `{"free":10000000000,"reserved":0,"frozen":0}`).
		respondHash("/chain/delegate-stake")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "delegate-stake", "--delegate", ss58Alice, "--amount", "2", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.DelegateStakeParams
	gw.lastPost(t, "/chain/delegate-stake", &params)
	assert.Equal(t, ss58Alice, params.DelegateSS58)
	assert.Equal(t, int64(2_000_000_000), params.Amount)
	assert.Equal(t, "alice", params.Signer.Coldkey)
	assert.Empty(t, params.Signer.Hotkey)
}

func TestRootUndelegateStakeSubmits(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/undelegate-stake")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "undelegate-stake", "--delegate", ss58Bob, "--amount", "1.5", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.UndelegateStakeParams
	gw.lastPost(t, "/chain/undelegate-stake", &params)
	assert.Equal(t, ss58Bob, params.DelegateSS58)
	assert.Equal(t, int64(1_500_000_000), params.Amount)
}

func TestRootMyDelegatesTotalsStake(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, _ := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/delegated/"+coldkey,
			`[{"hotkeySs58":"`+ss58Alice+`","name":"Opentensor","take":0.09,"stake":3000000000},
			  {"hotkeySs58":"`+ss58Bob+`","name":"","take":0.18,"stake":1000000000}]`)

	out, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "my-delegates", "--no-prompt")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Opentensor")
	assert.Contains(t, out.String(), "unnamed")
	assert.Contains(t, out.String(), "4.0000")
}

func TestRootListMarksSenateMembers(t *testing.T) {
	dir := newTestWalletDir(t)

	gw := newScriptedGateway().
		respondData("/chain/subnet-metagraph/0",
			`{"netuid":0,"name":"root","hotkeys":["`+ss58Alice+`","`+ss58Bob+`"],"coldkeys":["ck1","ck2"],"totalStake":[100.0,50.0]}`).
		respondData("/chain/senate-members", `["`+ss58Alice+`"]`)

	out, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "list", "--no-prompt")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Root network")
	assert.Contains(t, out.String(), "yes")
	assert.Contains(t, out.String(), "no")
}

func TestRootNominateSubmits(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/nominate")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"root", "nominate", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.NominateParams
	gw.lastPost(t, "/chain/nominate", &params)
	assert.Equal(t, "alice", params.Signer.Coldkey)
	assert.Equal(t, "orig", params.Signer.Hotkey)
}
