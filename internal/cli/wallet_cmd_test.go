package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/prompt"
	"github.com/tensorplex-labs/taocli/pkg/wallet"
)

func TestTransferRejectsInvalidDest(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway().respondHash("/chain/transfer")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "transfer", "not-an-address", "--amount", "1", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid destination SS58 address")
	assert.Equal(t, 0, gw.postCount("/chain/transfer"))
}

func TestTransferInsufficientBalance(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, _ := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/balance/"+coldkey, `{"free":1000000000,"reserved":0,"frozen":0}`).
		respondData("/chain/transfer-fee", `125000`).
		respondHash("/chain/transfer")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "transfer", ss58Bob, "--amount", "5", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough balance")
	assert.Equal(t, 0, gw.postCount("/chain/transfer"))
}

func TestTransferConfirmedSubmits(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, _ := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/balance/"+coldkey, `{"free":10000000000,"reserved":0,"frozen":0}`).
		respondData("/chain/transfer-fee", `125000`).
		respondHash("/chain/transfer")

	confirmer := &prompt.Scripted{Answers: []bool{true}}
	out, err := execCommand(t, gw.serve(t), dir, confirmer,
		"wallet", "transfer", ss58Bob, "--amount", "2", "--prompt")

	require.NoError(t, err)
	require.Len(t, confirmer.Asked, 1)

	var params subtensor.TransferParams
	gw.lastPost(t, "/chain/transfer", &params)
	assert.Equal(t, ss58Bob, params.Dest)
	assert.Equal(t, int64(2_000_000_000), params.Amount)
	assert.True(t, params.KeepAlive)
	assert.Equal(t, "alice", params.Signer.Coldkey)

	assert.Contains(t, out.String(), "Transfer submitted: 0xdone")
	assert.Contains(t, out.String(), "fee:")
}

func TestTransferAllReservesFeeAndDeposit(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, _ := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/balance/"+coldkey, `{"free":10000000000,"reserved":0,"frozen":0}`).
		respondData("/chain/transfer-fee", `125000`).
		respondHash("/chain/transfer")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "transfer", ss58Bob, "--all", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.TransferParams
	gw.lastPost(t, "/chain/transfer", &params)
	assert.Equal(t, int64(10_000_000_000-125_000-subtensor.ExistentialDepositRao), params.Amount)
}

func TestTransferAllWithoutKeepAlive(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, _ := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/balance/"+coldkey, `{"free":10000000000,"reserved":0,"frozen":0}`).
		respondData("/chain/transfer-fee", `125000`).
		respondHash("/chain/transfer")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "transfer", ss58Bob, "--all", "--keep-alive=false", "--no-prompt")

	require.NoError(t, err)
	var params subtensor.TransferParams
	gw.lastPost(t, "/chain/transfer", &params)
	assert.Equal(t, int64(10_000_000_000-125_000), params.Amount)
	assert.False(t, params.KeepAlive)
}

func TestTransferDeclinedDoesNotSubmit(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, _ := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/balance/"+coldkey, `{"free":10000000000,"reserved":0,"frozen":0}`).
		respondData("/chain/transfer-fee", `125000`).
		respondHash("/chain/transfer")

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{Answers: []bool{false}},
		"wallet", "transfer", ss58Bob, "--amount", "2", "--prompt")

	require.ErrorIs(t, err, prompt.ErrAborted)
	assert.Equal(t, 0, gw.postCount("/chain/transfer"))
}

func TestRegenColdkeyRequiresExactlyOneSource(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway()
	url := gw.serve(t)

	mnemonic, err := wallet.NewMnemonic(12)
	require.NoError(t, err)

	_, err = execCommand(t, url, dir, &prompt.Scripted{},
		"wallet", "regen-coldkey", "--mnemonic", mnemonic, "--seed", "0xabcd", "--no-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")

	_, err = execCommand(t, url, dir, &prompt.Scripted{},
		"wallet", "regen-coldkey", "--no-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass --mnemonic or --seed")
}

func TestRegenColdkeyFromMnemonicRestoresAddress(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway()

	mnemonic, err := wallet.NewMnemonic(12)
	require.NoError(t, err)

	out, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "regen-coldkey", "--mnemonic", mnemonic, "--overwrite", "--no-prompt")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Coldkey regenerated")

	// Re-deriving from the same mnemonic must land on the same address.
	kf, err := wallet.New("alice", "orig", t.TempDir()).CreateColdkey(mnemonic, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), kf.SS58Address)
}

func TestRegenColdkeyRejectsBadMnemonic(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway()

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "regen-coldkey", "--mnemonic", "definitely not a mnemonic", "--overwrite", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mnemonic")
}

func TestWalletSignProducesVerifiableSignature(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, hotkey := testAddresses(t, dir)
	gw := newScriptedGateway()
	url := gw.serve(t)

	out, err := execCommand(t, url, dir, &prompt.Scripted{},
		"wallet", "sign", "--message", "attest", "--no-prompt")
	require.NoError(t, err)
	assert.Contains(t, out.String(), coldkey)

	sig := extractSignature(t, out.String())
	ok, err := wallet.VerifySignature([]byte("attest"), sig, coldkey)
	require.NoError(t, err)
	assert.True(t, ok)

	out, err = execCommand(t, url, dir, &prompt.Scripted{},
		"wallet", "sign", "--message", "attest", "--use-hotkey", "--no-prompt")
	require.NoError(t, err)
	assert.Contains(t, out.String(), hotkey)

	sig = extractSignature(t, out.String())
	ok, err = wallet.VerifySignature([]byte("attest"), sig, hotkey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWalletSignHotkeyWithoutColdkey(t *testing.T) {
	// A hotkey-only wallet: signing with --use-hotkey must not touch the
	// coldkey at all.
	dir := t.TempDir()
	mnemonic, err := wallet.NewMnemonic(12)
	require.NoError(t, err)
	_, err = wallet.New("alice", "orig", dir).CreateHotkey(mnemonic, false)
	require.NoError(t, err)

	gw := newScriptedGateway()
	out, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "sign", "--message", "attest", "--use-hotkey", "--no-prompt")
	require.NoError(t, err)

	hotkey, err := wallet.New("alice", "orig", dir).HotkeyAddress()
	require.NoError(t, err)
	assert.Contains(t, out.String(), hotkey)
}

// extractSignature pulls the 0x-prefixed signature out of the sign output.
func extractSignature(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if i := strings.Index(line, "0x"); i >= 0 && strings.Contains(line, "signature") {
			return strings.TrimSpace(line[i:])
		}
	}
	t.Fatalf("no signature in output:\n%s", out)
	return ""
}

func TestWalletBalanceRejectsInvalidSS58(t *testing.T) {
	dir := newTestWalletDir(t)
	gw := newScriptedGateway()

	_, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "balance", "--ss58", "junk", "--no-prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid SS58 address")
}

func TestWalletBalanceSumsFreeAndStaked(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, hotkey := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/balance/"+coldkey, `{"free":3000000000,"reserved":0,"frozen":0}`).
		respondData("/chain/stake-info/"+coldkey,
			`[{"netuid":1,"hotkey":"`+hotkey+`","coldkey":"`+coldkey+`","stake":2000000000,"locked":0,"emission":0,"isRegistered":true}]`)

	out, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "balance", "--no-prompt")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "3.0000")
	assert.Contains(t, out.String(), "2.0000")
	assert.Contains(t, out.String(), "5.0000")
}

func TestWalletOverviewListsPositions(t *testing.T) {
	dir := newTestWalletDir(t)
	coldkey, hotkey := testAddresses(t, dir)

	gw := newScriptedGateway().
		respondData("/chain/stake-info/"+coldkey,
			`[{"netuid":9,"hotkey":"`+hotkey+`","coldkey":"`+coldkey+`","stake":4000000000,"locked":0,"emission":123,"isRegistered":true}]`).
		respondData("/chain/subnets", `[{"netuid":9,"name":"apex","symbol":"α"}]`)

	out, err := execCommand(t, gw.serve(t), dir, &prompt.Scripted{},
		"wallet", "overview", "--no-prompt")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "apex")
	assert.Contains(t, out.String(), "4.0000")
	assert.Contains(t, out.String(), coldkey)
}
