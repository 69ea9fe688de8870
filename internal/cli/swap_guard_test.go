package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/prompt"
)

type countingSwapper struct {
	calls  int
	params []subtensor.SwapHotkeyParams
}

func (c *countingSwapper) SwapHotkey(p subtensor.SwapHotkeyParams) (subtensor.ExtrinsicHashResponse, error) {
	c.calls++
	c.params = append(c.params, p)
	return subtensor.ExtrinsicHashResponse{StatusCode: 200, Success: true, Data: "0xswap"}, nil
}

func intPtr(v int) *int { return &v }

func swapParams(netuid *int) subtensor.SwapHotkeyParams {
	return subtensor.SwapHotkeyParams{
		Signer:     subtensor.Signer{Coldkey: "alice", Hotkey: "orig"},
		DestHotkey: "X",
		Netuid:     netuid,
	}
}

const exampleCmd = "taocli wallet swap-hotkey fresh --wallet.name alice"

func TestSwapGuardNonInteractiveNeverPrompts(t *testing.T) {
	for name, netuid := range map[string]*int{
		"unscoped":   nil,
		"root":       intPtr(0),
		"subnet":     intPtr(7),
		"big subnet": intPtr(250),
	} {
		t.Run(name, func(t *testing.T) {
			swapper := &countingSwapper{}
			confirmer := &prompt.Scripted{}
			out := &bytes.Buffer{}

			hash, err := submitSwap(swapper, confirmer, false, swapParams(netuid), out, exampleCmd)
			require.NoError(t, err)

			assert.Empty(t, confirmer.Asked)
			assert.Empty(t, out.String())
			assert.Equal(t, 1, swapper.calls)
			assert.Equal(t, "0xswap", hash)
			assert.Equal(t, netuid, swapper.params[0].Netuid)
		})
	}
}

func TestSwapGuardUnscopedNeverPrompts(t *testing.T) {
	swapper := &countingSwapper{}
	confirmer := &prompt.Scripted{}
	out := &bytes.Buffer{}

	_, err := submitSwap(swapper, confirmer, true, swapParams(nil), out, exampleCmd)
	require.NoError(t, err)

	assert.Empty(t, confirmer.Asked)
	assert.Empty(t, out.String())
	assert.Equal(t, 1, swapper.calls)
	assert.Nil(t, swapper.params[0].Netuid)
}

func TestSwapGuardNonzeroNetuidNeverPrompts(t *testing.T) {
	swapper := &countingSwapper{}
	confirmer := &prompt.Scripted{}
	out := &bytes.Buffer{}

	_, err := submitSwap(swapper, confirmer, true, swapParams(intPtr(1)), out, exampleCmd)
	require.NoError(t, err)

	assert.Empty(t, confirmer.Asked)
	assert.Empty(t, out.String())
	require.Equal(t, 1, swapper.calls)
	require.NotNil(t, swapper.params[0].Netuid)
	assert.Equal(t, 1, *swapper.params[0].Netuid)
	assert.Equal(t, "X", swapper.params[0].DestHotkey)
}

func TestSwapGuardRootNetuidPrompts(t *testing.T) {
	swapper := &countingSwapper{}
	confirmer := &prompt.Scripted{Answers: []bool{true}}
	out := &bytes.Buffer{}

	_, err := submitSwap(swapper, confirmer, true, swapParams(intPtr(0)), out, exampleCmd)
	require.NoError(t, err)

	require.Len(t, confirmer.Asked, 1)
	assert.Equal(t, "Are you SURE you want to proceed with --netuid 0 (root-network-only swap)?", confirmer.Asked[0])

	warning := out.String()
	assert.Contains(t, warning, "WARNING: Using --netuid 0 for swap-hotkey")
	assert.Contains(t, warning, "will ONLY swap the hotkey on the root network (netuid 0)")
	assert.Contains(t, warning, "will NOT swap the child hotkeys on the root network")
	assert.Contains(t, warning, "run the same command without --netuid")
	assert.Contains(t, warning, exampleCmd)
}

func TestSwapGuardDefaultAnswerIsNo(t *testing.T) {
	swapper := &countingSwapper{}
	// No scripted answers: the confirmer falls back to the default.
	confirmer := &prompt.Scripted{}
	out := &bytes.Buffer{}

	_, err := submitSwap(swapper, confirmer, true, swapParams(intPtr(0)), out, exampleCmd)
	require.ErrorIs(t, err, prompt.ErrAborted)

	assert.Len(t, confirmer.Asked, 1)
	assert.Equal(t, 0, swapper.calls)
}

func TestSwapGuardDeclineAbortsWithoutDispatch(t *testing.T) {
	swapper := &countingSwapper{}
	confirmer := &prompt.Scripted{Answers: []bool{false}}
	out := &bytes.Buffer{}

	_, err := submitSwap(swapper, confirmer, true, swapParams(intPtr(0)), out, exampleCmd)
	require.ErrorIs(t, err, prompt.ErrAborted)

	assert.Equal(t, 0, swapper.calls)
	// A decline is a cancellation, not a fault: it must stay distinguishable
	// from downstream errors.
	assert.True(t, errors.Is(err, prompt.ErrAborted))
}

func TestSwapGuardConfirmDispatchesOnceWithRootScope(t *testing.T) {
	swapper := &countingSwapper{}
	confirmer := &prompt.Scripted{Answers: []bool{true}}
	out := &bytes.Buffer{}

	hash, err := submitSwap(swapper, confirmer, true, swapParams(intPtr(0)), out, exampleCmd)
	require.NoError(t, err)
	assert.Equal(t, "0xswap", hash)

	require.Equal(t, 1, swapper.calls)
	require.NotNil(t, swapper.params[0].Netuid)
	assert.Equal(t, 0, *swapper.params[0].Netuid)
	assert.Equal(t, "X", swapper.params[0].DestHotkey)
	assert.Equal(t, "alice", swapper.params[0].Signer.Coldkey)
}

func TestSwapGuardNonInteractiveRootDispatches(t *testing.T) {
	swapper := &countingSwapper{}
	confirmer := &prompt.Scripted{}
	out := &bytes.Buffer{}

	_, err := submitSwap(swapper, confirmer, false, swapParams(intPtr(0)), out, exampleCmd)
	require.NoError(t, err)

	assert.Empty(t, confirmer.Asked)
	require.Equal(t, 1, swapper.calls)
	require.NotNil(t, swapper.params[0].Netuid)
	assert.Equal(t, 0, *swapper.params[0].Netuid)
}

func TestSwapGuardDownstreamErrorSurfacesUnchanged(t *testing.T) {
	errBoom := errors.New("gateway exploded")
	swapper := &failingSwapper{err: errBoom}
	confirmer := &prompt.Scripted{Answers: []bool{true}}

	_, err := submitSwap(swapper, confirmer, true, swapParams(intPtr(0)), &bytes.Buffer{}, exampleCmd)
	require.ErrorIs(t, err, errBoom)
	assert.False(t, errors.Is(err, prompt.ErrAborted))
}

type failingSwapper struct {
	err error
}

func (f *failingSwapper) SwapHotkey(subtensor.SwapHotkeyParams) (subtensor.ExtrinsicHashResponse, error) {
	return subtensor.ExtrinsicHashResponse{}, f.err
}

func TestSwapInvocationDropsNetuid(t *testing.T) {
	flags := pflag.NewFlagSet("swap-hotkey", pflag.ContinueOnError)
	flags.Int("netuid", 0, "")
	flags.String("wallet.name", "", "")
	flags.String("wallet.hotkey", "", "")
	flags.Bool("prompt", false, "")
	require.NoError(t, flags.Parse([]string{
		"--netuid", "0", "--wallet.name", "alice", "--wallet.hotkey", "orig", "--prompt",
	}))

	cmd := swapInvocation("fresh", flags)

	assert.Contains(t, cmd, "taocli wallet swap-hotkey fresh")
	assert.Contains(t, cmd, "--wallet.name alice")
	assert.Contains(t, cmd, "--wallet.hotkey orig")
	assert.Contains(t, cmd, "--prompt")
	assert.NotContains(t, cmd, "netuid")
}

func TestSwapInvocationWithoutFlags(t *testing.T) {
	flags := pflag.NewFlagSet("swap-hotkey", pflag.ContinueOnError)
	flags.Int("netuid", 0, "")
	require.NoError(t, flags.Parse([]string{"--netuid", "0"}))

	assert.Equal(t, "taocli wallet swap-hotkey fresh", swapInvocation("fresh", flags))
}
