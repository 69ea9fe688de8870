package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/prompt"
)

// rootNetuid is the root network's netuid. A swap scoped to it is narrower
// than the unscoped swap in a way that is easy to miss: child hotkey mappings
// on the root network stay pointed at the old hotkey.
const rootNetuid = 0

// swapRootQuestion is the confirmation asked before a root-network-only swap.
const swapRootQuestion = "Are you SURE you want to proceed with --netuid 0 (root-network-only swap)?"

// hotkeySwapper submits the swap extrinsic. *subtensor.Client implements it;
// tests substitute a counting fake.
type hotkeySwapper interface {
	SwapHotkey(params subtensor.SwapHotkeyParams) (subtensor.ExtrinsicHashResponse, error)
}

// confirmRootOnlySwap returns nil when the swap may proceed. The only case
// that ever prompts is an interactive swap scoped to netuid 0: the warning
// block is printed and the user must answer yes, with no as the default.
// Non-interactive runs, unscoped swaps and swaps on any other netuid pass
// through silently. A decline returns prompt.ErrAborted, which is a clean
// cancellation rather than a fault.
func confirmRootOnlySwap(confirmer prompt.Confirmer, interactive bool, netuid *int, out io.Writer, fullSwapCmd string) error {
	if !interactive || netuid == nil || *netuid != rootNetuid {
		return nil
	}

	fmt.Fprint(out, renderSwapRootWarning(fullSwapCmd))
	ok, err := confirmer.Confirm(swapRootQuestion, false)
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if !ok {
		return prompt.ErrAborted
	}
	return nil
}

// submitSwap runs the guard and, once it passes, submits the swap exactly
// once. The guard only gates whether the extrinsic is dispatched at all:
// downstream gateway and chain errors surface unchanged.
func submitSwap(chain hotkeySwapper, confirmer prompt.Confirmer, interactive bool, params subtensor.SwapHotkeyParams, out io.Writer, fullSwapCmd string) (string, error) {
	if err := confirmRootOnlySwap(confirmer, interactive, params.Netuid, out, fullSwapCmd); err != nil {
		return "", err
	}
	resp, err := chain.SwapHotkey(params)
	if err != nil {
		return "", err
	}
	return resp.Data, nil
}

func renderSwapRootWarning(fullSwapCmd string) string {
	var b strings.Builder
	b.WriteString(styleWarn.Render("WARNING: Using --netuid 0 for swap-hotkey"))
	b.WriteString("\n\n")
	b.WriteString("Specifying --netuid 0 will ONLY swap the hotkey on the root network (netuid 0).\n\n")
	b.WriteString("It will NOT swap the child hotkeys on the root network.\n\n")
	b.WriteString("To swap the hotkey across all subnets, run the same command without --netuid:\n\n")
	b.WriteString("    " + fullSwapCmd + "\n\n")
	return b.String()
}

// swapInvocation reconstructs the equivalent unscoped command line from the
// flags the user actually set, dropping --netuid.
func swapInvocation(destHotkey string, flags *pflag.FlagSet) string {
	parts := []string{"taocli", "wallet", "swap-hotkey", destHotkey}
	if flags != nil {
		flags.Visit(func(f *pflag.Flag) {
			if f.Name == "netuid" {
				return
			}
			switch f.Value.Type() {
			case "bool", "count":
				if f.Value.String() == "false" {
					parts = append(parts, "--"+f.Name+"=false")
				} else {
					parts = append(parts, "--"+f.Name)
				}
			default:
				parts = append(parts, "--"+f.Name, f.Value.String())
			}
		})
	}
	return strings.Join(parts, " ")
}
