package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
)

func newSwapHotkeyCmd(app *App) *cobra.Command {
	var netuid int

	cmd := &cobra.Command{
		Use:   "swap-hotkey DEST_HOTKEY",
		Short: "Swap a registered hotkey for a new one",
		Long: `Swap the wallet's registered hotkey for another hotkey of the same wallet.

The registration of (coldkey, hotkey) moves to (coldkey, DEST_HOTKEY). The
destination hotkey must already exist in the wallet and must not itself be
registered. Without --netuid the swap applies across all subnets, which is
the recommended form; --netuid restricts it to a single subnet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var scope *int
			if cmd.Flags().Changed("netuid") {
				if netuid < 0 {
					return fmt.Errorf("netuid cannot be negative, got %d", netuid)
				}
				scope = &netuid
			}
			return app.runSwapHotkey(cmd.Flags(), args[0], scope)
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Restrict the swap to one subnet (default: all subnets)")

	return cmd
}

func (a *App) runSwapHotkey(flags *pflag.FlagSet, destHotkey string, netuid *int) error {
	origAddr, err := a.hotkeyAddress("")
	if err != nil {
		return err
	}
	destAddr, err := a.hotkeyAddress(destHotkey)
	if err != nil {
		return fmt.Errorf("destination hotkey %q is not usable (create it with `taocli wallet new-hotkey`): %w", destHotkey, err)
	}
	if destAddr == origAddr {
		return fmt.Errorf("destination hotkey %q is the wallet's current hotkey %q", destHotkey, a.Cfg.WalletHotkey)
	}

	params := subtensor.SwapHotkeyParams{
		Signer:     a.signer(),
		DestHotkey: destAddr,
		Netuid:     netuid,
	}
	hash, err := submitSwap(a.Chain, a.Confirm, a.Interactive(), params, a.Out, swapInvocation(destHotkey, flags))
	if err != nil {
		return err
	}

	a.printf("Hotkey swapped: %s -> %s\n", origAddr, destAddr)
	a.printf("Extrinsic: %s\n", hash)
	return nil
}
