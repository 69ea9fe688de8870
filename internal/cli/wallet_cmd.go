package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/wallet"
)

func newWalletCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage wallets, keys and balances",
	}

	cmd.AddCommand(
		newWalletCreateCmd(app),
		newWalletNewColdkeyCmd(app),
		newWalletNewHotkeyCmd(app),
		newWalletRegenColdkeyCmd(app),
		newWalletRegenHotkeyCmd(app),
		newWalletListCmd(app),
		newWalletBalanceCmd(app),
		newWalletTransferCmd(app),
		newSwapHotkeyCmd(app),
		newWalletSignCmd(app),
		newWalletOverviewCmd(app),
		newWalletHistoryCmd(app),
	)

	return cmd
}

func newWalletCreateCmd(app *App) *cobra.Command {
	var (
		words     int
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new coldkey and hotkey pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Interactive() && !cmd.Flags().Changed("words") {
				if err := selectWordCount(&words); err != nil {
					return err
				}
			}

			w := app.wallet("")

			coldMnemonic, err := wallet.NewMnemonic(words)
			if err != nil {
				return err
			}
			coldKf, err := w.CreateColdkey(coldMnemonic, overwrite)
			if err != nil {
				return err
			}

			hotMnemonic, err := wallet.NewMnemonic(words)
			if err != nil {
				return err
			}
			hotKf, err := w.CreateHotkey(hotMnemonic, overwrite)
			if err != nil {
				return err
			}

			app.printf("%s\n", sectionHeader("Wallet "+w.Name))
			printNewKey(app, "coldkey", coldKf)
			printNewKey(app, "hotkey "+w.Hotkey, hotKf)
			app.printf("%s\n", styleWarn.Render("Store the mnemonics somewhere safe. Anyone holding a mnemonic controls the key."))
			return nil
		},
	}

	cmd.Flags().IntVar(&words, "words", 12, "Mnemonic length (12, 15, 18, 21 or 24)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing keyfiles")

	return cmd
}

func newWalletNewColdkeyCmd(app *App) *cobra.Command {
	var (
		words     int
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "new-coldkey",
		Short: "Create a new coldkey for the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Interactive() && !cmd.Flags().Changed("words") {
				if err := selectWordCount(&words); err != nil {
					return err
				}
			}
			mnemonic, err := wallet.NewMnemonic(words)
			if err != nil {
				return err
			}
			kf, err := app.wallet("").CreateColdkey(mnemonic, overwrite)
			if err != nil {
				return err
			}
			printNewKey(app, "coldkey", kf)
			return nil
		},
	}

	cmd.Flags().IntVar(&words, "words", 12, "Mnemonic length (12, 15, 18, 21 or 24)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing coldkey")

	return cmd
}

func newWalletNewHotkeyCmd(app *App) *cobra.Command {
	var (
		words     int
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "new-hotkey",
		Short: "Create a new hotkey for the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Interactive() && !cmd.Flags().Changed("words") {
				if err := selectWordCount(&words); err != nil {
					return err
				}
			}
			mnemonic, err := wallet.NewMnemonic(words)
			if err != nil {
				return err
			}
			w := app.wallet("")
			kf, err := w.CreateHotkey(mnemonic, overwrite)
			if err != nil {
				return err
			}
			printNewKey(app, "hotkey "+w.Hotkey, kf)
			return nil
		},
	}

	cmd.Flags().IntVar(&words, "words", 12, "Mnemonic length (12, 15, 18, 21 or 24)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing hotkey")

	return cmd
}

func newWalletRegenColdkeyCmd(app *App) *cobra.Command {
	var (
		mnemonic  string
		seed      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "regen-coldkey",
		Short: "Re-derive the coldkey from a mnemonic or seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			kf, err := regenKey(app.wallet(""), mnemonic, seed, overwrite, true)
			if err != nil {
				return err
			}
			app.printf("Coldkey regenerated.\n")
			app.printf("  %s %s\n", dim("ss58:"), kf.SS58Address)
			return nil
		},
	}

	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "BIP-39 mnemonic of the key")
	cmd.Flags().StringVar(&seed, "seed", "", "32-byte hex seed of the key")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing coldkey")

	return cmd
}

func newWalletRegenHotkeyCmd(app *App) *cobra.Command {
	var (
		mnemonic  string
		seed      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "regen-hotkey",
		Short: "Re-derive a hotkey from a mnemonic or seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := app.wallet("")
			kf, err := regenKey(w, mnemonic, seed, overwrite, false)
			if err != nil {
				return err
			}
			app.printf("Hotkey %q regenerated.\n", w.Hotkey)
			app.printf("  %s %s\n", dim("ss58:"), kf.SS58Address)
			return nil
		},
	}

	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "BIP-39 mnemonic of the key")
	cmd.Flags().StringVar(&seed, "seed", "", "32-byte hex seed of the key")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing hotkey")

	return cmd
}

// regenKey validates the secret material and writes the coldkey or hotkey
// keyfiles. Exactly one of mnemonic and seed must be given.
func regenKey(w *wallet.Wallet, mnemonic, seed string, overwrite, coldkey bool) (*wallet.Keyfile, error) {
	switch {
	case mnemonic != "" && seed != "":
		return nil, fmt.Errorf("pass either --mnemonic or --seed, not both")
	case mnemonic != "":
		if !wallet.ValidMnemonic(mnemonic) {
			return nil, fmt.Errorf("invalid mnemonic; expected a 12-24 word BIP-39 phrase")
		}
		if coldkey {
			return w.CreateColdkey(mnemonic, overwrite)
		}
		return w.CreateHotkey(mnemonic, overwrite)
	case seed != "":
		if coldkey {
			return w.CreateColdkeyFromSeed(seed, overwrite)
		}
		return w.CreateHotkeyFromSeed(seed, overwrite)
	default:
		return nil, fmt.Errorf("pass --mnemonic or --seed")
	}
}

func printNewKey(app *App, label string, kf *wallet.Keyfile) {
	app.printf("%s\n", bold(label))
	if kf.SecretPhrase != "" {
		app.printf("  %s %s\n", dim("mnemonic:"), kf.SecretPhrase)
	}
	app.printf("  %s %s\n\n", dim("ss58:"), kf.SS58Address)
}

func newWalletListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List wallets and hotkeys under the wallet path",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := wallet.List(app.Cfg.WalletPath)
			if err != nil {
				return err
			}
			app.printf("%s\n", bold("Wallets")+" "+dim("("+app.Cfg.WalletPath+")"))
			if len(infos) == 0 {
				app.printf("%s\n", dim("  no wallets found"))
				return nil
			}
			for i, info := range infos {
				branch := "├──"
				if i == len(infos)-1 {
					branch = "└──"
				}
				addr := info.ColdkeyAddress
				if addr == "" {
					addr = dim("no coldkeypub")
				}
				app.printf("%s %s  %s\n", dim(branch), styleBlue.Render(info.Name), addr)
				stem := "│  "
				if i == len(infos)-1 {
					stem = "   "
				}
				for j, hk := range info.Hotkeys {
					hb := "├──"
					if j == len(info.Hotkeys)-1 {
						hb = "└──"
					}
					app.printf("%s %s %s  %s\n", dim(stem), dim(hb), hk.Name, hk.SS58Address)
				}
			}
			return nil
		},
	}
}

func newWalletBalanceCmd(app *App) *cobra.Command {
	var (
		all  bool
		ss58 string
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show free and staked balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ss58 != "" {
				if !wallet.ValidAddress(ss58) {
					return fmt.Errorf("invalid SS58 address %q", ss58)
				}
				return app.printBalanceRows([]balanceTarget{{Name: shortAddr(ss58), Coldkey: ss58}})
			}

			if all {
				infos, err := wallet.List(app.Cfg.WalletPath)
				if err != nil {
					return err
				}
				targets := make([]balanceTarget, 0, len(infos))
				for _, info := range infos {
					if info.ColdkeyAddress == "" {
						continue
					}
					targets = append(targets, balanceTarget{Name: info.Name, Coldkey: info.ColdkeyAddress})
				}
				if len(targets) == 0 {
					return fmt.Errorf("no wallets with a readable coldkeypub under %s", app.Cfg.WalletPath)
				}
				return app.printBalanceRows(targets)
			}

			addr, err := app.coldkeyAddress()
			if err != nil {
				return err
			}
			return app.printBalanceRows([]balanceTarget{{Name: app.Cfg.WalletName, Coldkey: addr}})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every wallet under the wallet path")
	cmd.Flags().StringVar(&ss58, "ss58", "", "Check an arbitrary SS58 address instead of a wallet")

	return cmd
}

type balanceTarget struct {
	Name    string
	Coldkey string
}

func (a *App) printBalanceRows(targets []balanceTarget) error {
	var rows [][]string
	var totalFree, totalStaked balance.Balance

	for _, t := range targets {
		balResp, err := a.Chain.GetBalance(t.Coldkey)
		if err != nil {
			return err
		}
		stakeResp, err := a.Chain.GetStakeInfo(t.Coldkey)
		if err != nil {
			return err
		}
		var staked balance.Balance
		for _, s := range stakeResp.Data {
			staked += balance.FromRao(s.Stake)
		}
		free := balance.FromRao(balResp.Data.Free)
		totalFree += free
		totalStaked += staked
		rows = append(rows, []string{
			t.Name,
			shortAddr(t.Coldkey),
			free.String(),
			staked.String(),
			(free + staked).String(),
		})
	}

	if len(targets) > 1 {
		rows = append(rows, []string{
			bold("total"), "",
			totalFree.String(),
			totalStaked.String(),
			(totalFree + totalStaked).String(),
		})
	}

	a.printf("%s\n", renderTable(
		[]string{"WALLET", "COLDKEY", "FREE", "STAKED", "TOTAL"},
		rows,
	))
	a.printf("%s\n", dim("Network: "+a.Cfg.Network))
	return nil
}

func newWalletTransferCmd(app *App) *cobra.Command {
	var (
		amountTao float64
		all       bool
		keepAlive bool
	)

	cmd := &cobra.Command{
		Use:   "transfer DEST_SS58",
		Short: "Transfer TAO to another coldkey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := args[0]
			if !wallet.ValidAddress(dest) {
				return fmt.Errorf("invalid destination SS58 address %q", dest)
			}
			if !all && amountTao <= 0 {
				return fmt.Errorf("pass --amount or --all")
			}
			return app.runTransfer(dest, balance.FromTao(amountTao), all, keepAlive)
		},
	}

	cmd.Flags().Float64Var(&amountTao, "amount", 0, "Amount to transfer, in TAO")
	cmd.Flags().BoolVar(&all, "all", false, "Transfer the entire transferable balance")
	cmd.Flags().BoolVar(&keepAlive, "keep-alive", true, "Keep the sender above the existential deposit")

	return cmd
}

func (a *App) runTransfer(dest string, amount balance.Balance, all, keepAlive bool) error {
	srcAddr, err := a.coldkeyAddress()
	if err != nil {
		return err
	}

	balResp, err := a.Chain.GetBalance(srcAddr)
	if err != nil {
		return err
	}
	free := balance.FromRao(balResp.Data.Free)

	params := subtensor.TransferParams{
		Signer:    a.coldkeySigner(),
		Dest:      dest,
		Amount:    amount.Rao(),
		KeepAlive: keepAlive,
	}
	feeResp, err := a.Chain.EstimateTransferFee(params)
	if err != nil {
		return err
	}
	fee := balance.FromRao(feeResp.Data)

	reserve := fee
	if keepAlive {
		reserve += balance.FromRao(subtensor.ExistentialDepositRao)
	}
	if all {
		amount = free - reserve
		if amount <= 0 {
			return fmt.Errorf("balance %s cannot cover the transfer fee %s", free, fee)
		}
		params.Amount = amount.Rao()
	}
	if amount+reserve > free {
		return fmt.Errorf("not enough balance: have %s, need %s (amount %s + fee %s%s)",
			free, amount+reserve, amount, fee, keepAliveNote(keepAlive))
	}

	a.printf("%s\n", sectionHeader("Transfer"))
	a.printf("  %s %s\n", dim("from:"), srcAddr)
	a.printf("  %s %s\n", dim("to:"), dest)
	a.printf("  %s %s\n", dim("amount:"), styleGreen.Render(amount.String()))
	a.printf("  %s %s\n\n", dim("fee:"), fee.String())

	if err := a.confirmAction("Do you want to proceed with the transfer?"); err != nil {
		return err
	}

	resp, err := a.Chain.Transfer(params)
	if err != nil {
		return err
	}
	a.printf("Transfer submitted: %s\n", resp.Data)

	if after, err := a.Chain.GetBalance(srcAddr); err == nil {
		a.printf("Balance: %s -> %s\n", free, balance.FromRao(after.Data.Free))
	}
	return nil
}

func keepAliveNote(keepAlive bool) string {
	if keepAlive {
		return " + existential deposit"
	}
	return ""
}

func newWalletSignCmd(app *App) *cobra.Command {
	var (
		message   string
		useHotkey bool
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with the coldkey or hotkey",
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("pass --message")
			}
			w := app.wallet("")
			load := w.Coldkey
			if useHotkey {
				load = w.HotkeyKeypair
			}
			keypair, err := load()
			if err != nil {
				return err
			}
			sig, err := wallet.SignMessage(keypair, []byte(message))
			if err != nil {
				return err
			}
			app.printf("  %s %s\n", dim("signer:"), wallet.Address(keypair))
			app.printf("  %s %s\n", dim("signature:"), sig)
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Message to sign")
	cmd.Flags().BoolVar(&useHotkey, "use-hotkey", false, "Sign with the hotkey instead of the coldkey")

	return cmd
}

func newWalletOverviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the wallet's stake positions across subnets",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := app.coldkeyAddress()
			if err != nil {
				return err
			}

			stakeResp, err := app.Chain.GetStakeInfo(addr)
			if err != nil {
				return err
			}
			subnetsResp, err := app.Chain.GetSubnets()
			if err != nil {
				return err
			}

			names := make(map[int]string, len(subnetsResp.Data))
			for _, s := range subnetsResp.Data {
				names[s.Netuid] = s.Name
			}

			var rows [][]string
			var total balance.Balance
			for _, s := range stakeResp.Data {
				if s.Stake == 0 {
					continue
				}
				stake := balance.FromRao(s.Stake)
				total += stake
				rows = append(rows, []string{
					strconv.Itoa(s.Netuid),
					names[s.Netuid],
					shortAddr(s.Hotkey),
					stake.String(),
					balance.FromRao(s.Emission).String(),
					yesNo(s.IsRegistered),
				})
			}

			app.printf("%s\n", sectionHeader("Wallet "+app.Cfg.WalletName))
			app.printf("  %s %s\n\n", dim("coldkey:"), addr)
			if len(rows) == 0 {
				app.printf("%s\n", dim("No stake positions."))
				return nil
			}
			app.printf("%s\n", renderTable(
				[]string{"NETUID", "SUBNET", "HOTKEY", "STAKE", "EMISSION", "REGISTERED"},
				rows,
			))
			app.printf("Total staked: %s\n", styleGreen.Render(total.String()))
			return nil
		},
	}
}

func newWalletHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transfers involving the coldkey",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := app.coldkeyAddress()
			if err != nil {
				return err
			}
			transfers, err := app.History.GetTransfers(addr, limit)
			if err != nil {
				return err
			}
			if len(transfers) == 0 {
				app.printf("%s\n", dim("No transfers found for "+addr))
				return nil
			}

			rows := make([][]string, 0, len(transfers))
			for _, t := range transfers {
				direction := styleGreen.Render("in")
				counterparty := t.From
				if strings.EqualFold(t.From, addr) {
					direction = styleRed.Render("out")
					counterparty = t.To
				}
				rows = append(rows, []string{
					t.Timestamp.Format("2006-01-02 15:04"),
					strconv.Itoa(t.BlockNumber),
					direction,
					shortAddr(counterparty),
					balance.FromRao(t.Amount).String(),
					balance.FromRao(t.Fee).String(),
				})
			}
			app.printf("%s\n", renderTable(
				[]string{"TIME", "BLOCK", "DIR", "COUNTERPARTY", "AMOUNT", "FEE"},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum number of transfers to show")

	return cmd
}
