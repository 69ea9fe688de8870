package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/chainutils"
	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/wallet"
)

// maxDelegateTake caps delegate and childkey takes, mirroring the chain's
// MaxDelegateTake of 18%.
const maxDelegateTake = 0.18

func newStakeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Stake, unstake and manage child hotkeys",
	}

	cmd.AddCommand(
		newStakeAddCmd(app),
		newStakeRemoveCmd(app),
		newStakeListCmd(app),
		newStakeChildCmd(app),
	)

	return cmd
}

func newStakeAddCmd(app *App) *cobra.Command {
	var (
		netuid    int
		amountTao float64
		all       bool
		hotkey    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Stake TAO to a hotkey on a subnet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && amountTao <= 0 {
				return fmt.Errorf("pass --amount or --all")
			}
			return app.runStakeAdd(netuid, balance.FromTao(amountTao), all, hotkey)
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to stake on")
	cmd.Flags().Float64Var(&amountTao, "amount", 0, "Amount to stake, in TAO")
	cmd.Flags().BoolVar(&all, "all", false, "Stake the entire free balance")
	cmd.Flags().StringVar(&hotkey, "hotkey", "", "Hotkey name to stake to (default: the configured hotkey)")
	_ = cmd.MarkFlagRequired("netuid")

	return cmd
}

func (a *App) runStakeAdd(netuid int, amount balance.Balance, all bool, hotkey string) error {
	coldkeyAddr, err := a.coldkeyAddress()
	if err != nil {
		return err
	}
	hotkeyAddr, err := a.hotkeyAddress(hotkey)
	if err != nil {
		return err
	}

	balResp, err := a.Chain.GetBalance(coldkeyAddr)
	if err != nil {
		return err
	}
	free := balance.FromRao(balResp.Data.Free)

	if all {
		amount = free - balance.FromRao(subtensor.ExistentialDepositRao)
		if amount <= 0 {
			return fmt.Errorf("no transferable balance to stake, have %s", free)
		}
	}
	if amount > free {
		return fmt.Errorf("not enough balance: have %s, tried to stake %s", free, amount)
	}

	a.printf("%s\n", sectionHeader("Add stake"))
	a.printf("  %s %d\n", dim("netuid:"), netuid)
	a.printf("  %s %s\n", dim("hotkey:"), hotkeyAddr)
	a.printf("  %s %s\n\n", dim("amount:"), styleGreen.Render(amount.String()))

	if err := a.confirmAction("Do you want to stake this amount?"); err != nil {
		return err
	}

	resp, err := a.Chain.AddStake(subtensor.AddStakeParams{
		Signer:     a.coldkeySigner(),
		Netuid:     netuid,
		HotkeySS58: hotkeyAddr,
		Amount:     amount.Rao(),
	})
	if err != nil {
		return err
	}
	a.printf("Stake added: %s\n", resp.Data)
	return nil
}

func newStakeRemoveCmd(app *App) *cobra.Command {
	var (
		netuid    int
		amountTao float64
		all       bool
		hotkey    string
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Unstake from a hotkey back to the coldkey",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && amountTao <= 0 {
				return fmt.Errorf("pass --amount or --all")
			}
			return app.runStakeRemove(netuid, balance.FromTao(amountTao), all, hotkey)
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to unstake from")
	cmd.Flags().Float64Var(&amountTao, "amount", 0, "Amount to unstake, in TAO")
	cmd.Flags().BoolVar(&all, "all", false, "Unstake the entire position")
	cmd.Flags().StringVar(&hotkey, "hotkey", "", "Hotkey name to unstake from (default: the configured hotkey)")
	_ = cmd.MarkFlagRequired("netuid")

	return cmd
}

func (a *App) runStakeRemove(netuid int, amount balance.Balance, all bool, hotkey string) error {
	coldkeyAddr, err := a.coldkeyAddress()
	if err != nil {
		return err
	}
	hotkeyAddr, err := a.hotkeyAddress(hotkey)
	if err != nil {
		return err
	}

	stakeResp, err := a.Chain.GetStakeInfo(coldkeyAddr)
	if err != nil {
		return err
	}
	var current balance.Balance
	for _, s := range stakeResp.Data {
		if s.Netuid == netuid && s.Hotkey == hotkeyAddr {
			current = balance.FromRao(s.Stake)
			break
		}
	}
	if current == 0 {
		return fmt.Errorf("no stake on netuid %d for hotkey %s", netuid, hotkeyAddr)
	}

	if all {
		amount = current
	}
	if amount > current {
		return fmt.Errorf("not enough stake: have %s on netuid %d, tried to unstake %s", current, netuid, amount)
	}

	a.printf("%s\n", sectionHeader("Remove stake"))
	a.printf("  %s %d\n", dim("netuid:"), netuid)
	a.printf("  %s %s\n", dim("hotkey:"), hotkeyAddr)
	a.printf("  %s %s %s\n\n", dim("amount:"), styleYellow.Render(amount.String()), dim("of "+current.String()))

	if err := a.confirmAction("Do you want to unstake this amount?"); err != nil {
		return err
	}

	resp, err := a.Chain.RemoveStake(subtensor.RemoveStakeParams{
		Signer:     a.coldkeySigner(),
		Netuid:     netuid,
		HotkeySS58: hotkeyAddr,
		Amount:     amount.Rao(),
	})
	if err != nil {
		return err
	}
	a.printf("Stake removed: %s\n", resp.Data)
	return nil
}

func newStakeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"show"},
		Short:   "List the coldkey's stake positions with their TAO value",
		RunE: func(cmd *cobra.Command, args []string) error {
			coldkeyAddr, err := app.coldkeyAddress()
			if err != nil {
				return err
			}

			stakeResp, err := app.Chain.GetStakeInfo(coldkeyAddr)
			if err != nil {
				return err
			}
			subnetsResp, err := app.Chain.GetSubnets()
			if err != nil {
				return err
			}

			type subnetMeta struct {
				name   string
				symbol string
				price  float64
			}
			meta := make(map[int]subnetMeta, len(subnetsResp.Data))
			for _, s := range subnetsResp.Data {
				price := s.Price
				if s.Netuid == 0 {
					price = 1
				} else if price == 0 && s.AlphaIn > 0 {
					price = s.TaoIn / s.AlphaIn
				}
				meta[s.Netuid] = subnetMeta{name: s.Name, symbol: s.Symbol, price: price}
			}

			var rows [][]string
			var totalValue balance.Balance
			for _, s := range stakeResp.Data {
				if s.Stake == 0 {
					continue
				}
				m := meta[s.Netuid]
				amount := balance.FromRao(s.Stake)
				value := balance.FromTao(amount.Tao() * m.price)
				totalValue += value
				rows = append(rows, []string{
					strconv.Itoa(s.Netuid),
					m.name,
					shortAddr(s.Hotkey),
					amount.FormatUnit(m.symbol),
					floatCell(m.price),
					value.String(),
					yesNo(s.IsRegistered),
				})
			}

			if len(rows) == 0 {
				app.printf("%s\n", dim("No stake positions for "+coldkeyAddr))
				return nil
			}
			app.printf("%s\n", renderTable(
				[]string{"NETUID", "SUBNET", "HOTKEY", "AMOUNT", "PRICE", "VALUE", "REGISTERED"},
				rows,
			))
			app.printf("Total value: %s\n", styleGreen.Render(totalValue.String()))
			return nil
		},
	}
}

func newStakeChildCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "child",
		Aliases: []string{"children"},
		Short:   "Manage child hotkey relationships",
	}

	cmd.AddCommand(
		newChildGetCmd(app),
		newChildSetCmd(app),
		newChildRevokeCmd(app),
		newChildTakeCmd(app),
	)

	return cmd
}

func newChildGetCmd(app *App) *cobra.Command {
	var netuid int

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the hotkey's children on a subnet",
		RunE: func(cmd *cobra.Command, args []string) error {
			hotkeyAddr, err := app.hotkeyAddress("")
			if err != nil {
				return err
			}

			childResp, err := app.Chain.GetChildren(hotkeyAddr, netuid)
			if err != nil {
				return err
			}
			if len(childResp.Data) == 0 {
				app.printf("%s\n", dim(fmt.Sprintf("No children for %s on netuid %d", shortAddr(hotkeyAddr), netuid)))
				return nil
			}

			rows := make([][]string, 0, len(childResp.Data))
			var total float64
			for _, c := range childResp.Data {
				p := chainutils.U64ToProportion(c.Proportion)
				total += p
				rows = append(rows, []string{shortAddr(c.ChildSS58), percentCell(p)})
			}
			app.printf("%s\n", renderTable([]string{"CHILD", "PROPORTION"}, rows))
			app.printf("Total proportion: %s\n", percentCell(total))

			if takeResp, err := app.Chain.GetChildkeyTake(hotkeyAddr, netuid); err == nil {
				app.printf("Childkey take: %s\n", percentCell(chainutils.U16ToTake(takeResp.Data.Take)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to query")
	_ = cmd.MarkFlagRequired("netuid")

	return cmd
}

func newChildSetCmd(app *App) *cobra.Command {
	var (
		netuid      int
		children    string
		proportions string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the hotkey's children on a subnet",
		Long: `Replace the child hotkey set for the configured hotkey on one subnet.
Children receive the given proportion of the parent hotkey's stake weight;
the proportions must each be in (0, 1] and sum to at most 1.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			childList := splitList(children)
			props, err := parseFloatList(proportions)
			if err != nil {
				return fmt.Errorf("invalid --proportions: %w", err)
			}
			return app.runChildSet(netuid, childList, props)
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to set children on")
	cmd.Flags().StringVar(&children, "children", "", "Comma-separated child hotkey SS58 addresses")
	cmd.Flags().StringVar(&proportions, "proportions", "", "Comma-separated stake proportions, one per child")
	_ = cmd.MarkFlagRequired("netuid")
	_ = cmd.MarkFlagRequired("children")
	_ = cmd.MarkFlagRequired("proportions")

	return cmd
}

func (a *App) runChildSet(netuid int, children []string, proportions []float64) error {
	if len(children) == 0 {
		return fmt.Errorf("no child hotkeys given")
	}
	if len(children) != len(proportions) {
		return fmt.Errorf("%d children but %d proportions", len(children), len(proportions))
	}

	hotkeyAddr, err := a.hotkeyAddress("")
	if err != nil {
		return err
	}

	var sum float64
	specs := make([]subtensor.ChildSpec, 0, len(children))
	rows := make([][]string, 0, len(children))
	for i, child := range children {
		if !wallet.ValidAddress(child) {
			return fmt.Errorf("invalid child SS58 address %q", child)
		}
		if child == hotkeyAddr {
			return fmt.Errorf("hotkey %s cannot be its own child", shortAddr(hotkeyAddr))
		}
		sum += proportions[i]
		u64, err := chainutils.ProportionToU64(proportions[i])
		if err != nil {
			return fmt.Errorf("child %s: %w", shortAddr(child), err)
		}
		specs = append(specs, subtensor.ChildSpec{ChildSS58: child, Proportion: u64})
		rows = append(rows, []string{shortAddr(child), percentCell(proportions[i])})
	}
	if sum > 1 {
		return fmt.Errorf("proportions sum to %v, must not exceed 1.0", sum)
	}

	a.printf("%s\n", sectionHeader(fmt.Sprintf("Set children on netuid %d", netuid)))
	a.printf("%s\n", renderTable([]string{"CHILD", "PROPORTION"}, rows))

	if err := a.confirmAction("Do you want to set these children?"); err != nil {
		return err
	}

	resp, err := a.Chain.SetChildren(subtensor.SetChildrenParams{
		Signer:     a.signer(),
		Netuid:     netuid,
		HotkeySS58: hotkeyAddr,
		Children:   specs,
	})
	if err != nil {
		return err
	}
	a.printf("Children set: %s\n", resp.Data)
	return nil
}

func newChildRevokeCmd(app *App) *cobra.Command {
	var netuid int

	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Revoke all of the hotkey's children on a subnet",
		RunE: func(cmd *cobra.Command, args []string) error {
			hotkeyAddr, err := app.hotkeyAddress("")
			if err != nil {
				return err
			}

			if err := app.confirmAction(fmt.Sprintf("Revoke ALL children of %s on netuid %d?", shortAddr(hotkeyAddr), netuid)); err != nil {
				return err
			}

			resp, err := app.Chain.SetChildren(subtensor.SetChildrenParams{
				Signer:     app.signer(),
				Netuid:     netuid,
				HotkeySS58: hotkeyAddr,
				Children:   []subtensor.ChildSpec{},
			})
			if err != nil {
				return err
			}
			app.printf("Children revoked: %s\n", resp.Data)
			return nil
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to revoke children on")
	_ = cmd.MarkFlagRequired("netuid")

	return cmd
}

func newChildTakeCmd(app *App) *cobra.Command {
	var (
		netuid int
		take   float64
	)

	cmd := &cobra.Command{
		Use:   "take",
		Short: "Show or set the childkey take on a subnet",
		RunE: func(cmd *cobra.Command, args []string) error {
			hotkeyAddr, err := app.hotkeyAddress("")
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("take") {
				resp, err := app.Chain.GetChildkeyTake(hotkeyAddr, netuid)
				if err != nil {
					return err
				}
				app.printf("Childkey take of %s on netuid %d: %s\n",
					shortAddr(hotkeyAddr), netuid, percentCell(chainutils.U16ToTake(resp.Data.Take)))
				return nil
			}

			if take < 0 || take > maxDelegateTake {
				return fmt.Errorf("take must be between 0 and %v, got %v", maxDelegateTake, take)
			}
			takeU16, err := chainutils.TakeToU16(take)
			if err != nil {
				return err
			}

			if err := app.confirmAction(fmt.Sprintf("Set childkey take to %s on netuid %d?", percentCell(take), netuid)); err != nil {
				return err
			}

			resp, err := app.Chain.SetChildkeyTake(subtensor.SetChildkeyTakeParams{
				Signer:     app.signer(),
				Netuid:     netuid,
				HotkeySS58: hotkeyAddr,
				Take:       takeU16,
			})
			if err != nil {
				return err
			}
			app.printf("Childkey take set: %s\n", resp.Data)
			return nil
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet the take applies to")
	cmd.Flags().Float64Var(&take, "take", 0, "New take as a fraction (0 to 0.18)")
	_ = cmd.MarkFlagRequired("netuid")

	return cmd
}
