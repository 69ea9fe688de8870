package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/chainutils"
	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/balance"
)

func newSubnetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subnets",
		Aliases: []string{"subnet", "s"},
		Short:   "Inspect and register on subnets",
	}

	cmd.AddCommand(
		newSubnetsListCmd(app),
		newSubnetsMetagraphCmd(app),
		newSubnetsRegisterCmd(app),
		newSubnetsCreateCmd(app),
		newSubnetsLockCostCmd(app),
		newSubnetsHyperparamsCmd(app),
	)

	return cmd
}

func newSubnetsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all subnets",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Chain.GetSubnets()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(resp.Data))
			for _, s := range resp.Data {
				price := s.Price
				if s.Netuid == 0 {
					price = 1
				} else if price == 0 && s.AlphaIn > 0 {
					price = s.TaoIn / s.AlphaIn
				}
				rows = append(rows, []string{
					strconv.Itoa(s.Netuid),
					s.Name,
					s.Symbol,
					floatCell(price),
					balance.FromTao(s.Emission).String(),
					fmt.Sprintf("%d/%d", s.NumUids, s.MaxUids),
					balance.FromTao(s.Burn).String(),
					yesNo(s.RegistrationAllowed),
				})
			}

			app.printf("%s\n", renderTable(
				[]string{"NETUID", "NAME", "SYMBOL", "PRICE", "EMISSION", "UIDS", "BURN", "REG"},
				rows,
			))
			app.printf("%s\n", dim(fmt.Sprintf("%d subnets on %s", len(resp.Data), app.Cfg.Network)))
			return nil
		},
	}
}

// metagraphColumns are the neuron table columns in display order. The
// metagraph_cols config map toggles them by name.
var metagraphColumns = []string{
	"UID", "STAKE", "RANK", "TRUST", "CONSENSUS", "INCENTIVE", "DIVIDENDS",
	"EMISSION", "UPDATED", "ACTIVE", "AXON", "HOTKEY", "COLDKEY",
}

func newSubnetsMetagraphCmd(app *App) *cobra.Command {
	var netuid int

	cmd := &cobra.Command{
		Use:   "metagraph",
		Short: "Show the neuron table of one subnet",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Chain.GetMetagraph(netuid)
			if err != nil {
				return err
			}
			app.printMetagraph(&resp.Data)
			return nil
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to show")
	_ = cmd.MarkFlagRequired("netuid")

	return cmd
}

func (a *App) printMetagraph(meta *subtensor.SubnetMetagraph) {
	enabled := func(col string) bool {
		if a.Cfg.MetagraphCols == nil {
			return true
		}
		on, known := a.Cfg.MetagraphCols[col]
		return !known || on
	}

	var headers []string
	for _, col := range metagraphColumns {
		if enabled(col) {
			headers = append(headers, col)
		}
	}

	rows := make([][]string, 0, len(meta.Hotkeys))
	for uid := range meta.Hotkeys {
		cells := map[string]string{
			"UID":       strconv.Itoa(uid),
			"STAKE":     balance.FromTao(floatAt(meta.TotalStake, uid)).String(),
			"RANK":      floatCell(floatAt(meta.Rank, uid)),
			"TRUST":     floatCell(floatAt(meta.Trust, uid)),
			"CONSENSUS": floatCell(floatAt(meta.Consensus, uid)),
			"INCENTIVE": floatCell(floatAt(meta.Incentives, uid)),
			"DIVIDENDS": floatCell(floatAt(meta.Dividends, uid)),
			"EMISSION":  balance.FromTao(floatAt(meta.Emission, uid)).String(),
			"UPDATED":   strconv.Itoa(intAt(meta.LastUpdate, uid)),
			"ACTIVE":    yesNo(boolAt(meta.Active, uid)),
			"AXON":      axonCell(meta.Axons, uid),
			"HOTKEY":    shortAddr(meta.Hotkeys[uid]),
			"COLDKEY":   shortAddr(stringAt(meta.Coldkeys, uid)),
		}
		if boolAt(meta.ValidatorPermit, uid) {
			cells["UID"] += "*"
		}
		row := make([]string, 0, len(headers))
		for _, h := range headers {
			row = append(row, cells[h])
		}
		rows = append(rows, row)
	}

	a.printf("%s\n", sectionHeader(fmt.Sprintf("Subnet %d: %s %s", meta.Netuid, meta.Name, meta.Symbol)))
	a.printf("  %s %d   %s %d/%d   %s %d   %s %s\n\n",
		dim("block:"), meta.Block,
		dim("uids:"), meta.NumUids, meta.MaxUids,
		dim("tempo:"), meta.Tempo,
		dim("emission:"), balance.FromTao(meta.SubnetEmission).String(),
	)
	a.printf("%s", renderTable(headers, rows))
	a.printf("%s\n", dim("* validator permit"))
}

func axonCell(axons []subtensor.AxonInfo, uid int) string {
	if uid >= len(axons) || axons[uid].IP == "" {
		return dim("none")
	}
	ax := axons[uid]
	return fmt.Sprintf("%s:%d", chainutils.DecodeIP(ax.IP, ax.IPType), ax.Port)
}

func newSubnetsRegisterCmd(app *App) *cobra.Command {
	var netuid int

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the hotkey on a subnet (burned registration)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSubnetRegister(netuid)
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to register on")
	_ = cmd.MarkFlagRequired("netuid")

	return cmd
}

func (a *App) runSubnetRegister(netuid int) error {
	hotkeyAddr, err := a.hotkeyAddress("")
	if err != nil {
		return err
	}

	checkResp, err := a.Chain.CheckHotkey(netuid, hotkeyAddr)
	if err != nil {
		return err
	}
	if checkResp.Data.IsHotkeyValid {
		a.printf("Hotkey %s is already registered on netuid %d.\n", shortAddr(hotkeyAddr), netuid)
		return nil
	}

	subnetsResp, err := a.Chain.GetSubnets()
	if err != nil {
		return err
	}
	var info *subtensor.SubnetInfo
	for i := range subnetsResp.Data {
		if subnetsResp.Data[i].Netuid == netuid {
			info = &subnetsResp.Data[i]
			break
		}
	}
	if info == nil {
		return fmt.Errorf("subnet %d does not exist", netuid)
	}
	if !info.RegistrationAllowed {
		return fmt.Errorf("registration is disabled on netuid %d", netuid)
	}
	burn := balance.FromTao(info.Burn)

	coldkeyAddr, err := a.coldkeyAddress()
	if err != nil {
		return err
	}
	balResp, err := a.Chain.GetBalance(coldkeyAddr)
	if err != nil {
		return err
	}
	free := balance.FromRao(balResp.Data.Free)
	if burn > free {
		return fmt.Errorf("not enough balance to cover the registration burn: have %s, need %s", free, burn)
	}

	a.printf("%s\n", sectionHeader(fmt.Sprintf("Register on netuid %d (%s)", netuid, info.Name)))
	a.printf("  %s %s\n", dim("hotkey:"), hotkeyAddr)
	a.printf("  %s %s\n", dim("burn cost:"), styleYellow.Render(burn.String()))
	a.printf("  %s %s\n\n", dim("balance:"), free.String())

	if err := a.confirmAction(fmt.Sprintf("Burn %s to register on netuid %d?", burn, netuid)); err != nil {
		return err
	}

	resp, err := a.Chain.RegisterNeuron(subtensor.RegisterNeuronParams{
		Signer: a.signer(),
		Netuid: netuid,
	})
	if err != nil {
		return err
	}
	a.printf("Registered: %s\n", resp.Data)
	return nil
}

func newSubnetsCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Register a new subnet owned by the coldkey",
		RunE: func(cmd *cobra.Command, args []string) error {
			costResp, err := app.Chain.GetSubnetLockCost()
			if err != nil {
				return err
			}
			cost := balance.FromRao(costResp.Data)

			coldkeyAddr, err := app.coldkeyAddress()
			if err != nil {
				return err
			}
			balResp, err := app.Chain.GetBalance(coldkeyAddr)
			if err != nil {
				return err
			}
			free := balance.FromRao(balResp.Data.Free)
			if cost > free {
				return fmt.Errorf("not enough balance to lock for subnet creation: have %s, need %s", free, cost)
			}

			app.printf("%s\n", sectionHeader("Create subnet"))
			app.printf("  %s %s\n", dim("owner:"), coldkeyAddr)
			app.printf("  %s %s\n\n", dim("lock cost:"), styleYellow.Render(cost.String()))

			if err := app.confirmAction(fmt.Sprintf("Lock %s to create a new subnet?", cost)); err != nil {
				return err
			}

			resp, err := app.Chain.RegisterSubnet(subtensor.RegisterSubnetParams{
				Signer: app.signer(),
			})
			if err != nil {
				return err
			}
			app.printf("Subnet created: %s\n", resp.Data)
			return nil
		},
	}
}

func newSubnetsLockCostCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lock-cost",
		Short: "Show the current subnet creation lock cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Chain.GetSubnetLockCost()
			if err != nil {
				return err
			}
			app.printf("Subnet lock cost: %s\n", balance.FromRao(resp.Data).String())
			return nil
		},
	}
}

func newSubnetsHyperparamsCmd(app *App) *cobra.Command {
	var netuid int

	cmd := &cobra.Command{
		Use:     "hyperparameters",
		Aliases: []string{"hyperparams"},
		Short:   "Show a subnet's hyperparameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Chain.GetSubnetHyperparams(netuid)
			if err != nil {
				return err
			}
			app.printf("%s\n", sectionHeader(fmt.Sprintf("Hyperparameters of netuid %d", netuid)))
			app.printf("%s", renderTable([]string{"PARAMETER", "VALUE"}, hyperparamRows(resp.Data)))
			return nil
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to query")
	_ = cmd.MarkFlagRequired("netuid")

	return cmd
}

// hyperparamRows flattens the hyperparameter struct into rows keyed by the
// names `sudo set --param` accepts.
func hyperparamRows(p subtensor.SubnetHyperparams) [][]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	i := func(v int) string { return strconv.Itoa(v) }
	i64 := func(v int64) string { return strconv.FormatInt(v, 10) }
	b := func(v bool) string { return strconv.FormatBool(v) }

	return [][]string{
		{"rho", f(p.Rho)},
		{"kappa", f(p.Kappa)},
		{"immunity_period", i(p.ImmunityPeriod)},
		{"min_allowed_weights", i(p.MinAllowedWeights)},
		{"max_weight_limit", i(p.MaxWeightsLimit)},
		{"tempo", i(p.Tempo)},
		{"min_difficulty", i64(p.MinDifficulty)},
		{"max_difficulty", i64(p.MaxDifficulty)},
		{"weights_version", i(p.WeightsVersion)},
		{"weights_rate_limit", i(p.WeightsRateLimit)},
		{"adjustment_interval", i(p.AdjustmentInterval)},
		{"activity_cutoff", i(p.ActivityCutoff)},
		{"registration_allowed", b(p.RegistrationAllowed)},
		{"target_regs_per_interval", i(p.TargetRegsPerInterval)},
		{"min_burn", i64(p.MinBurn)},
		{"max_burn", i64(p.MaxBurn)},
		{"bonds_moving_avg", i64(p.BondsMovingAvg)},
		{"max_regs_per_block", i(p.MaxRegsPerBlock)},
		{"serving_rate_limit", i(p.ServingRateLimit)},
		{"max_validators", i(p.MaxValidators)},
		{"adjustment_alpha", p.AdjustmentAlpha},
		{"difficulty", i64(p.Difficulty)},
		{"commit_reveal_period", i(p.CommitRevealPeriod)},
		{"commit_reveal_weights_enabled", b(p.CommitRevealWeightsEnabled)},
		{"alpha_high", f(p.AlphaHigh)},
		{"alpha_low", f(p.AlphaLow)},
		{"liquid_alpha_enabled", b(p.LiquidAlphaEnabled)},
	}
}
