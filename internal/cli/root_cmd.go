package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/chainutils"
	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/wallet"
)

func newRootNetworkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "root",
		Short: "Root network governance and delegation",
	}

	cmd.AddCommand(
		newRootListCmd(app),
		newRootRegisterCmd(app),
		newRootSetWeightsCmd(app),
		newRootGetWeightsCmd(app),
		newRootBoostCmd(app),
		newRootSlashCmd(app),
		newRootNominateCmd(app),
		newRootSetTakeCmd(app),
		newRootListDelegatesCmd(app),
		newRootMyDelegatesCmd(app),
		newRootDelegateStakeCmd(app),
		newRootUndelegateStakeCmd(app),
		newRootSenateCmd(app),
		newRootSenateVoteCmd(app),
		newRootProposalsCmd(app),
	)

	return cmd
}

func newRootListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the root network validators",
		RunE: func(cmd *cobra.Command, args []string) error {
			metaResp, err := app.Chain.GetMetagraph(rootNetuid)
			if err != nil {
				return err
			}
			meta := metaResp.Data

			senate := map[string]bool{}
			if senateResp, err := app.Chain.GetSenateMembers(); err == nil {
				for _, m := range senateResp.Data {
					senate[m] = true
				}
			}

			rows := make([][]string, 0, len(meta.Hotkeys))
			for uid, hotkey := range meta.Hotkeys {
				rows = append(rows, []string{
					strconv.Itoa(uid),
					shortAddr(hotkey),
					shortAddr(stringAt(meta.Coldkeys, uid)),
					balance.FromTao(floatAt(meta.TotalStake, uid)).String(),
					yesNo(senate[hotkey]),
				})
			}

			app.printf("%s\n", sectionHeader("Root network (netuid 0)"))
			app.printf("%s", renderTable(
				[]string{"UID", "HOTKEY", "COLDKEY", "STAKE", "SENATE"},
				rows,
			))
			return nil
		},
	}
}

func newRootRegisterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register the hotkey on the root network",
		RunE: func(cmd *cobra.Command, args []string) error {
			hotkeyAddr, err := app.hotkeyAddress("")
			if err != nil {
				return err
			}

			app.printf("Registering %s on the root network.\n", hotkeyAddr)
			if err := app.confirmAction("Do you want to register on root?"); err != nil {
				return err
			}

			resp, err := app.Chain.RootRegister(subtensor.RootRegisterParams{
				Signer: app.signer(),
			})
			if err != nil {
				return err
			}
			app.printf("Registered on root: %s\n", resp.Data)
			return nil
		},
	}
}

// rootWeightLimit returns the per-subnet cap on root weights from the root
// network's max_weight_limit hyperparameter, as a fraction. An unset or
// unreadable limit means no cap.
func (a *App) rootWeightLimit() float64 {
	resp, err := a.Chain.GetSubnetHyperparams(rootNetuid)
	if err != nil || resp.Data.MaxWeightsLimit <= 0 {
		return 1
	}
	return chainutils.U16ToTake(resp.Data.MaxWeightsLimit)
}

func newRootSetWeightsCmd(app *App) *cobra.Command {
	var (
		netuids    string
		weights    string
		versionKey int
	)

	cmd := &cobra.Command{
		Use:   "set-weights",
		Short: "Set the hotkey's root network weights over subnets",
		RunE: func(cmd *cobra.Command, args []string) error {
			uids, err := parseIntList(netuids)
			if err != nil {
				return fmt.Errorf("invalid --netuids: %w", err)
			}
			vals, err := parseFloatList(weights)
			if err != nil {
				return fmt.Errorf("invalid --weights: %w", err)
			}
			if len(uids) != len(vals) {
				return fmt.Errorf("%d netuids but %d weights", len(uids), len(vals))
			}
			return app.runSetRootWeights(uids, vals, versionKey)
		},
	}

	cmd.Flags().StringVar(&netuids, "netuids", "", "Comma-separated netuids to weight")
	cmd.Flags().StringVar(&weights, "weights", "", "Comma-separated weights, one per netuid")
	cmd.Flags().IntVar(&versionKey, "version-key", 0, "Weights version key")
	_ = cmd.MarkFlagRequired("netuids")
	_ = cmd.MarkFlagRequired("weights")

	return cmd
}

func (a *App) runSetRootWeights(netuids []int, weights []float64, versionKey int) error {
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("weights cannot be negative, got %v", w)
		}
	}

	normalized := chainutils.NormalizeMaxWeight(weights, a.rootWeightLimit())

	uids64 := make([]int64, len(netuids))
	for i, u := range netuids {
		uids64[i] = int64(u)
	}
	emitUids, emitWeights, err := chainutils.ConvertWeightsAndUidsForEmit(uids64, normalized)
	if err != nil {
		return err
	}
	if len(emitUids) == 0 {
		return fmt.Errorf("all weights normalized to zero, nothing to set")
	}

	normByNetuid := make(map[int]float64, len(netuids))
	for i, n := range netuids {
		normByNetuid[n] = normalized[i]
	}
	rows := make([][]string, 0, len(emitUids))
	for _, u := range emitUids {
		rows = append(rows, []string{strconv.Itoa(u), percentCell(normByNetuid[u])})
	}
	a.printf("%s\n", sectionHeader("Set root weights"))
	a.printf("%s\n", renderTable([]string{"NETUID", "WEIGHT"}, rows))

	if err := a.confirmAction("Do you want to set these root weights?"); err != nil {
		return err
	}

	resp, err := a.Chain.SetRootWeights(subtensor.SetRootWeightsParams{
		Signer:     a.signer(),
		Netuids:    emitUids,
		Weights:    emitWeights,
		VersionKey: versionKey,
	})
	if err != nil {
		return err
	}
	a.printf("Root weights set: %s\n", resp.Data)
	return nil
}

func newRootGetWeightsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get-weights",
		Short: "Show the root weight matrix of all root validators",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Chain.GetRootWeights()
			if err != nil {
				return err
			}
			if len(resp.Data) == 0 {
				app.printf("%s\n", dim("No root weights set."))
				return nil
			}

			// Collect every netuid any validator weights, for the columns.
			netuidSet := map[int]bool{}
			for _, e := range resp.Data {
				for _, n := range e.Netuids {
					netuidSet[n] = true
				}
			}
			netuids := make([]int, 0, len(netuidSet))
			for n := range netuidSet {
				netuids = append(netuids, n)
			}
			sort.Ints(netuids)

			headers := []string{"UID", "HOTKEY"}
			for _, n := range netuids {
				headers = append(headers, "SN"+strconv.Itoa(n))
			}

			rows := make([][]string, 0, len(resp.Data))
			for _, e := range resp.Data {
				byNetuid := make(map[int]float64, len(e.Netuids))
				for i, n := range e.Netuids {
					if i < len(e.Weights) {
						byNetuid[n] = e.Weights[i]
					}
				}
				row := []string{strconv.Itoa(e.UID), shortAddr(e.HotkeySS58)}
				for _, n := range netuids {
					if w, ok := byNetuid[n]; ok {
						row = append(row, percentCell(w))
					} else {
						row = append(row, dim("-"))
					}
				}
				rows = append(rows, row)
			}

			app.printf("%s", renderTable(headers, rows))
			return nil
		},
	}
}

func newRootBoostCmd(app *App) *cobra.Command {
	var (
		netuid     int
		amount     float64
		versionKey int
	)

	cmd := &cobra.Command{
		Use:   "boost",
		Short: "Increase one subnet's root weight by a delta",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return fmt.Errorf("boost amount must be positive, got %v", amount)
			}
			return app.runRootAdjust(netuid, amount, versionKey)
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet whose weight to boost")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount added to the existing weight (e.g. 0.01)")
	cmd.Flags().IntVar(&versionKey, "version-key", 0, "Weights version key")
	_ = cmd.MarkFlagRequired("netuid")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newRootSlashCmd(app *App) *cobra.Command {
	var (
		netuid     int
		amount     float64
		versionKey int
	)

	cmd := &cobra.Command{
		Use:   "slash",
		Short: "Decrease one subnet's root weight by a delta",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return fmt.Errorf("slash amount must be positive, got %v", amount)
			}
			return app.runRootAdjust(netuid, -amount, versionKey)
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet whose weight to slash")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount subtracted from the existing weight (e.g. 0.01)")
	cmd.Flags().IntVar(&versionKey, "version-key", 0, "Weights version key")
	_ = cmd.MarkFlagRequired("netuid")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// runRootAdjust applies a delta to the hotkey's existing weight for one
// subnet, renormalizes the full vector and emits it. A negative delta slashes
// and clamps at zero.
func (a *App) runRootAdjust(netuid int, delta float64, versionKey int) error {
	hotkeyAddr, err := a.hotkeyAddress("")
	if err != nil {
		return err
	}

	weightsResp, err := a.Chain.GetRootWeights()
	if err != nil {
		return err
	}

	byNetuid := map[int]float64{}
	for _, e := range weightsResp.Data {
		if e.HotkeySS58 != hotkeyAddr {
			continue
		}
		for i, n := range e.Netuids {
			if i < len(e.Weights) {
				byNetuid[n] = e.Weights[i]
			}
		}
		break
	}

	before := byNetuid[netuid]
	after := before + delta
	if after < 0 {
		after = 0
	}
	byNetuid[netuid] = after

	netuids := make([]int, 0, len(byNetuid))
	for n := range byNetuid {
		netuids = append(netuids, n)
	}
	sort.Ints(netuids)
	weights := make([]float64, len(netuids))
	for i, n := range netuids {
		weights[i] = byNetuid[n]
	}

	verb := "Boost"
	if delta < 0 {
		verb = "Slash"
	}
	a.printf("%s netuid %d: weight %s -> %s\n", verb, netuid, floatCell(before), floatCell(after))

	return a.runSetRootWeights(netuids, weights, versionKey)
}

func newRootNominateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "nominate",
		Short: "Register the hotkey as a delegate",
		RunE: func(cmd *cobra.Command, args []string) error {
			hotkeyAddr, err := app.hotkeyAddress("")
			if err != nil {
				return err
			}

			app.printf("Nominating %s as a delegate.\n", hotkeyAddr)
			if err := app.confirmAction("Do you want to become a delegate?"); err != nil {
				return err
			}

			resp, err := app.Chain.Nominate(subtensor.NominateParams{
				Signer: app.signer(),
			})
			if err != nil {
				return err
			}
			app.printf("Nominated: %s\n", resp.Data)
			return nil
		},
	}
}

func newRootSetTakeCmd(app *App) *cobra.Command {
	var take float64

	cmd := &cobra.Command{
		Use:   "set-take",
		Short: "Set the delegate take",
		RunE: func(cmd *cobra.Command, args []string) error {
			if take < 0 || take > maxDelegateTake {
				return fmt.Errorf("take must be between 0 and %v, got %v", maxDelegateTake, take)
			}
			takeU16, err := chainutils.TakeToU16(take)
			if err != nil {
				return err
			}

			if err := app.confirmAction(fmt.Sprintf("Set delegate take to %s?", percentCell(take))); err != nil {
				return err
			}

			resp, err := app.Chain.SetDelegateTake(subtensor.SetDelegateTakeParams{
				Signer: app.signer(),
				Take:   takeU16,
			})
			if err != nil {
				return err
			}
			app.printf("Delegate take set: %s\n", resp.Data)
			return nil
		},
	}

	cmd.Flags().Float64Var(&take, "take", 0, "New take as a fraction (0 to 0.18)")
	_ = cmd.MarkFlagRequired("take")

	return cmd
}

func newRootListDelegatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list-delegates",
		Short: "List all registered delegates",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Chain.GetDelegates()
			if err != nil {
				return err
			}

			delegates := resp.Data
			sort.Slice(delegates, func(i, j int) bool {
				return delegates[i].TotalStake > delegates[j].TotalStake
			})

			rows := make([][]string, 0, len(delegates))
			for _, d := range delegates {
				name := d.Name
				if name == "" {
					name = dim("unnamed")
				}
				rows = append(rows, []string{
					name,
					shortAddr(d.HotkeySS58),
					percentCell(d.Take),
					strconv.Itoa(d.NominatorCount),
					balance.FromRao(d.TotalStake).String(),
					strconv.Itoa(len(d.Registrations)),
					balance.FromRao(d.ReturnPerDay).String(),
				})
			}

			app.printf("%s", renderTable(
				[]string{"DELEGATE", "HOTKEY", "TAKE", "NOMINATORS", "TOTAL STAKE", "SUBNETS", "RETURN/DAY"},
				rows,
			))
			return nil
		},
	}
}

func newRootMyDelegatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "my-delegates",
		Short: "List the delegates the coldkey has stake with",
		RunE: func(cmd *cobra.Command, args []string) error {
			coldkeyAddr, err := app.coldkeyAddress()
			if err != nil {
				return err
			}

			resp, err := app.Chain.GetDelegated(coldkeyAddr)
			if err != nil {
				return err
			}
			if len(resp.Data) == 0 {
				app.printf("%s\n", dim("No delegated stake for "+coldkeyAddr))
				return nil
			}

			var total balance.Balance
			rows := make([][]string, 0, len(resp.Data))
			for _, d := range resp.Data {
				name := d.Name
				if name == "" {
					name = dim("unnamed")
				}
				stake := balance.FromRao(d.Stake)
				total += stake
				rows = append(rows, []string{
					name,
					shortAddr(d.HotkeySS58),
					percentCell(d.Take),
					stake.String(),
				})
			}

			app.printf("%s\n", renderTable(
				[]string{"DELEGATE", "HOTKEY", "TAKE", "STAKE"},
				rows,
			))
			app.printf("Total delegated: %s\n", styleGreen.Render(total.String()))
			return nil
		},
	}
}

func newRootDelegateStakeCmd(app *App) *cobra.Command {
	var (
		delegate  string
		amountTao float64
	)

	cmd := &cobra.Command{
		Use:   "delegate-stake",
		Short: "Stake TAO to a delegate hotkey",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wallet.ValidAddress(delegate) {
				return fmt.Errorf("invalid delegate SS58 address %q", delegate)
			}
			if amountTao <= 0 {
				return fmt.Errorf("pass a positive --amount")
			}
			amount := balance.FromTao(amountTao)

			coldkeyAddr, err := app.coldkeyAddress()
			if err != nil {
				return err
			}
			balResp, err := app.Chain.GetBalance(coldkeyAddr)
			if err != nil {
				return err
			}
			free := balance.FromRao(balResp.Data.Free)
			if amount > free {
				return fmt.Errorf("not enough balance: have %s, tried to delegate %s", free, amount)
			}

			app.printf("Delegating %s to %s.\n", amount, delegate)
			if err := app.confirmAction("Do you want to delegate this amount?"); err != nil {
				return err
			}

			resp, err := app.Chain.DelegateStake(subtensor.DelegateStakeParams{
				Signer:       app.coldkeySigner(),
				DelegateSS58: delegate,
				Amount:       amount.Rao(),
			})
			if err != nil {
				return err
			}
			app.printf("Delegated: %s\n", resp.Data)
			return nil
		},
	}

	cmd.Flags().StringVar(&delegate, "delegate", "", "Delegate hotkey SS58 address")
	cmd.Flags().Float64Var(&amountTao, "amount", 0, "Amount to delegate, in TAO")
	_ = cmd.MarkFlagRequired("delegate")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newRootUndelegateStakeCmd(app *App) *cobra.Command {
	var (
		delegate  string
		amountTao float64
	)

	cmd := &cobra.Command{
		Use:   "undelegate-stake",
		Short: "Remove delegated stake from a delegate hotkey",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wallet.ValidAddress(delegate) {
				return fmt.Errorf("invalid delegate SS58 address %q", delegate)
			}
			if amountTao <= 0 {
				return fmt.Errorf("pass a positive --amount")
			}
			amount := balance.FromTao(amountTao)

			app.printf("Undelegating %s from %s.\n", amount, delegate)
			if err := app.confirmAction("Do you want to undelegate this amount?"); err != nil {
				return err
			}

			resp, err := app.Chain.UndelegateStake(subtensor.UndelegateStakeParams{
				Signer:       app.coldkeySigner(),
				DelegateSS58: delegate,
				Amount:       amount.Rao(),
			})
			if err != nil {
				return err
			}
			app.printf("Undelegated: %s\n", resp.Data)
			return nil
		},
	}

	cmd.Flags().StringVar(&delegate, "delegate", "", "Delegate hotkey SS58 address")
	cmd.Flags().Float64Var(&amountTao, "amount", 0, "Amount to undelegate, in TAO")
	_ = cmd.MarkFlagRequired("delegate")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newRootSenateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "senate",
		Short: "List the current senate members",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Chain.GetSenateMembers()
			if err != nil {
				return err
			}

			app.printf("%s\n", sectionHeader(fmt.Sprintf("Senate (%d members)", len(resp.Data))))
			for _, m := range resp.Data {
				app.printf("  %s\n", m)
			}
			return nil
		},
	}
}

func newRootSenateVoteCmd(app *App) *cobra.Command {
	var (
		proposalHash string
		aye          bool
		nay          bool
	)

	cmd := &cobra.Command{
		Use:   "senate-vote",
		Short: "Cast a senate vote on a proposal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if aye == nay {
				return fmt.Errorf("pass exactly one of --aye and --nay")
			}
			return app.runSenateVote(proposalHash, aye)
		},
	}

	cmd.Flags().StringVar(&proposalHash, "proposal", "", "Hash of the proposal to vote on")
	cmd.Flags().BoolVar(&aye, "aye", false, "Vote aye")
	cmd.Flags().BoolVar(&nay, "nay", false, "Vote nay")
	_ = cmd.MarkFlagRequired("proposal")

	return cmd
}

func (a *App) runSenateVote(proposalHash string, approve bool) error {
	proposalsResp, err := a.Chain.GetProposals()
	if err != nil {
		return err
	}
	var proposal *subtensor.Proposal
	for i := range proposalsResp.Data {
		if strings.EqualFold(proposalsResp.Data[i].Hash, proposalHash) {
			proposal = &proposalsResp.Data[i]
			break
		}
	}
	if proposal == nil {
		return fmt.Errorf("no open proposal with hash %s", proposalHash)
	}

	vote := styleGreen.Render("AYE")
	if !approve {
		vote = styleRed.Render("NAY")
	}
	a.printf("%s\n", sectionHeader("Senate vote"))
	a.printf("  %s %s\n", dim("proposal:"), proposal.Hash)
	a.printf("  %s %d ayes, %d nays, threshold %d, ends block %d\n", dim("tally:"),
		len(proposal.Ayes), len(proposal.Nays), proposal.Threshold, proposal.End)
	a.printf("  %s %s\n\n", dim("your vote:"), vote)

	if err := a.confirmAction("Do you want to cast this vote?"); err != nil {
		return err
	}

	resp, err := a.Chain.VoteSenate(subtensor.VoteSenateParams{
		Signer:       a.signer(),
		ProposalHash: proposal.Hash,
		Index:        proposal.Index,
		Approve:      approve,
	})
	if err != nil {
		return err
	}
	a.printf("Vote cast: %s\n", resp.Data)
	return nil
}

func newRootProposalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "proposals",
		Short: "List open senate proposals with their tallies",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Chain.GetProposals()
			if err != nil {
				return err
			}
			if len(resp.Data) == 0 {
				app.printf("%s\n", dim("No open proposals."))
				return nil
			}

			rows := make([][]string, 0, len(resp.Data))
			for _, p := range resp.Data {
				rows = append(rows, []string{
					strconv.Itoa(p.Index),
					shortAddr(p.Hash),
					fmt.Sprintf("%d/%d", len(p.Ayes), p.Threshold),
					strconv.Itoa(len(p.Nays)),
					strconv.Itoa(p.End),
					p.CallData,
				})
			}
			app.printf("%s", renderTable(
				[]string{"INDEX", "HASH", "AYES", "NAYS", "END", "CALL"},
				rows,
			))
			return nil
		},
	}
}
