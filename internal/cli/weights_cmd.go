package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/chainutils"
	"github.com/tensorplex-labs/taocli/internal/subtensor"
)

// commitSaltLen is the number of u16 salt values drawn for a weight
// commitment when the caller does not supply a salt.
const commitSaltLen = 8

func newWeightsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Set, commit and reveal subnet weights",
	}

	cmd.AddCommand(
		newWeightsSetCmd(app),
		newWeightsCommitCmd(app),
		newWeightsRevealCmd(app),
	)

	return cmd
}

// weightsVector holds the parsed and emit-converted uid/weight vectors shared
// by the set, commit and reveal subcommands.
type weightsVector struct {
	uids    []int
	weights []int
	floats  []float64
}

func parseWeightsVector(uidsFlag, weightsFlag string) (weightsVector, error) {
	uids, err := parseIntList(uidsFlag)
	if err != nil {
		return weightsVector{}, fmt.Errorf("invalid --uids: %w", err)
	}
	floats, err := parseFloatList(weightsFlag)
	if err != nil {
		return weightsVector{}, fmt.Errorf("invalid --weights: %w", err)
	}
	if len(uids) != len(floats) {
		return weightsVector{}, fmt.Errorf("%d uids but %d weights", len(uids), len(floats))
	}
	for _, w := range floats {
		if w < 0 {
			return weightsVector{}, fmt.Errorf("weights cannot be negative, got %v", w)
		}
	}

	uids64 := make([]int64, len(uids))
	for i, u := range uids {
		uids64[i] = int64(u)
	}
	emitUids, emitWeights, err := chainutils.ConvertWeightsAndUidsForEmit(uids64, floats)
	if err != nil {
		return weightsVector{}, err
	}
	if len(emitUids) == 0 {
		return weightsVector{}, fmt.Errorf("all weights normalized to zero, nothing to emit")
	}
	return weightsVector{uids: emitUids, weights: emitWeights, floats: floats}, nil
}

func (v weightsVector) printTable(a *App, title string) {
	rows := make([][]string, 0, len(v.uids))
	for i, u := range v.uids {
		rows = append(rows, []string{
			strconv.Itoa(u),
			strconv.Itoa(v.weights[i]),
			fmt.Sprintf("%.4f", float64(v.weights[i])/chainutils.U16MAX),
		})
	}
	a.printf("%s\n", sectionHeader(title))
	a.printf("%s\n", renderTable([]string{"UID", "WEIGHT (U16)", "NORMALIZED"}, rows))
}

func newWeightsSetCmd(app *App) *cobra.Command {
	var (
		netuid     int
		uidsFlag   string
		weightsF   string
		versionKey int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set weights on a subnet directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			vec, err := parseWeightsVector(uidsFlag, weightsF)
			if err != nil {
				return err
			}

			vec.printTable(app, fmt.Sprintf("Set weights on netuid %d", netuid))
			if err := app.confirmAction("Do you want to set these weights?"); err != nil {
				return err
			}

			resp, err := app.Chain.SetWeights(subtensor.SetWeightsParams{
				Signer:     app.signer(),
				Netuid:     netuid,
				Dests:      vec.uids,
				Weights:    vec.weights,
				VersionKey: versionKey,
			})
			if err != nil {
				return err
			}
			app.printf("Weights set: %s\n", resp.Data)
			return nil
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to set weights on")
	cmd.Flags().StringVar(&uidsFlag, "uids", "", "Comma-separated neuron uids")
	cmd.Flags().StringVar(&weightsF, "weights", "", "Comma-separated weights, one per uid")
	cmd.Flags().IntVar(&versionKey, "version-key", 0, "Weights version key")
	_ = cmd.MarkFlagRequired("netuid")
	_ = cmd.MarkFlagRequired("uids")
	_ = cmd.MarkFlagRequired("weights")

	return cmd
}

func newWeightsCommitCmd(app *App) *cobra.Command {
	var (
		netuid     int
		uidsFlag   string
		weightsF   string
		saltFlag   string
		versionKey int
	)

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit a weight hash for later reveal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runWeightsCommit(netuid, uidsFlag, weightsF, saltFlag, versionKey)
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to commit weights on")
	cmd.Flags().StringVar(&uidsFlag, "uids", "", "Comma-separated neuron uids")
	cmd.Flags().StringVar(&weightsF, "weights", "", "Comma-separated weights, one per uid")
	cmd.Flags().StringVar(&saltFlag, "salt", "", "Comma-separated salt values (random when omitted)")
	cmd.Flags().IntVar(&versionKey, "version-key", 0, "Weights version key")
	_ = cmd.MarkFlagRequired("netuid")
	_ = cmd.MarkFlagRequired("uids")
	_ = cmd.MarkFlagRequired("weights")

	return cmd
}

func (a *App) runWeightsCommit(netuid int, uidsFlag, weightsFlag, saltFlag string, versionKey int) error {
	vec, err := parseWeightsVector(uidsFlag, weightsFlag)
	if err != nil {
		return err
	}

	var salt []int
	if saltFlag != "" {
		salt, err = parseIntList(saltFlag)
		if err != nil {
			return fmt.Errorf("invalid --salt: %w", err)
		}
	} else {
		salt, err = chainutils.NewSalt(commitSaltLen)
		if err != nil {
			return err
		}
	}

	hotkeyAddr, err := a.hotkeyAddress("")
	if err != nil {
		return err
	}
	hash, err := chainutils.CommitHash(hotkeyAddr, netuid, vec.uids, vec.weights, salt, versionKey)
	if err != nil {
		return err
	}

	vec.printTable(a, fmt.Sprintf("Commit weights on netuid %d", netuid))
	a.printf("  %s %s\n\n", dim("commit hash:"), hash)

	if err := a.confirmAction("Do you want to commit these weights?"); err != nil {
		return err
	}

	resp, err := a.Chain.CommitWeights(subtensor.CommitWeightsParams{
		Signer: a.signer(),
		Netuid: netuid,
		Commit: hash,
	})
	if err != nil {
		return err
	}

	a.printf("Weights committed: %s\n\n", resp.Data)
	a.printf("Keep the salt, the reveal must reproduce it exactly:\n")
	a.printf("  %s\n\n", bold(intListString(salt)))
	a.printf("Reveal with:\n")
	a.printf("  %s\n", dim(fmt.Sprintf(
		"taocli weights reveal --netuid %d --uids %s --weights %s --salt %s --version-key %d",
		netuid, uidsFlag, weightsFlag, intListString(salt), versionKey,
	)))
	return nil
}

func newWeightsRevealCmd(app *App) *cobra.Command {
	var (
		netuid     int
		uidsFlag   string
		weightsF   string
		saltFlag   string
		versionKey int
	)

	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal previously committed weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			vec, err := parseWeightsVector(uidsFlag, weightsF)
			if err != nil {
				return err
			}
			salt, err := parseIntList(saltFlag)
			if err != nil {
				return fmt.Errorf("invalid --salt: %w", err)
			}

			vec.printTable(app, fmt.Sprintf("Reveal weights on netuid %d", netuid))
			if err := app.confirmAction("Do you want to reveal these weights?"); err != nil {
				return err
			}

			resp, err := app.Chain.RevealWeights(subtensor.RevealWeightsParams{
				Signer:     app.signer(),
				Netuid:     netuid,
				Uids:       vec.uids,
				Weights:    vec.weights,
				Salt:       salt,
				VersionKey: versionKey,
			})
			if err != nil {
				return err
			}
			app.printf("Weights revealed: %s\n", resp.Data)
			return nil
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to reveal weights on")
	cmd.Flags().StringVar(&uidsFlag, "uids", "", "Comma-separated neuron uids from the commit")
	cmd.Flags().StringVar(&weightsF, "weights", "", "Comma-separated weights from the commit")
	cmd.Flags().StringVar(&saltFlag, "salt", "", "Comma-separated salt from the commit")
	cmd.Flags().IntVar(&versionKey, "version-key", 0, "Weights version key from the commit")
	_ = cmd.MarkFlagRequired("netuid")
	_ = cmd.MarkFlagRequired("uids")
	_ = cmd.MarkFlagRequired("weights")
	_ = cmd.MarkFlagRequired("salt")

	return cmd
}

func intListString(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
