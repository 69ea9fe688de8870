package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/subtensor"
)

func newSudoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sudo",
		Short: "Subnet owner hyperparameter administration",
	}

	cmd.AddCommand(
		newSudoSetCmd(app),
		newSudoGetCmd(app),
	)

	return cmd
}

// settableHyperparams are the names `sudo set --param` accepts, matching the
// rows `sudo get` prints.
func settableHyperparams() []string {
	rows := hyperparamRows(subtensor.SubnetHyperparams{})
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r[0])
	}
	sort.Strings(names)
	return names
}

func newSudoSetCmd(app *App) *cobra.Command {
	var (
		netuid int
		param  string
		value  string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a subnet hyperparameter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSudoSet(netuid, param, value)
		},
	}

	cmd.Flags().IntVar(&netuid, "netuid", 0, "Subnet to modify")
	cmd.Flags().StringVar(&param, "param", "", "Hyperparameter name, e.g. tempo")
	cmd.Flags().StringVar(&value, "value", "", "New value")
	_ = cmd.MarkFlagRequired("netuid")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func (a *App) runSudoSet(netuid int, param, value string) error {
	known := settableHyperparams()

	if param == "" {
		if !a.Interactive() {
			return fmt.Errorf("pass --param (one of: %v)", known)
		}
		if err := selectString("Hyperparameter to set", known, &param); err != nil {
			return err
		}
	}

	found := false
	for _, name := range known {
		if name == param {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown hyperparameter %q (one of: %v)", param, known)
	}

	// Show the current value so the operator sees what they are replacing.
	if resp, err := a.Chain.GetSubnetHyperparams(netuid); err == nil {
		for _, row := range hyperparamRows(resp.Data) {
			if row[0] == param {
				a.printf("Netuid %d: %s is currently %s.\n", netuid, param, row[1])
				break
			}
		}
	}

	a.printf("Setting %s to %s on netuid %d.\n", styleBold.Render(param), styleBold.Render(value), netuid)
	if err := a.confirmAction("Do you want to set this hyperparameter?"); err != nil {
		return err
	}

	resp, err := a.Chain.SudoSetHyperparam(subtensor.SudoSetHyperparamParams{
		Signer: a.coldkeySigner(),
		Netuid: netuid,
		Param:  param,
		Value:  value,
	})
	if err != nil {
		return err
	}
	a.printf("Hyperparameter set: %s\n", resp.Data)
	return nil
}

func newSudoGetCmd(app *App) *cobra.Command {
	var netuid int

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a subnet's hyperparameters",
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
