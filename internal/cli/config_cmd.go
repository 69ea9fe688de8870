package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage persistent CLI defaults",
	}

	cmd.AddCommand(
		newConfigSetCmd(app),
		newConfigGetCmd(app),
		newConfigClearCmd(app),
	)

	return cmd
}

func newConfigSetCmd(app *App) *cobra.Command {
	var metagraphCols []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set persistent defaults (network, wallet, gateway)",
		Long: `Write defaults to the config file. Values come from the global flags
(--network, --gateway-url, --wallet.name, --wallet.hotkey, --wallet.path);
with no flags set an interactive form is shown instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.LoadFile(app.Cfg.Path)
			if err != nil {
				return err
			}

			changed := false
			if app.opts.Network != "" {
				file.Network = app.opts.Network
				changed = true
			}
			if app.opts.GatewayURL != "" {
				file.GatewayURL = app.opts.GatewayURL
				changed = true
			}
			if app.opts.WalletName != "" {
				file.WalletName = app.opts.WalletName
				changed = true
			}
			if app.opts.WalletHotkey != "" {
				file.WalletHotkey = app.opts.WalletHotkey
				changed = true
			}
			if app.opts.WalletPath != "" {
				file.WalletPath = app.opts.WalletPath
				changed = true
			}
			for _, kv := range metagraphCols {
				name, val, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("invalid --metagraph-col %q, expected NAME=true|false", kv)
				}
				enabled, err := strconv.ParseBool(val)
				if err != nil {
					return fmt.Errorf("invalid --metagraph-col %q: %w", kv, err)
				}
				if file.MetagraphCols == nil {
					file.MetagraphCols = map[string]bool{}
				}
				file.MetagraphCols[strings.ToUpper(name)] = enabled
				changed = true
			}

			if !changed {
				if !app.Interactive() {
					return fmt.Errorf("nothing to set; pass --network, --gateway-url, --wallet.name, --wallet.hotkey, --wallet.path or --metagraph-col")
				}
				if err := configForm(app.Cfg, file); err != nil {
					return err
				}
			}

			if err := file.Save(app.Cfg.Path); err != nil {
				return err
			}
			app.printf("Config written to %s\n", app.Cfg.Path)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&metagraphCols, "metagraph-col", nil, "Toggle a metagraph column, NAME=true|false (repeatable)")

	return cmd
}

// configForm edits every persisted key in one interactive pass, seeded with
// the currently resolved values.
func configForm(cfg *config.Config, file *config.FileConfig) error {
	network := cfg.Network
	gatewayURL := cfg.GatewayURL
	walletName := cfg.WalletName
	walletHotkey := cfg.WalletHotkey
	walletPath := cfg.WalletPath

	names := config.Networks()
	networkOpts := make([]huh.Option[string], 0, len(names))
	for _, n := range names {
		networkOpts = append(networkOpts, huh.NewOption(n, n))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Network").Options(networkOpts...).Value(&network),
			huh.NewInput().Title("Gateway URL").Value(&gatewayURL),
			huh.NewInput().Title("Wallet name").Value(&walletName),
			huh.NewInput().Title("Wallet hotkey").Value(&walletHotkey),
			huh.NewInput().Title("Wallets directory").Value(&walletPath),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	file.Network = network
	file.GatewayURL = gatewayURL
	file.WalletName = walletName
	file.WalletHotkey = walletHotkey
	file.WalletPath = walletPath
	return nil
}

func newConfigGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{
				{"network", app.Cfg.Network},
				{"gateway_url", app.Cfg.GatewayURL},
				{"wallet_name", app.Cfg.WalletName},
				{"wallet_hotkey", app.Cfg.WalletHotkey},
				{"wallet_path", app.Cfg.WalletPath},
			}
			cols := make([]string, 0, len(app.Cfg.MetagraphCols))
			for name := range app.Cfg.MetagraphCols {
				cols = append(cols, name)
			}
			sort.Strings(cols)
			for _, name := range cols {
				rows = append(rows, []string{"metagraph_cols." + name, strconv.FormatBool(app.Cfg.MetagraphCols[name])})
			}

			app.printf("%s\n", renderTable([]string{"KEY", "VALUE"}, rows))
			app.printf("%s\n", dim("Config file: "+app.Cfg.Path))
			return nil
		},
	}
}

func newConfigClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [key...]",
		Short: "Reset persistent defaults (all keys when none given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.LoadFile(app.Cfg.Path)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				*file = config.FileConfig{}
			}
			for _, key := range args {
				switch key {
				case "network":
					file.Network = ""
				case "gateway_url":
					file.GatewayURL = ""
				case "wallet_name":
					file.WalletName = ""
				case "wallet_hotkey":
					file.WalletHotkey = ""
				case "wallet_path":
					file.WalletPath = ""
				case "metagraph_cols":
					file.MetagraphCols = nil
				case "all":
					*file = config.FileConfig{}
				default:
					return fmt.Errorf("unknown config key %q", key)
				}
			}

			if err := file.Save(app.Cfg.Path); err != nil {
				return err
			}
			app.printf("Config written to %s\n", app.Cfg.Path)
			return nil
		},
	}
}
