// Package cli builds the taocli command tree. Every command runs against an
// App carrying the resolved configuration and the service clients, so tests
// can swap in fake gateways and scripted confirmers.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/config"
	"github.com/tensorplex-labs/taocli/internal/history"
	"github.com/tensorplex-labs/taocli/internal/subtensor"
	"github.com/tensorplex-labs/taocli/internal/utils/logger"
	"github.com/tensorplex-labs/taocli/pkg/prompt"
	"github.com/tensorplex-labs/taocli/pkg/wallet"
)

// App holds the resolved configuration and the clients commands run against.
// Fields left nil are filled with their production implementations before the
// first command runs.
type App struct {
	Cfg     *config.Config
	Chain   *subtensor.Client
	History *history.Client
	Confirm prompt.Confirmer
	Out     io.Writer

	opts Options
}

// Options are the persistent flag values, applied on top of the loaded
// configuration. Empty strings mean "not set on the command line".
type Options struct {
	ConfigPath   string
	Network      string
	GatewayURL   string
	WalletName   string
	WalletHotkey string
	WalletPath   string
	Prompt       bool
	NoPrompt     bool
	Verbosity    int
	Quiet        bool
}

// NewApp returns an empty App ready for NewRootCmd.
func NewApp() *App {
	return &App{}
}

// NewRootCmd creates the top-level "taocli" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "taocli",
		Short:         "Command-line client for the Bittensor network",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.opts.ConfigPath, "config", "", "Config file (default ~/.bittensor/config.yml)")
	pf.StringVar(&app.opts.Network, "network", "", "Subtensor network (finney, test, local, archive)")
	pf.StringVar(&app.opts.GatewayURL, "gateway-url", "", "Chain gateway base URL")
	pf.StringVar(&app.opts.WalletName, "wallet.name", "", "Coldkey wallet name")
	pf.StringVar(&app.opts.WalletHotkey, "wallet.hotkey", "", "Hotkey name within the wallet")
	pf.StringVar(&app.opts.WalletPath, "wallet.path", "", "Wallets directory (default ~/.bittensor/wallets)")
	pf.BoolVar(&app.opts.Prompt, "prompt", defaultPrompt(), "Ask for confirmation before state-changing operations")
	pf.BoolVar(&app.opts.NoPrompt, "no-prompt", false, "Never ask for confirmation, accepting defaults (for scripts and CI)")
	pf.CountVarP(&app.opts.Verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	pf.BoolVar(&app.opts.Quiet, "quiet", false, "Only log errors")

	root.AddCommand(
		newConfigCmd(app),
		newWalletCmd(app),
		newStakeCmd(app),
		newSubnetsCmd(app),
		newRootNetworkCmd(app),
		newSudoCmd(app),
		newWeightsCmd(app),
		newViewCmd(app),
	)

	return root
}

// defaultPrompt enables confirmations only when stdin is a terminal, so
// piped and scripted invocations never block.
func defaultPrompt() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// setup resolves the configuration and wires the production clients for any
// App field a test has not already injected.
func (a *App) setup() error {
	verbosity := a.opts.Verbosity
	if a.opts.Quiet {
		verbosity = -1
	}
	logger.Init(verbosity)

	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return err
	}
	a.opts.applyTo(cfg)
	if !config.KnownNetwork(cfg.Network) {
		return fmt.Errorf("unknown network %q, expected one of %v", cfg.Network, config.Networks())
	}
	a.Cfg = cfg

	if a.Chain == nil {
		chain, err := subtensor.NewClient(cfg)
		if err != nil {
			return err
		}
		a.Chain = chain
	}
	if a.History == nil {
		a.History = history.NewClient("", cfg.Network)
	}
	if a.Confirm == nil {
		a.Confirm = prompt.NewTerminal(os.Stdin, os.Stdout)
	}
	if a.Out == nil {
		a.Out = os.Stdout
	}
	return nil
}

func (o *Options) applyTo(cfg *config.Config) {
	if o.Network != "" {
		cfg.Network = o.Network
	}
	if o.GatewayURL != "" {
		cfg.GatewayURL = o.GatewayURL
	}
	if o.WalletName != "" {
		cfg.WalletName = o.WalletName
	}
	if o.WalletHotkey != "" {
		cfg.WalletHotkey = o.WalletHotkey
	}
	if o.WalletPath != "" {
		cfg.WalletPath = o.WalletPath
	}
}

// Interactive reports whether commands may block on terminal confirmations.
func (a *App) Interactive() bool {
	return a.opts.Prompt && !a.opts.NoPrompt
}

// signer names the configured wallet pair the gateway signs with.
func (a *App) signer() subtensor.Signer {
	return subtensor.Signer{Coldkey: a.Cfg.WalletName, Hotkey: a.Cfg.WalletHotkey}
}

// coldkeySigner is signer without the hotkey, for coldkey-only extrinsics.
func (a *App) coldkeySigner() subtensor.Signer {
	return subtensor.Signer{Coldkey: a.Cfg.WalletName}
}

// wallet returns the selected wallet, optionally overriding the hotkey name.
func (a *App) wallet(hotkey string) *wallet.Wallet {
	return a.Cfg.Wallet("", hotkey)
}

// coldkeyAddress reads the configured wallet's public coldkey address.
func (a *App) coldkeyAddress() (string, error) {
	return a.wallet("").ColdkeypubAddress()
}

// hotkeyAddress reads the configured (or overridden) hotkey's address.
func (a *App) hotkeyAddress(hotkey string) (string, error) {
	return a.wallet(hotkey).HotkeyAddress()
}

// confirmAction asks the standard pre-submission question, defaulting to no.
// A decline maps to prompt.ErrAborted so main reports a clean cancellation
// instead of an error trace. Non-interactive runs proceed without asking.
func (a *App) confirmAction(question string) error {
	if !a.Interactive() {
		return nil
	}
	ok, err := a.Confirm.Confirm(question, false)
	if err != nil {
		return err
	}
	if !ok {
		return prompt.ErrAborted
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}
