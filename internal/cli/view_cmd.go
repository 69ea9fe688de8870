package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/dashboard"
)

func newViewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Local web views of the network",
	}

	cmd.AddCommand(newViewDashboardCmd(app))

	return cmd
}

func newViewDashboardCmd(app *App) *cobra.Command {
	var (
		host     string
		port     int
		netuid   int
		saveFile string
		refresh  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the network dashboard on localhost",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runDashboard(host, port, netuid, saveFile, refresh)
		},
	}

	cmd.Flags().StringVar(&host, "host", dashboard.DefaultServerHost, "Address to serve on")
	cmd.Flags().IntVar(&port, "port", dashboard.DefaultServerPort, "Port to serve on")
	cmd.Flags().IntVar(&netuid, "netuid", -1, "Subnet whose full neuron table to include (-1 for overview only)")
	cmd.Flags().StringVar(&saveFile, "save-file", "", "Write a one-shot HTML snapshot to this file instead of serving")
	cmd.Flags().DurationVar(&refresh, "refresh", dashboard.DefaultRefreshInterval, "Snapshot refresh interval")

	return cmd
}

// dashboardWallet names the coldkey the dashboard watches. A wallet that is
// not on disk just means the page shows no wallet card.
func (a *App) dashboardWallet() *dashboard.WalletRef {
	coldkey, err := a.coldkeyAddress()
	if err != nil {
		return nil
	}
	return &dashboard.WalletRef{Name: a.Cfg.WalletName, Coldkey: coldkey}
}

func (a *App) runDashboard(host string, port, netuid int, saveFile string, refresh time.Duration) error {
	collector := dashboard.NewCollector(a.Chain, a.Cfg.Network, netuid, a.dashboardWallet())

	if saveFile != "" {
		snap, err := collector.Collect()
		if err != nil {
			return err
		}
		page, err := dashboard.RenderHTML(snap)
		if err != nil {
			return err
		}
		if err := os.WriteFile(saveFile, page, 0o644); err != nil {
			return fmt.Errorf("write dashboard snapshot: %w", err)
		}
		a.printf("Dashboard snapshot written to %s\n", saveFile)
		return nil
	}

	srv := dashboard.NewServer(collector, &dashboard.ServerConfig{
		Host:            host,
		Port:            port,
		RefreshInterval: refresh,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.printf("Dashboard serving on %s (ctrl-c to stop)\n", srv.URL())
	return srv.Start(ctx)
}
