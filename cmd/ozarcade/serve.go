package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/ozembnic-arcade/internal/feed"
	"github.com/vovakirdan/ozembnic-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagFeedAddr    string
	flagOrigins     []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server so players can connect and play remotely.
All players share one points balance.

With --feed, an HTTP server also streams the balance, the current score
and the points earned to web pages over WebSocket at /feed.

Examples:
  ozarcade serve
  ozarcade serve --ssh :2222
  ozarcade serve --feed :8080 --origins example.com

Connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH listen address")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key (default: ~/.ozembnic/host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Idle connection timeout")
	serveCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "HTTP listen address for the WebSocket feed (empty = off)")
	serveCmd.Flags().StringSliceVar(&flagOrigins, "origins", nil, "Allowed cross-origin hosts for the feed")
}

func runServe(_ *cobra.Command, _ []string) {
	a := mustOpenApp(false)
	defer a.close()

	env := a.env()
	env.Redeemer = nil // Per connection

	var hub *feed.Hub
	if flagFeedAddr != "" {
		hub = feed.NewHub(feed.WithLogger(a.logger.WithPrefix("feed")), feed.WithOriginPatterns(flagOrigins...))
		env.Stats = hub.Board()
		unsubscribe := a.ledger.Subscribe(env.Stats.ShowBalance)
		defer unsubscribe()
	}

	srv, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
	}, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("connect with", "command", fmt.Sprintf("ssh -p %s localhost", portOf(flagSSHAddr)))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})
	if hub != nil {
		g.Go(func() error {
			return serveFeed(ctx, hub)
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Error("server stopped", "error", err)
		a.close()
		os.Exit(1)
	}
}

// serveFeed runs the WebSocket feed until ctx is done.
func serveFeed(ctx context.Context, hub *feed.Hub) error {
	mux := http.NewServeMux()
	mux.Handle("/feed", hub)

	httpSrv := &http.Server{
		Addr:              flagFeedAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("feed server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
