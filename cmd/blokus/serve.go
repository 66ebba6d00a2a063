package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/config"
	"github.com/vovakirdan/tui-blokus/internal/platform/tui"
	"github.com/vovakirdan/tui-blokus/internal/relay"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWithRelay   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Blokus SSH server",
	Long: `Start an SSH server where every connection gets its own sandbox.

Connected users share a chat hub: press 't' in a session to talk, use
/join <room> to switch rooms. With --relay the TCP chat relay runs on the
same hub, so terminal clients ('blokus chat') see the same rooms.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key_path from the config

Examples:
  blokus serve
  blokus serve --ssh :2222
  blokus serve --relay

Users can connect with:
  ssh localhost -p 2323`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (overrides config)")
	serveCmd.Flags().BoolVar(&flagWithRelay, "relay", false, "Also serve the TCP chat relay")
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// newHub builds a hub from the relay config.
func newHub(cfg config.BlokusConfig, logger *log.Logger) *relay.Hub {
	return relay.NewHub(relay.HubConfig{
		DefaultRoom:   cfg.Relay.DefaultRoom,
		MaxMessageLen: cfg.Relay.MaxMessageLen,
		CleanupPeriod: cfg.Relay.CleanupEvery(),
	}, nil, logger)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("blokus")

	store := openStore(cfg)
	defer store.Close()

	hub := newHub(cfg, logger.WithPrefix("hub"))
	hub.SetChatSaver(store)
	hub.Start()
	defer hub.Stop()

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = cfg.Server.Addr
	sshCfg.HostKeyPath = cfg.Server.HostKeyPath
	sshCfg.IdleTimeout = cfg.Server.IdleTimeoutDuration()
	sshCfg.GameID = cfg.GameID()
	sshCfg.Runtime.StartRule = cfg.Rules.StartRule
	sshCfg.Runtime.ShowOverlay = cfg.Display.ShowOverlay
	sshCfg.ChatLines = cfg.Display.ChatLines
	sshCfg.SendBuffer = cfg.Relay.SendBuffer
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = durationMinutes(flagIdleTimeout)
	}

	server, err := tui.NewSSHServer(sshCfg, store, hub, logger.WithPrefix("ssh"))
	if err != nil {
		fail("cannot create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relayDone := make(chan error, 1)
	if flagWithRelay {
		rs := relay.NewServer(relayServerConfig(cfg), hub, logger.WithPrefix("relay"))
		go func() { relayDone <- rs.ListenAndServe(ctx) }()
	} else {
		close(relayDone)
	}

	logger.Info("connect with", "cmd", "ssh localhost -p "+portOf(sshCfg.Address))
	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		<-relayDone
		fail("server: %v", err)
	}
	if err := <-relayDone; err != nil {
		logger.Error("relay stopped", "error", err)
	}
}
