package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/config"
	"github.com/vovakirdan/tui-blokus/internal/relay"
)

var (
	flagRelayAddr string
	flagNoHistory bool
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Start the TCP chat relay",
	Long: `Start the chat relay on its own. Clients speak the length-framed
binary protocol; 'blokus chat' is a terminal client.

Broadcast lines are stored in the session database unless --no-history
is given.

Examples:
  blokus relay
  blokus relay --addr 127.0.0.1:7000`,
	Run: runRelay,
}

func init() {
	relayCmd.Flags().StringVar(&flagRelayAddr, "addr", "", "Listen address (overrides config)")
	relayCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not store chat lines")
}

// relayServerConfig maps the file config onto the TCP server config.
func relayServerConfig(cfg config.BlokusConfig) relay.ServerConfig {
	rc := relay.DefaultServerConfig()
	rc.Address = cfg.Relay.Addr
	rc.SendBuffer = cfg.Relay.SendBuffer
	if flagRelayAddr != "" {
		rc.Address = flagRelayAddr
	}
	return rc
}

func durationMinutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// portOf returns the port of a host:port address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}

func runRelay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("relay")

	hub := newHub(cfg, logger.WithPrefix("hub"))
	if !flagNoHistory {
		store := openStore(cfg)
		defer store.Close()
		hub.SetChatSaver(store)
	}
	hub.Start()
	defer hub.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := relay.NewServer(relayServerConfig(cfg), hub, logger)
	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		fail("%v", err)
	}
}
