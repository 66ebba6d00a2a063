package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blokus/internal/relay"
)

var (
	flagChatAddr string
	flagChatName string
	flagChatRoom string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat through a relay from the terminal",
	Long: `Connect to a chat relay and talk line by line.

Commands:
  /join <room>  - Switch rooms
  /leave        - Leave the current room
  /rooms        - List rooms
  /nick <name>  - Change your name
  /quit         - Disconnect

Examples:
  blokus chat
  blokus chat --addr example.org:6969 --name Kai --room blokus`,
	Run: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&flagChatAddr, "addr", "", "Relay address (default from config)")
	chatCmd.Flags().StringVar(&flagChatName, "name", "", "Username (generated when empty)")
	chatCmd.Flags().StringVar(&flagChatRoom, "room", "", "Room to join (default from config)")
}

func runChat(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	addr := cfg.Relay.Addr
	if flagChatAddr != "" {
		addr = flagChatAddr
	}
	if strings.HasPrefix(addr, "0.0.0.0:") {
		addr = "127.0.0.1:" + strings.TrimPrefix(addr, "0.0.0.0:")
	}
	room := cfg.Relay.DefaultRoom
	if flagChatRoom != "" {
		room = flagChatRoom
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	client, err := relay.Dial(dialCtx, addr)
	cancel()
	if err != nil {
		fail("%v", err)
	}
	defer client.Close()

	go func() {
		<-ctx.Done()
		client.Close()
	}()

	// Setting the name first means a later room join is announced with it.
	if err := client.Send(relay.SetUsernameMsg{Username: flagChatName}); err != nil {
		fail("%v", err)
	}
	if room != "" {
		if err := client.Send(relay.JoinRoomMsg{Room: room}); err != nil {
			fail("%v", err)
		}
	}

	go printEvents(client, stop)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		msg, quit := parseChatLine(scanner.Text())
		if quit {
			return
		}
		if msg == nil {
			continue
		}
		if err := client.Send(msg); err != nil {
			if ctx.Err() == nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return
		}
	}
}

// parseChatLine maps one input line to a relay message.
func parseChatLine(line string) (msg relay.ClientMessage, quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit":
		return nil, true
	case "/join":
		return relay.JoinRoomMsg{Room: arg}, false
	case "/leave":
		return relay.LeaveRoomMsg{}, false
	case "/rooms":
		return relay.GetRoomsMsg{}, false
	case "/nick":
		return relay.SetUsernameMsg{Username: arg}, false
	}
	return relay.SendChatMsg{Message: line}, false
}

// printEvents prints server events until the connection ends.
func printEvents(client *relay.Client, stop context.CancelFunc) {
	defer stop()
	for {
		evt, err := client.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(os.Stderr, "connection closed: %v\n", err)
			}
			return
		}
		fmt.Println(formatEvent(evt))
	}
}

func formatEvent(evt relay.ServerEvent) string {
	switch e := evt.(type) {
	case relay.UsernameSetEvent:
		return "* you are " + e.Username
	case relay.JoinRoomEvent:
		if !e.OK() {
			return fmt.Sprintf("! cannot join %q: %s", e.Room, e.Err)
		}
		return "* joined #" + e.Room
	case relay.RoomsEvent:
		if len(e.Rooms) == 0 {
			return "* no rooms"
		}
		return "* rooms: " + strings.Join(e.Rooms, ", ")
	case relay.ChatBroadcastEvent:
		ts := time.Unix(int64(e.Timestamp), 0).Format("15:04")
		return fmt.Sprintf("%s [%s] %s: %s", ts, e.Room, e.Username, e.Message)
	case relay.ErrorEvent:
		return "! " + e.Message
	}
	return fmt.Sprintf("? %T", evt)
}
