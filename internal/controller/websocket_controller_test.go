package controller

import (
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/notation-chess/internal/model"
	"github.com/benbeisheim/notation-chess/internal/service"
	"github.com/benbeisheim/notation-chess/internal/ws"
	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
)

// startServer serves a fresh app on a loopback port with one seated game.
func startServer(t *testing.T) (addr, gameID string) {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager(service.NewGameID))
	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, player := range []string{"alice", "bob"} {
		if _, err := gs.JoinGame(gameID, player); err != nil {
			t.Fatalf("join %s: %v", player, err)
		}
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, NewGameController(gs), NewWebSocketController(gs), []string{"*"})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.ShutdownWithTimeout(time.Second)
	})
	return ln.Addr().String(), gameID
}

func dial(t *testing.T, addr, gameID, player string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws/game/"+gameID+"?playerId="+player, nil)
	if err != nil {
		t.Fatalf("dial as %s: %v", player, err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	var msg ws.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) model.GameState {
	t.Helper()
	msg := readMessage(t, conn)
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("got %s message %s, want game state", msg.Type, msg.Payload)
	}
	var state model.GameState
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func readError(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	msg := readMessage(t, conn)
	if msg.Type != ws.MessageTypeError {
		t.Fatalf("got %s message %s, want error", msg.Type, msg.Payload)
	}
	var payload ws.ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return payload.Error
}

func sendMove(t *testing.T, conn *websocket.Conn, notation string) {
	t.Helper()
	msg, err := ws.NewMessage(ws.MessageTypeMove, ws.MovePayload{Notation: notation})
	if err != nil {
		t.Fatalf("build move: %v", err)
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("send move: %v", err)
	}
}

func TestWebSocketPlay(t *testing.T) {
	t.Parallel()
	addr, gameID := startServer(t)

	alice := dial(t, addr, gameID, "alice")
	if state := readState(t, alice); state.Watchers != 1 || state.Players.White.ID != "alice" {
		t.Fatalf("state on connect: %+v", state)
	}

	sendMove(t, alice, "e4")
	state := readState(t, alice)
	if len(state.MoveHistory) != 1 || state.MoveHistory[0].Notation != "e4" || state.ToMove != model.Black {
		t.Fatalf("state after e4: %+v", state)
	}

	sendMove(t, alice, "d4")
	if got := readError(t, alice); got != model.ErrNotYourTurn.Error() {
		t.Fatalf("second white move: %q", got)
	}

	if err := alice.WriteJSON(ws.Message{Type: "resign"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := readError(t, alice); !strings.Contains(got, "unknown message type") {
		t.Fatalf("unknown type: %q", got)
	}
}

func TestWebSocketDuplicateConnection(t *testing.T) {
	t.Parallel()
	addr, gameID := startServer(t)

	first := dial(t, addr, gameID, "alice")
	readState(t, first)

	second := dial(t, addr, gameID, "alice")
	if got := readError(t, second); got != model.ErrAlreadyConnected.Error() {
		t.Fatalf("duplicate connection: %q", got)
	}
	if err := second.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	if _, _, err := second.ReadMessage(); err == nil {
		t.Fatalf("duplicate connection left open")
	}

	// the rejected duplicate must not have evicted the first connection
	sendMove(t, first, "Nf3")
	if state := readState(t, first); len(state.MoveHistory) != 1 || state.Watchers != 1 {
		t.Fatalf("state after Nf3: %+v", state)
	}
}
