package model

import (
	"errors"
	"sync"

	"github.com/benbeisheim/notation-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrGameFull         = errors.New("game is full")
	ErrPlayerNotInGame  = errors.New("player not in game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrAlreadyConnected = errors.New("connection already exists")
)

// Subscriber receives game state pushes. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
	Close() error
}

// GameConnections holds the subscribers of one game, keyed by player ID.
type GameConnections struct {
	connections map[string]Subscriber // playerID -> connection
	mu          sync.RWMutex
}

// Game is one session around a sequence of boards. Boards are immutable, so
// the lock only guards which board is current.
type Game struct {
	ID          string
	mu          sync.Mutex
	sendMu      sync.Mutex // orders state pushes
	board       *Board
	previous    []*Board
	players     map[Color]string
	connections *GameConnections
}

type GameState struct {
	ID          string       `json:"id"`
	Board       []string     `json:"board"`
	ToMove      Color        `json:"toMove"`
	MoveHistory []PlyRecord  `json:"moveHistory"`
	CanUndo     bool         `json:"canUndo"`
	Players     GamePlayers  `json:"players"`
	Castling    CastleRights `json:"castling"`
	Watchers    int          `json:"watchers"`
}

type GamePlayers struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type PlyRecord struct {
	Color    Color  `json:"color"`
	Notation string `json:"notation"`
}

// CastleRights reports which castles are currently available, keyed by the
// notation that requests them.
type CastleRights struct {
	White map[string]bool `json:"white"`
	Black map[string]bool `json:"black"`
}

func NewGame(id string, opts ...BoardOption) *Game {
	return &Game{
		ID:          id,
		board:       NewBoard(nil, nil, opts...),
		players:     make(map[Color]string),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Subscriber),
	}
}

// AddPlayer seats playerID, White first. A player already seated gets their
// existing color back.
func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.colorOf(playerID); ok {
		return c, nil
	}
	for _, c := range []Color{White, Black} {
		if _, taken := g.players[c]; !taken {
			g.players[c] = playerID
			log.Infof("game %s: player %s seated as %s", g.ID, playerID, c)
			return c, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) colorOf(playerID string) (Color, bool) {
	for c, id := range g.players {
		if id == playerID {
			return c, true
		}
	}
	return "", false
}

// Board returns the current position.
func (g *Game) Board() *Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() GameState {
	history := g.board.Moves()
	records := make([]PlyRecord, 0, len(history))
	for _, ply := range history {
		records = append(records, PlyRecord{Color: ply.Color, Notation: ply.Notation()})
	}
	return GameState{
		ID:          g.ID,
		Board:       g.board.Rows(),
		ToMove:      g.toMove(),
		MoveHistory: records,
		CanUndo:     len(g.previous) > 0,
		Players: GamePlayers{
			White: ClientPlayer{ID: g.players[White], Color: White},
			Black: ClientPlayer{ID: g.players[Black], Color: Black},
		},
		Castling: CastleRights{
			White: castleRights(g.board, White),
			Black: castleRights(g.board, Black),
		},
		Watchers: g.ConnectionCount(),
	}
}

func castleRights(b *Board, c Color) map[string]bool {
	return map[string]bool{
		castleFileZero:  b.CanCastle(c, false),
		castleFileSeven: b.CanCastle(c, true),
	}
}

// toMove alternates starting with White.
func (g *Game) toMove() Color {
	moves := g.board.Moves()
	if len(moves) == 0 {
		return White
	}
	return moves[len(moves)-1].Color.Opponent()
}

// MakeMove applies notation for the seat held by playerID. The board is
// replaced only on success.
func (g *Game) MakeMove(playerID string, notation string) (GameState, error) {
	g.mu.Lock()
	color, ok := g.colorOf(playerID)
	if !ok {
		g.mu.Unlock()
		return GameState{}, ErrPlayerNotInGame
	}
	if color != g.toMove() {
		g.mu.Unlock()
		return GameState{}, ErrNotYourTurn
	}
	next, err := g.board.Move(color, notation)
	if err != nil {
		g.mu.Unlock()
		log.Debugf("game %s: %s rejected %q: %v", g.ID, color, notation, err)
		return GameState{}, err
	}
	g.previous = append(g.previous, g.board)
	g.board = next
	state := g.state()
	log.Infof("game %s: %s played %s", g.ID, color, notation)
	g.unlockAndBroadcast(state)
	return state, nil
}

// Undo restores the board that preceded the last applied move.
func (g *Game) Undo(playerID string) (GameState, error) {
	g.mu.Lock()
	if _, ok := g.colorOf(playerID); !ok {
		g.mu.Unlock()
		return GameState{}, ErrPlayerNotInGame
	}
	if len(g.previous) == 0 {
		g.mu.Unlock()
		return GameState{}, ErrNothingToUndo
	}
	last := len(g.previous) - 1
	g.board = g.previous[last]
	g.previous = g.previous[:last]
	state := g.state()
	log.Infof("game %s: %s took back a move", g.ID, playerID)
	g.unlockAndBroadcast(state)
	return state, nil
}

// RegisterConnection subscribes conn to state pushes. Anyone may watch; only
// seated players may move.
func (g *Game) RegisterConnection(playerID string, conn Subscriber) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection and reject the new one
		g.connections.mu.Unlock()
		log.Warnf("game %s: duplicate connection for %s rejected", g.ID, playerID)
		return ErrAlreadyConnected
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection for %s", g.ID, playerID)

	g.mu.Lock()
	g.unlockAndBroadcast(g.state())
	return nil
}

// UnregisterConnection drops conn if it is still the one registered for
// playerID; a stale connection never evicts its replacement.
func (g *Game) UnregisterConnection(playerID string, conn Subscriber) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Infof("game %s: unregistering connection for %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// unlockAndBroadcast releases g.mu and pushes state. The send lock is taken
// while g.mu is still held, so pushes go out in the order the states were made.
func (g *Game) unlockAndBroadcast(state GameState) {
	g.sendMu.Lock()
	defer g.sendMu.Unlock()
	g.mu.Unlock()

	g.broadcastState(state)
}

// broadcastState pushes state to every subscriber and drops those whose
// write fails. Callers hold sendMu.
func (g *Game) broadcastState(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]Subscriber, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Errorf("game %s: failed to send state to %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID, conn)
			conn.Close()
		}
	}
}
