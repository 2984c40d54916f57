// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/notation-chess/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// MatchState is where a player stands in matchmaking.
type MatchState string

const (
	MatchNotQueued MatchState = "not queued"
	MatchWaiting   MatchState = "waiting"
	MatchFound     MatchState = "matched"
)

// Match is the outcome of matchmaking for one player.
type Match struct {
	GameID string      `json:"gameId"`
	Color  model.Color `json:"color"`
}

type GameManager struct {
	games     map[string]*model.Game
	queue     *model.Queue
	matches   map[string]Match // playerID -> game found for them
	boardOpts []model.BoardOption
	newID     func() string
	mu        sync.RWMutex
}

// NewGameManager creates a registry whose games start from boards built with
// opts. newID supplies identifiers for games created by matchmaking.
func NewGameManager(newID func() string, opts ...model.BoardOption) *GameManager {
	return &GameManager{
		games:     make(map[string]*model.Game),
		queue:     model.NewQueue(),
		matches:   make(map[string]Match),
		boardOpts: opts,
		newID:     newID,
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	return gm.createGame(gameID)
}

func (gm *GameManager) createGame(gameID string) error {
	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}
	gm.games[gameID] = model.NewGame(gameID, gm.boardOpts...)
	log.Infof("created game %s", gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// MakeMove only holds the registry lock for the lookup; the game serialises
// its own moves.
func (gm *GameManager) MakeMove(gameID string, playerID string, notation string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.MakeMove(playerID, notation)
}

func (gm *GameManager) Undo(gameID string, playerID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.Undo(playerID)
}

// JoinMatchmaking queues playerID and pairs the two longest waiting players
// into a new game as soon as there are two. If the game cannot be created
// both players stay queued.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.matches, playerID)
	if err := gm.queue.AddPlayer(playerID); err != nil {
		return err
	}
	if gm.queue.Size() < 2 {
		return nil
	}

	// the queue only changes under gm.mu, so the pair popped below is the
	// pair that was waiting when the game was created
	gameID := gm.newID()
	if err := gm.createGame(gameID); err != nil {
		return err
	}
	first, second, _ := gm.queue.NextPair()
	game := gm.games[gameID]
	for _, p := range []model.QueuedPlayer{first, second} {
		color, err := game.AddPlayer(p.PlayerID)
		if err != nil {
			return err
		}
		gm.matches[p.PlayerID] = Match{GameID: gameID, Color: color}
	}
	log.Infof("matched %s and %s in game %s", first.PlayerID, second.PlayerID, gameID)
	return nil
}

// MatchStatus reports where playerID stands in matchmaking, with the game
// found for them once matched.
func (gm *GameManager) MatchStatus(playerID string) (Match, MatchState) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	if m, ok := gm.matches[playerID]; ok {
		return m, MatchFound
	}
	if gm.queue.Contains(playerID) {
		return Match{}, MatchWaiting
	}
	return Match{}, MatchNotQueued
}

func (gm *GameManager) QueueSize() int {
	return gm.queue.Size()
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	return gm.queue.RemovePlayer(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Subscriber) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Subscriber) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
