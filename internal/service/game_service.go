package service

import (
	"fmt"

	"github.com/benbeisheim/notation-chess/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// NewGameID returns a random identifier for a game.
func NewGameID() string {
	return uuid.New().String()
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := NewGameID()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, notation string) (model.GameState, error) {
	return gs.gameManager.MakeMove(gameID, playerID, notation)
}

func (gs *GameService) HandleUndo(gameID string, playerID string) (model.GameState, error) {
	return gs.gameManager.Undo(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) MatchStatus(playerID string) (Match, MatchState) {
	return gs.gameManager.MatchStatus(playerID)
}

func (gs *GameService) QueueSize() int {
	return gs.gameManager.QueueSize()
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Subscriber) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Subscriber) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
