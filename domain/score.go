package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScoreRecord, oyun bitince her oyuncu için kayıt deposuna gönderilen sonuç.
type ScoreRecord struct {
	RoomID        uuid.UUID `json:"room_id"`
	PlayerID      string    `json:"player_id"`
	GameType      string    `json:"game_type"`
	Score         int       `json:"score"`
	IsMultiplayer bool      `json:"is_multiplayer"`
	IsWinner      bool      `json:"is_winner"`
	FinishedAt    time.Time `json:"finished_at"`
}

// PlayerStats, kayıt deposundaki sonuçların oyuncu bazında özeti.
type PlayerStats struct {
	PlayerID    string `json:"player_id"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	TotalScore  int    `json:"total_score"`
	BestScore   int    `json:"best_score"`
}
