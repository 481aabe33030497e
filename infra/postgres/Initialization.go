package postgres

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

const (
	createGameResultsTable = `
		CREATE TABLE IF NOT EXISTS game_results (
			id BIGSERIAL PRIMARY KEY,
			room_id UUID NOT NULL,
			player_id VARCHAR(64) NOT NULL,
			game_type VARCHAR(32) NOT NULL,
			score INT NOT NULL,
			is_multiplayer BOOLEAN NOT NULL DEFAULT true,
			is_winner BOOLEAN NOT NULL DEFAULT false,
			finished_at TIMESTAMP WITH TIME ZONE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (room_id, player_id)
		)`
	createGameResultsPlayerIndex = `
		CREATE INDEX IF NOT EXISTS idx_game_results_player ON game_results (player_id)`
)

func initDB(db *sql.DB) error {
	if _, err := db.Exec(createGameResultsTable); err != nil {
		return fmt.Errorf("failed to create game_results table: %w", err)
	}
	if _, err := db.Exec(createGameResultsPlayerIndex); err != nil {
		return fmt.Errorf("failed to create game_results index: %w", err)
	}

	zap.L().Info("Database tables initialized")
	return nil
}
