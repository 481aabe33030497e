package postgres

import (
	"context"
	"duel-service/domain"
	"fmt"
)

// SubmitScore, bir oyuncunun maç sonucunu yazar. Aynı oda/oyuncu için ikinci kayıt
// yok sayılır.
func (r *Repository) SubmitScore(ctx context.Context, record domain.ScoreRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO game_results (room_id, player_id, game_type, score, is_multiplayer, is_winner, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (room_id, player_id) DO NOTHING`,
		record.RoomID, record.PlayerID, record.GameType, record.Score,
		record.IsMultiplayer, record.IsWinner, record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}
	return nil
}
