package postgres

import (
	"context"
	"duel-service/domain"
	"fmt"
)

func (r *Repository) PlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error) {
	stats := &domain.PlayerStats{PlayerID: playerID}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE is_winner),
		        COALESCE(SUM(score), 0),
		        COALESCE(MAX(score), 0)
		 FROM game_results WHERE player_id = $1`,
		playerID,
	).Scan(&stats.GamesPlayed, &stats.GamesWon, &stats.TotalScore, &stats.BestScore)
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats: %w", err)
	}
	return stats, nil
}
