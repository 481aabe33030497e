package postgres

import (
	"context"
	"duel-service/domain"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepositoryWithDB(db), mock
}

func TestSubmitScore(t *testing.T) {
	repo, mock := newMockRepo(t)
	record := domain.ScoreRecord{
		RoomID:        uuid.New(),
		PlayerID:      "p1",
		GameType:      "speed_math_duel",
		Score:         40,
		IsMultiplayer: true,
		IsWinner:      true,
		FinishedAt:    time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_results")).
		WithArgs(sqlmock.AnyArg(), "p1", "speed_math_duel", 40, true, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SubmitScore(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitScore_DuplicateIsIgnored(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (room_id, player_id) DO NOTHING")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.SubmitScore(context.Background(), domain.ScoreRecord{PlayerID: "p1"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitScore_Error(t *testing.T) {
	repo, mock := newMockRepo(t)
	dbErr := errors.New("connection reset")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_results")).WillReturnError(dbErr)

	err := repo.SubmitScore(context.Background(), domain.ScoreRecord{PlayerID: "p1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}

func TestPlayerStats(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"count", "won", "total", "best"}).AddRow(7, 3, 210, 60)
	mock.ExpectQuery(regexp.QuoteMeta("FROM game_results WHERE player_id = $1")).
		WithArgs("p1").
		WillReturnRows(rows)

	stats, err := repo.PlayerStats(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, &domain.PlayerStats{PlayerID: "p1", GamesPlayed: 7, GamesWon: 3, TotalScore: 210, BestScore: 60}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS game_results")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_game_results_player")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, initDB(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
