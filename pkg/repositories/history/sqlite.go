package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fadedpez/cardroyale/pkg/entities"
)

// SQLiteRepository implements Repository on the rounds table
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository uses a connection already migrated by db.OpenSQLite
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const winOutcomes = `('WIN', 'BLACKJACK', 'JACKPOT')`

// SaveRound inserts a round
func (r *SQLiteRepository) SaveRound(ctx context.Context, round *entities.Round) error {
	fillRound(round)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rounds (id, account_id, game, bet, payout, outcome, detail, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		round.ID,
		round.AccountID,
		string(round.Game),
		round.Bet,
		round.Payout,
		string(round.Outcome),
		round.Detail,
		round.CompletedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving round: %w", err)
	}
	return nil
}

// GetRecentRounds returns an account's rounds, newest first
func (r *SQLiteRepository) GetRecentRounds(ctx context.Context, accountID string, limit int) ([]*entities.Round, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, game, bet, payout, outcome, detail, completed_at
		FROM rounds
		WHERE account_id = ?
		ORDER BY completed_at DESC, rowid DESC
		LIMIT ?
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying rounds: %w", err)
	}
	defer rows.Close()

	rounds := make([]*entities.Round, 0)
	for rows.Next() {
		var round entities.Round
		var game, outcome string
		if err := rows.Scan(
			&round.ID,
			&round.AccountID,
			&game,
			&round.Bet,
			&round.Payout,
			&outcome,
			&round.Detail,
			&round.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning round row: %w", err)
		}
		round.Game = entities.GameType(game)
		round.Outcome = entities.Outcome(outcome)
		rounds = append(rounds, &round)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating round rows: %w", err)
	}
	return rounds, nil
}

// GetSummary aggregates an account's rounds per game
func (r *SQLiteRepository) GetSummary(ctx context.Context, accountID string) (map[entities.GameType]*entities.GameSummary, error) {
	summaries, err := r.summaries(ctx, `
		SELECT account_id, game, COUNT(*),
			SUM(CASE WHEN outcome IN `+winOutcomes+` THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = 'PUSH' THEN 1 ELSE 0 END),
			SUM(bet), SUM(payout), MAX(completed_at)
		FROM rounds
		WHERE account_id = ?
		GROUP BY account_id, game
	`, accountID)
	if err != nil {
		return nil, err
	}

	byGame := make(map[entities.GameType]*entities.GameSummary, len(summaries))
	for _, s := range summaries {
		byGame[s.Game] = s
	}
	return byGame, nil
}

// GetAllSummaries aggregates one game's rounds per account
func (r *SQLiteRepository) GetAllSummaries(ctx context.Context, game entities.GameType) ([]*entities.GameSummary, error) {
	return r.summaries(ctx, `
		SELECT account_id, game, COUNT(*),
			SUM(CASE WHEN outcome IN `+winOutcomes+` THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = 'PUSH' THEN 1 ELSE 0 END),
			SUM(bet), SUM(payout), MAX(completed_at)
		FROM rounds
		WHERE game = ?
		GROUP BY account_id, game
		ORDER BY account_id
	`, string(game))
}

func (r *SQLiteRepository) summaries(ctx context.Context, query string, args ...interface{}) ([]*entities.GameSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying summaries: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.GameSummary, 0)
	for rows.Next() {
		var s entities.GameSummary
		var game, lastPlayed string
		if err := rows.Scan(
			&s.AccountID,
			&game,
			&s.RoundsPlayed,
			&s.Wins,
			&s.Pushes,
			&s.TotalBet,
			&s.TotalPayout,
			&lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("error scanning summary row: %w", err)
		}
		s.Game = entities.GameType(game)
		s.Losses = s.RoundsPlayed - s.Wins - s.Pushes
		if s.LastPlayed, err = parseTimestamp(lastPlayed); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}
	return result, nil
}

// PruneRounds keeps only the newest keepPerAccount rounds of every account
func (r *SQLiteRepository) PruneRounds(ctx context.Context, keepPerAccount int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM rounds WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY account_id ORDER BY completed_at DESC, rowid DESC
				) AS rn
				FROM rounds
			) WHERE rn > ?
		)
	`, keepPerAccount)
	if err != nil {
		return 0, fmt.Errorf("error pruning rounds: %w", err)
	}
	return res.RowsAffected()
}

// Close is a no-op; the connection is owned by the caller
func (r *SQLiteRepository) Close() error {
	return nil
}

// parseTimestamp reads aggregate timestamps, which sqlite returns as text
func parseTimestamp(value string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05.999999999-07:00", // go-sqlite3 write format
		"2006-01-02 15:04:05",                 // SQLite default format
		time.RFC3339Nano,
	}

	var parseErr error
	for _, format := range formats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, fmt.Errorf("error parsing timestamp '%s': %w", value, parseErr)
}
