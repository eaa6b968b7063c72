package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New wraps an open database handle
func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// NewFromPath opens the database file at path, creating the schema if needed
func NewFromPath(path string) (*Storage, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

var userColumns = []string{"id", "username", "password_hash", "total_score", "games_played", "created_at"}

var gameColumns = []string{"id", "username", "word", "difficulty", "daily", "correct", "score", "played_at"}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	query, args, err := sq.Insert("users").
		Columns("username", "password_hash", "total_score", "games_played", "created_at").
		Values(user.Username, user.PasswordHash, user.TotalScore, user.GamesPlayed, user.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrUsernameExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	user.ID = id
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}

	var user model.User
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.TotalScore, &user.GamesPlayed, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// Game history operations

func (s *Storage) RecordGame(ctx context.Context, record *model.GameRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record game: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := sq.Update("users").
		Set("total_score", sq.Expr("total_score + ?", record.Score)).
		Set("games_played", sq.Expr("games_played + 1")).
		Where(sq.Eq{"username": record.Username}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update totals: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update totals: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return model.ErrUserNotFound
	}

	query, args, err = sq.Insert("games").
		Columns("username", "word", "difficulty", "daily", "correct", "score", "played_at").
		Values(record.Username, record.Word, string(record.Difficulty), record.Daily, record.Correct, record.Score, record.PlayedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert game: %w", err)
	}

	res, err = tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record game: %w", err)
	}
	record.ID = id
	return nil
}

func (s *Storage) ListGames(ctx context.Context, username string, limit int) ([]*model.GameRecord, error) {
	builder := sq.Select(gameColumns...).
		From("games").
		Where(sq.Eq{"username": username}).
		OrderBy("played_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select games: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}
	defer rows.Close()

	var records []*model.GameRecord
	for rows.Next() {
		var (
			record     model.GameRecord
			difficulty string
		)
		if err := rows.Scan(
			&record.ID, &record.Username, &record.Word, &difficulty,
			&record.Daily, &record.Correct, &record.Score, &record.PlayedAt,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		record.Difficulty = model.ParseDifficulty(difficulty)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return records, nil
}

// Daily challenge operations

func (s *Storage) GetDailyChallenge(ctx context.Context, date string) (*model.DailyChallenge, error) {
	query, args, err := sq.Select("id", "date", "word", "created_at").
		From("daily").
		Where(sq.Eq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select daily: %w", err)
	}

	var challenge model.DailyChallenge
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&challenge.ID, &challenge.Date, &challenge.Word, &challenge.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrDailyNotFound
		}
		return nil, fmt.Errorf("select daily: %w", err)
	}
	return &challenge, nil
}

func (s *Storage) CreateDailyChallenge(ctx context.Context, challenge *model.DailyChallenge) error {
	query, args, err := sq.Insert("daily").
		Columns("date", "word", "created_at").
		Values(challenge.Date, challenge.Word, challenge.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert daily: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDailyExists
		}
		return fmt.Errorf("insert daily: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	challenge.ID = id
	return nil
}
