package storage

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rowestoli/QuackLog/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresStorage) SaveSubmission(ctx context.Context, sub *internal.LogSubmission) error {
	entries, err := json.Marshal(sub.Entries)
	if err != nil {
		return err
	}
	photos, err := json.Marshal(sub.Photos)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO duck_logs (id, user_id, date, blind, entries, photos, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.UserID, sub.Date, sub.Blind, entries, photos, sub.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert submission: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListSubmissions(ctx context.Context, userID string) ([]internal.LogSubmission, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, date, blind, entries, photos, created_at FROM duck_logs WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		p.logger.Errorf("failed to query submissions: %v", err)
		return nil, err
	}
	defer rows.Close()
	return p.scanSubmissions(rows)
}

func (p *PostgresStorage) ListSubmissionsByDate(ctx context.Context, userID, date string) ([]internal.LogSubmission, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, date, blind, entries, photos, created_at FROM duck_logs WHERE user_id = $1 AND date = $2 ORDER BY created_at DESC`,
		userID, date)
	if err != nil {
		p.logger.Errorf("failed to query submissions for date %s: %v", date, err)
		return nil, err
	}
	defer rows.Close()
	return p.scanSubmissions(rows)
}

func (p *PostgresStorage) ListRecentSubmissions(ctx context.Context, userID string, limit int) ([]internal.LogSubmission, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, date, blind, entries, photos, created_at FROM duck_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		p.logger.Errorf("failed to query recent submissions: %v", err)
		return nil, err
	}
	defer rows.Close()
	return p.scanSubmissions(rows)
}

func (p *PostgresStorage) DeleteSubmission(ctx context.Context, userID, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM duck_logs WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		p.logger.Errorf("failed to delete submission %s: %v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) scanSubmissions(rows pgx.Rows) ([]internal.LogSubmission, error) {
	var subs []internal.LogSubmission
	for rows.Next() {
		var s internal.LogSubmission
		var entries, photos []byte
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.Blind, &entries, &photos, &s.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan submission: %v", err)
			return nil, err
		}
		if err := json.Unmarshal(entries, &s.Entries); err != nil {
			p.logger.Errorf("failed to decode entries for %s: %v", s.ID, err)
			return nil, err
		}
		if err := json.Unmarshal(photos, &s.Photos); err != nil {
			p.logger.Errorf("failed to decode photos for %s: %v", s.ID, err)
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

var _ SubmissionRepository = (*PostgresStorage)(nil)
