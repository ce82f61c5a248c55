// Package phrase implements the phrase history repository using PostgreSQL.
package phrase

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/bakabot/internal/adapter/postgres"
	"github.com/heartmarshall/bakabot/internal/domain"
)

const table = "phrases"

var columns = []string{"id", "mode", "text", "syllables", "attempts", "source", "created_at"}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides phrase persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new phrase repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a phrase. A nil ID is replaced with a new one.
func (r *Repo) Create(ctx context.Context, p *domain.Phrase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query, args, err := builder.Insert(table).
		Columns(columns...).
		Values(p.ID, string(p.Mode), p.Text, p.Syllables, p.Attempts, p.Source, p.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert phrase: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "phrase", p.ID)
	}
	return nil
}

// CreateBatch inserts all phrases in one transaction. Either every row is
// stored or none is.
func (r *Repo) CreateBatch(ctx context.Context, phrases []domain.Phrase) error {
	if len(phrases) == 0 {
		return nil
	}
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		for i := range phrases {
			if err := r.Create(ctx, &phrases[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns phrases newest first. Returns an empty slice (not nil) when
// nothing matches.
func (r *Repo) List(ctx context.Context, filter domain.PhraseFilter) ([]domain.Phrase, error) {
	q := builder.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC")
	if filter.Mode != nil {
		q = q.Where(squirrel.Eq{"mode": string(*filter.Mode)})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list phrases: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	defer rows.Close()

	phrases, err := scanPhrases(rows)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	return phrases, nil
}

// Stats counts phrases per mode.
func (r *Repo) Stats(ctx context.Context) (domain.PhraseStats, error) {
	query, args, err := builder.Select("mode", "count(*)").
		From(table).
		GroupBy("mode").
		ToSql()
	if err != nil {
		return domain.PhraseStats{}, fmt.Errorf("build phrase stats: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return domain.PhraseStats{}, fmt.Errorf("phrase stats: %w", err)
	}
	defer rows.Close()

	stats := domain.PhraseStats{ByMode: make(map[domain.PhraseMode]int)}
	for rows.Next() {
		var (
			mode  string
			count int
		)
		if err := rows.Scan(&mode, &count); err != nil {
			return domain.PhraseStats{}, fmt.Errorf("scan phrase stats: %w", err)
		}
		stats.ByMode[domain.PhraseMode(mode)] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return domain.PhraseStats{}, fmt.Errorf("phrase stats: %w", err)
	}
	return stats, nil
}

func scanPhrases(rows pgx.Rows) ([]domain.Phrase, error) {
	phrases := []domain.Phrase{}
	for rows.Next() {
		var (
			p    domain.Phrase
			mode string
		)
		if err := rows.Scan(&p.ID, &mode, &p.Text, &p.Syllables, &p.Attempts, &p.Source, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Mode = domain.PhraseMode(mode)
		phrases = append(phrases, p)
	}
	return phrases, rows.Err()
}
