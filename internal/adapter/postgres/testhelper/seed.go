package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// SeedPhrase inserts a phrase with the given mode and creation time.
func SeedPhrase(t *testing.T, pool *pgxpool.Pool, mode domain.PhraseMode, createdAt time.Time) domain.Phrase {
	t.Helper()

	p := domain.Phrase{
		ID:        uuid.New(),
		Mode:      mode,
		Text:      "Baka: seeded " + uuid.New().String()[:8] + ".",
		Syllables: 5,
		Source:    "seed",
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}
	if mode == domain.PhraseModeValidated {
		p.Attempts = 1
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO phrases (id, mode, text, syllables, attempts, source, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, string(p.Mode), p.Text, p.Syllables, p.Attempts, p.Source, p.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPhrase insert: %v", err)
	}
	return p
}
