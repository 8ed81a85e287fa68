package creations

import (
	"context"
	"embed"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sudhikumaran/ripple-ai/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the creations schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool, table string, log *slog.Logger) error {
	return pg.Migrate(ctx, pool, migrations, "migrations", table, log)
}

const columns = `id, user_id, prompt, content, type, publish, likes, created_at, updated_at`

// PostgresStore keeps creations in the creations table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Insert(ctx context.Context, c NewCreation) (Creation, error) {
	if !c.Type.valid() {
		return Creation{}, ErrInvalidType
	}
	rows, err := s.pool.Query(ctx, `
		INSERT INTO creations (user_id, prompt, content, type, publish)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+columns,
		c.UserID, c.Prompt, c.Content, string(c.Type), c.Publish)
	if err != nil {
		return Creation{}, errors.Join(ErrInsert, err)
	}
	created, err := pgx.CollectExactlyOneRow(rows, scanCreation)
	if err != nil {
		return Creation{}, errors.Join(ErrInsert, err)
	}
	return created, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Creation, error) {
	return s.list(ctx, `SELECT `+columns+` FROM creations WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (s *PostgresStore) ListPublished(ctx context.Context) ([]Creation, error) {
	return s.list(ctx, `SELECT `+columns+` FROM creations WHERE publish ORDER BY created_at DESC, id DESC`)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]Creation, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	list, err := pgx.CollectRows(rows, scanCreation)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return list, nil
}

func (s *PostgresStore) ToggleLike(ctx context.Context, id int64, userID string) (bool, error) {
	var liked bool
	err := s.pool.QueryRow(ctx, `
		UPDATE creations
		SET likes = CASE
				WHEN $2::text = ANY(likes) THEN array_remove(likes, $2::text)
				ELSE array_append(likes, $2::text)
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING $2::text = ANY(likes)`, id, userID).Scan(&liked)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return false, ErrNotFound
		}
		return false, errors.Join(ErrUpdate, err)
	}
	return liked, nil
}

func scanCreation(row pgx.CollectableRow) (Creation, error) {
	var (
		c   Creation
		typ string
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Prompt, &c.Content, &typ, &c.Publish, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
	c.Type = Type(typ)
	if c.Likes == nil {
		c.Likes = []string{}
	}
	return c, err
}
