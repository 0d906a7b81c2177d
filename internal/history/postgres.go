package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seclens/seclens/internal/models"
)

// PostgresStore persists turns in the conversations table. Row inserts are
// atomic, which satisfies the per-session append guarantee.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool to the given database URL.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() { s.pool.Close() }

// Append inserts the turn; the parsed descriptor is stored as JSONB.
func (s *PostgresStore) Append(ctx context.Context, turn *models.Turn) error {
	parsed, err := json.Marshal(turn.Parsed)
	if err != nil {
		return fmt.Errorf("marshal parsed query: %w", err)
	}

	q := `INSERT INTO conversations (id, session_id, user_query, parsed_query, query_dsl, result_count, timestamp)
	      VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.pool.Exec(ctx, q,
		turn.ID, turn.SessionID, turn.UserQuery, parsed, turn.QueryDSL, turn.ResultCount, turn.Timestamp,
	); err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// List returns the session's turns in append order.
func (s *PostgresStore) List(ctx context.Context, sessionID string) ([]models.Turn, error) {
	q := `SELECT id, session_id, user_query, parsed_query, query_dsl, result_count, timestamp
	      FROM conversations
	      WHERE session_id = $1
	      ORDER BY timestamp ASC, id ASC`

	rows, err := s.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []models.Turn
	for rows.Next() {
		var turn models.Turn
		var parsed []byte
		if err := rows.Scan(&turn.ID, &turn.SessionID, &turn.UserQuery, &parsed,
			&turn.QueryDSL, &turn.ResultCount, &turn.Timestamp); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		if err := json.Unmarshal(parsed, &turn.Parsed); err != nil {
			return nil, fmt.Errorf("unmarshal parsed query: %w", err)
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}
	return turns, nil
}
