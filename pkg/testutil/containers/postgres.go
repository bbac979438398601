//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema mirrors what the deployment migrations create. Integration tests run
// against this DDL so store queries are exercised against real tables.
const schema = `
CREATE TABLE IF NOT EXISTS directives (
    directive_id           TEXT PRIMARY KEY,
    issuing_authority      TEXT NOT NULL,
    effective_date         TEXT NOT NULL DEFAULT '',
    manufacturer           TEXT NOT NULL DEFAULT '',
    rules                  JSONB NOT NULL,
    raw_applicability_text TEXT NOT NULL DEFAULT '',
    ingested_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS evaluations (
    id                 UUID PRIMARY KEY,
    directive_id       TEXT NOT NULL,
    operator_id        UUID NOT NULL,
    configuration_ref  TEXT NOT NULL,
    model_designation  TEXT NOT NULL,
    serial_number      BIGINT NOT NULL,
    affected           BOOLEAN NOT NULL,
    matched_rule_index INTEGER,
    reason_code        TEXT NOT NULL,
    explanation        TEXT NOT NULL,
    evaluated_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS evaluations_directive_idx
    ON evaluations (directive_id, evaluated_at DESC);
`

// PostgresContainer wraps a testcontainers PostgreSQL instance with the
// application schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	DB        *sql.DB
}

// NewPostgresContainer starts a PostgreSQL container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("adwatch_test"),
		tcpostgres.WithUsername("adwatch"),
		tcpostgres.WithPassword("adwatch"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	// No t.Cleanup: the container is shared via the Manager singleton and
	// reaped by Ryuk when the test binary exits.

	return &PostgresContainer{
		Container: container,
		URL:       url,
		DB:        db,
	}
}

// TruncateTables empties the given tables. Use between tests for isolation.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", "))
	if _, err := p.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}
