//go:build integration

package evaluation

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwatch/internal/applicability"
	id "adwatch/pkg/domain"
	"adwatch/pkg/testutil/containers"
)

func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, pg.TruncateTables(context.Background(), "evaluations"))

	pool, err := pgxpool.New(context.Background(), pg.URL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewPostgresStore(pool)
}

func recordFixture(t *testing.T, directiveID string, serialNumber int, evaluatedAt time.Time) *Record {
	t.Helper()
	index := 0
	return &Record{
		ID:               id.NewEvaluationID(),
		DirectiveID:      directiveID,
		OperatorID:       id.NewOperatorID(),
		ConfigurationRef: "A320-214 MSN 150",
		ModelDesignation: "A320-214",
		SerialNumber:     serialNumber,
		Affected:         true,
		MatchedRuleIndex: &index,
		ReasonCode:       applicability.ReasonAffectedByRule,
		Explanation:      "rule 1 covers model A320-214",
		EvaluatedAt:      evaluatedAt,
	}
}

func TestPostgresStoreSaveAllAndList(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	older := recordFixture(t, "EASA-2026-0042", 150, now.Add(-time.Hour))
	newer := recordFixture(t, "EASA-2026-0042", 151, now)
	newer.Affected = false
	newer.MatchedRuleIndex = nil
	newer.ReasonCode = applicability.ReasonSerialNotApplicable
	other := recordFixture(t, "FAA-2025-23-53", 7, now)

	require.NoError(t, store.SaveAll(ctx, []*Record{older, newer, other}))

	records, err := store.ListByDirective(ctx, "EASA-2026-0042")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Most recent first.
	assert.Equal(t, newer.ID, records[0].ID)
	assert.Equal(t, older.ID, records[1].ID)

	got := records[0]
	assert.Equal(t, newer.OperatorID, got.OperatorID)
	assert.Equal(t, "A320-214 MSN 150", got.ConfigurationRef)
	assert.Equal(t, 151, got.SerialNumber)
	assert.False(t, got.Affected)
	assert.Nil(t, got.MatchedRuleIndex)
	assert.Equal(t, applicability.ReasonSerialNotApplicable, got.ReasonCode)
	assert.Equal(t, now, got.EvaluatedAt.UTC())

	require.NotNil(t, records[1].MatchedRuleIndex)
	assert.Equal(t, 0, *records[1].MatchedRuleIndex)
}

func TestPostgresStoreSaveAllEmpty(t *testing.T) {
	store := newPostgresStore(t)
	require.NoError(t, store.SaveAll(context.Background(), nil))
}

func TestPostgresStoreListUnknownDirective(t *testing.T) {
	store := newPostgresStore(t)

	records, err := store.ListByDirective(context.Background(), "AD-MISSING")
	require.NoError(t, err)
	assert.Empty(t, records)
}
