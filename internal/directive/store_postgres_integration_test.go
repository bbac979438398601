//go:build integration

package directive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwatch/internal/applicability"
	dErrors "adwatch/pkg/domain-errors"
	"adwatch/pkg/testutil/containers"
)

func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, pg.TruncateTables(context.Background(), "directives"))
	return NewPostgresStore(pg.DB)
}

func easaFixture(t *testing.T) *applicability.AirworthinessDirective {
	t.Helper()
	mod, err := applicability.NewModificationReference("24591", "", applicability.PhaseProduction)
	require.NoError(t, err)
	sb, err := applicability.NewModificationReference("A320-57-1089", "04", applicability.PhaseService)
	require.NoError(t, err)
	rule, err := applicability.NewApplicabilityRule(
		[]string{"A320", "A321"}, applicability.SerialAll(),
		[]applicability.ModificationReference{mod, sb}, nil)
	require.NoError(t, err)
	d, err := applicability.NewAirworthinessDirective(
		"EASA-2025-0254", applicability.AuthorityEASA, "12 March 2026", "Airbus",
		[]applicability.ApplicabilityRule{rule}, "Airbus A320 and A321 aeroplanes, all MSN.")
	require.NoError(t, err)
	return d
}

func TestPostgresStoreSaveAndFind(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	saved, err := store.Save(ctx, easaFixture(t), now)
	require.NoError(t, err)
	assert.Equal(t, now, saved.IngestedAt.UTC())

	found, err := store.FindByID(ctx, "EASA-2025-0254")
	require.NoError(t, err)

	d := found.Directive
	assert.Equal(t, applicability.AuthorityEASA, d.IssuingAuthority)
	assert.Equal(t, "Airbus", d.Manufacturer)
	require.Len(t, d.Rules, 1)

	// Rules survive the JSONB round trip including the tagged constraint and
	// modification phases.
	rule := d.Rules[0]
	assert.Equal(t, []string{"A320", "A321"}, rule.ModelPatterns)
	assert.Equal(t, applicability.SerialKindAll, rule.SerialConstraint.Kind())
	require.Len(t, rule.ExcludedIfModifications, 2)
	assert.Equal(t, applicability.PhaseProduction, rule.ExcludedIfModifications[0].Phase)
	assert.Equal(t, "04", rule.ExcludedIfModifications[1].Revision)
}

func TestPostgresStoreUpsert(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	t0 := time.Now().UTC().Truncate(time.Microsecond)

	_, err := store.Save(ctx, easaFixture(t), t0)
	require.NoError(t, err)

	rule, err := applicability.NewApplicabilityRule(
		[]string{"A319"}, applicability.SerialAll(), nil, nil)
	require.NoError(t, err)
	updated, err := applicability.NewAirworthinessDirective(
		"EASA-2025-0254", applicability.AuthorityEASA, "", "Airbus",
		[]applicability.ApplicabilityRule{rule}, "")
	require.NoError(t, err)

	t1 := t0.Add(time.Hour)
	saved, err := store.Save(ctx, updated, t1)
	require.NoError(t, err)
	assert.Equal(t, t0, saved.IngestedAt.UTC())
	assert.Equal(t, t1, saved.UpdatedAt.UTC())

	found, err := store.FindByID(ctx, "EASA-2025-0254")
	require.NoError(t, err)
	require.Len(t, found.Directive.Rules, 1)
	assert.Equal(t, []string{"A319"}, found.Directive.Rules[0].ModelPatterns)
}

func TestPostgresStoreNotFoundAndList(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()

	_, err := store.FindByID(ctx, "AD-MISSING")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	now := time.Now().UTC()
	_, err = store.Save(ctx, easaFixture(t), now)
	require.NoError(t, err)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "EASA-2025-0254", all[0].Directive.DirectiveID)
}
