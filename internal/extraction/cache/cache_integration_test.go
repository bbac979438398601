//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwatch/internal/applicability"
	"adwatch/pkg/testutil/containers"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.FlushAll(context.Background()))
	return New(rc.Client, ttl)
}

func directiveFixture(t *testing.T) *applicability.AirworthinessDirective {
	t.Helper()
	max := 200
	constraint, err := applicability.SerialRange(nil, &max)
	require.NoError(t, err)
	rule, err := applicability.NewApplicabilityRule([]string{"A320-214"}, constraint, nil, nil)
	require.NoError(t, err)
	d, err := applicability.NewAirworthinessDirective(
		"EASA-2026-0042", applicability.AuthorityEASA, "12 March 2026", "Airbus",
		[]applicability.ApplicabilityRule{rule}, "Model A320-214 aeroplanes, MSN up to 200.")
	require.NoError(t, err)
	return d
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()
	text := "Airbus A320-214, MSN up to 200."

	miss, err := c.Get(ctx, text)
	require.NoError(t, err)
	assert.Nil(t, miss)

	directive := directiveFixture(t)
	require.NoError(t, c.Put(ctx, text, directive))

	got, err := c.Get(ctx, text)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, directive.DirectiveID, got.DirectiveID)
	assert.Equal(t, directive.IssuingAuthority, got.IssuingAuthority)
	assert.Equal(t, directive.Rules, got.Rules)

	edited, err := c.Get(ctx, text+" Revised.")
	require.NoError(t, err)
	assert.Nil(t, edited, "edited text must not hit the original entry")
}

func TestCacheExpiry(t *testing.T) {
	c := newTestCache(t, 100*time.Millisecond)
	ctx := context.Background()
	text := "expiring entry"

	require.NoError(t, c.Put(ctx, text, directiveFixture(t)))
	time.Sleep(200 * time.Millisecond)

	got, err := c.Get(ctx, text)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()
	text := "corrupt entry"

	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.Client.Set(ctx, Key(text), "not json", time.Minute).Err())

	got, err := c.Get(ctx, text)
	require.NoError(t, err)
	assert.Nil(t, got)
}
