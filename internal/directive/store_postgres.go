package directive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"adwatch/internal/applicability"
	dErrors "adwatch/pkg/domain-errors"
)

// PostgresStore persists directives in PostgreSQL. Rules are stored as JSONB
// and rehydrated through the applicability constructors, so a row that no
// longer satisfies the model invariants surfaces as an error instead of
// flowing into the evaluator.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed directive store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save upserts a directive by directive ID. The first ingest time survives
// re-ingestion; updated_at always moves forward.
func (s *PostgresStore) Save(ctx context.Context, directive *applicability.AirworthinessDirective, now time.Time) (*StoredDirective, error) {
	rules, err := json.Marshal(directive.Rules)
	if err != nil {
		return nil, fmt.Errorf("marshal directive rules: %w", err)
	}

	query := `
		INSERT INTO directives (directive_id, issuing_authority, effective_date, manufacturer, rules, raw_applicability_text, ingested_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (directive_id) DO UPDATE SET
			issuing_authority = EXCLUDED.issuing_authority,
			effective_date = EXCLUDED.effective_date,
			manufacturer = EXCLUDED.manufacturer,
			rules = EXCLUDED.rules,
			raw_applicability_text = EXCLUDED.raw_applicability_text,
			updated_at = EXCLUDED.updated_at
		RETURNING ingested_at, updated_at
	`
	var ingestedAt, updatedAt time.Time
	err = s.db.QueryRowContext(ctx, query,
		directive.DirectiveID,
		directive.IssuingAuthority.String(),
		directive.EffectiveDate,
		directive.Manufacturer,
		rules,
		directive.RawApplicabilityText,
		now,
	).Scan(&ingestedAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("save directive: %w", err)
	}

	return &StoredDirective{
		Directive:  directive,
		IngestedAt: ingestedAt,
		UpdatedAt:  updatedAt,
	}, nil
}

// FindByID returns the directive with the given ID.
func (s *PostgresStore) FindByID(ctx context.Context, directiveID string) (*StoredDirective, error) {
	query := `
		SELECT directive_id, issuing_authority, effective_date, manufacturer, rules, raw_applicability_text, ingested_at, updated_at
		FROM directives
		WHERE directive_id = $1
	`
	stored, err := scanDirective(s.db.QueryRowContext(ctx, query, directiveID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "directive not found")
		}
		return nil, fmt.Errorf("find directive: %w", err)
	}
	return stored, nil
}

// List returns all stored directives ordered by directive ID.
func (s *PostgresStore) List(ctx context.Context) ([]*StoredDirective, error) {
	query := `
		SELECT directive_id, issuing_authority, effective_date, manufacturer, rules, raw_applicability_text, ingested_at, updated_at
		FROM directives
		ORDER BY directive_id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list directives: %w", err)
	}
	defer rows.Close()

	var out []*StoredDirective
	for rows.Next() {
		stored, err := scanDirective(rows)
		if err != nil {
			return nil, fmt.Errorf("list directives: %w", err)
		}
		out = append(out, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list directives: %w", err)
	}
	return out, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDirective(row scanner) (*StoredDirective, error) {
	var (
		directiveID, authority, effectiveDate, manufacturer, rawText string
		rulesJSON                                                    []byte
		ingestedAt, updatedAt                                        time.Time
	)
	if err := row.Scan(&directiveID, &authority, &effectiveDate, &manufacturer, &rulesJSON, &rawText, &ingestedAt, &updatedAt); err != nil {
		return nil, err
	}

	var rules []applicability.ApplicabilityRule
	if err := json.Unmarshal(rulesJSON, &rules); err != nil {
		return nil, fmt.Errorf("unmarshal directive rules: %w", err)
	}
	parsedAuthority, err := applicability.ParseAuthority(authority)
	if err != nil {
		return nil, err
	}
	directive, err := applicability.NewAirworthinessDirective(
		directiveID, parsedAuthority, effectiveDate, manufacturer, rules, rawText)
	if err != nil {
		return nil, err
	}

	return &StoredDirective{
		Directive:  directive,
		IngestedAt: ingestedAt,
		UpdatedAt:  updatedAt,
	}, nil
}
