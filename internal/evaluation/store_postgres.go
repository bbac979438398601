package evaluation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adwatch/internal/applicability"
	id "adwatch/pkg/domain"
)

// PostgresStore persists evaluation records in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL-backed evaluation store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const insertEvaluation = `
	INSERT INTO evaluations (id, directive_id, operator_id, configuration_ref, model_designation, serial_number, affected, matched_rule_index, reason_code, explanation, evaluated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

// SaveAll writes all records in a single batch round trip.
func (s *PostgresStore) SaveAll(ctx context.Context, records []*Record) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(insertEvaluation,
			r.ID.String(),
			r.DirectiveID,
			r.OperatorID.String(),
			r.ConfigurationRef,
			r.ModelDesignation,
			r.SerialNumber,
			r.Affected,
			r.MatchedRuleIndex,
			string(r.ReasonCode),
			r.Explanation,
			r.EvaluatedAt,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("save evaluations: %w", err)
		}
	}
	return results.Close()
}

// ListByDirective returns records for one directive, most recent first.
func (s *PostgresStore) ListByDirective(ctx context.Context, directiveID string) ([]*Record, error) {
	query := `
		SELECT id::text, directive_id, operator_id::text, configuration_ref, model_designation, serial_number, affected, matched_rule_index, reason_code, explanation, evaluated_at
		FROM evaluations
		WHERE directive_id = $1
		ORDER BY evaluated_at DESC, id
	`
	rows, err := s.pool.Query(ctx, query, directiveID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list evaluations: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return out, nil
}

func scanRecord(rows pgx.Rows) (*Record, error) {
	var record Record
	var rawID, rawOperatorID, reasonCode string
	err := rows.Scan(&rawID, &record.DirectiveID, &rawOperatorID, &record.ConfigurationRef,
		&record.ModelDesignation, &record.SerialNumber, &record.Affected, &record.MatchedRuleIndex,
		&reasonCode, &record.Explanation, &record.EvaluatedAt)
	if err != nil {
		return nil, err
	}

	record.ID, err = id.ParseEvaluationID(rawID)
	if err != nil {
		return nil, err
	}
	record.OperatorID, err = id.ParseOperatorID(rawOperatorID)
	if err != nil {
		return nil, err
	}
	record.ReasonCode = applicability.ReasonCode(reasonCode)
	return &record, nil
}
