package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"ideagate/domain/core"
	"ideagate/domain/rules"
	"ideagate/ports"
)

// RuleStoreImpl implements ports.RuleStore for PostgreSQL. Rules live as
// JSONB rows ordered by insertion position; history snapshots are pruned to
// ports.HistoryLimit on every write.
type RuleStoreImpl struct {
	db *sqlx.DB
}

// NewRuleStore creates a new PostgreSQL rule store.
func NewRuleStore(db *sqlx.DB) ports.RuleStore {
	return &RuleStoreImpl{db: db}
}

// Migrate creates the backing tables if they do not exist.
func (r *RuleStoreImpl) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS policy_rules (
			id TEXT PRIMARY KEY,
			definition JSONB NOT NULL,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			position BIGSERIAL
		);
		CREATE TABLE IF NOT EXISTS policy_rule_history (
			id TEXT PRIMARY KEY,
			recorded_at BIGINT NOT NULL,
			actor TEXT NOT NULL,
			rules JSONB NOT NULL
		)`)
	return err
}

// List returns the enabled rules in insertion order.
func (r *RuleStoreImpl) List(ctx context.Context) ([]rules.Definition, error) {
	return r.list(ctx, true)
}

// ListAll returns every persisted rule in insertion order.
func (r *RuleStoreImpl) ListAll(ctx context.Context) ([]rules.Definition, error) {
	return r.list(ctx, false)
}

func (r *RuleStoreImpl) list(ctx context.Context, enabledOnly bool) ([]rules.Definition, error) {
	query := `SELECT definition FROM policy_rules ORDER BY position`
	if enabledOnly {
		query = `SELECT definition FROM policy_rules WHERE enabled ORDER BY position`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	defs := []rules.Definition{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		var def rules.Definition
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("failed to decode rule: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// Upsert validates, writes the rule and records a pruned history snapshot in
// one transaction.
func (r *RuleStoreImpl) Upsert(ctx context.Context, def rules.Definition, actor string) error {
	if err := rules.Validate(def); err != nil {
		return err
	}

	raw, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to encode rule: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO policy_rules (id, definition, enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			definition = EXCLUDED.definition,
			enabled = EXCLUDED.enabled`,
		def.ID, raw, def.IsEnabled())
	if err != nil {
		return fmt.Errorf("failed to upsert rule %s: %w", def.ID, err)
	}

	snapshot, err := r.snapshotTx(ctx, tx)
	if err != nil {
		return err
	}
	rulesJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode history snapshot: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO policy_rule_history (id, recorded_at, actor, rules)
		VALUES ($1, $2, $3, $4)`,
		core.HistoryID(core.NewID()).String(), core.Now().EpochMillis(), actor, rulesJSON)
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM policy_rule_history
		WHERE id NOT IN (
			SELECT id FROM policy_rule_history
			ORDER BY recorded_at DESC, id DESC
			LIMIT $1
		)`, ports.HistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	return tx.Commit()
}

func (r *RuleStoreImpl) snapshotTx(ctx context.Context, tx *sqlx.Tx) ([]rules.Definition, error) {
	rows, err := tx.QueryContext(ctx, `SELECT definition FROM policy_rules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot rules: %w", err)
	}
	defer rows.Close()

	defs := []rules.Definition{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		var def rules.Definition
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("failed to decode rule: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// History returns the recorded snapshots, most recent first.
func (r *RuleStoreImpl) History(ctx context.Context) ([]ports.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT recorded_at, actor, rules FROM policy_rule_history
		ORDER BY recorded_at DESC, id DESC
		LIMIT $1`, ports.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []ports.HistoryEntry{}
	for rows.Next() {
		var entry ports.HistoryEntry
		var raw []byte
		if err := rows.Scan(&entry.At, &entry.Actor, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if err := json.Unmarshal(raw, &entry.Rules); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
