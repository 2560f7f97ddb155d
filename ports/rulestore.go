package ports

import (
	"context"

	"ideagate/domain/rules"
)

// HistoryLimit bounds the audit history to the most recent entries.
const HistoryLimit = 50

// HistoryEntry is one append-only snapshot of the rule set after a mutation.
type HistoryEntry struct {
	// At is epoch milliseconds of the mutation.
	At int64 `json:"when"`

	// Actor identifies who performed the mutation.
	Actor string `json:"actor"`

	// Rules is the full rule set as of this entry.
	Rules []rules.Definition `json:"rules"`
}

// RuleStore owns the canonical current rule list and its bounded history.
// Implementations validate definition shape on write so malformed rules
// never reach the interpreter.
type RuleStore interface {
	// List returns the enabled rules in evaluation order.
	List(ctx context.Context) ([]rules.Definition, error)

	// ListAll returns every persisted rule, disabled ones included.
	ListAll(ctx context.Context) ([]rules.Definition, error)

	// Upsert replaces the rule with a matching id or appends it, then
	// records a history entry attributed to actor. Last writer wins.
	Upsert(ctx context.Context, def rules.Definition, actor string) error

	// History returns the recorded snapshots, most recent first, capped at
	// HistoryLimit.
	History(ctx context.Context) ([]HistoryEntry, error)
}
