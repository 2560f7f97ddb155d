// Package memory provides the in-process rule store. The store is an
// explicit object constructed once per service instance and passed by
// reference, never a package-level singleton.
package memory

import (
	"context"
	"sync"

	"ideagate/domain/core"
	"ideagate/domain/rules"
	"ideagate/ports"
)

// RuleStore holds the rule list and bounded history behind a mutex.
type RuleStore struct {
	mu      sync.Mutex
	defs    []rules.Definition
	history []ports.HistoryEntry // most recent first
}

// NewRuleStore creates an empty in-memory rule store.
func NewRuleStore() *RuleStore {
	return &RuleStore{}
}

// NewRuleStoreWith seeds the store with an initial rule set. The seed is not
// recorded in history.
func NewRuleStoreWith(defs []rules.Definition) *RuleStore {
	s := &RuleStore{}
	s.defs = append(s.defs, defs...)
	return s
}

// List returns the enabled rules in evaluation order.
func (s *RuleStore) List(ctx context.Context) ([]rules.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rules.Enabled(s.defs), nil
}

// ListAll returns every persisted rule.
func (s *RuleStore) ListAll(ctx context.Context) ([]rules.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]rules.Definition, len(s.defs))
	copy(out, s.defs)
	return out, nil
}

// Upsert validates, replaces-or-appends and records a history entry.
func (s *RuleStore) Upsert(ctx context.Context, def rules.Definition, actor string) error {
	if err := rules.Validate(def); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs = rules.Upsert(s.defs, def)

	snapshot := make([]rules.Definition, len(s.defs))
	copy(snapshot, s.defs)
	entry := ports.HistoryEntry{
		At:    core.Now().EpochMillis(),
		Actor: actor,
		Rules: snapshot,
	}
	s.history = append([]ports.HistoryEntry{entry}, s.history...)
	if len(s.history) > ports.HistoryLimit {
		s.history = s.history[:ports.HistoryLimit]
	}
	return nil
}

// History returns the recorded snapshots, most recent first.
func (s *RuleStore) History(ctx context.Context) ([]ports.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out, nil
}
