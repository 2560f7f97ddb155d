// Package redis provides the Redis-backed rule store. It carries the
// production TTL policy: one hour on the live rule list, seven days on the
// history list. Expiry is the storage layer's concern, not the engine's.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ideagate/domain/core"
	"ideagate/domain/rules"
	"ideagate/ports"
)

const (
	rulesKey   = "policy:rules"
	historyKey = "policy:rules:history"

	rulesTTL   = time.Hour
	historyTTL = 7 * 24 * time.Hour
)

// RuleStoreImpl implements ports.RuleStore on Redis.
type RuleStoreImpl struct {
	client *redis.Client
}

// NewRuleStore creates a new Redis rule store.
func NewRuleStore(client *redis.Client) ports.RuleStore {
	return &RuleStoreImpl{client: client}
}

// List returns the enabled rules in evaluation order.
func (r *RuleStoreImpl) List(ctx context.Context) ([]rules.Definition, error) {
	defs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return rules.Enabled(defs), nil
}

// ListAll returns every persisted rule.
func (r *RuleStoreImpl) ListAll(ctx context.Context) ([]rules.Definition, error) {
	return r.load(ctx)
}

func (r *RuleStoreImpl) load(ctx context.Context) ([]rules.Definition, error) {
	raw, err := r.client.Get(ctx, rulesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return []rules.Definition{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	var defs []rules.Definition
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}
	return defs, nil
}

// Upsert validates, rewrites the list key and pushes a capped history entry.
// Concurrent writers are last-writer-wins, which the contract permits.
func (r *RuleStoreImpl) Upsert(ctx context.Context, def rules.Definition, actor string) error {
	if err := rules.Validate(def); err != nil {
		return err
	}

	defs, err := r.load(ctx)
	if err != nil {
		return err
	}
	defs = rules.Upsert(defs, def)

	raw, err := json.Marshal(defs)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := r.client.Set(ctx, rulesKey, raw, rulesTTL).Err(); err != nil {
		return fmt.Errorf("failed to store rules: %w", err)
	}

	entry := ports.HistoryEntry{
		At:    core.Now().EpochMillis(),
		Actor: actor,
		Rules: defs,
	}
	entryRaw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, historyKey, entryRaw)
	pipe.LTrim(ctx, historyKey, 0, int64(ports.HistoryLimit)-1)
	pipe.Expire(ctx, historyKey, historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

// History returns the recorded snapshots, most recent first.
func (r *RuleStoreImpl) History(ctx context.Context) ([]ports.HistoryEntry, error) {
	raws, err := r.client.LRange(ctx, historyKey, 0, int64(ports.HistoryLimit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	entries := make([]ports.HistoryEntry, 0, len(raws))
	for _, raw := range raws {
		var entry ports.HistoryEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
