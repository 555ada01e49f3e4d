package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jekabolt/salesboard/internal/dependency"
	"github.com/jekabolt/salesboard/internal/entity"
)

type targetsStore struct {
	*MYSQLStore
}

// Targets returns an object implementing Targets interface
func (ms *MYSQLStore) Targets() dependency.Targets {
	return &targetsStore{
		MYSQLStore: ms,
	}
}

func (ts *targetsStore) ListTargets(ctx context.Context, month entity.Month) ([]entity.TargetRow, error) {
	query := `
	SELECT month, scope, target_key, metric, target, updated_by, updated_at
	FROM targets
	WHERE month = :month
	ORDER BY id`
	rows, err := QueryListNamed[entity.TargetRow](ctx, ts.DB(), query, map[string]any{
		"month": month,
	})
	if err != nil {
		return nil, fmt.Errorf("can't list targets for %s: %w", month, err)
	}
	return rows, nil
}

// UpsertTargets writes items for month; a row with the same
// (month, scope, key, metric) is overwritten.
func (ts *targetsStore) UpsertTargets(ctx context.Context, month entity.Month, updatedBy string, items []entity.TargetItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
	INSERT INTO targets (month, scope, target_key, metric, target, updated_by)
	VALUES (:month, :scope, :targetKey, :metric, :target, :updatedBy)
	ON DUPLICATE KEY UPDATE target = VALUES(target), updated_by = VALUES(updated_by)`

	return ts.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		for _, it := range items {
			err := ExecNamed(ctx, rep.DB(), query, map[string]any{
				"month":     month,
				"scope":     strings.ToLower(string(it.Scope)),
				"targetKey": strings.TrimSpace(it.Key),
				"metric":    strings.ToLower(string(it.Metric)),
				"target":    it.Target,
				"updatedBy": updatedBy,
			})
			if err != nil {
				return fmt.Errorf("can't upsert target %s/%s/%s: %w", it.Scope, it.Key, it.Metric, err)
			}
		}
		return nil
	})
}
