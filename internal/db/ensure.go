package db

import (
	"context"
	"errors"
	"fmt"
)

// EnsureIndex creates def unless an index with the same name already exists.
// Schema drift is not detected: a changed definition needs a manual FT.DROPINDEX.
func EnsureIndex(ctx context.Context, m IndexManager, def *IndexDefinition) (bool, error) {
	exists, err := m.IndexExists(ctx, def.Name)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", def.Name, err)
	}
	if exists {
		return false, nil
	}
	if err := m.CreateIndex(ctx, def); err != nil {
		// lost a race with another replica
		if errors.Is(err, ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return true, nil
}
